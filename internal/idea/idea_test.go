package idea

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/ideagen/internal/language"
	"github.com/local/ideagen/internal/prng"
)

const basePT = "Deus está preparando algo novo na sua vida hoje."

func contains(pool []string, s string) bool {
	for _, p := range pool {
		if p == s {
			return true
		}
	}
	return false
}

func TestAssembleDeterminism(t *testing.T) {
	opts := Options{Lang: language.PT, EmphasizeTitle: true, WithPrompts: true}
	a := Assemble(basePT, opts, prng.New("seed-a"))
	b := Assemble(basePT, opts, prng.New("seed-a"))
	require.Equal(t, a, b)
}

func TestAssembleFieldsComeFromPools(t *testing.T) {
	opts := Options{Lang: language.PT, WithPrompts: true}
	got := Assemble(basePT, opts, prng.New("pools"))

	assert.True(t, contains(hooksPT, got.Hook))
	assert.True(t, contains(impactPT, got.Impact))
	assert.True(t, contains(ctasPT, got.CTA))
	assert.True(t, contains(visuals, got.Visual))
	assert.True(t, contains(tracks, got.Track))

	prefixOK := false
	for _, p := range titlePrefixPT {
		if strings.HasPrefix(got.Title, p+" ") {
			prefixOK = true
		}
	}
	assert.True(t, prefixOK, "title %q does not start with a PT prefix", got.Title)
}

func TestAssembleLanguagePurity(t *testing.T) {
	// An EN request must never hand out a field from a PT pool.
	opts := Options{Lang: language.EN, WithPrompts: true}
	for _, seed := range []string{"a", "b", "c", "d", "e"} {
		got := Assemble("Trust the Lord and walk by faith today.", opts, prng.New(seed))
		assert.False(t, contains(hooksPT, got.Hook))
		assert.False(t, contains(impactPT, got.Impact))
		assert.False(t, contains(ctasPT, got.CTA))
		assert.True(t, contains(hooksEN, got.Hook))
		assert.True(t, contains(impactEN, got.Impact))
		assert.True(t, contains(ctasEN, got.CTA))
	}
}

func TestAssembleEmphasizeTitle(t *testing.T) {
	plain := Assemble(basePT, Options{Lang: language.PT}, prng.New("title"))
	upper := Assemble(basePT, Options{Lang: language.PT, EmphasizeTitle: true}, prng.New("title"))
	assert.Equal(t, strings.ToUpper(plain.Title), upper.Title)
}

func TestAssembleBaseLineInBody(t *testing.T) {
	got := Assemble(basePT, Options{Lang: language.PT}, prng.New("body"))
	assert.Contains(t, got.Body, basePT)
}

func TestAssembleWrongLanguageBaseSubstituted(t *testing.T) {
	enBase := "Trust the Lord and walk by faith today."
	got := Assemble(enBase, Options{Lang: language.PT}, prng.New("subst"))
	assert.NotContains(t, got.Body, enBase)
	assert.Contains(t, got.Body, fallbackBasePT)
}

func TestAssembleVerseHandling(t *testing.T) {
	verses := []string{"Salmo 91:1", "Mateus 6:33", "Isaías 41:10"}

	t.Run("include with verses", func(t *testing.T) {
		got := Assemble(basePT, Options{Lang: language.PT, IncludeVerse: true, Verses: verses}, prng.New("v"))
		require.NotEmpty(t, got.Verse)
		assert.True(t, contains(verses, got.Verse))
	})
	t.Run("include with empty list is not an error", func(t *testing.T) {
		got := Assemble(basePT, Options{Lang: language.PT, IncludeVerse: true}, prng.New("v"))
		assert.Empty(t, got.Verse)
	})
	t.Run("flag off", func(t *testing.T) {
		got := Assemble(basePT, Options{Lang: language.PT, Verses: verses}, prng.New("v"))
		assert.Empty(t, got.Verse)
	})
}

func TestAssembleBodyShape(t *testing.T) {
	got := Assemble(basePT, Options{Lang: language.PT}, prng.New("shape"))
	paras := strings.Split(got.Body, "\n\n")
	// intro, base, practice, closing, visual/track tail
	require.Len(t, paras, 5)
	assert.True(t, strings.HasPrefix(paras[0], got.Hook))
	assert.Contains(t, paras[4], got.Visual)
	assert.Contains(t, paras[4], got.Track)
	assert.True(t, strings.HasPrefix(paras[4], "Visual sugerido: "))
}

func TestAssemblePrompts(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		got := Assemble(basePT, Options{Lang: language.PT, WithPrompts: true}, prng.New("p"))
		require.Len(t, got.Prompts, 7)
		assert.True(t, strings.HasPrefix(got.Prompts[0], "ROTEIRO/VOZ:"))
		assert.True(t, strings.HasPrefix(got.Prompts[4], "TEXTO NA TELA:"))
		assert.Contains(t, got.Prompts[0], got.Hook)
		assert.Contains(t, got.Prompts[4], got.Title)
		assert.Contains(t, got.Prompts[4], got.Impact)
	})
	t.Run("english templates", func(t *testing.T) {
		got := Assemble("Trust the Lord and walk by faith today.",
			Options{Lang: language.EN, WithPrompts: true}, prng.New("p"))
		require.Len(t, got.Prompts, 7)
		assert.True(t, strings.HasPrefix(got.Prompts[0], "SCRIPT/VOICE:"))
		assert.True(t, strings.HasPrefix(got.Prompts[6], "CAPTION/CTA:"))
	})
	t.Run("verse reference in caption", func(t *testing.T) {
		got := Assemble(basePT, Options{
			Lang: language.PT, WithPrompts: true,
			IncludeVerse: true, Verses: []string{"Salmo 23:1"},
		}, prng.New("p"))
		assert.Contains(t, got.Prompts[6], "Ref. Salmo 23:1")
	})
	t.Run("disabled", func(t *testing.T) {
		got := Assemble(basePT, Options{Lang: language.PT}, prng.New("p"))
		assert.Nil(t, got.Prompts)
	})
}

func TestSentenceCase(t *testing.T) {
	assert.Equal(t, "", sentenceCase("   "))
	assert.Equal(t, "Hoje é o dia.", sentenceCase("hoje é o dia."))
	assert.Equal(t, "Água no deserto", sentenceCase("água no deserto"))
}
