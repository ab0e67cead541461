package idea

import (
	"fmt"
	"strings"

	"github.com/local/ideagen/internal/language"
	"github.com/local/ideagen/internal/prng"
)

// Idea is one generated content unit. JSON field names are the export wire
// format consumed by the dashboard and the JSON download.
type Idea struct {
	Date    string   `json:"data"`
	Title   string   `json:"titulo"`
	Hook    string   `json:"gancho"`
	Impact  string   `json:"impacto"`
	Body    string   `json:"ideiaCentral"`
	CTA     string   `json:"cta"`
	Visual  string   `json:"visual"`
	Track   string   `json:"trilha"`
	Verse   string   `json:"verso"`
	Prompts []string `json:"prompts,omitempty"`
}

// Options bundles the per-request assembly inputs. Immutable for the
// duration of a batch.
type Options struct {
	Lang           language.Lang
	EmphasizeTitle bool
	IncludeVerse   bool
	WithPrompts    bool
	Verses         []string
}

func draw(pool []string, rnd *prng.Source) string {
	return pool[int(rnd.Float64()*float64(len(pool)))]
}

// Assemble builds one Idea from a sampled base line. The draw order below is
// a contract: every rnd call happens in a fixed sequence so a regenerated
// batch reproduces each field exactly. Date is stamped by the caller.
func Assemble(base string, opts Options, rnd *prng.Source) Idea {
	angle := draw(angles, rnd)
	title := draw(titlePrefixes(opts.Lang), rnd) + " " + angle
	if opts.EmphasizeTitle {
		title = strings.ToUpper(title)
	}

	hook := draw(hooks(opts.Lang), rnd)
	impact := draw(impacts(opts.Lang), rnd)
	cta := draw(ctas(opts.Lang), rnd)
	visual := draw(visuals, rnd)
	track := draw(tracks, rnd)

	verse := ""
	if opts.IncludeVerse && len(opts.Verses) > 0 {
		verse = draw(opts.Verses, rnd)
	}

	// A base line in the wrong language would visibly mix languages in the
	// body; substitute the fixed fallback sentence instead.
	baseText := base
	if !language.Matches(base, opts.Lang) {
		baseText = ""
	}

	var intro, practice, closing, fallback string
	if opts.Lang == language.PT {
		intro = hook + " " + introTailPT
		practice = practicePT
		closing = closingPT
		fallback = fallbackBasePT
	} else {
		intro = hook + " " + introTailEN
		practice = practiceEN
		closing = closingEN
		fallback = fallbackBaseEN
	}
	if baseText == "" {
		baseText = fallback
	}

	body := joinParagraphs([]string{intro, baseText, practice, closing})
	if opts.Lang == language.PT {
		body += fmt.Sprintf("\n\nVisual sugerido: %s. Trilha: %s.", visual, track)
	} else {
		body += fmt.Sprintf("\n\nSuggested visuals: %s. Track: %s.", visual, track)
	}

	out := Idea{
		Title:  title,
		Hook:   hook,
		Impact: impact,
		Body:   body,
		CTA:    cta,
		Visual: visual,
		Track:  track,
		Verse:  verse,
	}
	if opts.WithPrompts {
		out.Prompts = buildVideoPrompts(promptFields{
			Lang:   opts.Lang,
			Title:  title,
			Hook:   hook,
			Impact: impact,
			Angle:  angle,
			Visual: visual,
			Track:  track,
			Verse:  verse,
		})
	}
	return out
}

// sentenceCase uppercases the first rune of a trimmed paragraph.
func sentenceCase(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	r := []rune(t)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func joinParagraphs(paras []string) string {
	var kept []string
	for _, p := range paras {
		if p == "" {
			continue
		}
		kept = append(kept, sentenceCase(p))
	}
	return strings.Join(kept, "\n\n")
}
