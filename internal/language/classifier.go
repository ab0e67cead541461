package language

import "regexp"

// Lang is one of the two supported content languages.
type Lang string

const (
	PT Lang = "PT"
	EN Lang = "EN"
)

// Valid reports whether l is a supported language code.
func (l Lang) Valid() bool { return l == PT || l == EN }

// Lexical heuristics: a handful of high-frequency function words per language
// plus the Portuguese diacritic set. Diacritics are a strong positive signal
// for PT and a hard negative for EN; function words are weaker and weighted
// the same in both directions. The patterns are package-private so pools can
// change without touching the assembler.
var (
	ptWords = regexp.MustCompile(`(?i)(?:\bde\b|\bque\b|\bnão\b|\bvocê\b|\bDeus\b|\bpra\b|\bhoje\b|\bisso\b|\btambém\b|\bSenhor\b|\bfé\b|\boração\b|\bpromessa\b|\bagora\b)`)
	enWords = regexp.MustCompile(`(?i)(?:\bthe\b|\band\b|\byou\b|\bgod\b|\btoday\b|\bthis\b|\bwith\b|\bnew\b|\btime\b|\bfaith\b|\bprayer\b|\bpromise\b|\bnow\b)`)

	ptDiacritics = regexp.MustCompile(`(?i)[áàâãéêíóôõúç]`)
)

// LooksPortuguese reports whether s scores as Portuguese: at least one strong
// signal (diacritics count 2, a function word 1) and strictly more than the
// English score.
func LooksPortuguese(s string) bool {
	ptScore := 0
	if ptWords.MatchString(s) {
		ptScore++
	}
	if ptDiacritics.MatchString(s) {
		ptScore += 2
	}
	enScore := 0
	if enWords.MatchString(s) {
		enScore = 1
	}
	return ptScore >= 2 && ptScore > enScore
}

// LooksEnglish reports whether s scores as English. Any Portuguese diacritic
// disqualifies the line outright.
func LooksEnglish(s string) bool {
	enScore := 0
	if enWords.MatchString(s) {
		enScore = 2
	}
	ptScore := 0
	if ptWords.MatchString(s) {
		ptScore++
	}
	if ptDiacritics.MatchString(s) {
		ptScore += 2
	}
	return enScore > ptScore && !ptDiacritics.MatchString(s)
}

// Matches reports whether s classifies as lang. Both classifiers may return
// false for ambiguous text; callers deal with that via FilterByLang.
func Matches(s string, lang Lang) bool {
	if lang == PT {
		return LooksPortuguese(s)
	}
	return LooksEnglish(s)
}

// FilterByLang keeps only the non-empty lines that classify as lang. When
// nothing matches it returns the non-empty lines unfiltered: classification
// must never leave the caller with an empty working corpus.
func FilterByLang(lines []string, lang Lang) []string {
	cleaned := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			cleaned = append(cleaned, l)
		}
	}
	filtered := make([]string, 0, len(cleaned))
	for _, l := range cleaned {
		if Matches(l, lang) {
			filtered = append(filtered, l)
		}
	}
	if len(filtered) == 0 {
		return cleaned
	}
	return filtered
}
