package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Patterns applied to a raw extracted line. Book names double as the
// verse/idea split signal further down the pipeline.
var (
	sentenceEnd   = regexp.MustCompile(`[\.!?]$`)
	numberedStart = regexp.MustCompile(`^\d+\W+`)
	hasLetter     = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ]`)
	bookNames     = regexp.MustCompile(`(?i)(Salmo|Isaías|Mateus|João|Romanos|Provérbios|Êxodo|Gênesis|Coríntios|Filipenses)`)
	pageFooter    = regexp.MustCompile(`^Página \d+`)
	urlStart      = regexp.MustCompile(`(?i)^https?:`)

	innerSpace = regexp.MustCompile(`\s+`)
	lineBreaks = regexp.MustCompile(`\r?\n`)
	entrySplit = regexp.MustCompile(`\n+`)
)

// CleanLines splits raw extracted text into lines, collapses runs of
// whitespace to single spaces, trims, and drops empties.
func CleanLines(raw string) []string {
	var out []string
	for _, l := range lineBreaks.Split(raw, -1) {
		l = strings.TrimSpace(innerSpace.ReplaceAllString(l, " "))
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// SplitEntries turns a pasted text block into corpus entries, one per
// non-empty line. Consecutive newlines collapse into a single boundary.
func SplitEntries(text string) []string {
	var out []string
	for _, l := range entrySplit.Split(text, -1) {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// ScoreLine assigns an additive quality score to a cleaned line. Positive
// scores keep the line; zero or below discards it as extraction noise (page
// footers, URLs, short fragments).
func ScoreLine(s string) int {
	score := 0
	n := utf8.RuneCountInString(s)
	if n >= 20 {
		score += 2
	}
	if sentenceEnd.MatchString(s) {
		score++
	}
	if numberedStart.MatchString(s) {
		score++
	}
	if hasLetter.MatchString(s) {
		score++
	}
	if bookNames.MatchString(s) {
		score++
	}
	if n < 8 {
		score -= 2
	}
	if pageFooter.MatchString(s) {
		score -= 3
	}
	if urlStart.MatchString(s) {
		score -= 3
	}
	return score
}

// IsVerseLine reports whether a line references a scripture book.
func IsVerseLine(s string) bool { return bookNames.MatchString(s) }

// Bifurcate keeps positively scored lines and splits them into idea
// candidates and verse candidates by the book-name signal.
func Bifurcate(lines []string) (ideas, verses []string) {
	for _, l := range lines {
		if ScoreLine(l) <= 0 {
			continue
		}
		if IsVerseLine(l) {
			verses = append(verses, l)
		} else {
			ideas = append(ideas, l)
		}
	}
	return ideas, verses
}
