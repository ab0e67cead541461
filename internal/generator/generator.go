package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/ideagen/internal/idea"
	"github.com/local/ideagen/internal/language"
	"github.com/local/ideagen/internal/metrics"
	"github.com/local/ideagen/internal/prng"
)

// ErrEmptyCorpus is returned when a generation request carries no usable
// base lines. Surfaced to the user as a blocking notice.
var ErrEmptyCorpus = errors.New("empty corpus: paste ideas or extract them from a PDF first")

// Request is the immutable input bundle for one generation run. The core
// reads nothing but this snapshot; identical requests produce byte-identical
// batches.
type Request struct {
	Lang           language.Lang
	Count          int
	Date           string // ISO YYYY-MM-DD
	EmphasizeTitle bool
	IncludeVerse   bool
	WithPrompts    bool
	Corpus         []string
	Verses         []string
}

// Batch is the ordered set of Ideas produced by one request.
type Batch struct {
	Date  string
	Lang  language.Lang
	Ideas []idea.Idea
}

// Seed derives the PRNG seed string from the request parameters and the
// filtered corpus size. The exact layout is part of the determinism
// contract; changing it would silently reshuffle every saved date.
func Seed(r Request, filteredLen int) string {
	return fmt.Sprintf("%s|%s|%d|%d|%t|%t",
		r.Date, r.Lang, r.Count, filteredLen, r.EmphasizeTitle, r.IncludeVerse)
}

// SlugDate formats a time as the ISO day string used in seeds and filenames.
func SlugDate(t time.Time) string { return t.Format("2006-01-02") }

// Generate runs the full pipeline: language filter, seeded sampling, and
// per-line assembly. The batch length is min(Count, filtered corpus size);
// Count <= 0 yields an empty batch. Total over its input domain apart from
// the empty-corpus guard.
func Generate(req Request) (Batch, error) {
	if len(req.Corpus) == 0 {
		return Batch{}, ErrEmptyCorpus
	}
	if !req.Lang.Valid() {
		return Batch{}, fmt.Errorf("unsupported language %q", req.Lang)
	}

	filtered := language.FilterByLang(req.Corpus, req.Lang)
	// After filtering, either every line matches or the filter fell back to
	// the unfiltered input; one probe distinguishes the two.
	if len(filtered) > 0 && !language.Matches(filtered[0], req.Lang) {
		metrics.IncFilterFallback()
	}

	rnd := prng.New(Seed(req, len(filtered)))
	bases := prng.PickN(filtered, req.Count, rnd)

	opts := idea.Options{
		Lang:           req.Lang,
		EmphasizeTitle: req.EmphasizeTitle,
		IncludeVerse:   req.IncludeVerse,
		WithPrompts:    req.WithPrompts,
		Verses:         req.Verses,
	}
	ideas := make([]idea.Idea, 0, len(bases))
	for _, b := range bases {
		it := idea.Assemble(b, opts, rnd)
		it.Date = req.Date
		ideas = append(ideas, it)
	}

	metrics.IncBatch(string(req.Lang), len(ideas))
	log.Debug().
		Str("lang", string(req.Lang)).
		Str("date", req.Date).
		Int("requested", req.Count).
		Int("corpus", len(req.Corpus)).
		Int("filtered", len(filtered)).
		Int("generated", len(ideas)).
		Msg("batch generated")

	return Batch{Date: req.Date, Lang: req.Lang, Ideas: ideas}, nil
}
