package jobs

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/local/ideagen/internal/extract"
	"github.com/local/ideagen/internal/metrics"
	"github.com/local/ideagen/internal/store"
	"github.com/local/ideagen/internal/textproc"
)

// TextExtractor pulls the native text layer out of a PDF.
type TextExtractor interface {
	Text(path string, onPage func(page, total int)) (string, error)
}

// OCREngine transcribes scanned pages when no usable text layer exists.
type OCREngine interface {
	RecognizePDF(ctx context.Context, path, langHint string, onProgress func(string)) (string, error)
}

type Dependencies struct {
	Extractor TextExtractor
	OCR       OCREngine // nil when OCR is disabled
	Status    store.StatusStore
	Corpus    store.KV
	OCRLang   string
	// JobTimeout bounds a whole extraction run including OCR.
	JobTimeout time.Duration
}

// Runner executes extraction jobs in the background and reports progress
// through the status store so the dashboard can poll it.
type Runner struct {
	deps Dependencies
}

func New(deps Dependencies) *Runner {
	if deps.JobTimeout <= 0 {
		deps.JobTimeout = 15 * time.Minute
	}
	return &Runner{deps: deps}
}

// SubmitOptions carries the per-job controls from the upload form.
type SubmitOptions struct {
	// LangHint overrides the configured OCR language for this job
	// ("por", "eng" or "por+eng"); empty keeps the default.
	LangHint string
	// UseOCR false skips the OCR branch for this job even when the engine
	// is configured; a scanned PDF then fails with the no-text-layer error.
	UseOCR bool
	// RemoveSource transfers ownership of a local ref to the runner, which
	// removes the file once the job finishes either way. Upload temp files
	// set this; caller-managed paths must not.
	RemoveSource bool
}

// Submit starts an extraction for ref (local path, http(s):// or s3://) and
// returns its job id immediately.
func (r *Runner) Submit(ref string, opts SubmitOptions) string {
	jobID := uuid.NewString()
	start := time.Now()
	r.deps.Status.Set(context.Background(), jobID, store.JobStatus{
		Status: "queued", Progress: 0, Message: "queued", Start: &start,
		Metadata: map[string]any{"file": ref},
	})
	log.Info().Str("job_id", jobID).Str("file", ref).Msg("extraction job created")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.deps.JobTimeout)
		defer cancel()
		r.run(ctx, jobID, ref, opts)
	}()
	return jobID
}

func (r *Runner) run(ctx context.Context, jobID, ref string, opts SubmitOptions) {
	if opts.RemoveSource {
		defer os.Remove(ref)
	}
	langHint := opts.LangHint
	if langHint == "" {
		langHint = r.deps.OCRLang
	}
	path, cleanup, err := extract.EnsureLocal(ctx, ref)
	if err != nil {
		r.fail(ctx, jobID, fmt.Sprintf("could not read file: %v", err))
		return
	}
	defer cleanup()

	if pages, err := extract.DetermineTotalPages(ctx, path); err == nil {
		r.deps.Status.Set(ctx, jobID, store.JobStatus{
			Status: "processing", Progress: 5, Message: "Lendo PDF…",
			Metadata: map[string]any{"total_pages": pages},
		})
	}

	r.progress(ctx, jobID, 10, "Lendo PDF…")
	text, err := r.deps.Extractor.Text(path, func(page, total int) {
		// Native pass spans 10..60% of the bar.
		pct := 10
		if total > 0 {
			pct = 10 + page*50/total
		}
		r.progress(ctx, jobID, pct, fmt.Sprintf("Lendo PDF… página %d/%d", page, total))
	})
	if err != nil {
		r.fail(ctx, jobID, fmt.Sprintf("extraction failed: %v", err))
		return
	}

	if !extract.Usable(text) {
		if !opts.UseOCR || r.deps.OCR == nil {
			r.fail(ctx, jobID, extract.ErrNoText.Error())
			return
		}
		r.progress(ctx, jobID, 60, "Texto não encontrado. Iniciando OCR…")
		text, err = r.deps.OCR.RecognizePDF(ctx, path, langHint, func(msg string) {
			r.progress(ctx, jobID, 60, msg)
		})
		if err != nil {
			r.fail(ctx, jobID, fmt.Sprintf("OCR failed: %v", err))
			return
		}
	}

	r.progress(ctx, jobID, 90, "Processando texto…")
	lines := textproc.CleanLines(text)
	ideas, verses := textproc.Bifurcate(lines)
	if len(ideas) == 0 && len(verses) == 0 {
		r.fail(ctx, jobID, "no usable lines found in document")
		return
	}

	// New script material replaces the stored corpus; verses accumulate.
	if len(ideas) > 0 {
		r.deps.Corpus.Save(ctx, store.KeyCorpus, strings.Join(ideas, "\n"))
	}
	if len(verses) > 0 {
		prev := r.deps.Corpus.Load(ctx, store.KeyVerses, "")
		merged := strings.Join(verses, "\n")
		if prev != "" {
			merged = prev + "\n" + merged
		}
		r.deps.Corpus.Save(ctx, store.KeyVerses, merged)
	}

	end := time.Now()
	r.deps.Status.Set(ctx, jobID, store.JobStatus{
		Status: "completed", Progress: 100, End: &end,
		Message:  fmt.Sprintf("Extração concluída: %d roteiros · %d versos", len(ideas), len(verses)),
		Metadata: map[string]any{"ideas": len(ideas), "verses": len(verses)},
	})
	metrics.IncExtractionJob("success")
	log.Info().Str("job_id", jobID).Int("ideas", len(ideas)).Int("verses", len(verses)).Msg("extraction completed")
}

func (r *Runner) progress(ctx context.Context, jobID string, pct int, msg string) {
	r.deps.Status.Set(ctx, jobID, store.JobStatus{Status: "processing", Progress: pct, Message: msg})
}

func (r *Runner) fail(ctx context.Context, jobID, msg string) {
	end := time.Now()
	r.deps.Status.Set(ctx, jobID, store.JobStatus{Status: "error", Progress: 100, Message: msg, End: &end})
	metrics.IncExtractionJob("error")
	log.Error().Str("job_id", jobID).Str("reason", msg).Msg("extraction failed")
}
