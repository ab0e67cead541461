package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"

	"github.com/local/ideagen/internal/metrics"
)

// Engine runs page-sequential recognition over a scanned PDF: render page,
// recognize page, report progress, next page. There is no mid-page
// cancellation; a cancelled context takes effect before the next page starts.
type Engine struct {
	client      Client
	model       string
	dpi         int
	jpegQuality int
	pageTimeout time.Duration
}

type Options struct {
	Client      Client
	Model       string
	DPI         int
	JPEGQuality int
	PageTimeout time.Duration
}

func NewEngine(opts Options) *Engine {
	if opts.DPI <= 0 {
		opts.DPI = 200
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 85
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = 2 * time.Minute
	}
	return &Engine{
		client:      opts.Client,
		model:       opts.Model,
		dpi:         opts.DPI,
		jpegQuality: opts.JPEGQuality,
		pageTimeout: opts.PageTimeout,
	}
}

// RecognizePDF renders and recognizes every page of the PDF at path.
// onProgress, when non-nil, receives incremental status strings. Failed
// pages are logged and skipped; the document fails only when every page does.
func (e *Engine) RecognizePDF(ctx context.Context, path, langHint string, onProgress func(string)) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	progress := func(msg string) {
		if onProgress != nil {
			onProgress(msg)
		}
	}

	var out []string
	failed := 0
	for p := 1; p <= total; p++ {
		if err := ctx.Err(); err != nil {
			return strings.Join(out, "\n"), err
		}
		progress(fmt.Sprintf("OCR página %d/%d…", p, total))

		text, err := e.recognizePage(ctx, doc, p, total, langHint)
		if err != nil {
			log.Warn().Err(err).Int("page", p).Msg("page recognition failed")
			failed++
			continue
		}
		if text != "" {
			out = append(out, text)
		}
		metrics.IncExtractionPage("ocr")
	}

	if failed == total && total > 0 {
		return "", fmt.Errorf("recognition failed on all %d pages", total)
	}
	return strings.Join(out, "\n"), nil
}

func (e *Engine) recognizePage(ctx context.Context, doc *fitz.Document, page, total int, langHint string) (string, error) {
	jpegBytes, err := renderPageJPEG(doc, page, e.dpi, e.jpegQuality)
	if err != nil {
		return "", err
	}

	pageCtx, cancel := context.WithTimeout(ctx, e.pageTimeout)
	defer cancel()

	start := time.Now()
	resp, err := e.client.Recognize(pageCtx, Request{
		Page:        page,
		Total:       total,
		Model:       e.model,
		ImageBase64: encodeBase64(jpegBytes),
		ImageMIME:   "image/jpeg",
		LangHint:    langHint,
	})
	if err != nil {
		metrics.ObserveOCR(e.client.Name(), e.model, "error", time.Since(start))
		return "", err
	}
	metrics.ObserveOCR(e.client.Name(), e.model, "success", time.Since(start))
	return strings.TrimSpace(resp.Text), nil
}
