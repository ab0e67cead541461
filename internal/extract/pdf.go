package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"

	"github.com/local/ideagen/internal/metrics"
)

// ErrNoText signals that the native text layer produced nothing usable and
// OCR is not enabled.
var ErrNoText = errors.New("no text layer found (scanned PDF?); enable OCR and retry")

// minTextChars is the minimum number of non-whitespace characters for a
// native extraction to count as usable; below it the caller falls back to OCR.
const minTextChars = 20

// Extractor reads the native text layer of a PDF with go-fitz (MuPDF),
// one page fully before the next.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// PageCount returns the number of pages via go-fitz.
func (e *Extractor) PageCount(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// Text extracts all pages sequentially. onPage, when non-nil, is called
// after each page with (page, total). Per-page failures are logged and
// skipped so one bad page never loses the document.
func (e *Extractor) Text(path string, onPage func(page, total int)) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	var result strings.Builder
	for i := 0; i < total; i++ {
		text, err := doc.Text(i)
		if err != nil {
			log.Warn().Err(err).Int("page", i+1).Msg("failed to extract text from page")
			continue
		}
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(strings.TrimSpace(text))
		metrics.IncExtractionPage("native")
		if onPage != nil {
			onPage(i+1, total)
		}
	}

	text := result.String()
	log.Debug().Str("pdf", path).Int("pages", total).Int("chars", len(text)).Msg("extracted native text")
	return text, nil
}

// Usable reports whether extracted text clears the non-whitespace threshold
// that separates a real text layer from a scanned document.
func Usable(text string) bool {
	n := 0
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			n++
		}
	}
	return n >= minTextChars
}
