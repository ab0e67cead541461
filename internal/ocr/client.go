package ocr

import (
	"context"
	"errors"
	"strings"
)

// Request is one page-image recognition call.
type Request struct {
	Page        int
	Total       int
	Model       string
	ImageBase64 string
	ImageMIME   string
	LangHint    string // "por", "eng" or "por+eng"
}

type Response struct {
	Text string
}

// Client is a vision-capable recognition provider.
type Client interface {
	Name() string
	Recognize(ctx context.Context, req Request) (Response, error)
}

var ErrRateLimited = errors.New("rate_limited")

func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// systemPrompt builds the transcription instruction for a language hint.
func systemPrompt(langHint string) string {
	var langs []string
	for _, h := range strings.Split(langHint, "+") {
		switch h {
		case "por":
			langs = append(langs, "Portuguese")
		case "eng":
			langs = append(langs, "English")
		}
	}
	if len(langs) == 0 {
		langs = []string{"Portuguese"}
	}
	return "You are a transcription engine. The attached image is one page of a scanned document in " +
		strings.Join(langs, " or ") + ". Transcribe every legible line of text exactly as printed, " +
		"one line per line, preserving accents and punctuation. Return only the transcription, " +
		"with no commentary and no markup."
}
