package ocr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"
)

// renderPageJPEG rasterizes one page (1-based) as a grayscale JPEG.
// Grayscale keeps the payload small and recognition does not need color.
func renderPageJPEG(doc *fitz.Document, page, dpi, quality int) ([]byte, error) {
	img, err := doc.ImageDPI(page-1, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page, err)
	}

	bounds := img.Bounds()
	grayImg := image.NewGray(bounds)
	draw.Draw(grayImg, bounds, img, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, grayImg, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	log.Debug().
		Int("page", page).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Int("jpeg_size", buf.Len()).
		Int("dpi", dpi).
		Msg("rendered page for recognition")

	return buf.Bytes(), nil
}

func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
