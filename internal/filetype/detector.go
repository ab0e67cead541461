package filetype

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// ErrNotPDF is the blocking input error for non-PDF uploads.
var ErrNotPDF = errors.New("invalid file: select a PDF (.pdf)")

// RequirePDF detects the actual file type from magic bytes (never the
// filename) and fails unless the file is a PDF.
func RequirePDF(path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}
	log.Debug().Str("mime", mtype.String()).Str("file", path).Msg("detected file type")
	if !mtype.Is("application/pdf") {
		return ErrNotPDF
	}
	return nil
}
