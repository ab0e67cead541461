package filetype

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestRequirePDF(t *testing.T) {
	t.Run("pdf magic bytes accepted", func(t *testing.T) {
		p := writeTemp(t, "doc.pdf", []byte("%PDF-1.7\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"))
		assert.NoError(t, RequirePDF(p))
	})

	t.Run("plain text rejected", func(t *testing.T) {
		p := writeTemp(t, "doc.pdf", []byte("just some text pretending to be a pdf"))
		assert.ErrorIs(t, RequirePDF(p), ErrNotPDF)
	})

	t.Run("missing file errors", func(t *testing.T) {
		err := RequirePDF(filepath.Join(t.TempDir(), "missing.pdf"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotPDF)
	})
}
