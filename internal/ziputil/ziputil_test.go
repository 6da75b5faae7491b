package ziputil

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-tools/bionify/internal/core/domain"
)

// buildTestZip creates an in-memory ZIP archive from the provided files
// map (path -> content) and returns a *zip.Reader over the result.
func buildTestZip(t *testing.T, files map[string]string) *zip.Reader {
	t.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for name, content := range files {
		fw, err := zw.Create(name)
		require.NoError(t, err, "create %s", name)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err, "write %s", name)
	}
	require.NoError(t, zw.Close())

	data := buf.Bytes()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return r
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"OEBPS/chapter1.xhtml", true},
		{"mimetype", true},
		{"a/b/../c.html", true},
		{"../escape.html", false},
		{"a/../../escape.html", false},
		{"/absolute.html", false},
		{"..", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSafePath(tt.path), tt.path)
	}
}

func TestReadEntry(t *testing.T) {
	zr := buildTestZip(t, map[string]string{
		"OEBPS/chapter1.xhtml": "<p>content</p>",
	})

	data, err := ReadEntry(zr.File[0])
	require.NoError(t, err)
	assert.Equal(t, "<p>content</p>", string(data))
}

func TestReadEntryUnsafePath(t *testing.T) {
	zr := buildTestZip(t, map[string]string{
		"../evil.xhtml": "<p>x</p>",
	})

	_, err := ReadEntry(zr.File[0])
	assert.ErrorIs(t, err, domain.ErrUnsafeEntryPath)
}

func TestReadEntryDeclaredSizeTooLarge(t *testing.T) {
	zr := buildTestZip(t, map[string]string{
		"big.xhtml": strings.Repeat("a", 64),
	})

	_, err := readEntryWithLimit(zr.File[0], 32)
	assert.ErrorIs(t, err, domain.ErrEntryTooLarge)
}

func TestReadEntryWithinLimit(t *testing.T) {
	zr := buildTestZip(t, map[string]string{
		"small.xhtml": strings.Repeat("a", 16),
	})

	data, err := readEntryWithLimit(zr.File[0], 32)
	require.NoError(t, err)
	assert.Len(t, data, 16)
}
