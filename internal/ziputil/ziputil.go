// Package ziputil provides safety helpers for reading ZIP-based e-book
// containers: decompression caps against zip bombs and entry path
// validation against path traversal.
package ziputil

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/inkwell-tools/bionify/internal/core/domain"
)

// MaxDecompressSize is the maximum allowed decompressed size for a
// single ZIP entry. This guards against zip bomb attacks.
const MaxDecompressSize int64 = 256 * 1024 * 1024

// IsSafePath checks whether p is a safe ZIP-internal path that does not
// escape the archive root via path traversal (e.g., "../../../etc/passwd").
func IsSafePath(p string) bool {
	cleaned := path.Clean(p)
	if strings.HasPrefix(cleaned, "/") {
		return false
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}

// ReadEntry reads the full contents of a ZIP entry.
// It enforces MaxDecompressSize and validates that the entry path is safe.
func ReadEntry(f *zip.File) ([]byte, error) {
	return readEntryWithLimit(f, MaxDecompressSize)
}

// readEntryWithLimit is the implementation of ReadEntry with a
// configurable size limit. It is separated to allow tests to use a
// smaller limit.
func readEntryWithLimit(f *zip.File, limit int64) ([]byte, error) {
	if !IsSafePath(f.Name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsafeEntryPath, f.Name)
	}

	if f.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("%w: %s declares %d bytes (max %d)",
			domain.ErrEntryTooLarge, f.Name, f.UncompressedSize64, limit)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	// Read up to limit+1 to detect if the actual decompressed data
	// exceeds the limit (the declared size might be wrong/forged).
	lr := io.LimitReader(rc, limit+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, fmt.Errorf("read zip entry %s: %w", f.Name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s decompresses past %d bytes", domain.ErrEntryTooLarge, f.Name, limit)
	}

	return data, nil
}
