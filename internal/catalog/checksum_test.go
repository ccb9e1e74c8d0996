package catalog

import (
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	assert.Equal(t, "00000000", Checksum(nil))
	assert.Equal(t, "00000145", Checksum([]byte("AAAAA")))

	// The sum wraps at 32 bits.
	big := make([]byte, 16843010)
	for i := range big {
		big[i] = 0xff
	}
	assert.Equal(t, "000000fe", Checksum(big))
}

func TestChecksumOf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("AAAAA"), 0600))

	sum, err := ChecksumOf(path)
	require.NoError(t, err)
	assert.Equal(t, Checksum([]byte("AAAAA")), sum)

	_, err = ChecksumOf(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, kerrors.ErrNotFound)
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "txt", FileType("notes.TXT", nil))
	assert.Equal(t, "gz", FileType("archive.tar.gz", nil))
	assert.Equal(t, "", FileType("Makefile", nil))
	assert.Equal(t, "pdf", FileType("scan", []byte("%PDF-1.7\n")))
}
