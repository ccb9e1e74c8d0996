package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
)

// Checksum returns the 32-bit wrapping sum of data as 8 lowercase hex digits.
// It is a coarse corruption signal, not a collision-resistant hash.
func Checksum(data []byte) string {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return formatSum(sum)
}

// ChecksumOf streams the file at path through Checksum.
func ChecksumOf(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("%w: %v", kerrors.ErrNotFound, err)
		case errors.Is(err, fs.ErrPermission):
			return "", fmt.Errorf("%w: %v", kerrors.ErrPermissionDenied, err)
		}
		return "", err
	}
	defer f.Close()

	var sum uint32
	r := bufio.NewReader(f)
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			sum += uint32(b)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return formatSum(sum), nil
}

func formatSum(sum uint32) string {
	return fmt.Sprintf("%08x", sum)
}
