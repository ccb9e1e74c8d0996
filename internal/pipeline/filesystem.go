package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/ccrypt/ccrypt/internal/keystream"
)

// classify maps an operating system error onto the ccrypt error kinds.
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", kerrors.ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", kerrors.ErrPermissionDenied, err)
	default:
		return err
	}
}

func unsupported(m keystream.Method) error {
	return fmt.Errorf("%s: %w", m, kerrors.ErrUnsupportedMethod)
}

// readFile reads path in full. maxSize of 0 means no limit.
func readFile(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classify(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, classify(err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", kerrors.ErrNotFound, path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d",
			kerrors.ErrResourceExhausted, path, info.Size(), maxSize)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, classify(err)
	}
	return data, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return classify(err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return classify(err)
	}
	if err = tmp.Close(); err != nil {
		return classify(err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return classify(err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return classify(err)
	}
	return nil
}
