package catalog

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileType derives the short type label stored on a record. The extension
// wins when there is one; otherwise the content is sniffed.
func FileType(name string, content []byte) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext != "" {
		return strings.ToLower(ext)
	}
	if len(content) == 0 {
		return ""
	}
	return strings.TrimPrefix(mimetype.Detect(content).Extension(), ".")
}

// FileTypeOf is FileType for a file on disk.
func FileTypeOf(path string) string {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return strings.ToLower(ext)
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(mtype.Extension(), ".")
}
