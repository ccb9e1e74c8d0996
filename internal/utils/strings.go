package utils

import "strings"

// IsValidFileName reports whether name can be used as the new file name of
// an artifact on rename. It must be non-empty with no path separators and no
// NUL bytes.
func IsValidFileName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
