package utils

import (
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

var (
	unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._\-]`)
	repeatedHyphens = regexp.MustCompile(`-+`)
)

// SanitizeBaseName turns a file's base name into a safe artifact stem.
// Spaces become hyphens and other special characters are dropped.
func SanitizeBaseName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = unsafeNameChars.ReplaceAllString(name, "")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")

	if name == "" {
		name = "file"
	}
	return name
}

// FileExists reports whether something exists at path.
func FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// GenerateArtifactName picks the artifact path for original inside dir.
// The first candidate is "<base><ext>", where base is the file name without
// its extension. When exists reports a conflict, a number suffix (-2, -3,
// etc.) is appended to the base.
func GenerateArtifactName(original, dir, ext string, exists func(string) bool) string {
	if exists == nil {
		exists = FileExists
	}
	if dir == "" {
		dir = filepath.Dir(original)
	}

	baseName := SanitizeBaseName(stripExtension(filepath.Base(original)))
	candidate := filepath.Join(dir, baseName+ext)

	suffix := 2
	for exists(candidate) {
		candidate = filepath.Join(dir, baseName+"-"+strconv.Itoa(suffix)+ext)
		suffix++
	}
	return candidate
}

// DecryptedName returns the default output path when decrypting an
// artifact by path: the artifact path with "_dec" appended.
func DecryptedName(artifact string) string {
	return artifact + "_dec"
}

// stripExtension drops the last extension, keeping dotfiles like ".env" whole.
func stripExtension(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		return name
	}
	return stem
}
