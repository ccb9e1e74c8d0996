package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
)

// ResolveInputs expands user-provided paths, directories and globs relative
// to baseDir into a deduplicated list of plaintext files. Files that already
// carry artifactExt are skipped so a directory is never encrypted twice.
func ResolveInputs(patterns []string, baseDir, artifactExt string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir, artifactExt)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	return files, nil
}

func resolvePattern(pattern, baseDir, artifactExt string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern, artifactExt)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern, artifactExt)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", pattern, classify(err))
	}

	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern, artifactExt string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if isArtifact(m, artifactExt) {
			continue
		}
		filtered = append(filtered, m)
	}

	return filtered, nil
}

func findFilesInDir(dir, artifactExt string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if isArtifact(path, artifactExt) {
			return nil
		}
		files = append(files, path)
		return nil
	})

	return files, err
}

func isArtifact(path, artifactExt string) bool {
	return artifactExt != "" && strings.HasSuffix(filepath.Base(path), artifactExt)
}
