package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ccrypt/ccrypt/internal/audit"
	"github.com/ccrypt/ccrypt/internal/catalog"
	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/ccrypt/ccrypt/internal/keystream"
	"github.com/ccrypt/ccrypt/internal/pipeline"
	"github.com/ccrypt/ccrypt/internal/rle"
	"github.com/ccrypt/ccrypt/internal/utils"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// FilePatterns lists files, directories or doublestar globs to encrypt.
	FilePatterns []string

	// BaseDir resolves relative patterns. Defaults to the working directory.
	BaseDir string

	// OutputDir receives the artifacts. Empty writes next to each source.
	OutputDir string

	// Extension is appended to artifact names.
	Extension string

	Password []byte
	Method   keystream.Method
	Compress bool

	// MaxSize rejects larger inputs. 0 means no limit.
	MaxSize int64

	// DryRun previews which artifacts would be written without making changes.
	DryRun bool
}

// EncryptedFile describes one committed artifact and its catalog entry.
type EncryptedFile struct {
	Source   string
	Artifact string

	// Index is the record's position in the catalog after insertion.
	Index      int
	SequenceID uint64

	OriginalSize int64
	ArtifactSize int64
	Outcome      rle.Outcome
	Compressed   bool
	Checksum     string
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	Files []EncryptedFile

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool
}

// Encrypt seals every file matched by opts.FilePatterns and inserts a
// record for each artifact into cat.
//
// Files are processed in order and the first failure stops the run; files
// encrypted before it stay committed and catalogued. An artifact whose
// record cannot be inserted is removed again.
//
// Returns ErrNoFilesFound if nothing matches the patterns.
// Returns ErrCapacityExceeded if the catalog is full.
// Returns ErrInvalidCredential for an empty password.
// Returns ErrResourceExhausted if an input exceeds MaxSize.
//
// opts.Password is zeroed before Encrypt returns.
func Encrypt(ctx context.Context, cat *catalog.Catalog, opts EncryptOptions) (*EncryptResult, error) {
	defer clear(opts.Password)

	if len(opts.Password) == 0 {
		return nil, kerrors.ErrInvalidCredential
	}
	if opts.Method == 0 {
		opts.Method = keystream.MethodXOR
	}
	if !opts.Method.Supported() {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrUnsupportedMethod, opts.Method)
	}
	if opts.Extension == "" {
		opts.Extension = ".ccrypt"
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	sources, err := pipeline.ResolveInputs(opts.FilePatterns, baseDir, opts.Extension)
	if err != nil {
		return nil, err
	}

	outputDir := opts.OutputDir
	if outputDir != "" && !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(baseDir, outputDir)
	}

	result := &EncryptResult{DryRun: opts.DryRun}
	taken := catalogArtifacts(cat)

	exists := func(path string) bool {
		return taken[path] || utils.FileExists(path)
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		artifact := utils.GenerateArtifactName(src, outputDir, opts.Extension, exists)
		taken[artifact] = true

		if opts.DryRun {
			result.Files = append(result.Files, EncryptedFile{Source: src, Artifact: artifact, Index: -1})
			continue
		}

		file, err := encryptOne(ctx, cat, src, artifact, opts)
		if err != nil {
			logEncrypt(result, opts.Method)
			return result, err
		}
		result.Files = append(result.Files, *file)
	}

	if !opts.DryRun {
		logEncrypt(result, opts.Method)
	}

	return result, nil
}

func encryptOne(ctx context.Context, cat *catalog.Catalog, src, artifact string, opts EncryptOptions) (*EncryptedFile, error) {
	if c := cat.Capacity(); c > 0 && cat.Len() >= c {
		return nil, fmt.Errorf("encrypting %s: %w", src, kerrors.ErrCapacityExceeded)
	}

	if dir := filepath.Dir(artifact); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	res, err := pipeline.EncryptFile(ctx, src, artifact, opts.Password, pipeline.FileOptions{
		SealOptions: pipeline.SealOptions{Compress: opts.Compress, Method: opts.Method},
		MaxSize:     opts.MaxSize,
	})
	if err != nil {
		return nil, err
	}

	rec := catalog.Record{
		OriginalName: filepath.Base(src),
		ArtifactName: artifact,
		OriginalSize: res.OriginalSize,
		ArtifactSize: res.PayloadSize,
		Method:       opts.Method,
		Compressed:   res.Compressed,
		Checksum:     res.Checksum,
		FileType:     catalog.FileTypeOf(src),
		CreatedAt:    time.Now().UTC(),
	}

	id, err := cat.Insert(rec)
	if err != nil {
		if rmErr := os.Remove(artifact); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (artifact %s left behind: %v)", err, artifact, rmErr)
		}
		return nil, err
	}

	return &EncryptedFile{
		Source:       src,
		Artifact:     artifact,
		Index:        cat.Len() - 1,
		SequenceID:   id,
		OriginalSize: res.OriginalSize,
		ArtifactSize: res.PayloadSize,
		Outcome:      res.Outcome,
		Compressed:   res.Compressed,
		Checksum:     res.Checksum,
	}, nil
}

func catalogArtifacts(cat *catalog.Catalog) map[string]bool {
	taken := make(map[string]bool, cat.Len())
	for _, rec := range cat.Records() {
		taken[rec.ArtifactName] = true
	}
	return taken
}

func logEncrypt(result *EncryptResult, method keystream.Method) {
	if len(result.Files) == 0 {
		return
	}
	entry := audit.LogWithUser("encrypt")
	entry.Method = method.String()
	for _, f := range result.Files {
		entry.Files = append(entry.Files, f.Source)
		entry.Artifacts = append(entry.Artifacts, f.Artifact)
	}
	audit.Log(entry)
}
