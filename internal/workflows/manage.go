package workflows

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ccrypt/ccrypt/internal/audit"
	"github.com/ccrypt/ccrypt/internal/catalog"
	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/ccrypt/ccrypt/internal/utils"
)

// RenameOptions configures the rename workflow.
type RenameOptions struct {
	Index int

	// NewName is the artifact's new file name. It stays in the artifact's
	// directory, so path separators are rejected.
	NewName string

	// FS performs the rename. Defaults to the OS filesystem.
	FS catalog.FileSystem
}

// RenameResult contains the outcome of a rename operation.
type RenameResult struct {
	OldPath string
	NewPath string
}

// Rename renames the artifact of the record at opts.Index on disk and then
// in the catalog. The catalog is untouched when the filesystem rename fails.
//
// Returns ErrInvalidName for an empty name or one containing a separator.
// Returns ErrRenameFailed if the target already exists or the rename fails.
func Rename(ctx context.Context, cat *catalog.Catalog, opts RenameOptions) (*RenameResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := cat.Get(opts.Index)
	if err != nil {
		return nil, err
	}
	if !utils.IsValidFileName(opts.NewName) {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidName, opts.NewName)
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = catalog.OSFileSystem{}
	}

	newPath := filepath.Join(filepath.Dir(rec.ArtifactName), opts.NewName)
	if newPath == rec.ArtifactName {
		return &RenameResult{OldPath: rec.ArtifactName, NewPath: newPath}, nil
	}
	if err := cat.Rename(opts.Index, newPath, fsys); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("rename")
	entry.Original = rec.OriginalName
	entry.Artifact = rec.ArtifactName
	entry.NewName = newPath
	entry.Sequence = int(rec.SequenceID)
	audit.Log(entry)

	return &RenameResult{OldPath: rec.ArtifactName, NewPath: newPath}, nil
}

// DeleteOptions configures the delete workflow.
type DeleteOptions struct {
	Index int

	// FS performs the removal. Defaults to the OS filesystem.
	FS catalog.FileSystem
}

// DeleteResult contains the outcome of a delete operation.
type DeleteResult struct {
	Record catalog.Record

	// AlreadyMissing reports that the artifact file was gone before the delete.
	AlreadyMissing bool
}

// Delete removes the artifact of the record at opts.Index and then the
// record. An artifact that is already missing is tolerated.
//
// Returns ErrDeleteFailed if the file exists but cannot be removed; the
// catalog is then unchanged.
func Delete(ctx context.Context, cat *catalog.Catalog, opts DeleteOptions) (*DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := cat.Get(opts.Index)
	if err != nil {
		return nil, err
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = catalog.OSFileSystem{}
	}

	result := &DeleteResult{Record: rec, AlreadyMissing: !fsys.Exists(rec.ArtifactName)}

	if err := cat.Delete(opts.Index, fsys); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("delete")
	entry.Original = rec.OriginalName
	entry.Artifact = rec.ArtifactName
	entry.Sequence = int(rec.SequenceID)
	if result.AlreadyMissing {
		entry.Warning = "artifact already missing"
	}
	audit.Log(entry)

	return result, nil
}

// VerifyOptions configures the verify workflow.
type VerifyOptions struct {
	Index int

	// File is compared against the record's checksum.
	File string
}

// VerifyResult contains the outcome of a verify operation.
type VerifyResult struct {
	Record   catalog.Record
	Expected string
	Actual   string
	Match    bool
}

// Verify recomputes the checksum of opts.File and compares it with the
// checksum stored for the record at opts.Index.
func Verify(ctx context.Context, cat *catalog.Catalog, opts VerifyOptions) (*VerifyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := cat.Get(opts.Index)
	if err != nil {
		return nil, err
	}

	sum, err := catalog.ChecksumOf(opts.File)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		Record:   rec,
		Expected: rec.Checksum,
		Actual:   sum,
		Match:    sum == rec.Checksum,
	}

	entry := audit.LogWithUser("verify")
	entry.Original = rec.OriginalName
	entry.Files = []string{opts.File}
	entry.Sequence = int(rec.SequenceID)
	entry.Verified = &result.Match
	audit.Log(entry)

	return result, nil
}
