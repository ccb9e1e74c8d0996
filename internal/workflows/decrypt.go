package workflows

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ccrypt/ccrypt/internal/audit"
	"github.com/ccrypt/ccrypt/internal/catalog"
	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/ccrypt/ccrypt/internal/pipeline"
	"github.com/ccrypt/ccrypt/internal/utils"
)

// DecryptOptions configures the decrypt workflow. Exactly one of Index
// (when ByIndex is set) or Path selects the container.
type DecryptOptions struct {
	// ByIndex selects the catalog record at Index.
	ByIndex bool
	Index   int

	// Path selects a container on disk that may not be catalogued.
	Path string

	// Output overrides the plaintext destination. Defaults to the
	// container path with "_dec" appended.
	Output string

	Password []byte

	// MaxSize rejects larger containers and larger decoded plaintext.
	// 0 means no limit.
	MaxSize int64
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	Container string
	Output    string
	Size      int64

	// Record is the catalog entry when decrypting by index.
	Record *catalog.Record

	// SeedMismatch is set when the password does not match the stored seed.
	SeedMismatch bool

	// ChecksumChecked reports whether the plaintext was compared with the
	// record checksum; ChecksumMatch holds the result.
	ChecksumChecked bool
	ChecksumMatch   bool
}

// Warning describes why the plaintext is likely wrong, or "" when nothing
// suggests a wrong password.
func (r *DecryptResult) Warning() string {
	switch {
	case r.SeedMismatch:
		return "password does not match the stored seed"
	case r.ChecksumChecked && !r.ChecksumMatch:
		return "checksum mismatch"
	default:
		return ""
	}
}

// Decrypt opens a container and writes its plaintext.
//
// A wrong password never fails the workflow on its own: the result carries
// SeedMismatch or ChecksumMatch=false instead. The container itself may
// still fail to decode with ErrMalformedContainer.
//
// Returns ErrInvalidIndex if ByIndex is set and Index is out of range.
// Returns ErrNotFound if the container does not exist.
// Returns ErrResourceExhausted if the container or its decoded plaintext
// exceeds MaxSize.
//
// opts.Password is zeroed before Decrypt returns.
func Decrypt(ctx context.Context, cat *catalog.Catalog, opts DecryptOptions) (*DecryptResult, error) {
	defer clear(opts.Password)

	if len(opts.Password) == 0 {
		return nil, kerrors.ErrInvalidCredential
	}

	result := &DecryptResult{}
	src := opts.Path

	if opts.ByIndex {
		rec, err := cat.Get(opts.Index)
		if err != nil {
			return nil, err
		}
		result.Record = &rec
		src = rec.ArtifactName
	}
	if src == "" {
		return nil, fmt.Errorf("no container given: %w", kerrors.ErrNotFound)
	}

	dst := opts.Output
	if dst == "" {
		dst = utils.DecryptedName(src)
	}

	res, err := pipeline.DecryptFile(ctx, src, dst, opts.Password, opts.MaxSize)
	if err != nil {
		return nil, err
	}

	result.Container = res.Container
	result.Output = res.Output
	result.Size = res.Size
	result.SeedMismatch = res.SeedMismatch

	if result.Record != nil && result.Record.Checksum != "" {
		result.ChecksumChecked = true
		result.ChecksumMatch = res.Checksum == result.Record.Checksum
	}

	entry := audit.LogWithUser("decrypt")
	entry.Artifact = src
	entry.Files = []string{dst}
	if result.Record != nil {
		entry.Original = result.Record.OriginalName
		entry.Sequence = int(result.Record.SequenceID)
	} else {
		entry.Original = filepath.Base(src)
	}
	entry.Warning = result.Warning()
	audit.Log(entry)

	return result, nil
}
