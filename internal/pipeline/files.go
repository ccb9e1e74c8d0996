package pipeline

import (
	"context"
	"fmt"

	"github.com/ccrypt/ccrypt/internal/catalog"
	"github.com/ccrypt/ccrypt/internal/rle"
)

// artifactPerm is the mode of written containers.
const artifactPerm = 0600

// plaintextPerm is the mode of decrypted files.
// #nosec G306 -- decrypted files are meant to be edited by the user.
const plaintextPerm = 0644

// FileOptions configures EncryptFile.
type FileOptions struct {
	SealOptions

	// MaxSize rejects inputs larger than this many bytes with
	// ErrResourceExhausted. 0 means no limit.
	MaxSize int64
}

// EncryptResult describes a committed artifact.
type EncryptResult struct {
	// Source and Artifact are the input and output paths.
	Source   string
	Artifact string

	// OriginalSize is the plaintext size in bytes.
	OriginalSize int64

	// PayloadSize is the stored payload size in bytes, after compression.
	PayloadSize int64

	// Compressed reports whether compression was kept.
	Compressed bool

	// Outcome is the compression outcome.
	Outcome rle.Outcome

	// Checksum is the checksum of the plaintext that was sealed.
	Checksum string
}

// DecryptResult describes a committed plaintext file.
type DecryptResult struct {
	Container string
	Output    string

	// Size is the number of plaintext bytes written.
	Size int64

	// Compressed reports whether the container payload was decompressed.
	Compressed bool

	// SeedMismatch is set when the password does not match the stored seed.
	SeedMismatch bool

	// Checksum is the checksum of the plaintext that was written.
	Checksum string
}

// EncryptFile seals src with password and writes the container to dst.
func EncryptFile(ctx context.Context, src, dst string, password []byte, opts FileOptions) (*EncryptResult, error) {
	plaintext, err := readFile(src, opts.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sealed, err := Seal(plaintext, password, opts.SealOptions)
	if err != nil {
		return nil, fmt.Errorf("encrypting %s: %w", src, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := writeFileAtomic(dst, sealed.Container, artifactPerm); err != nil {
		return nil, fmt.Errorf("writing %s: %w", dst, err)
	}

	return &EncryptResult{
		Source:       src,
		Artifact:     dst,
		OriginalSize: int64(len(plaintext)),
		PayloadSize:  sealed.PayloadSize,
		Compressed:   sealed.Compressed,
		Outcome:      sealed.Outcome,
		Checksum:     catalog.Checksum(plaintext),
	}, nil
}

// DecryptFile opens the container at src with password and writes the
// plaintext to dst. maxSize bounds both the container and the decoded
// plaintext; 0 means no limit.
func DecryptFile(ctx context.Context, src, dst string, password []byte, maxSize int64) (*DecryptResult, error) {
	data, err := readFile(src, maxSize)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opened, err := Open(data, password, maxSize)
	if err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", src, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := writeFileAtomic(dst, opened.Plaintext, plaintextPerm); err != nil {
		return nil, fmt.Errorf("writing %s: %w", dst, err)
	}

	return &DecryptResult{
		Container:    src,
		Output:       dst,
		Size:         int64(len(opened.Plaintext)),
		Compressed:   opened.Header.Compressed(),
		SeedMismatch: opened.SeedMismatch,
		Checksum:     catalog.Checksum(opened.Plaintext),
	}, nil
}
