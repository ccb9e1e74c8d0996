package pipeline

import (
	"fmt"

	"github.com/ccrypt/ccrypt/internal/container"
	"github.com/ccrypt/ccrypt/internal/keystream"
	"github.com/ccrypt/ccrypt/internal/rle"
)

// SealOptions configures Seal.
type SealOptions struct {
	// Compress requests run-length compression. It is only kept when it
	// makes the payload strictly smaller.
	Compress bool

	// Method selects the keystream. The zero value means keystream.MethodXOR.
	Method keystream.Method
}

// Sealed is the result of Seal.
type Sealed struct {
	// Container holds the header followed by the enciphered payload.
	Container []byte

	// Header is the header written at the start of Container.
	Header container.Header

	// PayloadSize is the size of the stored payload, after compression.
	PayloadSize int64

	// Compressed reports whether compression was kept.
	Compressed bool

	// Outcome is the compression outcome when compression was requested.
	Outcome rle.Outcome
}

// Opened is the result of Open.
type Opened struct {
	// Plaintext is the recovered data.
	Plaintext []byte

	// Header is the container header that was read.
	Header container.Header

	// SeedMismatch is set when an LCG container was opened with a password
	// whose seed differs from the stored one. Deciphering still uses the
	// stored seed.
	SeedMismatch bool
}

// Seal compresses (optionally) and enciphers plaintext with password.
func Seal(plaintext, password []byte, opts SealOptions) (*Sealed, error) {
	method := opts.Method
	if method == 0 {
		method = keystream.MethodXOR
	}
	if !method.Supported() {
		return nil, fmt.Errorf("sealing: %w", unsupported(method))
	}

	payload := plaintext
	result := &Sealed{Outcome: rle.NoBenefit}
	if opts.Compress {
		payload, result.Outcome = rle.Compress(plaintext)
		result.Compressed = result.Outcome == rle.Compressed
	}

	var seed uint32
	if method == keystream.MethodLCG {
		seed = keystream.DeriveSeed(password)
	}

	ciphertext, err := keystream.Apply(method, payload, password, seed)
	if err != nil {
		return nil, fmt.Errorf("enciphering payload: %w", err)
	}

	header, err := container.NewHeader(method, result.Compressed, seed)
	if err != nil {
		return nil, fmt.Errorf("building header: %w", err)
	}

	result.Header = header
	result.Container = container.Encode(header, ciphertext)
	result.PayloadSize = int64(len(ciphertext))
	return result, nil
}

// Open parses a container and recovers the plaintext. A compressed payload
// that would decode to more than maxSize bytes fails with
// ErrResourceExhausted before it is expanded. maxSize of 0 means no limit.
func Open(data, password []byte, maxSize int64) (*Opened, error) {
	header, payload, err := container.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	result := &Opened{Header: header}
	method := header.Method()
	if method == keystream.MethodLCG && keystream.DeriveSeed(password) != header.Seed {
		result.SeedMismatch = true
	}

	plain, err := keystream.Apply(method, payload, password, header.Seed)
	if err != nil {
		return nil, fmt.Errorf("deciphering payload: %w", err)
	}

	if header.Compressed() {
		plain, err = rle.DecodeLimit(plain, maxSize)
		if err != nil {
			return nil, fmt.Errorf("decompressing payload: %w", err)
		}
	}

	result.Plaintext = plain
	return result, nil
}
