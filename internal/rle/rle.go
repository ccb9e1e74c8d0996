// Package rle implements the byte-oriented run-length codec used before
// encryption.
//
// The stream is a sequence of (count, value) pairs. A count byte of 0 stands
// for a run of 256, so every pair encodes between 1 and 256 bytes.
package rle

import (
	"bytes"
	"fmt"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
)

// maxRun is the longest run a single pair can carry.
const maxRun = 256

// Outcome reports whether Compress kept the encoded form.
type Outcome int

const (
	// Compressed means the encoded output is strictly smaller than the input.
	Compressed Outcome = iota
	// NoBenefit means encoding would not shrink the input; the raw bytes are returned.
	NoBenefit
)

func (o Outcome) String() string {
	switch o {
	case Compressed:
		return "compressed"
	case NoBenefit:
		return "no benefit"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Encode run-length encodes in. The output is always two bytes per run, so it
// may be larger than the input. Empty input encodes to empty output.
func Encode(in []byte) []byte {
	if len(in) == 0 {
		return []byte{}
	}

	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); {
		v := in[i]
		run := 1
		for i+run < len(in) && in[i+run] == v && run < maxRun {
			run++
		}
		// run == 256 wraps to 0.
		out = append(out, byte(run), v)
		i += run
	}
	return out
}

// Compress encodes in and keeps the result only if it is strictly smaller.
// With NoBenefit the returned slice is in itself.
func Compress(in []byte) ([]byte, Outcome) {
	encoded := Encode(in)
	if len(encoded) >= len(in) {
		return in, NoBenefit
	}
	return encoded, Compressed
}

// Decode reverses Encode. An odd-length stream is rejected with
// ErrMalformedContainer rather than truncated.
func Decode(in []byte) ([]byte, error) {
	return DecodeLimit(in, 0)
}

// DecodeLimit is Decode with a bound on the decoded size. The run lengths are
// summed before anything is allocated, and a total above max fails with
// ErrResourceExhausted. max of 0 means no limit.
func DecodeLimit(in []byte, max int64) ([]byte, error) {
	if len(in)%2 != 0 {
		return nil, fmt.Errorf("run-length stream has odd length %d: %w", len(in), kerrors.ErrMalformedContainer)
	}

	size := DecodedSize(in)
	if max > 0 && size > max {
		return nil, fmt.Errorf("run-length stream decodes to %d bytes, limit is %d: %w",
			size, max, kerrors.ErrResourceExhausted)
	}

	out := make([]byte, 0, size)
	for i := 0; i+1 < len(in); i += 2 {
		out = append(out, bytes.Repeat([]byte{in[i+1]}, runLength(in[i]))...)
	}
	return out, nil
}

// DecodedSize returns the number of bytes in decodes to. A trailing unpaired
// byte is ignored.
func DecodedSize(in []byte) int64 {
	var size int64
	for i := 0; i+1 < len(in); i += 2 {
		size += int64(runLength(in[i]))
	}
	return size
}

func runLength(count byte) int {
	if count == 0 {
		return maxRun
	}
	return int(count)
}
