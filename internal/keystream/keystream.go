// Package keystream provides the password-derived byte streams that are
// XORed with the payload.
//
// None of this is cryptographically secure. It exists to obfuscate files and
// to stay byte-compatible with containers written by earlier releases.
package keystream

import (
	"fmt"
	"hash/fnv"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
)

// LCG constants from Numerical Recipes.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// DeriveSeed folds a password into a 32-bit FNV-1a hash.
func DeriveSeed(password []byte) uint32 {
	h := fnv.New32a()
	_, _ = h.Write(password)
	return h.Sum32()
}

// XOR combines data with the password repeated cyclically. Applying it twice
// with the same password returns the original data.
func XOR(data, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, kerrors.ErrInvalidCredential
	}

	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ password[i%len(password)]
	}
	return out, nil
}

// Stream combines data with a linear congruential generator seeded with seed.
// Each keystream byte is bits 16..23 of the updated generator state.
func Stream(data []byte, seed uint32) []byte {
	out := make([]byte, len(data))
	state := seed
	for i, b := range data {
		state = state*lcgMultiplier + lcgIncrement
		out[i] = b ^ byte(state>>16)
	}
	return out
}

// Apply runs the keystream for method over data. The seed is only used by
// MethodLCG; MethodXOR uses the password bytes directly.
func Apply(method Method, data, password []byte, seed uint32) ([]byte, error) {
	switch method {
	case MethodXOR:
		return XOR(data, password)
	case MethodLCG:
		if len(password) == 0 {
			return nil, kerrors.ErrInvalidCredential
		}
		return Stream(data, seed), nil
	default:
		return nil, fmt.Errorf("%s: %w", method, kerrors.ErrUnsupportedMethod)
	}
}
