// Package container frames an enciphered payload with a fixed 9-byte header.
//
//	offset 0..4   magic "CCRY"
//	offset 4      flags: bit 0 compressed, bit 1 LCG keystream
//	offset 5..9   seed, uint32 little-endian (0 for the XOR keystream)
//	offset 9..    payload
package container

import (
	"encoding/binary"
	"fmt"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/ccrypt/ccrypt/internal/keystream"
)

// Magic identifies a ccrypt container.
const Magic = "CCRY"

// HeaderSize is the number of bytes before the payload.
const HeaderSize = 9

// Flag bits stored at offset 4.
const (
	FlagCompressed byte = 1 << 0
	FlagLCG        byte = 1 << 1

	knownFlags = FlagCompressed | FlagLCG
)

// Header is the decoded container header.
type Header struct {
	Flags byte
	Seed  uint32
}

// Compressed reports whether the payload was run-length encoded before encryption.
func (h Header) Compressed() bool {
	return h.Flags&FlagCompressed != 0
}

// Method returns the keystream that produced the payload.
func (h Header) Method() keystream.Method {
	if h.Flags&FlagLCG != 0 {
		return keystream.MethodLCG
	}
	return keystream.MethodXOR
}

// NewHeader builds the header for a payload enciphered with method.
func NewHeader(method keystream.Method, compressed bool, seed uint32) (Header, error) {
	var h Header
	switch method {
	case keystream.MethodXOR:
		// The XOR keystream never stores a seed.
		seed = 0
	case keystream.MethodLCG:
		h.Flags |= FlagLCG
	default:
		return Header{}, fmt.Errorf("%s: %w", method, kerrors.ErrUnsupportedMethod)
	}
	if compressed {
		h.Flags |= FlagCompressed
	}
	h.Seed = seed
	return h, nil
}

// Encode returns header followed by payload in a new buffer.
func Encode(h Header, payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	copy(out, Magic)
	out[4] = h.Flags
	binary.LittleEndian.PutUint32(out[5:HeaderSize], h.Seed)
	copy(out[HeaderSize:], payload)
	return out
}

// Decode splits data into its header and payload. The payload aliases data.
func Decode(data []byte) (Header, []byte, error) {
	if len(data) < HeaderSize {
		return Header{}, nil, fmt.Errorf("container is %d bytes, header needs %d: %w",
			len(data), HeaderSize, kerrors.ErrMalformedContainer)
	}
	if string(data[:4]) != Magic {
		return Header{}, nil, fmt.Errorf("bad magic %q: %w", data[:4], kerrors.ErrMalformedContainer)
	}

	h := Header{
		Flags: data[4],
		Seed:  binary.LittleEndian.Uint32(data[5:HeaderSize]),
	}
	if h.Flags&^knownFlags != 0 {
		return Header{}, nil, fmt.Errorf("unknown flags %#02x: %w", h.Flags, kerrors.ErrMalformedContainer)
	}
	return h, data[HeaderSize:], nil
}
