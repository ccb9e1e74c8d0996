package keystream

import (
	"fmt"
	"strings"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
)

// Method identifies how a payload was enciphered.
type Method uint8

const (
	// MethodXOR repeats the password bytes as the keystream.
	MethodXOR Method = 1
	// MethodLCG uses a generator seeded from the password hash stored in the header.
	MethodLCG Method = 2
	// MethodAES is reserved. It is never implemented and always rejected.
	MethodAES Method = 3
)

var methodNames = map[Method]string{
	MethodXOR: "xor",
	MethodLCG: "lcg",
	MethodAES: "aes",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// Supported reports whether data can be enciphered with m.
func (m Method) Supported() bool {
	return m == MethodXOR || m == MethodLCG
}

// ParseMethod parses a method name such as "xor". It accepts declared but
// unsupported names; callers check Supported before use.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, kerrors.ErrUnsupportedMethod)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	name, ok := methodNames[m]
	if !ok {
		return nil, fmt.Errorf("%s: %w", m, kerrors.ErrUnsupportedMethod)
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
