package rle

import (
	"bytes"
	"math/rand"
	"testing"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Runs(t *testing.T) {
	assert.Equal(t, []byte{5, 'A'}, Encode([]byte("AAAAA")))
	assert.Equal(t, []byte{2, 'a', 1, 'b', 3, 'c'}, Encode([]byte("aabccc")))
	assert.Empty(t, Encode(nil))
}

func TestEncode_RunOf256UsesZeroCount(t *testing.T) {
	in := bytes.Repeat([]byte{'x'}, 256)
	assert.Equal(t, []byte{0, 'x'}, Encode(in))

	in = bytes.Repeat([]byte{'x'}, 257)
	assert.Equal(t, []byte{0, 'x', 1, 'x'}, Encode(in))
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	random := make([]byte, 4096)
	rng.Read(random)

	cases := map[string][]byte{
		"empty":       {},
		"single byte": {0x42},
		"all same":    bytes.Repeat([]byte{0}, 1000),
		"long run":    bytes.Repeat([]byte{0xff}, 256*3+17),
		"mixed":       []byte("aaaabbbcdddddddddde"),
		"random":      random,
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := Decode(Encode(in))
			require.NoError(t, err)
			assert.Equal(t, len(in), len(out))
			assert.True(t, bytes.Equal(in, out))
		})
	}
}

func TestCompress_NoBenefit(t *testing.T) {
	in := []byte("abcdef")
	out, outcome := Compress(in)
	assert.Equal(t, NoBenefit, outcome)
	assert.Equal(t, in, out)

	out, outcome = Compress(nil)
	assert.Equal(t, NoBenefit, outcome)
	assert.Empty(t, out)
}

func TestCompress_KeepsOnlySmallerOutput(t *testing.T) {
	out, outcome := Compress([]byte("AAAAA"))
	assert.Equal(t, Compressed, outcome)
	assert.Equal(t, []byte{5, 'A'}, out)

	// "AAB" encodes to four bytes, more than the three it replaces.
	_, outcome = Compress([]byte("AAB"))
	assert.Equal(t, NoBenefit, outcome)

	// "AAAB" encodes to exactly four bytes, which is not a gain either.
	_, outcome = Compress([]byte("AAAB"))
	assert.Equal(t, NoBenefit, outcome)
}

func TestDecode_OddLength(t *testing.T) {
	_, err := Decode([]byte{3, 'a', 7})
	require.Error(t, err)
	assert.ErrorIs(t, err, kerrors.ErrMalformedContainer)
}

func TestDecode_ZeroCountMeans256(t *testing.T) {
	out, err := Decode([]byte{0, 'z'})
	require.NoError(t, err)
	assert.Len(t, out, 256)
}

func TestDecodeLimit(t *testing.T) {
	// 400 pairs of (0, 'Z') decode to 102400 bytes.
	stream := bytes.Repeat([]byte{0, 'Z'}, 400)
	assert.Equal(t, int64(400*256), DecodedSize(stream))

	_, err := DecodeLimit(stream, 1000)
	require.Error(t, err)
	assert.ErrorIs(t, err, kerrors.ErrResourceExhausted)

	out, err := DecodeLimit(stream, 400*256)
	require.NoError(t, err)
	assert.Len(t, out, 400*256)

	out, err = DecodeLimit([]byte{3, 'a', 2, 'b'}, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("aaabb"), out)
}
