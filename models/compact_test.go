package models

import (
	"math"
	"math/big"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCompact(t *testing.T) {
	cases := []struct {
		value    uint64
		expected string
	}{
		{0, "0x00"},
		{1, "0x04"},
		{63, "0xfc"},
		{64, "0x0101"},
		{16383, "0xfdff"},
		{16384, "0x02000100"},
		{1<<30 - 1, "0xfeffffff"},
		{1 << 30, "0x0300000040"},
	}

	for _, c := range cases {
		b, err := EncodeCompact(c.value)
		require.NoError(t, err)
		assert.Equal(t, c.expected, types.HexEncodeToString(b), "value %d", c.value)
	}
}

func TestEncodeCompactBig_Negative(t *testing.T) {
	_, err := EncodeCompactBig(big.NewInt(-1))
	assert.Error(t, err)
}

func TestDecodeCompact_Rest(t *testing.T) {
	v, rest, err := DecodeCompact([]byte{0x01, 0x01, 0xaa, 0xbb})
	require.NoError(t, err)

	assert.Equal(t, uint64(64), v.Uint64())
	assert.Equal(t, []byte{0xaa, 0xbb}, rest)
}

func TestLengthPrefix_Overflow(t *testing.T) {
	_, err := lengthPrefix(math.MaxUint32)
	assert.NoError(t, err)

	_, err = lengthPrefix(math.MaxUint32 + 1)
	assert.ErrorIs(t, err, ErrEncodingOverflow)
}
