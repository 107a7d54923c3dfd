package models

import (
	"bytes"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := types.HexDecodeString(s)
	require.NoError(t, err)

	return b
}

func repeatHash(b byte) types.Hash {
	return types.NewHash(bytes.Repeat([]byte{b}, 32))
}

// fixturePayload is call 0xab, nonce 3, period 16 at height 1000, no tip, app id 0,
// spec version 5, transaction version 2
func fixturePayload() *UnsignedPayload {
	return NewUnsignedPayload(
		Call{0xab},
		Extra{
			Era:   NewMortal(16, 1000).Era(),
			Nonce: 3,
		},
		Additional{
			SpecVersion:        5,
			TransactionVersion: 2,
			GenesisHash:        repeatHash(0x22),
			ForkHash:           repeatHash(0x11),
		},
	)
}

const fixturePayloadHex = "0xab" +
	"8300" + // era: period 16, phase 8
	"0c" + // nonce 3
	"00" + // tip 0
	"00" + // app id 0
	"05000000" + // spec version
	"02000000" + // transaction version
	"2222222222222222222222222222222222222222222222222222222222222222" +
	"1111111111111111111111111111111111111111111111111111111111111111"
