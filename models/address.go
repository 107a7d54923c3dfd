package models

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// MultiAddress discriminants, as used by the runtime's sp_runtime::MultiAddress
const (
	MultiAddressIDIndex        byte = 0
	MultiAddressIndexIndex     byte = 1
	MultiAddressRawIndex       byte = 2
	MultiAddressAddress32Index byte = 3
	MultiAddressAddress20Index byte = 4
)

// MultiAddress is the signer field of an extrinsic. Exactly one Is* flag is set.
type MultiAddress struct {
	IsID        bool
	AsID        types.AccountID
	IsIndex     bool
	AsIndex     uint32
	IsRaw       bool
	AsRaw       []byte
	IsAddress32 bool
	AsAddress32 [32]byte
	IsAddress20 bool
	AsAddress20 [20]byte
}

// NewMultiAddressFromAccountID creates an Id address from a public key or account id
func NewMultiAddressFromAccountID(b []byte) MultiAddress {
	return MultiAddress{
		IsID: true,
		AsID: types.NewAccountID(b),
	}
}

// NewMultiAddressFromHexAccountID creates an Id address from a 0x-prefixed hex account id
func NewMultiAddressFromHexAccountID(str string) (MultiAddress, error) {
	b, err := types.HexDecodeString(str)
	if err != nil {
		return MultiAddress{}, err
	}
	if len(b) != 32 {
		return MultiAddress{}, fmt.Errorf("account id must be 32 bytes, got %d", len(b))
	}
	return NewMultiAddressFromAccountID(b), nil
}

func (m MultiAddress) Encode(encoder scale.Encoder) (err error) {
	switch {
	case m.IsID:
		err = encoder.PushByte(MultiAddressIDIndex)
		if err != nil {
			return
		}
		err = encoder.Write(m.AsID[:])
	case m.IsIndex:
		err = encoder.PushByte(MultiAddressIndexIndex)
		if err != nil {
			return
		}
		err = encodeU32Compact(encoder, m.AsIndex)
	case m.IsRaw:
		err = encoder.PushByte(MultiAddressRawIndex)
		if err != nil {
			return
		}
		err = encoder.Encode(m.AsRaw)
	case m.IsAddress32:
		err = encoder.PushByte(MultiAddressAddress32Index)
		if err != nil {
			return
		}
		err = encoder.Write(m.AsAddress32[:])
	case m.IsAddress20:
		err = encoder.PushByte(MultiAddressAddress20Index)
		if err != nil {
			return
		}
		err = encoder.Write(m.AsAddress20[:])
	default:
		err = fmt.Errorf("empty MultiAddress")
	}
	return
}

func (m *MultiAddress) Decode(decoder scale.Decoder) (err error) {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return
	}
	switch b {
	case MultiAddressIDIndex:
		m.IsID = true
		err = decoder.Read(m.AsID[:])
	case MultiAddressIndexIndex:
		m.IsIndex = true
		m.AsIndex, err = decodeU32Compact(decoder)
	case MultiAddressRawIndex:
		m.IsRaw = true
		err = decoder.Decode(&m.AsRaw)
	case MultiAddressAddress32Index:
		m.IsAddress32 = true
		err = decoder.Read(m.AsAddress32[:])
	case MultiAddressAddress20Index:
		m.IsAddress20 = true
		err = decoder.Read(m.AsAddress20[:])
	default:
		return fmt.Errorf("unknown MultiAddress enum: %v", b)
	}
	return
}
