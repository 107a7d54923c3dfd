package models

import (
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"golang.org/x/crypto/blake2b"
)

// Call is an already encoded runtime call. It is carried as is and never inspected.
type Call []byte

// NewCallFromHex decodes a 0x-prefixed (or bare) hex call
func NewCallFromHex(str string) (Call, error) {
	if !strings.HasPrefix(str, "0x") {
		str = "0x" + str
	}
	b, err := types.HexDecodeString(str)
	if err != nil {
		return nil, err
	}
	return Call(b), nil
}

func (c Call) Hex() string {
	return types.HexEncodeToString(c)
}

// Encode writes the call bytes without a length prefix
func (c Call) Encode(encoder scale.Encoder) error {
	return encoder.Write(c)
}

// payloads longer than this are hashed before signing
const maxUnhashedPayloadLength = 256

// UnsignedPayload is what gets signed: call, extra and additional, in that order
type UnsignedPayload struct {
	Call       Call
	Extra      Extra
	Additional Additional
}

func NewUnsignedPayload(call Call, extra Extra, additional Additional) *UnsignedPayload {
	return &UnsignedPayload{
		Call:       call,
		Extra:      extra,
		Additional: additional,
	}
}

func (p UnsignedPayload) Encode(encoder scale.Encoder) (err error) {
	err = encoder.Encode(p.Call)
	if err != nil {
		return
	}
	err = encoder.Encode(p.Extra)
	if err != nil {
		return
	}
	err = encoder.Encode(p.Additional)
	return
}

// Bytes returns the canonical encoding of the payload
func (p UnsignedPayload) Bytes() ([]byte, error) {
	return types.EncodeToBytes(p)
}

// SigningBytes returns the message handed to the signer: the encoded payload,
// or its blake2b-256 hash once it is longer than 256 bytes.
func (p UnsignedPayload) SigningBytes() ([]byte, error) {
	b, err := p.Bytes()
	if err != nil {
		return nil, err
	}
	if len(b) > maxUnhashedPayloadLength {
		h := blake2b.Sum256(b)
		return h[:], nil
	}
	return b, nil
}
