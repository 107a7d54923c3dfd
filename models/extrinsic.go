package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// Extrinsic is a v4 transaction as it goes over the wire
type Extrinsic struct {
	// Version is the encoded version flag (which encodes the raw transaction version and signing information in one byte)
	Version byte
	// Signature is the ExtrinsicSignature, it's presence depends on the Version flag
	Signature ExtrinsicSignature
	// Method is the call this extrinsic wraps
	Method Call
}

// NewExtrinsic creates a new unsigned Extrinsic from the provided Call
func NewExtrinsic(c Call) Extrinsic {
	return Extrinsic{
		Version: types.ExtrinsicVersion4,
		Method:  c,
	}
}

// NewSignedExtrinsic wraps a call with the signer, its signature and the extra that was signed over
func NewSignedExtrinsic(c Call, signer MultiAddress, sig types.MultiSignature, extra Extra) Extrinsic {
	return Extrinsic{
		Version: types.ExtrinsicVersion4 | types.ExtrinsicBitSigned,
		Signature: ExtrinsicSignature{
			Signer:    signer,
			Signature: sig,
			Extra:     extra,
		},
		Method: c,
	}
}

// UnmarshalJSON fills Extrinsic with the JSON encoded byte array given by bz
func (e *Extrinsic) UnmarshalJSON(bz []byte) error {
	var tmp string
	if err := json.Unmarshal(bz, &tmp); err != nil {
		return err
	}

	dec, err := types.HexDecodeString(tmp)
	if err != nil {
		return err
	}
	return e.UnmarshalBinary(dec)
}

// MarshalJSON returns a JSON encoded byte array of Extrinsic
func (e Extrinsic) MarshalJSON() ([]byte, error) {
	s, err := e.Hex()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalBinary decodes length-prefixed wire bytes
func (e *Extrinsic) UnmarshalBinary(bz []byte) error {
	return types.DecodeFromBytes(bz, e)
}

// Bytes returns the length-prefixed wire bytes
func (e Extrinsic) Bytes() ([]byte, error) {
	return types.EncodeToBytes(e)
}

// Hex returns the wire bytes as 0x-prefixed hex, the form author_submitExtrinsic takes
func (e Extrinsic) Hex() (string, error) {
	b, err := e.Bytes()
	if err != nil {
		return "", err
	}
	return types.HexEncodeToString(b), nil
}

// IsSigned returns true if the extrinsic is signed
func (e Extrinsic) IsSigned() bool {
	return e.Version&types.ExtrinsicBitSigned == types.ExtrinsicBitSigned
}

// Type returns the raw transaction version (not flagged with signing information)
func (e Extrinsic) Type() uint8 {
	return e.Version & types.ExtrinsicUnmaskVersion
}

func (e *Extrinsic) Decode(decoder scale.Decoder) error {
	l, err := decoder.DecodeUintCompact()
	if err != nil {
		return err
	}
	if !l.IsUint64() {
		return fmt.Errorf("extrinsic length %v out of range", l)
	}
	n, err := lengthPrefix(l.Uint64())
	if err != nil {
		return err
	}

	body, err := readBody(decoder, n.Uint64())
	if err != nil {
		return err
	}

	r := bytes.NewReader(body)
	inner := scale.NewDecoder(r)

	// version, signature bitmask (1 byte)
	err = inner.Decode(&e.Version)
	if err != nil {
		return err
	}

	if e.Type() != types.ExtrinsicVersion4 {
		return fmt.Errorf("unsupported extrinsic version: %v (isSigned: %v, type: %v)", e.Version, e.IsSigned(),
			e.Type())
	}

	if e.IsSigned() {
		err = inner.Decode(&e.Signature)
		if err != nil {
			return err
		}
	}

	// whatever is left is the call
	e.Method = make(Call, r.Len())
	if len(e.Method) > 0 {
		err = inner.Read(e.Method)
	}
	return err
}

const bodyChunk = 4096

// readBody reads n bytes in chunks, so a length prefix larger than the input
// fails once the input runs out instead of allocating n bytes up front
func readBody(decoder scale.Decoder, n uint64) ([]byte, error) {
	capacity := n
	if capacity > bodyChunk {
		capacity = bodyChunk
	}
	body := make([]byte, 0, capacity)
	buf := make([]byte, bodyChunk)

	for uint64(len(body)) < n {
		k := n - uint64(len(body))
		if k > bodyChunk {
			k = bodyChunk
		}
		if err := decoder.Read(buf[:k]); err != nil {
			return nil, fmt.Errorf("extrinsic body of %d bytes truncated at %d: %w", n, len(body), err)
		}
		body = append(body, buf[:k]...)
	}
	return body, nil
}

func (e Extrinsic) Encode(encoder scale.Encoder) error {
	if e.Type() != types.ExtrinsicVersion4 {
		return fmt.Errorf("unsupported extrinsic version: %v (isSigned: %v, type: %v)", e.Version, e.IsSigned(),
			e.Type())
	}

	// create a temporary buffer that will receive the plain encoded transaction (version, signature (optional),
	// method/call)
	var bb = bytes.Buffer{}
	tempEnc := scale.NewEncoder(&bb)

	err := tempEnc.Encode(e.Version)
	if err != nil {
		return err
	}

	if e.IsSigned() {
		err = tempEnc.Encode(e.Signature)
		if err != nil {
			return err
		}
	}

	err = tempEnc.Encode(e.Method)
	if err != nil {
		return err
	}

	// take the temporary buffer to determine length, write that as prefix
	eb := bb.Bytes()
	l, err := lengthPrefix(uint64(len(eb)))
	if err != nil {
		return err
	}
	err = encoder.EncodeUintCompact(l)
	if err != nil {
		return err
	}

	return encoder.Write(eb)
}

// OpaqueExtrinsic is an extrinsic kept in its wire form, as found in blocks
type OpaqueExtrinsic []byte

func (o *OpaqueExtrinsic) UnmarshalJSON(bz []byte) error {
	var tmp string
	if err := json.Unmarshal(bz, &tmp); err != nil {
		return err
	}
	if !strings.HasPrefix(tmp, "0x") {
		return fmt.Errorf("extrinsic %q is not 0x-prefixed hex", tmp)
	}
	dec, err := types.HexDecodeString(tmp)
	if err != nil {
		return err
	}
	*o = dec
	return nil
}

func (o OpaqueExtrinsic) MarshalJSON() ([]byte, error) {
	return json.Marshal(types.HexEncodeToString(o))
}
