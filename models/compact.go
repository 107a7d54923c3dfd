package models

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
)

// ErrEncodingOverflow is returned when an extrinsic body is longer than the
// compact length prefix may describe.
var ErrEncodingOverflow = errors.New("extrinsic size expected to be <4GB")

// EncodeCompact returns the SCALE compact encoding of v
func EncodeCompact(v uint64) ([]byte, error) {
	return EncodeCompactBig(new(big.Int).SetUint64(v))
}

// EncodeCompactBig returns the SCALE compact encoding of an unsigned big integer
func EncodeCompactBig(v *big.Int) ([]byte, error) {
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("cannot compact encode negative value %v", v)
	}

	var bb = bytes.Buffer{}
	err := scale.NewEncoder(&bb).EncodeUintCompact(*v)
	if err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

// DecodeCompact reads a compact integer from the front of bz and returns it
// together with the bytes that follow it.
func DecodeCompact(bz []byte) (*big.Int, []byte, error) {
	r := bytes.NewReader(bz)
	v, err := scale.NewDecoder(r).DecodeUintCompact()
	if err != nil {
		return nil, nil, err
	}
	return v, bz[len(bz)-r.Len():], nil
}

// lengthPrefix checks that n fits the u32 length of an extrinsic
func lengthPrefix(n uint64) (big.Int, error) {
	if n > math.MaxUint32 {
		return big.Int{}, fmt.Errorf("%w: %d bytes", ErrEncodingOverflow, n)
	}
	return *new(big.Int).SetUint64(n), nil
}

func encodeU32Compact(encoder scale.Encoder, v uint32) error {
	return encoder.EncodeUintCompact(*new(big.Int).SetUint64(uint64(v)))
}

func decodeU32Compact(decoder scale.Decoder) (uint32, error) {
	v, err := decoder.DecodeUintCompact()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() || v.Uint64() > math.MaxUint32 {
		return 0, fmt.Errorf("compact value %v overflows u32", v)
	}
	return uint32(v.Uint64()), nil
}
