package models

import (
	"bytes"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// SignedBlock is the chain_getBlock response. Justifications are not needed and not decoded.
type SignedBlock struct {
	Block Block `json:"block"`
}

// Block encoded with header and extrinsics
type Block struct {
	Header     types.Header      `json:"header"`
	Extrinsics []OpaqueExtrinsic `json:"extrinsics"`
}

// IndexOf returns the position of the wire encoded extrinsic xt in the block, or -1
func (b Block) IndexOf(xt []byte) int {
	for i, e := range b.Extrinsics {
		if bytes.Equal(e, xt) {
			return i
		}
	}
	return -1
}
