package models

import (
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// ExtrinsicSignature follows the version byte of a signed extrinsic
type ExtrinsicSignature struct {
	Signer    MultiAddress
	Signature types.MultiSignature
	Extra     Extra // era, nonce, tip and app id, encoded exactly as signed
}
