package models

import (
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/hashicorp/go-multierror"
)

type NonceKind uint8

const (
	// NonceKindBestBlockAndTxPool asks the node for the next index, counting
	// transactions still waiting in its pool.
	NonceKindBestBlockAndTxPool NonceKind = iota
	NonceKindBestBlock
	NonceKindFinalizedBlock
	NonceKindCustom
)

func (k NonceKind) String() string {
	switch k {
	case NonceKindBestBlockAndTxPool:
		return "best-block-and-pool"
	case NonceKindBestBlock:
		return "best-block"
	case NonceKindFinalizedBlock:
		return "finalized-block"
	case NonceKindCustom:
		return "custom"
	}
	return fmt.Sprintf("NonceKind(%d)", uint8(k))
}

// NoncePolicy selects how the account nonce is looked up. The zero value is
// NonceKindBestBlockAndTxPool.
type NoncePolicy struct {
	Kind  NonceKind
	Value uint32
}

func NonceBestBlockAndTxPool() NoncePolicy { return NoncePolicy{Kind: NonceKindBestBlockAndTxPool} }
func NonceBestBlock() NoncePolicy          { return NoncePolicy{Kind: NonceKindBestBlock} }
func NonceFinalizedBlock() NoncePolicy     { return NoncePolicy{Kind: NonceKindFinalizedBlock} }

// NonceCustom uses n as is. Nothing checks it against the chain.
func NonceCustom(n uint32) NoncePolicy { return NoncePolicy{Kind: NonceKindCustom, Value: n} }

type MortalityKind uint8

const (
	MortalityKindDefault MortalityKind = iota
	MortalityKindPeriod
	MortalityKindCustom
	MortalityKindImmortal
)

// MortalityPolicy selects the validity window of a transaction. The zero
// value is a window of the client's default period anchored at the best block.
type MortalityPolicy struct {
	Kind   MortalityKind
	Period uint64
	Height uint64
	Hash   types.Hash
}

// MortalityPeriod anchors a window of the given length at the best block
func MortalityPeriod(period uint64) MortalityPolicy {
	return MortalityPolicy{Kind: MortalityKindPeriod, Period: period}
}

// MortalityCustom anchors a window at a caller supplied block
func MortalityCustom(period, height uint64, hash types.Hash) MortalityPolicy {
	return MortalityPolicy{Kind: MortalityKindCustom, Period: period, Height: height, Hash: hash}
}

func Immortal() MortalityPolicy { return MortalityPolicy{Kind: MortalityKindImmortal} }

// ExtrinsicExtra holds the caller's optional overrides for one transaction
type ExtrinsicExtra struct {
	Nonce     NoncePolicy
	Mortality MortalityPolicy
	Tip       *big.Int // nil means 0
	AppID     uint32
}

var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Validate checks the ranges the runtime types impose
func (e ExtrinsicExtra) Validate() error {
	var result *multierror.Error

	if e.Tip != nil && (e.Tip.Sign() < 0 || e.Tip.Cmp(maxU128) > 0) {
		result = multierror.Append(result, fmt.Errorf("tip %v out of u128 range", e.Tip))
	}
	if e.Nonce.Kind > NonceKindCustom {
		result = multierror.Append(result, fmt.Errorf("unknown nonce policy %v", e.Nonce.Kind))
	}
	if e.Mortality.Kind > MortalityKindImmortal {
		result = multierror.Append(result, fmt.Errorf("unknown mortality policy %d", e.Mortality.Kind))
	}

	return result.ErrorOrNil()
}

// TipOrZero returns the tip, defaulting to 0
func (e ExtrinsicExtra) TipOrZero() *big.Int {
	if e.Tip == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(e.Tip)
}

// Extra is the resolved, signed-over part of the extrinsic:
// era, Compact<nonce>, Compact<tip>, Compact<app id>.
type Extra struct {
	Era   types.ExtrinsicEra
	Nonce uint32
	Tip   *big.Int
	AppID uint32
}

func (e Extra) Encode(encoder scale.Encoder) (err error) {
	err = encoder.Encode(e.Era)
	if err != nil {
		return
	}
	err = encodeU32Compact(encoder, e.Nonce)
	if err != nil {
		return
	}
	tip := e.Tip
	if tip == nil {
		tip = new(big.Int)
	}
	err = encoder.EncodeUintCompact(*tip)
	if err != nil {
		return
	}
	err = encodeU32Compact(encoder, e.AppID)
	return
}

func (e *Extra) Decode(decoder scale.Decoder) (err error) {
	err = decoder.Decode(&e.Era)
	if err != nil {
		return
	}
	e.Nonce, err = decodeU32Compact(decoder)
	if err != nil {
		return
	}
	e.Tip, err = decoder.DecodeUintCompact()
	if err != nil {
		return
	}
	e.AppID, err = decodeU32Compact(decoder)
	return
}

// Additional is signed over but never sent on the wire
type Additional struct {
	SpecVersion        uint32
	TransactionVersion uint32
	GenesisHash        types.Hash
	ForkHash           types.Hash
}

func (a Additional) Encode(encoder scale.Encoder) (err error) {
	err = encoder.Encode(types.U32(a.SpecVersion))
	if err != nil {
		return
	}
	err = encoder.Encode(types.U32(a.TransactionVersion))
	if err != nil {
		return
	}
	err = encoder.Write(a.GenesisHash[:])
	if err != nil {
		return
	}
	err = encoder.Write(a.ForkHash[:])
	return
}
