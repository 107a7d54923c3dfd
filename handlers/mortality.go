package handlers

import (
	"context"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

// ChainHead is a block hash together with its height
type ChainHead struct {
	Hash   types.Hash
	Number uint64
}

// BestHead fetches the best block hash and then its header
func BestHead(ctx context.Context, provider ChainProvider) (ChainHead, error) {
	hash, err := provider.BestBlockHash(ctx)
	if err != nil {
		return ChainHead{}, err
	}

	header, err := provider.Header(ctx, hash)
	if err != nil {
		return ChainHead{}, err
	}
	if header == nil {
		return ChainHead{}, invalidResponse("chain_getHeader", "no header for %s", hashHex(hash))
	}

	return ChainHead{
		Hash:   hash,
		Number: uint64(header.Number),
	}, nil
}

// ResolveMortality turns a mortality policy into a window and the hash it is
// anchored to. head pins the best block; when nil it is fetched only if the
// policy needs it. Immortal windows are anchored to genesis.
func ResolveMortality(
	ctx context.Context,
	provider ChainProvider,
	policy models.MortalityPolicy,
	head *ChainHead,
	genesis types.Hash,
	defaultPeriod uint64,
) (models.CheckedMortality, types.Hash, error) {
	switch policy.Kind {
	case models.MortalityKindDefault, models.MortalityKindPeriod:
		period := policy.Period
		if policy.Kind == models.MortalityKindDefault {
			period = defaultPeriod
			if period == 0 {
				period = models.DefaultMortalPeriod
			}
		}

		if head == nil {
			h, err := BestHead(ctx, provider)
			if err != nil {
				return models.CheckedMortality{}, types.Hash{}, err
			}
			head = &h
		}
		return models.NewMortal(period, head.Number), head.Hash, nil

	case models.MortalityKindCustom:
		return models.NewMortal(policy.Period, policy.Height), policy.Hash, nil

	case models.MortalityKindImmortal:
		return models.ImmortalMortality(), genesis, nil
	}

	return models.CheckedMortality{}, types.Hash{}, fmt.Errorf("unknown mortality policy %d", policy.Kind)
}
