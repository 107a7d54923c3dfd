package handlers

import (
	"context"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

// ResolveNonce turns a nonce policy into the nonce to sign with. For
// NonceKindBestBlock, pinned (when set) is used instead of asking for the
// best block hash.
func ResolveNonce(
	ctx context.Context,
	provider ChainProvider,
	policy models.NoncePolicy,
	account types.AccountID,
	pinned *types.Hash,
) (uint32, error) {
	switch policy.Kind {
	case models.NonceKindBestBlockAndTxPool:
		return provider.AccountNextIndex(ctx, account)

	case models.NonceKindBestBlock:
		var hash types.Hash
		if pinned != nil {
			hash = *pinned
		} else {
			h, err := provider.BestBlockHash(ctx)
			if err != nil {
				return 0, err
			}
			hash = h
		}
		return provider.AccountNonce(ctx, account, hash)

	case models.NonceKindFinalizedBlock:
		hash, err := provider.FinalizedBlockHash(ctx)
		if err != nil {
			return 0, err
		}
		return provider.AccountNonce(ctx, account, hash)

	case models.NonceKindCustom:
		return policy.Value, nil
	}

	return 0, fmt.Errorf("unknown nonce policy %v", policy.Kind)
}

func needsBestBlock(policy models.NoncePolicy) bool {
	return policy.Kind == models.NonceKindBestBlock
}
