package handlers

import (
	"context"

	"github.com/centrifuge/go-substrate-rpc-client/v2/client"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

// ChainGetBlock fetches the block with blockHash, or the best block when it is nil
func ChainGetBlock(ctx context.Context, cli client.Client, blockHash *types.Hash) (*models.SignedBlock, error) {
	var args []interface{}
	if blockHash != nil {
		args = append(args, hashHex(*blockHash))
	}

	var signedBlock models.SignedBlock
	if err := rpcCall(ctx, cli, &signedBlock, "chain_getBlock", args...); err != nil {
		return nil, err
	}
	return &signedBlock, nil
}
