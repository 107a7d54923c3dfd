package handlers

import (
	"context"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

// Submit hands xt to the node's pool and returns the hash it was accepted under
func (c *Client) Submit(ctx context.Context, xt models.Extrinsic) (types.Hash, error) {
	b, err := xt.Bytes()
	if err != nil {
		return types.Hash{}, err
	}

	hash, err := c.provider.SubmitExtrinsic(ctx, b)
	if err != nil {
		incrCounter("submit_failures")
		return types.Hash{}, err
	}

	incrCounter("extrinsics_submitted")
	c.logger.Info("extrinsic submitted", "hash", hashHex(hash))

	return hash, nil
}

// Inclusion locates an extrinsic in a block
type Inclusion struct {
	BlockHash types.Hash
	Number    uint64
	Index     int
	Finalized bool
}

// SubmitAndWait submits xt, follows its pool status until it lands in a block
// (or is finalized, when finalized is set) and returns where it was included.
func (c *Client) SubmitAndWait(ctx context.Context, xt models.Extrinsic, finalized bool) (*Inclusion, error) {
	b, err := xt.Bytes()
	if err != nil {
		return nil, err
	}

	sub, err := c.provider.SubmitAndWatchExtrinsic(ctx, b)
	if err != nil {
		incrCounter("submit_failures")
		return nil, err
	}
	defer sub.Unsubscribe()

	incrCounter("extrinsics_submitted")

	var (
		blockHash types.Hash
		isFinal   bool
	)

waitLoop:
	for {
		select {
		case <-ctx.Done():
			return nil, transportError("author_submitAndWatchExtrinsic", ctx.Err())

		case err := <-sub.Err():
			if err == nil {
				err = fmt.Errorf("subscription closed")
			}
			return nil, transportError("author_submitAndWatchExtrinsic", err)

		case status, ok := <-sub.Chan():
			if !ok {
				return nil, transportError("author_submitAndWatchExtrinsic", fmt.Errorf("subscription closed"))
			}

			switch {
			case status.IsInBlock:
				c.logger.Debug("extrinsic in block", "block", hashHex(status.AsInBlock))
				if !finalized {
					blockHash = status.AsInBlock
					break waitLoop
				}
			case status.IsFinalized:
				blockHash, isFinal = status.AsFinalized, true
				break waitLoop
			case status.IsRetracted:
				c.logger.Debug("extrinsic block retracted", "block", hashHex(status.AsRetracted))
			case status.IsFinalityTimeout:
				// the node sends nothing after this
				return nil, fmt.Errorf("%w: finality timeout in block %s",
					ErrExtrinsicRejected, hashHex(status.AsFinalityTimeout))
			case status.IsDropped:
				return nil, fmt.Errorf("%w: dropped", ErrExtrinsicRejected)
			case status.IsInvalid:
				return nil, fmt.Errorf("%w: invalid", ErrExtrinsicRejected)
			case status.IsUsurped:
				return nil, fmt.Errorf("%w: usurped by %s", ErrExtrinsicRejected, hashHex(status.AsUsurped))
			}
		}
	}

	block, err := c.provider.Block(ctx, blockHash)
	if err != nil {
		return nil, err
	}

	idx := block.Block.IndexOf(b)
	if idx < 0 {
		return nil, invalidResponse("chain_getBlock", "extrinsic not found in block %s", hashHex(blockHash))
	}

	c.logger.Info("extrinsic included",
		"block", hashHex(blockHash), "number", block.Block.Header.Number, "index", idx, "finalized", isFinal)

	return &Inclusion{
		BlockHash: blockHash,
		Number:    uint64(block.Block.Header.Number),
		Index:     idx,
		Finalized: isFinal,
	}, nil
}
