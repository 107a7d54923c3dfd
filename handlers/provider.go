package handlers

import (
	"context"
	"encoding/json"
	"math"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v2"
	"github.com/centrifuge/go-substrate-rpc-client/v2/client"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

// ChainProvider is the view of the node the builder needs. Implementations
// must be safe for concurrent use.
type ChainProvider interface {
	BestBlockHash(ctx context.Context) (types.Hash, error)
	FinalizedBlockHash(ctx context.Context) (types.Hash, error)
	Header(ctx context.Context, hash types.Hash) (*types.Header, error)
	GenesisHash(ctx context.Context) (types.Hash, error)
	RuntimeVersion(ctx context.Context, at types.Hash) (*types.RuntimeVersion, error)
	// AccountNextIndex is the next nonce counting the node's transaction pool
	AccountNextIndex(ctx context.Context, account types.AccountID) (uint32, error)
	// AccountNonce runs AccountNonceApi_account_nonce against the state at block at
	AccountNonce(ctx context.Context, account types.AccountID, at types.Hash) (uint32, error)
	Block(ctx context.Context, hash types.Hash) (*models.SignedBlock, error)
	SubmitExtrinsic(ctx context.Context, xt []byte) (types.Hash, error)
	SubmitAndWatchExtrinsic(ctx context.Context, xt []byte) (StatusSubscription, error)
}

var _ ChainProvider = (*RPCProvider)(nil)

// RPCProvider talks to a node over JSON-RPC
type RPCProvider struct {
	cli        client.Client
	ss58Prefix uint8
}

func NewRPCProvider(cfg models.Client) (*RPCProvider, error) {
	api, err := gsrpc.NewSubstrateAPI(cfg.Addr)
	if err != nil {
		return nil, transportError("connect", err)
	}
	return newRPCProvider(api.Client, cfg.SS58Prefix), nil
}

func newRPCProvider(cli client.Client, ss58Prefix uint8) *RPCProvider {
	if ss58Prefix == 0 {
		ss58Prefix = models.SubstrateSS58Prefix
	}
	return &RPCProvider{
		cli:        cli,
		ss58Prefix: ss58Prefix,
	}
}

func (p *RPCProvider) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	return rpcCall(ctx, p.cli, result, method, args...)
}

func (p *RPCProvider) callHash(ctx context.Context, method string, args ...interface{}) (types.Hash, error) {
	var res string
	if err := p.call(ctx, &res, method, args...); err != nil {
		return types.Hash{}, err
	}

	hash, err := types.NewHashFromHexString(res)
	if err != nil {
		return types.Hash{}, invalidResponse(method, "hash %q: %v", res, err)
	}
	return hash, nil
}

func (p *RPCProvider) BestBlockHash(ctx context.Context) (types.Hash, error) {
	return p.callHash(ctx, "chain_getBlockHash")
}

func (p *RPCProvider) FinalizedBlockHash(ctx context.Context) (types.Hash, error) {
	return p.callHash(ctx, "chain_getFinalizedHead")
}

func (p *RPCProvider) GenesisHash(ctx context.Context) (types.Hash, error) {
	return p.callHash(ctx, "chain_getBlockHash", 0)
}

func (p *RPCProvider) Header(ctx context.Context, hash types.Hash) (*types.Header, error) {
	var header types.Header
	if err := p.call(ctx, &header, "chain_getHeader", hashHex(hash)); err != nil {
		return nil, err
	}
	return &header, nil
}

func (p *RPCProvider) RuntimeVersion(ctx context.Context, at types.Hash) (*types.RuntimeVersion, error) {
	var rv types.RuntimeVersion
	if err := p.call(ctx, &rv, "state_getRuntimeVersion", hashHex(at)); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (p *RPCProvider) AccountNextIndex(ctx context.Context, account types.AccountID) (uint32, error) {
	const method = "system_accountNextIndex"

	addr, err := models.SS58Address(account[:], p.ss58Prefix)
	if err != nil {
		return 0, err
	}

	var res json.Number
	if err := p.call(ctx, &res, method, addr); err != nil {
		return 0, err
	}

	n, err := res.Int64()
	if err != nil || n < 0 || n > math.MaxUint32 {
		return 0, invalidResponse(method, "nonce %q", res)
	}
	return uint32(n), nil
}

func (p *RPCProvider) AccountNonce(ctx context.Context, account types.AccountID, at types.Hash) (uint32, error) {
	const method = "state_call"

	var res string
	err := p.call(ctx, &res, method, "AccountNonceApi_account_nonce",
		types.HexEncodeToString(account[:]), types.HexEncodeToString(at[:]))
	if err != nil {
		return 0, err
	}

	bz, err := types.HexDecodeString(res)
	if err != nil || len(bz) != 4 {
		return 0, invalidResponse(method, "encoded nonce %q", res)
	}

	var nonce types.U32
	if err := types.DecodeFromBytes(bz, &nonce); err != nil {
		return 0, invalidResponse(method, "encoded nonce %q: %v", res, err)
	}
	return uint32(nonce), nil
}

func (p *RPCProvider) Block(ctx context.Context, hash types.Hash) (*models.SignedBlock, error) {
	return ChainGetBlock(ctx, p.cli, &hash)
}

func (p *RPCProvider) SubmitExtrinsic(ctx context.Context, xt []byte) (types.Hash, error) {
	return p.callHash(ctx, "author_submitExtrinsic", types.HexEncodeToString(xt))
}

func (p *RPCProvider) SubmitAndWatchExtrinsic(ctx context.Context, xt []byte) (StatusSubscription, error) {
	sub, err := AuthorSubmitAndWatchExtrinsic(ctx, p.cli, xt)
	if err != nil {
		return nil, transportError("author_submitAndWatchExtrinsic", err)
	}
	return sub, nil
}
