package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

type ClientOption func(*Client)

func WithLogger(logger hclog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.Named("txbuilder")
	}
}

// WithDefaultMortalityPeriod sets the period used when the caller does not pick a mortality
func WithDefaultMortalityPeriod(period uint64) ClientOption {
	return func(c *Client) {
		c.defaultPeriod = period
	}
}

// Client builds, signs and submits extrinsics. It holds no per transaction
// state and can be shared between goroutines.
type Client struct {
	provider      ChainProvider
	logger        hclog.Logger
	defaultPeriod uint64
}

func NewClient(provider ChainProvider, opts ...ClientOption) *Client {
	c := &Client{
		provider:      provider,
		logger:        hclog.NewNullLogger(),
		defaultPeriod: models.DefaultMortalPeriod,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects to the node at cfg.Addr
func Dial(cfg models.Client, opts ...ClientOption) (*Client, error) {
	provider, err := NewRPCProvider(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.MortalityPeriod != 0 {
		opts = append([]ClientOption{WithDefaultMortalityPeriod(cfg.MortalityPeriod)}, opts...)
	}
	return NewClient(provider, opts...), nil
}

func (c *Client) Provider() ChainProvider {
	return c.provider
}

// BuildPayload resolves every dynamic parameter against the chain and returns
// the payload to sign. The best block is fetched once; the mortality anchor,
// a best block nonce and the runtime version are all read at that block.
func (c *Client) BuildPayload(
	ctx context.Context,
	call models.Call,
	account types.AccountID,
	extra models.ExtrinsicExtra,
) (*models.UnsignedPayload, error) {
	start := time.Now()
	defer measureSince("build_payload", start)

	if err := extra.Validate(); err != nil {
		return nil, err
	}

	var (
		genesis types.Hash
		head    ChainHead
		rv      *types.RuntimeVersion
		nonce   uint32
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		genesis, err = c.provider.GenesisHash(gctx)
		return
	})

	g.Go(func() (err error) {
		head, err = BestHead(gctx, c.provider)
		if err != nil {
			return
		}
		rv, err = c.provider.RuntimeVersion(gctx, head.Hash)
		if err == nil && rv == nil {
			err = invalidResponse("state_getRuntimeVersion", "no runtime version at %s", hashHex(head.Hash))
		}
		return
	})

	if !needsBestBlock(extra.Nonce) {
		g.Go(func() (err error) {
			nonce, err = ResolveNonce(gctx, c.provider, extra.Nonce, account, nil)
			return
		})
	}

	if err := g.Wait(); err != nil {
		incrCounter("build_payload_failures")
		c.logger.Debug("chain query failed", "err", err)
		return nil, err
	}

	if needsBestBlock(extra.Nonce) {
		var err error
		nonce, err = ResolveNonce(ctx, c.provider, extra.Nonce, account, &head.Hash)
		if err != nil {
			incrCounter("build_payload_failures")
			return nil, err
		}
	}

	mortality, forkHash, err := ResolveMortality(ctx, c.provider, extra.Mortality, &head, genesis, c.defaultPeriod)
	if err != nil {
		incrCounter("build_payload_failures")
		return nil, err
	}

	payload := models.NewUnsignedPayload(
		call,
		models.Extra{
			Era:   mortality.Era(),
			Nonce: nonce,
			Tip:   extra.TipOrZero(),
			AppID: extra.AppID,
		},
		models.Additional{
			SpecVersion:        uint32(rv.SpecVersion),
			TransactionVersion: uint32(rv.TransactionVersion),
			GenesisHash:        genesis,
			ForkHash:           forkHash,
		},
	)

	incrCounter("payloads_built")
	c.logger.Debug("payload built",
		"nonce", nonce,
		"nonce_policy", extra.Nonce.Kind,
		"best", head.Number,
		"period", mortality.Period,
		"phase", mortality.Phase,
		"valid_until", mortality.Death(head.Number),
		"spec_version", payload.Additional.SpecVersion,
	)

	return payload, nil
}

// Sign assembles the signed extrinsic from a payload, the signer's sr25519
// public key and its signature over the payload.
func (c *Client) Sign(payload *models.UnsignedPayload, publicKey []byte, sig []byte) (models.Extrinsic, error) {
	if len(publicKey) != 32 {
		return models.Extrinsic{}, fmt.Errorf("public key must be 32 bytes, got %d", len(publicKey))
	}
	if len(sig) != 64 {
		return models.Extrinsic{}, fmt.Errorf("sr25519 signature must be 64 bytes, got %d", len(sig))
	}

	xt := models.NewSignedExtrinsic(
		payload.Call,
		models.NewMultiAddressFromAccountID(publicKey),
		types.MultiSignature{IsSr25519: true, AsSr25519: types.NewSignature(sig)},
		payload.Extra,
	)

	// encode once so an oversized extrinsic fails here and not at submission
	b, err := xt.Bytes()
	if err != nil {
		return models.Extrinsic{}, err
	}

	incrCounter("extrinsics_signed")
	c.logger.Debug("extrinsic signed", "size", len(b), "signer", models.SS58Addr(publicKey))

	return xt, nil
}

// SignWith gets the signature from signer and assembles the extrinsic
func (c *Client) SignWith(payload *models.UnsignedPayload, signer Signer) (models.Extrinsic, error) {
	msg, err := payload.SigningBytes()
	if err != nil {
		return models.Extrinsic{}, err
	}

	sig, err := signer.Sign(msg)
	if err != nil {
		return models.Extrinsic{}, fmt.Errorf("sign payload: %w", err)
	}

	return c.Sign(payload, signer.PublicKey(), sig)
}
