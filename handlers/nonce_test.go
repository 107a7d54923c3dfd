package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

func TestResolveNonce_Custom(t *testing.T) {
	provider := new(providerMock)

	nonce, err := ResolveNonce(context.Background(), provider, models.NonceCustom(7), aliceAccount(t), nil)
	require.NoError(t, err)

	assert.Equal(t, uint32(7), nonce)
	assert.Empty(t, provider.Calls)
}

func TestResolveNonce_FinalizedBlock(t *testing.T) {
	finalized := repeatHash(0xf1)
	provider := new(providerMock)
	provider.On("FinalizedBlockHash").Return(finalized, nil).Once()
	provider.On("AccountNonce", aliceAccount(t), finalized).Return(uint32(11), nil).Once()

	// a pinned best block must not change the finalized lookup
	best := repeatHash(0xb0)
	nonce, err := ResolveNonce(context.Background(), provider, models.NonceFinalizedBlock(), aliceAccount(t), &best)
	require.NoError(t, err)

	assert.Equal(t, uint32(11), nonce)
	assert.Equal(t, []string{"FinalizedBlockHash", "AccountNonce"}, provider.methods())
	provider.AssertExpectations(t)
}

func TestResolveNonce_BestBlock(t *testing.T) {
	best := repeatHash(0xb0)
	provider := new(providerMock)
	provider.On("BestBlockHash").Return(best, nil).Once()
	provider.On("AccountNonce", aliceAccount(t), best).Return(uint32(4), nil).Once()

	nonce, err := ResolveNonce(context.Background(), provider, models.NonceBestBlock(), aliceAccount(t), nil)
	require.NoError(t, err)

	assert.Equal(t, uint32(4), nonce)
	assert.Equal(t, []string{"BestBlockHash", "AccountNonce"}, provider.methods())
}

func TestResolveNonce_BestBlockPinned(t *testing.T) {
	pinned := repeatHash(0xb1)
	provider := new(providerMock)
	provider.On("AccountNonce", aliceAccount(t), pinned).Return(uint32(5), nil).Once()

	nonce, err := ResolveNonce(context.Background(), provider, models.NonceBestBlock(), aliceAccount(t), &pinned)
	require.NoError(t, err)

	assert.Equal(t, uint32(5), nonce)
	provider.AssertNotCalled(t, "BestBlockHash")
}

func TestResolveNonce_Pool(t *testing.T) {
	provider := new(providerMock)
	provider.On("AccountNextIndex", aliceAccount(t)).Return(uint32(9), nil).Once()

	// the zero policy is the pool aware one
	nonce, err := ResolveNonce(context.Background(), provider, models.NoncePolicy{}, aliceAccount(t), nil)
	require.NoError(t, err)

	assert.Equal(t, uint32(9), nonce)
	assert.Equal(t, []string{"AccountNextIndex"}, provider.methods())
}

func TestResolveNonce_TransportFailure(t *testing.T) {
	provider := new(providerMock)
	provider.On("FinalizedBlockHash").
		Return(repeatHash(0), transportError("chain_getFinalizedHead", errors.New("connection refused"))).Once()

	_, err := ResolveNonce(context.Background(), provider, models.NonceFinalizedBlock(), aliceAccount(t), nil)

	assert.ErrorIs(t, err, ErrTransport)
	provider.AssertNotCalled(t, "AccountNonce", mock.Anything, mock.Anything)
}

func TestResolveNonce_UnknownPolicy(t *testing.T) {
	_, err := ResolveNonce(context.Background(), new(providerMock), models.NoncePolicy{Kind: 42}, aliceAccount(t), nil)
	assert.Error(t, err)
}
