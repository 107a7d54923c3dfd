package handlers

import (
	"bytes"
	"context"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

var _ ChainProvider = (*providerMock)(nil)

type providerMock struct {
	mock.Mock
}

func (m *providerMock) BestBlockHash(ctx context.Context) (types.Hash, error) {
	args := m.Called()

	return args.Get(0).(types.Hash), args.Error(1) //nolint:forcetypeassert
}

func (m *providerMock) FinalizedBlockHash(ctx context.Context) (types.Hash, error) {
	args := m.Called()

	return args.Get(0).(types.Hash), args.Error(1) //nolint:forcetypeassert
}

func (m *providerMock) Header(ctx context.Context, hash types.Hash) (*types.Header, error) {
	args := m.Called(hash)
	header, _ := args.Get(0).(*types.Header)

	return header, args.Error(1)
}

func (m *providerMock) GenesisHash(ctx context.Context) (types.Hash, error) {
	args := m.Called()

	return args.Get(0).(types.Hash), args.Error(1) //nolint:forcetypeassert
}

func (m *providerMock) RuntimeVersion(ctx context.Context, at types.Hash) (*types.RuntimeVersion, error) {
	args := m.Called(at)
	rv, _ := args.Get(0).(*types.RuntimeVersion)

	return rv, args.Error(1)
}

func (m *providerMock) AccountNextIndex(ctx context.Context, account types.AccountID) (uint32, error) {
	args := m.Called(account)

	return args.Get(0).(uint32), args.Error(1) //nolint:forcetypeassert
}

func (m *providerMock) AccountNonce(ctx context.Context, account types.AccountID, at types.Hash) (uint32, error) {
	args := m.Called(account, at)

	return args.Get(0).(uint32), args.Error(1) //nolint:forcetypeassert
}

func (m *providerMock) Block(ctx context.Context, hash types.Hash) (*models.SignedBlock, error) {
	args := m.Called(hash)
	blk, _ := args.Get(0).(*models.SignedBlock)

	return blk, args.Error(1)
}

func (m *providerMock) SubmitExtrinsic(ctx context.Context, xt []byte) (types.Hash, error) {
	args := m.Called(xt)

	return args.Get(0).(types.Hash), args.Error(1) //nolint:forcetypeassert
}

func (m *providerMock) SubmitAndWatchExtrinsic(ctx context.Context, xt []byte) (StatusSubscription, error) {
	args := m.Called(xt)
	sub, _ := args.Get(0).(StatusSubscription)

	return sub, args.Error(1)
}

func (m *providerMock) methods() []string {
	calls := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		calls = append(calls, c.Method)
	}

	return calls
}

var _ StatusSubscription = (*fakeSubscription)(nil)

type fakeSubscription struct {
	statuses     chan types.ExtrinsicStatus
	errs         chan error
	unsubscribed bool
}

func newFakeSubscription(statuses ...types.ExtrinsicStatus) *fakeSubscription {
	s := &fakeSubscription{
		statuses: make(chan types.ExtrinsicStatus, len(statuses)),
		errs:     make(chan error, 1),
	}
	for _, st := range statuses {
		s.statuses <- st
	}

	return s
}

func (s *fakeSubscription) Chan() <-chan types.ExtrinsicStatus { return s.statuses }
func (s *fakeSubscription) Err() <-chan error                  { return s.errs }
func (s *fakeSubscription) Unsubscribe()                       { s.unsubscribed = true }

type fakeSigner struct {
	pub    []byte
	signed [][]byte
}

func (f *fakeSigner) PublicKey() []byte { return f.pub }

func (f *fakeSigner) Sign(msg []byte) ([]byte, error) {
	f.signed = append(f.signed, msg)

	return bytes.Repeat([]byte{0x55}, 64), nil
}

const alicePubKey = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := types.HexDecodeString(s)
	require.NoError(t, err)

	return b
}

func repeatHash(b byte) types.Hash {
	return types.NewHash(bytes.Repeat([]byte{b}, 32))
}

func aliceAccount(t *testing.T) types.AccountID {
	t.Helper()

	return types.NewAccountID(mustHex(t, alicePubKey))
}
