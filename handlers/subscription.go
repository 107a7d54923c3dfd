package handlers

import (
	"context"
	"sync"

	"github.com/centrifuge/go-substrate-rpc-client/v2/client"
	"github.com/centrifuge/go-substrate-rpc-client/v2/config"
	gethrpc "github.com/centrifuge/go-substrate-rpc-client/v2/gethrpc"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// StatusSubscription streams pool status updates of one submitted extrinsic
type StatusSubscription interface {
	Chan() <-chan types.ExtrinsicStatus
	Err() <-chan error
	Unsubscribe()
}

// AuthorSubmitAndWatchExtrinsic submits the wire encoded xt and subscribes to its status
func AuthorSubmitAndWatchExtrinsic(ctx context.Context, cli client.Client, xt []byte) (*ExtrinsicStatusSubscription, error) { //nolint:lll
	ctx, cancel := context.WithTimeout(ctx, config.Default().SubscribeTimeout)
	defer cancel()

	c := make(chan types.ExtrinsicStatus)

	sub, err := cli.Subscribe(ctx, "author", "submitAndWatchExtrinsic", "unwatchExtrinsic", "extrinsicUpdate",
		c, types.HexEncodeToString(xt))
	if err != nil {
		return nil, err
	}

	return &ExtrinsicStatusSubscription{sub: sub, channel: c}, nil
}

// ExtrinsicStatusSubscription is a subscription established through one of the Client's subscribe methods.
type ExtrinsicStatusSubscription struct {
	sub      *gethrpc.ClientSubscription
	channel  chan types.ExtrinsicStatus
	quitOnce sync.Once // ensures quit is closed once
}

// Chan returns the subscription channel.
//
// The channel is closed when Unsubscribe is called on the subscription.
func (s *ExtrinsicStatusSubscription) Chan() <-chan types.ExtrinsicStatus {
	return s.channel
}

// Err returns the subscription error channel. The intended use of Err is to schedule
// resubscription when the client connection is closed unexpectedly.
//
// The error channel receives a value when the subscription has ended due
// to an error. The received error is nil if Close has been called
// on the underlying client and no other error has occurred.
//
// The error channel is closed when Unsubscribe is called on the subscription.
func (s *ExtrinsicStatusSubscription) Err() <-chan error {
	return s.sub.Err()
}

// Unsubscribe unsubscribes the notification and closes the error channel.
// It can safely be called more than once.
func (s *ExtrinsicStatusSubscription) Unsubscribe() {
	s.sub.Unsubscribe()
	s.quitOnce.Do(func() {
		close(s.channel)
	})
}
