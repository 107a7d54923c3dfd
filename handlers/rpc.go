package handlers

import (
	"context"
	"encoding/json"

	"github.com/centrifuge/go-substrate-rpc-client/v2/client"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// contextCaller is met by gsrpc's connected client, which embeds the geth rpc client
type contextCaller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// rpcCall runs method and decodes the result into result. A call that does not
// complete is a transport error; a result that is null or does not decode is an
// invalid response.
func rpcCall(ctx context.Context, cli client.Client, result interface{}, method string, args ...interface{}) error {
	if err := ctx.Err(); err != nil {
		return transportError(method, err)
	}

	var (
		raw json.RawMessage
		err error
	)
	if cc, ok := cli.(contextCaller); ok {
		err = cc.CallContext(ctx, &raw, method, args...)
	} else {
		err = cli.Call(&raw, method, args...)
	}
	if err != nil {
		return transportError(method, err)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return invalidResponse(method, "empty result")
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return invalidResponse(method, "%v", err)
	}
	return nil
}

func hashHex(h types.Hash) string {
	return types.HexEncodeToString(h[:])
}
