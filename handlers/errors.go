package handlers

import (
	"errors"
	"fmt"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

var (
	// ErrTransport wraps any failed query or submission. It is never retried here.
	ErrTransport = errors.New("chain transport failure")
	// ErrInvalidChainResponse is returned when a node answers with something
	// that does not parse into the expected value.
	ErrInvalidChainResponse = errors.New("invalid chain response")
	// ErrEncodingOverflow means an extrinsic does not fit a u32 length prefix
	ErrEncodingOverflow = models.ErrEncodingOverflow
	// ErrExtrinsicRejected is returned when the pool drops, invalidates or replaces a watched
	// extrinsic, or when finality times out
	ErrExtrinsicRejected = errors.New("extrinsic rejected")
)

func transportError(method string, err error) error {
	return fmt.Errorf("%s: %w: %w", method, ErrTransport, err)
}

func invalidResponse(method string, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w: %s", method, ErrInvalidChainResponse, fmt.Sprintf(format, args...))
}
