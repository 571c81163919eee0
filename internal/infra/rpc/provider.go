// Package rpc abstracts the transport to the remote ledger. A Provider is
// a named endpoint capable of executing one call; HTTP JSON-RPC and gRPC
// implementations are provided and selected by configuration.
package rpc

import (
	"context"
	"encoding/json"
)

// Provider is one remote endpoint.
type Provider interface {
	// Name returns the provider identifier from configuration.
	Name() string

	// Call executes a single named call and returns the raw JSON result.
	Call(ctx context.Context, method string, params []any) (json.RawMessage, error)

	// Close cleans up resources.
	Close() error
}
