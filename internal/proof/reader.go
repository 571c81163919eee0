// Package proof exposes ledger state proofs over HTTP for bridge
// counterparties that verify settlement independently.
package proof

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/vietddude/relayer/internal/core/domain"
	"github.com/vietddude/relayer/internal/infra/rpc"
)

// LedgerReader fetches proof material from the ledger.
type LedgerReader interface {
	// StateRootHash returns the state root commitment at a height.
	StateRootHash(ctx context.Context, height uint64) (domain.Commitment, error)

	// StateProof returns the serialized state proof at a height.
	StateProof(ctx context.Context, height uint64) ([]byte, error)

	// AccountProof returns the serialized inclusion proof for an account
	// at a height.
	AccountProof(ctx context.Context, addr string, height uint64) ([]byte, error)

	// ResourceProof returns the serialized proof for a table item, keyed
	// by hex key under the table handle addr, at a height.
	ResourceProof(ctx context.Context, key, addr string, height uint64) ([]byte, error)
}

// RPCReader implements LedgerReader over a provider.
type RPCReader struct {
	provider rpc.Provider
	retry    rpc.RetryConfig
}

// NewRPCReader creates a reader over the given provider.
func NewRPCReader(provider rpc.Provider, retry rpc.RetryConfig) *RPCReader {
	return &RPCReader{provider: provider, retry: retry}
}

func (r *RPCReader) StateRootHash(ctx context.Context, height uint64) (domain.Commitment, error) {
	proof, err := r.StateProof(ctx, height)
	if err != nil {
		return domain.Commitment{}, err
	}
	return domain.DigestStateProof(proof), nil
}

func (r *RPCReader) StateProof(ctx context.Context, height uint64) ([]byte, error) {
	raw, err := rpc.CallWithRetry(ctx, r.provider, "ledger_getStateProof",
		[]any{height}, r.retry)
	if err != nil {
		return nil, fmt.Errorf("state proof at %d: %w", height, err)
	}
	return decodeProof(raw)
}

func (r *RPCReader) AccountProof(ctx context.Context, addr string, height uint64) ([]byte, error) {
	raw, err := rpc.CallWithRetry(ctx, r.provider, "ledger_getAccountProof",
		[]any{addr, height}, r.retry)
	if err != nil {
		return nil, fmt.Errorf("account proof for %s at %d: %w", addr, height, err)
	}
	return decodeProof(raw)
}

func (r *RPCReader) ResourceProof(ctx context.Context, key, addr string, height uint64) ([]byte, error) {
	if _, err := hex.DecodeString(key); err != nil {
		return nil, fmt.Errorf("resource key must be hex: %w", err)
	}
	raw, err := rpc.CallWithRetry(ctx, r.provider, "ledger_getResourceProof",
		[]any{key, addr, height}, r.retry)
	if err != nil {
		return nil, fmt.Errorf("resource proof for %s/%s at %d: %w", addr, key, height, err)
	}
	return decodeProof(raw)
}

// decodeProof unwraps the provider's result envelope. Providers return
// either a bare JSON string of hex bytes or an object with a "proof"
// field.
func decodeProof(raw json.RawMessage) ([]byte, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []byte(s), nil
	}
	var wrapped struct {
		Proof string `json:"proof"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("parse proof: %w", err)
	}
	return []byte(wrapped.Proof), nil
}
