// Package bridge submits atomic-swap transfers to the remote ledger and
// drives the grouping retry engine over batches of them.
package bridge

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/vietddude/relayer/internal/core/domain"
	"github.com/vietddude/relayer/internal/infra/rpc"
	"github.com/vietddude/relayer/internal/metrics"
)

// Call names for the counterparty swap protocol.
const (
	CallLock     = "lock_bridge_transfer_assets"
	CallComplete = "complete_bridge_transfer"
	CallAbort    = "abort_bridge_transfer"
)

const counterpartyModule = "atomic_bridge_counterparty"

// Client executes swap protocol calls against the remote ledger.
type Client struct {
	provider rpc.Provider
	module   string
	retry    rpc.RetryConfig
}

// NewClient creates a ledger client over the given provider.
func NewClient(provider rpc.Provider, retry rpc.RetryConfig) *Client {
	return &Client{
		provider: provider,
		module:   counterpartyModule,
		retry:    retry,
	}
}

// Lock locks the transfer's assets on the counterparty ledger.
func (c *Client) Lock(ctx context.Context, t domain.BridgeTransfer) error {
	params := []any{map[string]any{
		"module":             c.module,
		"function":           CallLock,
		"initiator":          hex.EncodeToString(t.Initiator),
		"bridge_transfer_id": t.ID.String(),
		"hash_lock":          hex.EncodeToString(t.HashLock[:]),
		"time_lock":          t.TimeLock,
		"recipient":          hex.EncodeToString(t.Recipient),
		"amount":             t.Amount,
	}}
	return c.call(ctx, CallLock, params)
}

// Complete reveals the preimage and completes the transfer.
func (c *Client) Complete(ctx context.Context, id domain.TransferId, preimage []byte) error {
	params := []any{map[string]any{
		"module":             c.module,
		"function":           CallComplete,
		"bridge_transfer_id": id.String(),
		"preimage":           hex.EncodeToString(preimage),
	}}
	return c.call(ctx, CallComplete, params)
}

// Abort aborts the transfer after its time lock expired.
func (c *Client) Abort(ctx context.Context, id domain.TransferId) error {
	params := []any{map[string]any{
		"module":             c.module,
		"function":           CallAbort,
		"bridge_transfer_id": id.String(),
	}}
	return c.call(ctx, CallAbort, params)
}

func (c *Client) call(ctx context.Context, method string, params []any) error {
	start := time.Now()
	metrics.LedgerCallsTotal.WithLabelValues(c.provider.Name(), method).Inc()

	_, err := rpc.CallWithRetry(ctx, c.provider, "ledger_submitEntryFunction", params, c.retry)

	metrics.LedgerCallLatency.
		WithLabelValues(c.provider.Name(), method).
		Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LedgerErrorsTotal.WithLabelValues(c.provider.Name(), method).Inc()
	}
	return err
}
