// Package stream ingests raw transactions from an indexer endpoint and
// hands them to the submitter as batch material.
package stream

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vietddude/relayer/internal/core/domain"
	"github.com/vietddude/relayer/internal/infra/rpc"
)

const methodGetTransactions = "aptos.indexer.v1.RawData/GetTransactions"

// Client pulls transaction batches from an indexer.
type Client struct {
	provider rpc.Provider
	retry    rpc.RetryConfig
	log      *slog.Logger
}

// NewClient creates a stream client over the given provider.
func NewClient(provider rpc.Provider, retry rpc.RetryConfig) *Client {
	return &Client{
		provider: provider,
		retry:    retry,
		log:      slog.Default().With("component", "stream"),
	}
}

type rawTransaction struct {
	Version uint64 `json:"version"`
	Payload string `json:"payload"`
}

// GetTransactions fetches count transactions starting at startingVersion,
// paging through the indexer batchSize at a time. Pages are fetched in
// order; a short page ends the stream early.
func (c *Client) GetTransactions(
	ctx context.Context,
	startingVersion, count, batchSize uint64,
) ([]domain.Transaction, error) {
	if batchSize == 0 {
		batchSize = count
	}

	out := make([]domain.Transaction, 0, count)
	version := startingVersion
	for uint64(len(out)) < count {
		want := min(batchSize, count-uint64(len(out)))
		page, err := c.fetchPage(ctx, version, want)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		out = append(out, page...)
		version = startingVersion + uint64(len(out))
	}

	c.log.Debug("fetched transactions",
		"starting_version", startingVersion, "count", len(out))
	return out, nil
}

func (c *Client) fetchPage(
	ctx context.Context,
	startingVersion, count uint64,
) ([]domain.Transaction, error) {
	params := []any{map[string]any{
		"starting_version":   startingVersion,
		"transactions_count": count,
	}}
	raw, err := rpc.CallWithRetry(ctx, c.provider, methodGetTransactions, params, c.retry)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions from %d: %w", startingVersion, err)
	}

	var resp struct {
		Transactions []rawTransaction `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse transactions: %w", err)
	}

	out := make([]domain.Transaction, 0, len(resp.Transactions))
	for _, tx := range resp.Transactions {
		data, err := hex.DecodeString(tx.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode payload at version %d: %w", tx.Version, err)
		}
		out = append(out, domain.NewTransaction(data, tx.Version))
	}
	return out, nil
}
