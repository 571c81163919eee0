package stream

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/vietddude/relayer/internal/infra/rpc"
)

// ==== Mocks ====

type pagedProvider struct {
	// transactions the indexer holds, addressed by version offset from 0.
	payloads [][]byte
	calls    []uint64
}

func (p *pagedProvider) Name() string { return "paged" }

func (p *pagedProvider) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	req := params[0].(map[string]any)
	start := req["starting_version"].(uint64)
	count := req["transactions_count"].(uint64)
	p.calls = append(p.calls, start)

	type tx struct {
		Version uint64 `json:"version"`
		Payload string `json:"payload"`
	}
	var txs []tx
	for v := start; v < start+count && v < uint64(len(p.payloads)); v++ {
		txs = append(txs, tx{Version: v, Payload: hex.EncodeToString(p.payloads[v])})
	}
	return json.Marshal(map[string]any{"transactions": txs})
}

func (p *pagedProvider) Close() error { return nil }

func payloads(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte(fmt.Sprintf("tx-%03d", i))
	}
	return out
}

// ==== Tests ====

func TestGetTransactionsPagesInOrder(t *testing.T) {
	provider := &pagedProvider{payloads: payloads(10)}
	client := NewClient(provider, rpc.RetryConfig{MaxAttempts: 1, InitialDelay: 1, MaxDelay: 1})

	txs, err := client.GetTransactions(context.Background(), 2, 6, 4)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}

	if len(txs) != 6 {
		t.Fatalf("got %d transactions, want 6", len(txs))
	}
	for i, tx := range txs {
		wantVersion := uint64(2 + i)
		if tx.SequenceNumber != wantVersion {
			t.Errorf("tx %d version = %d, want %d", i, tx.SequenceNumber, wantVersion)
		}
		if string(tx.Data) != fmt.Sprintf("tx-%03d", wantVersion) {
			t.Errorf("tx %d data = %q", i, tx.Data)
		}
	}
	// Two pages: versions 2..5 and 6..7.
	if len(provider.calls) != 2 || provider.calls[0] != 2 || provider.calls[1] != 6 {
		t.Errorf("page starts = %v, want [2 6]", provider.calls)
	}
}

func TestGetTransactionsStopsAtStreamEnd(t *testing.T) {
	provider := &pagedProvider{payloads: payloads(3)}
	client := NewClient(provider, rpc.RetryConfig{MaxAttempts: 1, InitialDelay: 1, MaxDelay: 1})

	txs, err := client.GetTransactions(context.Background(), 0, 10, 5)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txs) != 3 {
		t.Errorf("got %d transactions, want 3 (stream exhausted)", len(txs))
	}
}

func TestGetTransactionsDefaultsBatchToCount(t *testing.T) {
	provider := &pagedProvider{payloads: payloads(4)}
	client := NewClient(provider, rpc.RetryConfig{MaxAttempts: 1, InitialDelay: 1, MaxDelay: 1})

	txs, err := client.GetTransactions(context.Background(), 0, 4, 0)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txs) != 4 {
		t.Fatalf("got %d transactions, want 4", len(txs))
	}
	if len(provider.calls) != 1 {
		t.Errorf("pages = %d, want 1", len(provider.calls))
	}
}
