package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vietddude/relayer/internal/core/domain"
	"github.com/vietddude/relayer/internal/infra/rpc"
)

// ==== Mocks ====

type fakeProvider struct {
	methods []string
	params  [][]any
	err     error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	p.methods = append(p.methods, method)
	p.params = append(p.params, params)
	if p.err != nil {
		return nil, p.err
	}
	return json.RawMessage(`{"hash":"0xabc"}`), nil
}

func (p *fakeProvider) Close() error { return nil }

func fastRetry() rpc.RetryConfig {
	return rpc.RetryConfig{MaxAttempts: 2, InitialDelay: 1, MaxDelay: 1}
}

func testTransfer(seq uint64) domain.BridgeTransfer {
	t := domain.TransferFromTransaction(
		domain.NewTransaction([]byte("payload"), seq), 3600, 100)
	t.Initiator = []byte{0x01}
	t.Recipient = []byte{0x02}
	return t
}

// ==== Tests ====

func TestClientLockBuildsEntryFunctionCall(t *testing.T) {
	provider := &fakeProvider{}
	client := NewClient(provider, fastRetry())

	transfer := testTransfer(1)
	if err := client.Lock(context.Background(), transfer); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	if len(provider.methods) != 1 || provider.methods[0] != "ledger_submitEntryFunction" {
		t.Fatalf("methods = %v", provider.methods)
	}
	entry, ok := provider.params[0][0].(map[string]any)
	if !ok {
		t.Fatalf("param 0 is %T, want map", provider.params[0][0])
	}
	if entry["module"] != counterpartyModule {
		t.Errorf("module = %v", entry["module"])
	}
	if entry["function"] != CallLock {
		t.Errorf("function = %v", entry["function"])
	}
	if entry["bridge_transfer_id"] != transfer.ID.String() {
		t.Errorf("bridge_transfer_id = %v", entry["bridge_transfer_id"])
	}
	if entry["initiator"] != "01" || entry["recipient"] != "02" {
		t.Errorf("addresses = %v / %v", entry["initiator"], entry["recipient"])
	}
}

func TestClientCompleteCarriesPreimage(t *testing.T) {
	provider := &fakeProvider{}
	client := NewClient(provider, fastRetry())

	id := domain.NewTransaction([]byte("x"), 0).Id()
	if err := client.Complete(context.Background(), id, []byte{0xbe, 0xef}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	entry := provider.params[0][0].(map[string]any)
	if entry["function"] != CallComplete {
		t.Errorf("function = %v", entry["function"])
	}
	if entry["preimage"] != "beef" {
		t.Errorf("preimage = %v", entry["preimage"])
	}
}

func TestClientSurfacesFatalErrorWithoutRetry(t *testing.T) {
	provider := &fakeProvider{err: errors.New("forbidden (403)")}
	client := NewClient(provider, fastRetry())

	err := client.Abort(context.Background(), testTransfer(2).ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "forbidden") {
		t.Errorf("error = %v", err)
	}
	if len(provider.methods) != 1 {
		t.Errorf("calls = %d, want 1 (fatal errors must not retry)", len(provider.methods))
	}
}
