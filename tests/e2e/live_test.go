package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/vietddude/relayer/internal/control"
	"github.com/vietddude/relayer/internal/core/config"
	"github.com/vietddude/relayer/internal/core/domain"
)

// TestLiveSubmitRoundTrip drives a real batch against a live ledger RPC.
// Requires RELAYER_TEST_LEDGER_URL; a live postgres journal is used when
// RELAYER_TEST_DB_URL is also set.
func TestLiveSubmitRoundTrip(t *testing.T) {
	ledgerURL := os.Getenv("RELAYER_TEST_LEDGER_URL")
	if ledgerURL == "" {
		t.Skip("RELAYER_TEST_LEDGER_URL not set, skipping live test")
	}

	cfg := &config.AppConfig{}
	cfg.Server.Port = 18097
	cfg.Ledger.Name = "live"
	cfg.Ledger.URL = ledgerURL
	cfg.Ledger.Type = "http"
	cfg.Ledger.Timeout = 10 * time.Second
	cfg.Ledger.MaxAttempts = 2
	cfg.Database.URL = os.Getenv("RELAYER_TEST_DB_URL")
	cfg.Submitter.ChunkSize = 2
	cfg.Submitter.MaxRounds = 2

	app, err := control.NewRelayer(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize Relayer: %v", err)
	}
	defer app.Stop(context.Background())

	transfers := []domain.BridgeTransfer{
		domain.TransferFromTransaction(domain.NewTransaction([]byte("live-a"), 1), 3600, 10),
		domain.TransferFromTransaction(domain.NewTransaction([]byte("live-b"), 2), 3600, 20),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := app.Submitter().Submit(ctx, transfers)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	done := 0
	for _, g := range result {
		for _, o := range g {
			if o.IsDone() {
				done++
			}
		}
	}
	if done != len(transfers) {
		t.Errorf("Expected %d settled transfers, got %d", len(transfers), done)
	}
}
