package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/vietddude/relayer/internal/control"
	"github.com/vietddude/relayer/internal/core/config"
)

func TestGracefulShutdown(t *testing.T) {
	// Memory journal, no redis, no stream: enough to start components
	cfg := &config.AppConfig{}
	cfg.Server.Port = 18099
	cfg.Ledger.Name = "test"
	cfg.Ledger.URL = "http://localhost:18098/rpc"
	cfg.Ledger.Type = "http"
	cfg.Ledger.Timeout = time.Second

	app, err := control.NewRelayer(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize Relayer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("Failed to start Relayer: %v", err)
	}

	// Give the proof server a moment to come up
	time.Sleep(200 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		t.Fatalf("Error during shutdown: %v", err)
	}
}
