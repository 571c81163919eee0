// Package control wires the relayer's components together and manages
// their lifecycle.
package control

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/vietddude/relayer/internal/bridge"
	"github.com/vietddude/relayer/internal/core/config"
	"github.com/vietddude/relayer/internal/core/domain"
	redisclient "github.com/vietddude/relayer/internal/infra/redis"
	"github.com/vietddude/relayer/internal/infra/rpc"
	"github.com/vietddude/relayer/internal/infra/storage"
	"github.com/vietddude/relayer/internal/infra/storage/memory"
	"github.com/vietddude/relayer/internal/infra/storage/postgres"
	"github.com/vietddude/relayer/internal/proof"
	"github.com/vietddude/relayer/internal/stream"
)

// Relayer is the main application struct managing component lifecycle.
type Relayer struct {
	cfg *config.AppConfig

	db          *postgres.DB
	redisClient *redisclient.Client
	provider    rpc.Provider
	streamProv  rpc.Provider

	journal     storage.SubmissionRepository
	submitter   *bridge.Submitter
	streamer    *stream.Client
	proofServer *proof.Server

	nextVersion uint64
	log         *slog.Logger
}

// NewRelayer creates a relayer with all dependencies initialized.
func NewRelayer(cfg *config.AppConfig) (*Relayer, error) {

	// 1. Initialize Storage
	var journal storage.SubmissionRepository
	var db *postgres.DB

	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		// Migrations live in "migrations" relative to CWD
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		journal = postgres.NewSubmissionRepo(db)
		slog.Info("Using PostgreSQL journal")
	} else {
		journal = memory.NewSubmissionRepo()
		slog.Info("Using Memory journal")
	}

	// 2. Initialize Ledger Provider
	retryCfg := rpc.DefaultRetryConfig
	if cfg.Ledger.MaxAttempts > 0 {
		retryCfg.MaxAttempts = cfg.Ledger.MaxAttempts
	}
	if cfg.Ledger.InitialDelay > 0 {
		retryCfg.InitialDelay = cfg.Ledger.InitialDelay
	}
	if cfg.Ledger.MaxDelay > 0 {
		retryCfg.MaxDelay = cfg.Ledger.MaxDelay
	}

	var provider rpc.Provider
	if cfg.Ledger.Type == "grpc" {
		grpcProvider, err := rpc.NewGRPCProvider(cfg.Ledger.Name, cfg.Ledger.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create grpc provider: %w", err)
		}
		provider = grpcProvider
	} else {
		provider = rpc.NewHTTPProvider(cfg.Ledger.Name, cfg.Ledger.URL, cfg.Ledger.Timeout)
	}

	// 3. Initialize Redis Fence
	var redisClient *redisclient.Client
	var fence bridge.Fence
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("Failed to connect to Redis, deduplication disabled", "error", err)
		} else {
			fence = redisClient
		}
	}

	// 4. Initialize Submitter and Proof Server
	client := bridge.NewClient(provider, retryCfg)
	submitter := bridge.NewSubmitter(client, journal, fence, cfg.Submitter)

	reader := proof.NewRPCReader(provider, retryCfg)
	proofServer := proof.NewServer(reader, cfg.Server.Port)

	// 5. Initialize Ingestion Stream
	var streamer *stream.Client
	var streamProv rpc.Provider
	if cfg.Stream.URL != "" {
		grpcProvider, err := rpc.NewGRPCProvider("indexer", cfg.Stream.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create stream provider: %w", err)
		}
		streamProv = grpcProvider
		streamer = stream.NewClient(streamProv, retryCfg)
	}

	return &Relayer{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
		provider:    provider,
		streamProv:  streamProv,
		journal:     journal,
		submitter:   submitter,
		streamer:    streamer,
		proofServer: proofServer,
		nextVersion: cfg.Stream.StartingVersion,
		log:         slog.Default().With("component", "relayer"),
	}, nil
}

// Submitter exposes the wired submitter for callers driving ad-hoc
// batches.
func (r *Relayer) Submitter() *bridge.Submitter {
	return r.submitter
}

// Start starts the relayer and all its components.
func (r *Relayer) Start(ctx context.Context) error {
	go func() {
		if err := r.proofServer.Start(); err != nil {
			r.log.Error("Proof server failed", "error", err)
		}
	}()

	if r.streamer != nil {
		go r.runIngestLoop(ctx)
	}

	return nil
}

// Stop stops the relayer.
func (r *Relayer) Stop(ctx context.Context) error {
	r.log.Info("Stopping Relayer...")

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			r.log.Warn("Failed to close Redis", "error", err)
		}
	}
	if r.streamProv != nil {
		if err := r.streamProv.Close(); err != nil {
			r.log.Warn("Failed to close stream provider", "error", err)
		}
	}
	if err := r.provider.Close(); err != nil {
		r.log.Warn("Failed to close ledger provider", "error", err)
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			r.log.Warn("Failed to close database", "error", err)
		}
	}

	return r.proofServer.Stop(ctx)
}

// runIngestLoop pulls transaction batches from the indexer and drives
// each through the submitter until the context ends.
func (r *Relayer) runIngestLoop(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.ingestOnce(ctx); err != nil {
				r.log.Error("Ingest cycle failed", "error", err)
			}
		}
	}
}

func (r *Relayer) ingestOnce(ctx context.Context) error {
	batchSize := r.cfg.Stream.BatchSize
	txs, err := r.streamer.GetTransactions(ctx, r.nextVersion, batchSize, batchSize)
	if err != nil {
		return fmt.Errorf("fetch batch at %d: %w", r.nextVersion, err)
	}
	if len(txs) == 0 {
		return nil
	}

	transfers := make([]domain.BridgeTransfer, len(txs))
	for i, tx := range txs {
		transfers[i] = toTransfer(tx)
	}

	r.log.Info("Submitting ingested batch",
		"starting_version", r.nextVersion, "count", len(transfers))
	if _, err := r.submitter.Submit(ctx, transfers); err != nil {
		return fmt.Errorf("submit batch at %d: %w", r.nextVersion, err)
	}

	r.nextVersion += uint64(len(txs))
	return nil
}

// Transfer payloads open with a little-endian amount followed by an
// amount-relative time lock, both u64; short payloads carry zeros.
func toTransfer(tx domain.Transaction) domain.BridgeTransfer {
	var amount, timeLock uint64
	if len(tx.Data) >= 8 {
		amount = binary.LittleEndian.Uint64(tx.Data[:8])
	}
	if len(tx.Data) >= 16 {
		timeLock = binary.LittleEndian.Uint64(tx.Data[8:16])
	}
	return domain.TransferFromTransaction(tx, timeLock, amount)
}
