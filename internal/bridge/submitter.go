package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/relayer/internal/core/domain"
	"github.com/vietddude/relayer/internal/grouping"
	"github.com/vietddude/relayer/internal/infra/storage"
	"github.com/vietddude/relayer/internal/metrics"
)

// Locker executes the lock call for one transfer. Implemented by Client;
// faked in tests.
type Locker interface {
	Lock(ctx context.Context, t domain.BridgeTransfer) error
}

// Fence suppresses duplicate ledger calls for the same transfer. Retries
// are a normal control path, so every attempt is fenced before it goes
// out; a held fence means an earlier attempt already landed.
type Fence interface {
	Acquire(ctx context.Context, transferID, call string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, transferID, call string) error
}

// SeedPolicy selects the initial grouping of a batch.
type SeedPolicy string

const (
	// SeedSingle places the whole batch into one group, the historical
	// default.
	SeedSingle SeedPolicy = "single"
	// SeedChunked seeds the batch pre-chunked to the configured size.
	SeedChunked SeedPolicy = "chunked"
)

// Config tunes the submitter's grouping stack.
type Config struct {
	// ChunkSize bounds elements per group each round.
	ChunkSize int `yaml:"chunk_size"`
	// MaxRounds bounds retries: instrumental failures still present after
	// this many rounds are abandoned. Zero disables the bound, which
	// risks a live batch cycling forever and should not ship.
	MaxRounds int `yaml:"max_rounds"`
	// MaxBatchAmount, when set, re-packs groups so the summed transfer
	// amount per group stays under this value.
	MaxBatchAmount uint64 `yaml:"max_batch_amount"`
	// Seed selects the initial grouping policy.
	Seed SeedPolicy `yaml:"seed"`
	// FenceTTL is how long a submission fence suppresses duplicates.
	FenceTTL time.Duration `yaml:"fence_ttl"`
}

// Submitter drives batches of transfers through the grouping retry loop.
type Submitter struct {
	client  Locker
	journal storage.SubmissionRepository
	fence   Fence
	cfg     Config
	log     *slog.Logger
}

// NewSubmitter creates a submitter. fence may be nil when no redis is
// configured; deduplication then falls to the ledger's own idempotency.
func NewSubmitter(
	client Locker,
	journal storage.SubmissionRepository,
	fence Fence,
	cfg Config,
) *Submitter {
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = 16
	}
	if cfg.FenceTTL <= 0 {
		cfg.FenceTTL = 10 * time.Minute
	}
	return &Submitter{
		client:  client,
		journal: journal,
		fence:   fence,
		cfg:     cfg,
		log:     slog.Default().With("component", "submitter"),
	}
}

// amountWeight converts a transfer amount to a packing weight without
// wrapping around for amounts past the signed range.
func amountWeight(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// roundCounter observes loop progress; it never changes the distribution.
type roundCounter struct{ rounds int }

func (r *roundCounter) Distribute(
	dist grouping.Distribution[domain.BridgeTransfer],
) (grouping.Distribution[domain.BridgeTransfer], error) {
	r.rounds++
	metrics.RoundsTotal.Inc()
	return dist, nil
}

// Submit runs the retry loop over one batch of transfers until every
// transfer succeeded or terminally failed, and returns the final
// distribution for the reporting surface.
func (s *Submitter) Submit(
	ctx context.Context,
	transfers []domain.BridgeTransfer,
) (grouping.Distribution[domain.BridgeTransfer], error) {
	if len(transfers) == 0 {
		return nil, nil
	}

	// Journal rows and the fence are both keyed by transfer id, so a batch
	// carrying the same transfer twice cannot be accounted for. Checked
	// before any row is written.
	journalIDs := make(map[string]string, len(transfers))
	for _, t := range transfers {
		if _, ok := journalIDs[t.ID.String()]; ok {
			return nil, fmt.Errorf("duplicate transfer %s in batch", t.ID)
		}
		journalIDs[t.ID.String()] = ""
	}

	for _, t := range transfers {
		sub := &domain.Submission{
			ID:         uuid.New().String(),
			TransferID: t.ID.String(),
			Call:       CallLock,
			Status:     domain.SubmissionStatusPending,
			CreatedAt:  uint64(time.Now().Unix()),
		}
		if err := s.journal.Add(ctx, sub); err != nil {
			return nil, fmt.Errorf("journal batch: %w", err)
		}
		journalIDs[sub.TransferID] = sub.ID
	}

	counter := &roundCounter{}
	heuristics := []grouping.Heuristic[domain.BridgeTransfer]{
		counter,
		grouping.NewChunking[domain.BridgeTransfer](s.cfg.ChunkSize),
	}
	if s.cfg.MaxBatchAmount > 0 {
		heuristics = append(heuristics, grouping.NewBinPacking(
			amountWeight(s.cfg.MaxBatchAmount),
			func(t domain.BridgeTransfer) int64 { return amountWeight(t.Amount) },
		))
	}
	if s.cfg.MaxRounds > 0 {
		heuristics = append(heuristics,
			grouping.NewEscalate[domain.BridgeTransfer](s.cfg.MaxRounds))
	}
	stack := grouping.NewStack(heuristics...)

	result, err := stack.RunSequential(ctx, s.seed(transfers), s.processGroup(journalIDs))
	if err != nil {
		return nil, fmt.Errorf("submit batch: %w", err)
	}

	s.finish(ctx, result, journalIDs, counter.rounds)
	return result, nil
}

func (s *Submitter) seed(
	transfers []domain.BridgeTransfer,
) grouping.Distribution[domain.BridgeTransfer] {
	if s.cfg.Seed == SeedChunked {
		dist := make(grouping.Distribution[domain.BridgeTransfer], 0,
			(len(transfers)+s.cfg.ChunkSize-1)/s.cfg.ChunkSize)
		for start := 0; start < len(transfers); start += s.cfg.ChunkSize {
			end := min(start+s.cfg.ChunkSize, len(transfers))
			dist = append(dist, grouping.NewApplyGroup(transfers[start:end]))
		}
		return dist
	}
	return grouping.NewApplyDistribution(transfers)
}

func (s *Submitter) processGroup(
	journalIDs map[string]string,
) grouping.ProcessCtxFunc[domain.BridgeTransfer] {
	return func(
		ctx context.Context,
		g grouping.Group[domain.BridgeTransfer],
	) (grouping.Group[domain.BridgeTransfer], error) {
		metrics.GroupsProcessed.Inc()

		out := make(grouping.Group[domain.BridgeTransfer], len(g))
		for i, o := range g {
			if o.IsDone() {
				out[i] = o
				continue
			}

			var t domain.BridgeTransfer
			if e, ok := o.Elem(); ok {
				t = e
			} else if f, ok := o.Failure(); ok {
				t = f.IntoInner()
			}
			out[i] = s.attempt(ctx, t, journalIDs[t.ID.String()])
		}
		return out, nil
	}
}

func (s *Submitter) attempt(
	ctx context.Context,
	t domain.BridgeTransfer,
	journalID string,
) grouping.Outcome[domain.BridgeTransfer] {
	transferID := t.ID.String()

	if s.fence != nil {
		acquired, err := s.fence.Acquire(ctx, transferID, CallLock, s.cfg.FenceTTL)
		if err != nil {
			s.log.Warn("fence unavailable, submitting unfenced",
				"transfer", transferID, "error", err)
		} else if !acquired {
			// An earlier attempt already landed within the TTL window. The
			// journal row for this batch still has to be finished or the
			// reporting surface would contradict the returned outcome.
			s.log.Debug("duplicate submission suppressed", "transfer", transferID)
			metrics.SubmissionsTotal.WithLabelValues(CallLock, "deduplicated").Inc()
			if jerr := s.journal.MarkSucceeded(ctx, journalID); jerr != nil {
				s.log.Warn("journal update failed", "submission", journalID, "error", jerr)
			}
			return grouping.NewSuccess[domain.BridgeTransfer]()
		}
	}

	err := s.client.Lock(ctx, t)
	if err == nil {
		metrics.SubmissionsTotal.WithLabelValues(CallLock, "success").Inc()
		s.journalAttempt(ctx, journalID, "")
		if jerr := s.journal.MarkSucceeded(ctx, journalID); jerr != nil {
			s.log.Warn("journal update failed", "submission", journalID, "error", jerr)
		}
		return grouping.NewSuccess[domain.BridgeTransfer]()
	}

	if s.fence != nil {
		if ferr := s.fence.Release(ctx, transferID, CallLock); ferr != nil {
			s.log.Warn("fence release failed", "transfer", transferID, "error", ferr)
		}
	}
	s.journalAttempt(ctx, journalID, err.Error())

	outcome := classifyOutcome(t, err)
	if outcome.IsDone() {
		metrics.SubmissionsTotal.WithLabelValues(CallLock, "terminal").Inc()
		s.log.Error("transfer terminally failed", "transfer", transferID, "error", err)
	} else {
		metrics.SubmissionsTotal.WithLabelValues(CallLock, "instrumental").Inc()
		s.log.Debug("transfer will be retried", "transfer", transferID, "error", err)
	}
	return outcome
}

func (s *Submitter) journalAttempt(ctx context.Context, journalID, errMsg string) {
	if err := s.journal.RecordAttempt(ctx, journalID, errMsg); err != nil {
		s.log.Warn("journal update failed", "submission", journalID, "error", err)
	}
}

// finish journals abandoned transfers and reports final batch state.
func (s *Submitter) finish(
	ctx context.Context,
	result grouping.Distribution[domain.BridgeTransfer],
	journalIDs map[string]string,
	rounds int,
) {
	succeeded, abandoned := 0, 0
	for _, g := range result {
		for _, o := range g {
			if o.IsSuccess() {
				succeeded++
				continue
			}
			f, ok := o.Failure()
			if !ok || !f.IsTerminal() {
				continue
			}
			abandoned++
			t := f.IntoInner()
			id := journalIDs[t.ID.String()]
			if err := s.journal.MarkAbandoned(ctx, id, "abandoned after retries"); err != nil {
				s.log.Warn("journal update failed", "submission", id, "error", err)
			}
		}
	}

	metrics.BatchElements.WithLabelValues("succeeded").Set(float64(succeeded))
	metrics.BatchElements.WithLabelValues("abandoned").Set(float64(abandoned))
	s.log.Info("batch finished",
		"rounds", rounds, "succeeded", succeeded, "abandoned", abandoned)
}
