// Package memory provides an in-memory submission journal used by tests
// and by runs configured without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vietddude/relayer/internal/core/domain"
	"github.com/vietddude/relayer/internal/infra/storage"
)

// SubmissionRepo implements storage.SubmissionRepository in memory.
type SubmissionRepo struct {
	mu          sync.RWMutex
	submissions map[string]*domain.Submission
}

// NewSubmissionRepo creates an empty in-memory journal.
func NewSubmissionRepo() *SubmissionRepo {
	return &SubmissionRepo{submissions: make(map[string]*domain.Submission)}
}

func (r *SubmissionRepo) Add(ctx context.Context, s *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.submissions[s.ID] = &cp
	return nil
}

func (r *SubmissionRepo) RecordAttempt(ctx context.Context, id string, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok {
		return storage.ErrSubmissionNotFound
	}
	s.Attempts++
	s.Error = errMsg
	s.LastAttempt = uint64(time.Now().Unix())
	return nil
}

func (r *SubmissionRepo) MarkSucceeded(ctx context.Context, id string) error {
	return r.setStatus(id, domain.SubmissionStatusSucceeded, "")
}

func (r *SubmissionRepo) MarkAbandoned(ctx context.Context, id string, errMsg string) error {
	return r.setStatus(id, domain.SubmissionStatusAbandoned, errMsg)
}

func (r *SubmissionRepo) setStatus(id string, status domain.SubmissionStatus, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok {
		return storage.ErrSubmissionNotFound
	}
	s.Status = status
	if errMsg != "" {
		s.Error = errMsg
	}
	return nil
}

func (r *SubmissionRepo) GetByTransfer(
	ctx context.Context,
	transferID, call string,
) (*domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.submissions {
		if s.TransferID == transferID && s.Call == call {
			cp := *s
			return &cp, nil
		}
	}
	return nil, storage.ErrSubmissionNotFound
}

func (r *SubmissionRepo) List(
	ctx context.Context,
	status domain.SubmissionStatus,
	limit int,
) ([]*domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Submission, 0, len(r.submissions))
	for _, s := range r.submissions {
		if s.Status != status {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
