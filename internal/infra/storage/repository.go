package storage

import (
	"context"
	"errors"

	"github.com/vietddude/relayer/internal/core/domain"
)

// ErrSubmissionNotFound is returned when a submission doesn't exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionRepository journals transfer submissions for the reporting
// surface. The retry engine itself never touches storage; the submitter
// records around it.
type SubmissionRepository interface {
	// Add journals a new pending submission.
	Add(ctx context.Context, s *domain.Submission) error

	// RecordAttempt increments the attempt count and stores the last error
	// text, empty on success.
	RecordAttempt(ctx context.Context, id string, errMsg string) error

	// MarkSucceeded finishes a submission.
	MarkSucceeded(ctx context.Context, id string) error

	// MarkAbandoned finishes a submission that terminally failed.
	MarkAbandoned(ctx context.Context, id string, errMsg string) error

	// GetByTransfer returns the submission journaled for a transfer and
	// call, or ErrSubmissionNotFound.
	GetByTransfer(ctx context.Context, transferID, call string) (*domain.Submission, error)

	// List returns submissions by status, newest first.
	List(ctx context.Context, status domain.SubmissionStatus, limit int) ([]*domain.Submission, error)
}
