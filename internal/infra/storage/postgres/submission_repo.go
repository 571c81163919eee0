package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vietddude/relayer/internal/core/domain"
	"github.com/vietddude/relayer/internal/infra/storage"
)

// SubmissionRepo implements storage.SubmissionRepository using PostgreSQL.
type SubmissionRepo struct {
	db *DB
}

// NewSubmissionRepo creates a new PostgreSQL submission journal.
func NewSubmissionRepo(db *DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

type submissionRow struct {
	ID          string       `db:"id"`
	TransferID  string       `db:"transfer_id"`
	Call        string       `db:"call"`
	Attempts    int          `db:"attempts"`
	Status      string       `db:"status"`
	ErrorMsg    string       `db:"error_msg"`
	LastAttempt sql.NullTime `db:"last_attempt"`
	CreatedAt   time.Time    `db:"created_at"`
}

func (row submissionRow) toDomain() *domain.Submission {
	s := &domain.Submission{
		ID:         row.ID,
		TransferID: row.TransferID,
		Call:       row.Call,
		Attempts:   row.Attempts,
		Status:     domain.SubmissionStatus(row.Status),
		Error:      row.ErrorMsg,
		CreatedAt:  uint64(row.CreatedAt.Unix()),
	}
	if row.LastAttempt.Valid {
		s.LastAttempt = uint64(row.LastAttempt.Time.Unix())
	}
	return s
}

func (r *SubmissionRepo) Add(ctx context.Context, s *domain.Submission) error {
	query := `
		INSERT INTO submissions (id, transfer_id, call, attempts, status, error_msg, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	status := string(s.Status)
	if status == "" {
		status = string(domain.SubmissionStatusPending)
	}

	if _, err := r.db.ExecContext(
		ctx, query, s.ID, s.TransferID, s.Call, s.Attempts, status, s.Error,
	); err != nil {
		return fmt.Errorf("failed to add submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepo) RecordAttempt(ctx context.Context, id string, errMsg string) error {
	query := `
		UPDATE submissions
		SET attempts = attempts + 1, error_msg = $2, last_attempt = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, errMsg)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return checkFound(res)
}

func (r *SubmissionRepo) MarkSucceeded(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, domain.SubmissionStatusSucceeded, "")
}

func (r *SubmissionRepo) MarkAbandoned(ctx context.Context, id string, errMsg string) error {
	return r.setStatus(ctx, id, domain.SubmissionStatusAbandoned, errMsg)
}

func (r *SubmissionRepo) setStatus(
	ctx context.Context,
	id string,
	status domain.SubmissionStatus,
	errMsg string,
) error {
	query := `
		UPDATE submissions
		SET status = $2, error_msg = CASE WHEN $3 = '' THEN error_msg ELSE $3 END
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, string(status), errMsg)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	return checkFound(res)
}

func (r *SubmissionRepo) GetByTransfer(
	ctx context.Context,
	transferID, call string,
) (*domain.Submission, error) {
	query := `
		SELECT id, transfer_id, call, attempts, status, error_msg, last_attempt, created_at
		FROM submissions
		WHERE transfer_id = $1 AND call = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var row submissionRow
	if err := r.db.GetContext(ctx, &row, query, transferID, call); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return row.toDomain(), nil
}

func (r *SubmissionRepo) List(
	ctx context.Context,
	status domain.SubmissionStatus,
	limit int,
) ([]*domain.Submission, error) {
	query := `
		SELECT id, transfer_id, call, attempts, status, error_msg, last_attempt, created_at
		FROM submissions
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, query, string(status), limit); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	out := make([]*domain.Submission, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func checkFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrSubmissionNotFound
	}
	return nil
}
