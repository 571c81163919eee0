package domain

// Submission journals one transfer's progress through the retry loop.
type Submission struct {
	ID          string           `json:"id"`
	TransferID  string           `json:"transfer_id"`
	Call        string           `json:"call"`
	Attempts    int              `json:"attempts"`
	Status      SubmissionStatus `json:"status"`
	Error       string           `json:"error_msg"`
	LastAttempt uint64           `json:"last_attempt"`
	CreatedAt   uint64           `json:"created_at"`
}

type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusSucceeded SubmissionStatus = "succeeded"
	SubmissionStatusAbandoned SubmissionStatus = "abandoned"
)
