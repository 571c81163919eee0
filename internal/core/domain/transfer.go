package domain

import "crypto/sha256"

// TransferId identifies one atomic-swap bridge transfer.
type TransferId = Id

// HashLock is the digest the counterparty must reveal a preimage for.
type HashLock [32]byte

// NewHashLock derives a hash lock from a preimage.
func NewHashLock(preimage []byte) HashLock {
	return HashLock(sha256.Sum256(preimage))
}

// TransferStatus tracks a bridge transfer through the swap protocol.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusLocked    TransferStatus = "locked"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusAborted   TransferStatus = "aborted"
)

// BridgeTransfer is one lock/complete/abort unit submitted to the remote
// ledger.
type BridgeTransfer struct {
	ID        TransferId     `json:"id"`
	Initiator []byte         `json:"initiator"`
	Recipient []byte         `json:"recipient"`
	HashLock  HashLock       `json:"hash_lock"`
	TimeLock  uint64         `json:"time_lock"`
	Amount    uint64         `json:"amount"`
	Status    TransferStatus `json:"status"`
}

// TransferFromTransaction wraps an ingested transaction as a pending
// transfer: the transaction id becomes the transfer id and the hash lock is
// derived from the payload.
func TransferFromTransaction(t Transaction, timeLock, amount uint64) BridgeTransfer {
	return BridgeTransfer{
		ID:       t.Id(),
		HashLock: NewHashLock(t.Data),
		TimeLock: timeLock,
		Amount:   amount,
		Status:   TransferStatusPending,
	}
}
