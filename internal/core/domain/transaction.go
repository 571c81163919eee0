package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Transaction is one unit of ledger payload flowing through the relayer.
type Transaction struct {
	Data           []byte `json:"data"`
	SequenceNumber uint64 `json:"sequence_number"`
}

// NewTransaction creates a transaction from raw data and a sequence number.
func NewTransaction(data []byte, sequenceNumber uint64) Transaction {
	return Transaction{Data: data, SequenceNumber: sequenceNumber}
}

// TransactionEntry attributes a transaction to the consumer that submitted
// it.
type TransactionEntry struct {
	ConsumerID Id          `json:"consumer_id"`
	Data       Transaction `json:"data"`
}

// AtomicTransactionBundle groups transactions that must settle together
// under one sequencer.
type AtomicTransactionBundle struct {
	SequencerID  Id                 `json:"sequencer_id"`
	Transactions []TransactionEntry `json:"transactions"`
}

// NewBundle wraps a single transaction in a bundle with zero ids.
func NewBundle(t Transaction) AtomicTransactionBundle {
	return AtomicTransactionBundle{
		Transactions: []TransactionEntry{{Data: t}},
	}
}

// IntoTransaction unwraps a single-transaction bundle; bundles holding any
// other count cannot be reduced to one transaction.
func (b AtomicTransactionBundle) IntoTransaction() (Transaction, error) {
	if len(b.Transactions) != 1 {
		return Transaction{}, fmt.Errorf(
			"bundle must contain exactly one transaction, has %d", len(b.Transactions))
	}
	return b.Transactions[0].Data, nil
}

// Id derives the transaction id from its data and sequence number.
func (t Transaction) Id() Id {
	h := sha256.New()
	h.Write(t.Data)
	var seq [8]byte
	binary.LittleEndian.PutUint64(seq[:], t.SequenceNumber)
	h.Write(seq[:])

	var id Id
	copy(id[:], h.Sum(nil))
	return id
}
