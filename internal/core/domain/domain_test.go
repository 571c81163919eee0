package domain

import (
	"bytes"
	"testing"
)

func TestTransactionIdDeterministic(t *testing.T) {
	a := NewTransaction([]byte{1, 2, 3}, 7)
	b := NewTransaction([]byte{1, 2, 3}, 7)

	if a.Id() != b.Id() {
		t.Fatal("same transaction must hash to same id")
	}

	c := NewTransaction([]byte{1, 2, 3}, 8)
	if a.Id() == c.Id() {
		t.Fatal("sequence number must affect the id")
	}
}

func TestBundleRoundTrip(t *testing.T) {
	tx := NewTransaction([]byte{9}, 4)

	got, err := NewBundle(tx).IntoTransaction()
	if err != nil {
		t.Fatal(err)
	}
	if got.Id() != tx.Id() {
		t.Fatal("bundle round trip must preserve the transaction")
	}

	multi := AtomicTransactionBundle{
		Transactions: []TransactionEntry{{Data: tx}, {Data: tx}},
	}
	if _, err := multi.IntoTransaction(); err == nil {
		t.Fatal("expected error for multi-transaction bundle")
	}
}

func TestBlockIdChainsTransactions(t *testing.T) {
	tx := NewTransaction([]byte{0}, 0)
	block := NewBlock(BlockMetadataDefault, []byte{0}, []Transaction{tx})

	id := block.Id()
	block.AddTransaction(NewTransaction([]byte{1}, 1))
	if block.Id() == id {
		t.Fatal("adding a transaction must change the block id")
	}
}

func TestCommitmentFromBytes(t *testing.T) {
	if _, err := CommitmentFromBytes(make([]byte, 16)); err == nil {
		t.Fatal("expected error for short input")
	}

	data := bytes.Repeat([]byte{0xab}, 40)
	c, err := CommitmentFromBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	if c[0] != 0xab || c[31] != 0xab {
		t.Fatalf("commitment bytes wrong: %s", c)
	}
}

func TestTransferFromTransaction(t *testing.T) {
	tx := NewTransaction([]byte("payload"), 3)
	tr := TransferFromTransaction(tx, 120, 50)

	if tr.ID != tx.Id() {
		t.Fatal("transfer id must be the transaction id")
	}
	if tr.HashLock != NewHashLock([]byte("payload")) {
		t.Fatal("hash lock must be derived from payload")
	}
	if tr.Status != TransferStatusPending {
		t.Fatalf("new transfer must be pending, got %s", tr.Status)
	}
}
