package domain

import "crypto/sha256"

// BlockMetadata tags a block with its consensus metadata variant.
type BlockMetadata string

const BlockMetadataDefault BlockMetadata = "block_metadata"

// Block is an ordered set of transactions chained to a parent.
type Block struct {
	Metadata     BlockMetadata `json:"metadata"`
	Parent       []byte        `json:"parent"`
	Transactions []Transaction `json:"transactions"`
}

// NewBlock creates a block from its parts.
func NewBlock(metadata BlockMetadata, parent []byte, transactions []Transaction) Block {
	return Block{Metadata: metadata, Parent: parent, Transactions: transactions}
}

// Id derives the block id by chaining the parent with every transaction id.
func (b Block) Id() Id {
	h := sha256.New()
	h.Write(b.Parent)
	for _, t := range b.Transactions {
		id := t.Id()
		h.Write(id[:])
	}

	var id Id
	copy(id[:], h.Sum(nil))
	return id
}

// AddTransaction appends a transaction to the block.
func (b *Block) AddTransaction(t Transaction) {
	b.Transactions = append(b.Transactions, t)
}
