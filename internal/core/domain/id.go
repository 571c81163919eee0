package domain

import "encoding/hex"

// Id is a 32-byte content-derived identifier for blocks and transactions.
type Id [32]byte

// GenesisBlock returns the id of the genesis block.
func GenesisBlock() Id {
	return Id{}
}

// Bytes returns the id as a byte slice.
func (id Id) Bytes() []byte {
	return id[:]
}

func (id Id) String() string {
	return hex.EncodeToString(id[:])
}
