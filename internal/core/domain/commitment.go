package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Commitment is a cryptographic digest over ledger state.
type Commitment [32]byte

// CommitmentFromBytes parses a commitment from the first 32 bytes of data.
func CommitmentFromBytes(data []byte) (Commitment, error) {
	var c Commitment
	if len(data) < len(c) {
		return c, fmt.Errorf("commitment needs %d bytes, got %d", len(c), len(data))
	}
	copy(c[:], data[:len(c)])
	return c, nil
}

// DigestStateProof derives a commitment from serialized state proof bytes.
func DigestStateProof(proof []byte) Commitment {
	return Commitment(sha256.Sum256(proof))
}

func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

// BlockCommitment binds a commitment to a block at a height.
type BlockCommitment struct {
	Height     uint64     `json:"height"`
	BlockId    Id         `json:"block_id"`
	Commitment Commitment `json:"commitment"`
}

// BlockCommitmentRejectionReason explains why a commitment was rejected.
type BlockCommitmentRejectionReason string

const (
	RejectionInvalidBlockId    BlockCommitmentRejectionReason = "invalid_block_id"
	RejectionInvalidCommitment BlockCommitmentRejectionReason = "invalid_commitment"
	RejectionInvalidHeight     BlockCommitmentRejectionReason = "invalid_height"
	RejectionContractError     BlockCommitmentRejectionReason = "contract_error"
)

// BlockCommitmentEvent reports a settlement decision for a commitment.
type BlockCommitmentEvent struct {
	Accepted *BlockCommitment               `json:"accepted,omitempty"`
	Height   uint64                         `json:"height,omitempty"`
	Reason   BlockCommitmentRejectionReason `json:"reason,omitempty"`
}
