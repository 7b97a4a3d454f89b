// Defines the messages of the ledger audit protocol.

package protocol

import "github.com/credledger/credledger-go/merkletree"

// A Reply is a ledger node's answer to a transaction read.
// The transaction with sequence number SeqNo (counting from 1) is the
// leaf at index SeqNo-1 of the ledger tree of TreeSize transactions,
// whose root is RootHash; AuditPath proves it.
//
// A node answering from a tree newer than the client's trusted
// checkpoint attaches Consistency, proving the trusted tree is a
// prefix of the one the reply is proven against.
type Reply struct {
	LedgerID    string                       `json:"ledger_id"`
	SeqNo       uint64                       `json:"seq_no"`
	Payload     []byte                       `json:"payload"`
	AuditPath   [][]byte                     `json:"audit_path"`
	TreeSize    uint64                       `json:"tree_size"`
	RootHash    []byte                       `json:"root_hash"`
	Consistency *merkletree.ConsistencyProof `json:"consistency,omitempty"`
}

// Checkpoint returns the checkpoint the reply is proven against.
func (r *Reply) Checkpoint() merkletree.Checkpoint {
	return merkletree.Checkpoint{TreeSize: r.TreeSize, RootHash: r.RootHash}
}

// Validate checks the reply is well-formed. It does not verify any proof.
func (r *Reply) Validate() error {
	if r.LedgerID == "" || r.SeqNo == 0 || r.SeqNo > r.TreeSize || len(r.RootHash) == 0 {
		return ErrMalformedMessage
	}
	if r.Consistency != nil && r.Consistency.NewSize != r.TreeSize {
		return ErrMalformedMessage
	}
	return nil
}

// A CheckpointUpdate announces a newer checkpoint of a ledger with
// a consistency proof from Proof.OldSize.
type CheckpointUpdate struct {
	LedgerID   string                       `json:"ledger_id"`
	Checkpoint merkletree.Checkpoint        `json:"checkpoint"`
	Proof      *merkletree.ConsistencyProof `json:"proof"`
}

// Validate checks the update is well-formed. It does not verify the proof.
func (u *CheckpointUpdate) Validate() error {
	if u.LedgerID == "" || u.Proof == nil || len(u.Checkpoint.RootHash) == 0 {
		return ErrMalformedMessage
	}
	if u.Proof.NewSize != u.Checkpoint.TreeSize || u.Proof.OldSize > u.Proof.NewSize {
		return ErrMalformedMessage
	}
	return nil
}
