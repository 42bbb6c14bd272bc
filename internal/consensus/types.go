// Package consensus holds the canonical transaction types and the hash that
// gives a transaction its identity. The wallet layer treats TransactionHash
// as an opaque pure function.
package consensus

import (
	"encoding/hex"
	"fmt"
	"slices"
)

const (
	TransactionIDSize = 32
	SubnetworkIDSize  = 20

	// MaxScriptPublicKeySize bounds an output script.
	MaxScriptPublicKeySize = 10_000
	// MaxSignatureScriptSize bounds an input signature script.
	MaxSignatureScriptSize = 10_000
)

// TransactionID is the canonical hash of a transaction.
type TransactionID [TransactionIDSize]byte

func (id TransactionID) String() string {
	return hex.EncodeToString(id[:])
}

func (id TransactionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *TransactionID) UnmarshalText(b []byte) error {
	parsed, err := ParseTransactionID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseTransactionID decodes a 64 character hex string.
func ParseTransactionID(s string) (TransactionID, error) {
	var id TransactionID
	if hex.DecodedLen(len(s)) != TransactionIDSize {
		return id, fmt.Errorf("transaction id must be %d hex characters, got %d", 2*TransactionIDSize, len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("transaction id: %w", err)
	}
	return id, nil
}

// Outpoint references an output of a previous transaction.
type Outpoint struct {
	TransactionID TransactionID
	Index         uint32
}

type Input struct {
	PreviousOutpoint Outpoint
	SignatureScript  []byte
	Sequence         uint64
	SigOpCount       uint8
}

type ScriptPublicKey struct {
	Version uint16
	Script  []byte
}

func (s ScriptPublicKey) Equal(o ScriptPublicKey) bool {
	return s.Version == o.Version && slices.Equal(s.Script, o.Script)
}

type Output struct {
	Value           uint64
	ScriptPublicKey ScriptPublicKey
}

// Transaction is the canonical form of a transaction. Construct it with
// NewTransaction so that ID is populated.
type Transaction struct {
	Version      uint16
	Inputs       []Input
	Outputs      []Output
	LockTime     uint64
	SubnetworkID SubnetworkID
	Gas          uint64
	Payload      []byte

	id TransactionID
}

// NewTransaction validates the fields and returns a finalized transaction.
func NewTransaction(version uint16, inputs []Input, outputs []Output, lockTime uint64,
	subnetworkID SubnetworkID, gas uint64, payload []byte) (*Transaction, error) {
	tx := &Transaction{
		Version:      version,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     lockTime,
		SubnetworkID: subnetworkID,
		Gas:          gas,
		Payload:      payload,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	tx.Finalize()
	return tx, nil
}

// Validate checks the size limits of the scripts.
func (tx *Transaction) Validate() error {
	for i, in := range tx.Inputs {
		if len(in.SignatureScript) > MaxSignatureScriptSize {
			return fmt.Errorf("input %d: signature script of %d bytes exceeds %d",
				i, len(in.SignatureScript), MaxSignatureScriptSize)
		}
	}
	for i, out := range tx.Outputs {
		if len(out.ScriptPublicKey.Script) > MaxScriptPublicKeySize {
			return fmt.Errorf("output %d: script public key of %d bytes exceeds %d",
				i, len(out.ScriptPublicKey.Script), MaxScriptPublicKeySize)
		}
	}
	return nil
}

// Finalize recomputes the cached id from the current fields.
func (tx *Transaction) Finalize() {
	tx.id = TransactionHash(tx)
}

// ID returns the id cached by the last Finalize.
func (tx *Transaction) ID() TransactionID {
	return tx.id
}

// IsCoinbase reports whether tx belongs to the coinbase subnetwork.
func (tx *Transaction) IsCoinbase() bool {
	return tx.SubnetworkID == SubnetworkIDCoinbase
}
