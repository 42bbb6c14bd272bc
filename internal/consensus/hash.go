package consensus

import (
	"encoding/binary"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// transactionIDKey keys the BLAKE2b instance so transaction ids live in
// their own hash domain.
var transactionIDKey = []byte("TransactionID")

// Hasher writes little-endian canonical encodings into a keyed BLAKE2b-256.
type Hasher struct {
	h   hash.Hash
	buf [8]byte
}

// NewTransactionIDHasher returns a Hasher for transaction ids.
func NewTransactionIDHasher() *Hasher {
	h, err := blake2b.New256(transactionIDKey)
	if err != nil {
		panic(err)
	}
	return &Hasher{h: h}
}

var hasherPool = &sync.Pool{New: func() any { return NewTransactionIDHasher() }}

func (h *Hasher) Reset() { h.h.Reset() }

func (h *Hasher) Write(p []byte) (int, error) { return h.h.Write(p) }

func (h *Hasher) WriteUint8(u uint8) {
	h.buf[0] = u
	h.h.Write(h.buf[:1])
}

func (h *Hasher) WriteUint16(u uint16) {
	binary.LittleEndian.PutUint16(h.buf[:2], u)
	h.h.Write(h.buf[:2])
}

func (h *Hasher) WriteUint32(u uint32) {
	binary.LittleEndian.PutUint32(h.buf[:4], u)
	h.h.Write(h.buf[:4])
}

func (h *Hasher) WriteUint64(u uint64) {
	binary.LittleEndian.PutUint64(h.buf[:8], u)
	h.h.Write(h.buf[:8])
}

// WriteVarBytes writes a uint64 length prefix followed by b.
func (h *Hasher) WriteVarBytes(b []byte) {
	h.WriteUint64(uint64(len(b)))
	h.h.Write(b)
}

func (h *Hasher) WriteOutpoint(o Outpoint) {
	h.h.Write(o.TransactionID[:])
	h.WriteUint32(o.Index)
}

// Sum returns the digest of everything written so far.
func (h *Hasher) Sum() TransactionID {
	var id TransactionID
	h.h.Sum(id[:0])
	return id
}

// TransactionHash computes the canonical id of tx. Signature scripts and
// signature operation counts are not committed to, so signing does not
// change the id.
func TransactionHash(tx *Transaction) TransactionID {
	h := hasherPool.Get().(*Hasher)
	defer hasherPool.Put(h)
	h.Reset()

	h.WriteUint16(tx.Version)

	h.WriteUint64(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		h.WriteOutpoint(in.PreviousOutpoint)
		h.WriteVarBytes(nil)
		h.WriteUint64(in.Sequence)
	}

	h.WriteUint64(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		h.WriteUint64(out.Value)
		h.WriteUint16(out.ScriptPublicKey.Version)
		h.WriteVarBytes(out.ScriptPublicKey.Script)
	}

	h.WriteUint64(tx.LockTime)
	h.Write(tx.SubnetworkID[:])
	h.WriteUint64(tx.Gas)
	h.WriteVarBytes(tx.Payload)

	return h.Sum()
}
