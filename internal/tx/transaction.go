// Package tx implements the wallet-side transaction entity. A Transaction is
// a shared, mutex-guarded handle whose id is cached: setters mark it stale
// and Finalize recomputes it.
package tx

import (
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/walletcore/internal/consensus"
)

type (
	Outpoint        = consensus.Outpoint
	Input           = consensus.Input
	Output          = consensus.Output
	ScriptPublicKey = consensus.ScriptPublicKey
)

var errNilTransaction = errors.New("nil transaction")

// Transaction is a shared handle to a wallet transaction. All methods are
// safe for concurrent use. The id is two-phase: setters never recompute it,
// they only clear Finalized, and ID keeps returning the last value stored by
// Finalize until Finalize runs again.
type Transaction struct {
	mu sync.Mutex

	version      uint16
	inputs       []Input
	outputs      []Output
	lockTime     uint64
	subnetworkID consensus.SubnetworkID
	gas          uint64
	payload      []byte

	id        consensus.TransactionID
	finalized bool
	// gen counts mutations so a Finalize racing a setter does not report
	// the result as current.
	gen uint64
}

// New builds a finalized transaction. It fails with common.ErrConstruction
// when the fields cannot form a canonical transaction.
func New(version uint16, inputs []Input, outputs []Output, lockTime uint64,
	subnetworkID []byte, gas uint64, payload []byte) (*Transaction, error) {
	sid, err := consensus.SubnetworkIDFromBytes(subnetworkID)
	if err != nil {
		return nil, constructionErr(fieldErr("subnetworkId", err))
	}

	t := &Transaction{
		version:      version,
		inputs:       cloneInputs(inputs),
		outputs:      cloneOutputs(outputs),
		lockTime:     lockTime,
		subnetworkID: sid,
		gas:          gas,
		payload:      slices.Clone(payload),
	}
	if _, err := t.Finalize(); err != nil {
		return nil, err
	}
	return t, nil
}

// FromConsensus copies ct into a new handle and adopts its id as is.
func FromConsensus(ct *consensus.Transaction) (*Transaction, error) {
	if ct == nil {
		return nil, constructionErr(errNilTransaction)
	}
	if err := ct.Validate(); err != nil {
		return nil, constructionErr(err)
	}
	return &Transaction{
		version:      ct.Version,
		inputs:       cloneInputs(ct.Inputs),
		outputs:      cloneOutputs(ct.Outputs),
		lockTime:     ct.LockTime,
		subnetworkID: ct.SubnetworkID,
		gas:          ct.Gas,
		payload:      slices.Clone(ct.Payload),
		id:           ct.ID(),
		finalized:    true,
	}, nil
}

// snapshot copies the current fields. The caller must not hold mu.
func (t *Transaction) snapshot() (*consensus.Transaction, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &consensus.Transaction{
		Version:      t.version,
		Inputs:       cloneInputs(t.inputs),
		Outputs:      cloneOutputs(t.outputs),
		LockTime:     t.lockTime,
		SubnetworkID: t.subnetworkID,
		Gas:          t.gas,
		Payload:      slices.Clone(t.payload),
	}, t.gen
}

// ToConsensus returns a canonical copy with a freshly computed id.
func (t *Transaction) ToConsensus() (*consensus.Transaction, error) {
	ct, _ := t.snapshot()
	if err := ct.Validate(); err != nil {
		return nil, constructionErr(err)
	}
	ct.Finalize()
	return ct, nil
}

// Finalize recomputes and caches the id. Hashing runs outside the lock; when
// two calls overlap the last one to store wins.
func (t *Transaction) Finalize() (consensus.TransactionID, error) {
	ct, gen := t.snapshot()
	if err := ct.Validate(); err != nil {
		return consensus.TransactionID{}, constructionErr(err)
	}
	id := consensus.TransactionHash(ct)

	t.mu.Lock()
	t.id = id
	t.finalized = t.gen == gen
	t.mu.Unlock()

	return id, nil
}

// ID returns the cached id. It is not refreshed by setters.
func (t *Transaction) ID() consensus.TransactionID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id
}

// Finalized reports whether the cached id matches the current fields.
func (t *Transaction) Finalized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finalized
}

// IsCoinbase reports whether the transaction belongs to the coinbase
// subnetwork.
func (t *Transaction) IsCoinbase() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.subnetworkID == consensus.SubnetworkIDCoinbase
}

// Version, Inputs, Outputs, LockTime, SubnetworkID, Gas and Payload return
// copies of the current fields.
func (t *Transaction) Version() uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

func (t *Transaction) Inputs() []Input {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneInputs(t.inputs)
}

func (t *Transaction) Outputs() []Output {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneOutputs(t.outputs)
}

func (t *Transaction) LockTime() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lockTime
}

func (t *Transaction) SubnetworkID() consensus.SubnetworkID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.subnetworkID
}

func (t *Transaction) Gas() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gas
}

func (t *Transaction) Payload() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.payload)
}

// mutate applies fn under the lock and marks the cached id stale.
func (t *Transaction) mutate(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn()
	t.gen++
	t.finalized = false
}

// SetVersion and the other setters replace a field and leave the cached id
// untouched; call Finalize to refresh it.
func (t *Transaction) SetVersion(v uint16) {
	t.mutate(func() { t.version = v })
}

// SetInputs stores a copy of in.
func (t *Transaction) SetInputs(in []Input) {
	in = cloneInputs(in)
	t.mutate(func() { t.inputs = in })
}

// SetOutputs stores a copy of out.
func (t *Transaction) SetOutputs(out []Output) {
	out = cloneOutputs(out)
	t.mutate(func() { t.outputs = out })
}

func (t *Transaction) SetLockTime(v uint64) {
	t.mutate(func() { t.lockTime = v })
}

// SetSubnetworkID fails without touching the transaction when b is not
// exactly consensus.SubnetworkIDSize bytes.
func (t *Transaction) SetSubnetworkID(b []byte) error {
	sid, err := consensus.SubnetworkIDFromBytes(b)
	if err != nil {
		return fieldErr("subnetworkId", err)
	}
	t.mutate(func() { t.subnetworkID = sid })
	return nil
}

func (t *Transaction) SetGas(v uint64) {
	t.mutate(func() { t.gas = v })
}

func (t *Transaction) SetPayload(p []byte) {
	p = slices.Clone(p)
	t.mutate(func() { t.payload = p })
}

func cloneInputs(in []Input) []Input {
	if in == nil {
		return nil
	}
	out := make([]Input, len(in))
	for i, v := range in {
		v.SignatureScript = slices.Clone(v.SignatureScript)
		out[i] = v
	}
	return out
}

func cloneOutputs(in []Output) []Output {
	if in == nil {
		return nil
	}
	out := make([]Output, len(in))
	for i, v := range in {
		v.ScriptPublicKey.Script = slices.Clone(v.ScriptPublicKey.Script)
		out[i] = v
	}
	return out
}
