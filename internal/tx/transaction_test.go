package tx

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/consensus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p2pk(fill byte) ScriptPublicKey {
	script := append([]byte{0x20}, bytes.Repeat([]byte{fill}, 32)...)
	return ScriptPublicKey{Version: 0, Script: append(script, 0xac)}
}

func sampleInputs() []Input {
	var prev consensus.TransactionID
	for i := range prev {
		prev[i] = byte(i)
	}
	return []Input{{PreviousOutpoint: Outpoint{TransactionID: prev, Index: 7}, Sequence: ^uint64(0), SigOpCount: 1}}
}

func sampleOutputs() []Output {
	return []Output{{Value: 5000, ScriptPublicKey: p2pk(0xaa)}}
}

func newSample(t *testing.T) *Transaction {
	t.Helper()
	tx, err := New(1, sampleInputs(), sampleOutputs(), 42, make([]byte, 20), 0, []byte{1, 2})
	require.NoError(t, err)
	return tx
}

func TestNew_ComputesCanonicalID(t *testing.T) {
	tx := newSample(t)
	assert.True(t, tx.Finalized())
	assert.Equal(t, "8a2b711d236a53a6f80a592d056ab97b88d5317d6142d586a00baf5f603d4d8f", tx.ID().String())
}

func TestNew_ConstructionErrors(t *testing.T) {
	tests := []struct {
		name    string
		outputs []Output
		subnet  []byte
	}{
		{"short subnetwork", sampleOutputs(), make([]byte, 19)},
		{"long subnetwork", sampleOutputs(), make([]byte, 21)},
		{"oversized script", []Output{{ScriptPublicKey: ScriptPublicKey{Script: make([]byte, consensus.MaxScriptPublicKeySize+1)}}}, make([]byte, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := New(0, nil, tt.outputs, 0, tt.subnet, 0, nil)
			require.Error(t, err)
			assert.Nil(t, tx)
			assert.ErrorIs(t, err, common.ErrConstruction)
		})
	}
}

func TestTransaction_IDStableUntilFinalize(t *testing.T) {
	tx := newSample(t)
	before := tx.ID()

	tx.SetGas(10)
	tx.SetPayload([]byte("changed"))
	assert.Equal(t, before, tx.ID())
	assert.False(t, tx.Finalized())

	id, err := tx.Finalize()
	require.NoError(t, err)
	assert.NotEqual(t, before, id)
	assert.Equal(t, id, tx.ID())
	assert.True(t, tx.Finalized())
}

func TestTransaction_FinalizeIsDeterministic(t *testing.T) {
	tx := newSample(t)
	first, err := tx.Finalize()
	require.NoError(t, err)
	second, err := tx.Finalize()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTransaction_SignatureDoesNotChangeID(t *testing.T) {
	tx := newSample(t)
	before := tx.ID()

	in := tx.Inputs()
	in[0].SignatureScript = []byte{0x41, 0xde, 0xad}
	tx.SetInputs(in)

	id, err := tx.Finalize()
	require.NoError(t, err)
	assert.Equal(t, before, id)
}

func TestTransaction_IsCoinbase(t *testing.T) {
	tx := newSample(t)
	assert.False(t, tx.IsCoinbase())

	coinbase := make([]byte, 20)
	coinbase[0] = 1
	require.NoError(t, tx.SetSubnetworkID(coinbase))
	assert.True(t, tx.IsCoinbase())

	registry := make([]byte, 20)
	registry[0] = 2
	require.NoError(t, tx.SetSubnetworkID(registry))
	assert.False(t, tx.IsCoinbase())
}

func TestTransaction_SetSubnetworkIDRejectsBadLength(t *testing.T) {
	tx := newSample(t)
	for _, n := range []int{0, 19, 21, 32} {
		err := tx.SetSubnetworkID(make([]byte, n))
		require.Error(t, err, "length %d", n)
		assert.ErrorIs(t, err, common.ErrInvalidField)

		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "subnetworkId", fe.Field)
	}
	assert.True(t, tx.Finalized())
	assert.Equal(t, consensus.SubnetworkIDNative, tx.SubnetworkID())
}

func TestTransaction_AccessorsReturnCopies(t *testing.T) {
	tx := newSample(t)

	tx.Payload()[0] = 0xff
	tx.Outputs()[0].ScriptPublicKey.Script[1] = 0
	tx.Inputs()[0].Sequence = 0

	assert.Equal(t, []byte{1, 2}, tx.Payload())
	assert.Equal(t, byte(0xaa), tx.Outputs()[0].ScriptPublicKey.Script[1])
	assert.Equal(t, ^uint64(0), tx.Inputs()[0].Sequence)
}

func TestTransaction_Setters(t *testing.T) {
	tx := newSample(t)

	tx.SetVersion(3)
	tx.SetLockTime(100)
	tx.SetGas(7)
	tx.SetOutputs(nil)

	assert.Equal(t, uint16(3), tx.Version())
	assert.Equal(t, uint64(100), tx.LockTime())
	assert.Equal(t, uint64(7), tx.Gas())
	assert.Empty(t, tx.Outputs())
}

func TestTransaction_GasIsIndependentOfLockTime(t *testing.T) {
	tx := newSample(t)
	tx.SetGas(500)
	assert.Equal(t, uint64(42), tx.LockTime())
	assert.Equal(t, uint64(500), tx.Gas())
}

func TestTransaction_SharedHandle(t *testing.T) {
	tx := newSample(t)
	alias := tx

	alias.SetLockTime(1)
	assert.Equal(t, uint64(1), tx.LockTime())
	assert.False(t, tx.Finalized())
}

func TestTransaction_ConcurrentAccess(t *testing.T) {
	tx := newSample(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			tx.SetGas(uint64(i))
		}(i)
		go func() {
			defer wg.Done()
			_, err := tx.Finalize()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	id, err := tx.Finalize()
	require.NoError(t, err)
	assert.Equal(t, id, tx.ID())
	assert.True(t, tx.Finalized())
}

func TestConsensusConversion(t *testing.T) {
	tx := newSample(t)

	ct, err := tx.ToConsensus()
	require.NoError(t, err)
	assert.Equal(t, tx.ID(), ct.ID())
	assert.Equal(t, uint64(42), ct.LockTime)

	back, err := FromConsensus(ct)
	require.NoError(t, err)
	assert.Equal(t, tx.ID(), back.ID())
	assert.True(t, back.Finalized())
	assert.Equal(t, tx.Outputs(), back.Outputs())
}

func TestFromConsensus_TakesIDWithoutRehash(t *testing.T) {
	ct, err := consensus.NewTransaction(0, nil, nil, 0, consensus.SubnetworkIDNative, 0, nil)
	require.NoError(t, err)
	id := ct.ID()

	// Mutating the source without finalizing leaves its cached id behind.
	ct.Gas = 9
	tx, err := FromConsensus(ct)
	require.NoError(t, err)
	assert.Equal(t, id, tx.ID())
	assert.Equal(t, uint64(9), tx.Gas())

	_, err = FromConsensus(nil)
	assert.ErrorIs(t, err, common.ErrConstruction)
}
