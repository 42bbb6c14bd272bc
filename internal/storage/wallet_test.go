package storage

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallet_JSONShape(t *testing.T) {
	w := NewWallet(Account{PrivateKeyIndex: 1, AccountKind: AccountKindBip32, Name: "n", Title: "t"})

	b, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"accounts":[{"private_key_index":1,"account_kind":"bip32","name":"n","title":"t"}]}`,
		string(b))

	b, err = json.Marshal(NewWallet())
	require.NoError(t, err)
	assert.JSONEq(t, `{"accounts":[]}`, string(b))
}

func TestWallet_UnmarshalRejectsUnknownKind(t *testing.T) {
	var w Wallet
	err := json.Unmarshal([]byte(`{"accounts":[{"private_key_index":0,"account_kind":"quantum","name":"","title":""}]}`), &w)
	require.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"accounts":null}`), &w))
	assert.Equal(t, 0, w.Len())
}

func TestWallet_AddAccount(t *testing.T) {
	w := NewWallet()
	assert.Equal(t, uint32(0), w.NextPrivateKeyIndex())

	require.NoError(t, w.AddAccount(Account{PrivateKeyIndex: 4, AccountKind: AccountKindLegacy, Name: "dup"}))
	require.NoError(t, w.AddAccount(Account{PrivateKeyIndex: 2, AccountKind: AccountKindMultiSig, Name: "dup"}))
	require.Error(t, w.AddAccount(Account{AccountKind: "nope"}))

	assert.Equal(t, 2, w.Len())
	assert.Equal(t, uint32(5), w.NextPrivateKeyIndex())

	snapshot := w.Accounts()
	snapshot[0].Name = "changed"
	assert.Equal(t, "dup", w.Accounts()[0].Name, "Accounts must return a copy")
}

func TestWallet_ConcurrentAdd(t *testing.T) {
	w := NewWallet()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = w.AddAccount(Account{PrivateKeyIndex: uint32(i), AccountKind: AccountKindBip32})
			_, _ = json.Marshal(w)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 32, w.Len())
}

func TestParseAccountKind(t *testing.T) {
	for _, name := range []string{"legacy", "bip32", "multisig", "keypair", "hardware", "resident"} {
		k, err := ParseAccountKind(name)
		require.NoError(t, err)
		assert.Equal(t, AccountKind(name), k)
	}

	_, err := ParseAccountKind("Bip32")
	require.Error(t, err)
}
