package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

// AccountKind tags the derivation scheme of an account record.
type AccountKind string

const (
	AccountKindLegacy   AccountKind = "legacy"
	AccountKindBip32    AccountKind = "bip32"
	AccountKindMultiSig AccountKind = "multisig"
	AccountKindKeypair  AccountKind = "keypair"
	AccountKindHardware AccountKind = "hardware"
	AccountKindResident AccountKind = "resident"
)

// Valid reports whether k is a known account kind.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountKindLegacy, AccountKindBip32, AccountKindMultiSig,
		AccountKindKeypair, AccountKindHardware, AccountKindResident:
		return true
	}
	return false
}

func (k AccountKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown account kind %q", string(k))
	}
	return []byte(k), nil
}

func (k *AccountKind) UnmarshalText(b []byte) error {
	v := AccountKind(b)
	if !v.Valid() {
		return fmt.Errorf("unknown account kind %q", string(b))
	}
	*k = v
	return nil
}

// ParseAccountKind converts a user supplied name into an AccountKind.
func ParseAccountKind(s string) (AccountKind, error) {
	var k AccountKind
	if err := k.UnmarshalText([]byte(s)); err != nil {
		return "", err
	}
	return k, nil
}

// Account is one stored account record. PrivateKeyIndex points into a key
// store kept elsewhere; it is not key material.
type Account struct {
	PrivateKeyIndex uint32      `json:"private_key_index"`
	AccountKind     AccountKind `json:"account_kind"`
	Name            string      `json:"name"`
	Title           string      `json:"title"`
}

// Wallet is the plaintext payload persisted in a slot: an ordered list of
// account records. It is safe for concurrent use.
type Wallet struct {
	mu       sync.Mutex
	accounts []Account
}

type walletJSON struct {
	Accounts []Account `json:"accounts"`
}

// NewWallet returns a wallet holding a copy of accounts.
func NewWallet(accounts ...Account) *Wallet {
	return &Wallet{accounts: slices.Clone(accounts)}
}

// Accounts returns a snapshot of the account list.
func (w *Wallet) Accounts() []Account {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.accounts)
}

// Len returns the number of account records.
func (w *Wallet) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.accounts)
}

// AddAccount appends a record. Names need not be unique.
func (w *Wallet) AddAccount(a Account) error {
	if !a.AccountKind.Valid() {
		return fmt.Errorf("unknown account kind %q", string(a.AccountKind))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.accounts = append(w.accounts, a)
	return nil
}

// NextPrivateKeyIndex returns one past the highest index in use, or zero for
// an empty wallet.
func (w *Wallet) NextPrivateKeyIndex() uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()

	var next uint32
	for _, a := range w.accounts {
		if a.PrivateKeyIndex >= next {
			next = a.PrivateKeyIndex + 1
		}
	}
	return next
}

func (w *Wallet) MarshalJSON() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	accounts := w.accounts
	if accounts == nil {
		accounts = []Account{}
	}
	return json.Marshal(walletJSON{Accounts: accounts})
}

func (w *Wallet) UnmarshalJSON(b []byte) error {
	var v walletJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.accounts = v.Accounts
	return nil
}
