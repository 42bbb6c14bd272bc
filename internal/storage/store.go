package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/cryptox"
	"github.com/dmitrijs2005/walletcore/internal/logging"
	"github.com/dmitrijs2005/walletcore/internal/secret"
)

// Store binds a Backend to one slot.
type Store struct {
	backend Backend
	slot    string
	log     logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for slot operations.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New returns a Store persisting to slot through backend.
func New(backend Backend, slot string, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		slot:    slot,
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("slot", slot)
	return s
}

// Slot returns the slot identifier this store writes to.
func (s *Store) Slot() string { return s.slot }

// Exists reports whether the slot holds a wallet blob.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	ok, err := s.backend.Exists(ctx, s.slot)
	if err != nil {
		return false, &Error{Op: "exists", Slot: s.slot, Err: err}
	}
	return ok, nil
}

// TryLoad reads, decrypts and decodes the wallet in the slot.
//
// An absent slot yields common.ErrNoWalletInStorage. A wrong password or a
// corrupted blob yields common.ErrDecryptionFailed. Errors are returned as
// *Error and match their cause with errors.Is. pw is borrowed.
func (s *Store) TryLoad(ctx context.Context, pw *secret.Secret) (*Wallet, error) {
	ok, err := s.backend.Exists(ctx, s.slot)
	if err != nil {
		return nil, &Error{Op: "load", Slot: s.slot, Err: err}
	}
	if !ok {
		return nil, &Error{Op: "load", Slot: s.slot, Err: common.ErrNoWalletInStorage}
	}

	envelope, err := s.backend.Read(ctx, s.slot)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, &Error{Op: "load", Slot: s.slot, Err: common.ErrNoWalletInStorage}
	}
	if err != nil {
		return nil, &Error{Op: "load", Slot: s.slot, Err: fmt.Errorf("unable to read wallet data: %w", err)}
	}

	w := &Wallet{}
	if err := cryptox.DecryptJSON(envelope, pw, w); err != nil {
		s.log.Warn(ctx, "wallet load failed", "bytes", len(envelope))
		return nil, &Error{Op: "load", Slot: s.slot, Err: err}
	}

	s.log.Debug(ctx, "wallet loaded", "accounts", w.Len())
	return w, nil
}

// TryStore encrypts w and overwrites the slot. A nil w stores an empty
// wallet. pw is borrowed.
func (s *Store) TryStore(ctx context.Context, pw *secret.Secret, w *Wallet) error {
	if w == nil {
		w = NewWallet()
	}

	envelope, err := cryptox.EncryptJSON(w, pw)
	if err != nil {
		return &Error{Op: "store", Slot: s.slot, Err: err}
	}

	if err := s.backend.Write(ctx, s.slot, envelope); err != nil {
		return &Error{Op: "store", Slot: s.slot, Err: fmt.Errorf("unable to write wallet data: %w", err)}
	}

	s.log.Debug(ctx, "wallet stored", "bytes", len(envelope))
	return nil
}
