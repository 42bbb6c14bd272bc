// Package memstore is an in-process slot backend. It stands in for the
// browser key-value store on sandboxed runtimes and backs tests elsewhere.
//
// Like a browser storage area it keeps values as strings, so blobs are held
// base64 encoded.
package memstore

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/walletcore/internal/common"
)

type Store struct {
	mu    sync.RWMutex
	items map[string]string
}

func New() *Store {
	return &Store{items: make(map[string]string)}
}

func (s *Store) Exists(_ context.Context, slot string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[slot]
	return ok, nil
}

func (s *Store) Read(_ context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	enc, ok := s.items[slot]
	s.mu.RUnlock()

	if !ok {
		return nil, common.ErrorNotFound
	}

	data, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("decode slot %q: %w", slot, err)
	}
	return data, nil
}

func (s *Store) Write(_ context.Context, slot string, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[slot] = enc
	return nil
}

// Delete removes a slot. Removing an absent slot is not an error.
func (s *Store) Delete(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, slot)
	return nil
}

// Slots returns the number of stored slots.
func (s *Store) Slots() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
