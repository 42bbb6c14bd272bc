package storage

import "context"

// Backend persists opaque blobs under slot identifiers. Every write replaces
// the whole slot.
//
// An absent slot is reported by Exists returning false and by Read returning
// an error matching common.ErrorNotFound.
type Backend interface {
	Exists(ctx context.Context, slot string) (bool, error)
	Read(ctx context.Context, slot string) ([]byte, error)
	Write(ctx context.Context, slot string, data []byte) error
}
