// Package common defines shared constants and sentinel errors used across
// the storage, cipher and transaction layers. Callers should use errors.Is to
// match these values; wrapping types add the slot or field involved.
package common

import "errors"

var (
	// Backend-level errors.
	ErrorNotFound = errors.New("not found")

	// Storage engine errors.
	ErrNoWalletInStorage = errors.New("no wallet in storage")

	// Cipher errors. ErrDecryptionFailed covers both a wrong password and a
	// tampered envelope.
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrKeyDerivation     = errors.New("key derivation error")

	// Transaction errors.
	ErrConstruction = errors.New("transaction construction error")
	ErrInvalidField = errors.New("invalid field")

	// Slot server auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)
