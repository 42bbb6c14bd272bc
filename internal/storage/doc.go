// Package storage persists a password-encrypted wallet blob in a slot.
//
// A Store serializes a Wallet to JSON, seals it with cryptox.Encrypt and
// hands the envelope to a Backend. Loading is the inverse. Backends only see
// ciphertext; they decide where a slot lives (a file, a table row, an object
// in a bucket, a remote slot server) and whether writes are atomic.
//
// The engine itself takes no locks: two concurrent TryStore calls against
// one slot race at the backend and the last completed write wins.
package storage
