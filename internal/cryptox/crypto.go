// Package cryptox implements password-based key derivation and the
// nonce-prefixed authenticated envelope used for wallet payloads.
//
// Envelope layout:
//
//	nonce (24 bytes) || XChaCha20-Poly1305 ciphertext || tag (16 bytes)
//
// The key is never stored: every Encrypt and Decrypt call derives it from
// the caller's secret with Argon2id, using SHA-256 of the secret as salt so
// that the same password always opens the same blob without a persisted salt.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/secret"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the length of the derived cipher key.
	KeySize = chacha20poly1305.KeySize

	// NonceSize is the length of the random nonce prepended to every envelope.
	NonceSize = chacha20poly1305.NonceSizeX

	// TagSize is the length of the Poly1305 authentication tag.
	TagSize = chacha20poly1305.Overhead

	// Overhead is the number of bytes an envelope adds to its plaintext.
	Overhead = NonceSize + TagSize

	// Argon2id parameters. These match the defaults of the RustCrypto argon2
	// crate so wallet files written by other clients stay readable.
	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1

	minKeyLength = 4
)

// SHA256 hashes data into a new Secret.
func SHA256(data []byte) *secret.Secret {
	sum := sha256.Sum256(data)
	s := secret.Copy(sum[:])
	secret.Wipe(sum[:])
	return s
}

// DeriveKey stretches data into length bytes with Argon2id, salted with
// SHA-256(data). The result is deterministic for a given input.
//
// It returns common.ErrKeyDerivation for output lengths the hash function
// cannot produce.
func DeriveKey(data []byte, length int) (*secret.Secret, error) {
	if length < minKeyLength || uint64(length) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: output length %d out of range", common.ErrKeyDerivation, length)
	}

	salt := SHA256(data)
	defer salt.Close()

	key := argon2.IDKey(data, salt.Bytes(), argonTime, argonMemory, argonThreads, uint32(length))
	return secret.New(key), nil
}

// Encrypt seals data under a key derived from s and returns the envelope.
// s is borrowed; the caller still owns and closes it.
func Encrypt(data []byte, s *secret.Secret) ([]byte, error) {
	key, err := DeriveKey(s.Bytes(), KeySize)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	return seal(key, data)
}

// Decrypt opens an envelope produced by Encrypt. A wrong secret and a
// modified envelope are both reported as common.ErrDecryptionFailed; input
// too short to hold a nonce and a tag is common.ErrMalformedEnvelope.
func Decrypt(envelope []byte, s *secret.Secret) ([]byte, error) {
	if len(envelope) < Overhead {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			common.ErrMalformedEnvelope, len(envelope), Overhead)
	}

	key, err := DeriveKey(s.Bytes(), KeySize)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	return open(key, envelope)
}

// seal encrypts data under an already derived key with a fresh nonce.
func seal(key *secret.Secret, data []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyDerivation, err)
	}

	out := make([]byte, NonceSize, NonceSize+len(data)+TagSize)
	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("unable to generate nonce: %w", err)
	}

	return aead.Seal(out, out[:NonceSize], data, nil), nil
}

// open splits the nonce off envelope and authenticates the remainder.
func open(key *secret.Secret, envelope []byte) ([]byte, error) {
	if len(envelope) < Overhead {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			common.ErrMalformedEnvelope, len(envelope), Overhead)
	}

	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyDerivation, err)
	}

	nonce := envelope[:NonceSize]
	ciphertext := envelope[NonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrDecryptionFailed
	}
	return plaintext, nil
}

// EncryptJSON serializes v to JSON and seals it. The intermediate plaintext
// is wiped before returning.
func EncryptJSON(v any, s *secret.Secret) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize payload: %w", err)
	}
	defer secret.Wipe(plaintext)

	return Encrypt(plaintext, s)
}

// DecryptJSON opens envelope and unmarshals the JSON plaintext into v.
func DecryptJSON(envelope []byte, s *secret.Secret, v any) error {
	plaintext, err := Decrypt(envelope, s)
	if err != nil {
		return err
	}
	defer secret.Wipe(plaintext)

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("unable to deserialize payload: %w", err)
	}
	return nil
}

// EncryptString encrypts text with a key derived from SHA-256(password) and
// returns the envelope in standard base64.
func EncryptString(text, password string) (string, error) {
	pw := secret.FromString(password)
	defer pw.Close()

	key := SHA256(pw.Bytes())
	defer key.Close()

	envelope, err := Encrypt([]byte(text), key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(envelope), nil
}

// DecryptString reverses EncryptString.
func DecryptString(text, password string) (string, error) {
	envelope, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrMalformedEnvelope, err)
	}

	pw := secret.FromString(password)
	defer pw.Close()

	key := SHA256(pw.Bytes())
	defer key.Close()

	plaintext, err := Decrypt(envelope, key)
	if err != nil {
		return "", err
	}
	defer secret.Wipe(plaintext)

	return string(plaintext), nil
}
