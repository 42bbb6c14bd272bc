// Package secret provides a byte container for passwords and key material
// that is overwritten with zeros as soon as its owner releases it.
//
// The owner of a Secret is whoever created it. Owners release a Secret with
// Close, normally deferred right after creation so that every exit path,
// including early returns on error, wipes the buffer:
//
//	s := secret.FromString(password)
//	defer s.Close()
//
// Functions that receive a *Secret borrow it and never close it. A runtime
// cleanup wipes buffers whose owner dropped the last reference without
// closing; this is a backstop and not a substitute for Close.
package secret

import (
	"crypto/rand"
	"crypto/subtle"
	"runtime"
	"sync"
)

// Secret holds sensitive bytes. The zero value is an empty, closed secret.
type Secret struct {
	mu     sync.Mutex
	b      []byte
	closed bool
}

// New wraps b without copying it. The caller must not keep using b
// directly: after Close the slice contents are zero.
func New(b []byte) *Secret {
	s := &Secret{b: b}
	if len(b) > 0 {
		runtime.AddCleanup(s, Wipe, b)
	}
	return s
}

// Copy returns a Secret holding a private copy of b. b itself is left
// untouched and remains the caller's responsibility.
func Copy(b []byte) *Secret {
	c := make([]byte, len(b))
	copy(c, b)
	return New(c)
}

// FromString copies a password or passphrase into a new Secret.
func FromString(s string) *Secret {
	return Copy([]byte(s))
}

// Random returns a Secret filled with n bytes from crypto/rand.
func Random(n int) (*Secret, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return New(b), nil
}

// Bytes exposes the underlying buffer. The returned slice aliases the
// secret and must not be retained past Close.
func (s *Secret) Bytes() []byte {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b
}

// Len returns the number of bytes held.
func (s *Secret) Len() int {
	return len(s.Bytes())
}

// Closed reports whether Close has been called.
func (s *Secret) Closed() bool {
	if s == nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close wipes the buffer. It is safe to call more than once and on a nil
// receiver; it always returns nil so it can be deferred through io.Closer.
func (s *Secret) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	Wipe(s.b)
	s.b = nil
	s.closed = true
	return nil
}

// Equal compares two secrets in constant time for equal lengths.
func (s *Secret) Equal(o *Secret) bool {
	return subtle.ConstantTimeCompare(s.Bytes(), o.Bytes()) == 1
}

// String implements fmt.Stringer without revealing the contents.
func (s *Secret) String() string {
	return "[redacted]"
}

// GoString keeps %#v from dumping the buffer.
func (s *Secret) GoString() string {
	return "secret.Secret{[redacted]}"
}

// Wipe overwrites b with zeros. A nil slice is a no-op.
func Wipe(b []byte) {
	clear(b)
}
