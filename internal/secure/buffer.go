// Package secure holds secrets encrypted at rest in memory. It wraps
// memguard so that a loaded keyring secret is not floating around the
// heap as plaintext between load and use.
package secure

import (
	"errors"
	"strings"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned by Open on a destroyed Buffer.
var ErrDestroyed = errors.New("secure: buffer destroyed")

// Buffer stores a secret inside a memguard enclave. The plaintext is
// decrypted only inside Open/OpenString and wiped again afterwards.
// A destroyed Buffer yields an empty string from OpenString and
// ErrDestroyed from Open.
type Buffer struct {
	enclave *memguard.Enclave

	mu        sync.RWMutex
	destroyed bool
}

// NewBuffer seals the given bytes into a protected enclave. The caller
// keeps ownership of data and should zero it if it matters.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{enclave: memguard.NewEnclave(data)}
}

// NewStringBuffer seals a secret string.
func NewStringBuffer(s string) *Buffer {
	return NewBuffer([]byte(s))
}

// Open decrypts the enclave into a locked buffer. The caller must call
// Destroy on the result to wipe the plaintext.
func (b *Buffer) Open() (*memguard.LockedBuffer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.destroyed {
		return nil, ErrDestroyed
	}
	return b.enclave.Open()
}

// OpenString decrypts the secret and returns an ordinary string copy.
// The copy lives in regular memory; callers should keep its scope as
// small as the API they hand it to allows (form fill, request header).
// A destroyed Buffer yields "".
func (b *Buffer) OpenString() (string, error) {
	locked, err := b.Open()
	if errors.Is(err, ErrDestroyed) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer locked.Destroy()
	return strings.Clone(locked.String()), nil
}

// Destroy marks the buffer as unusable. Idempotent; the encrypted
// enclave itself is left for garbage collection, matching
// memguard's model. Call memguard.Purge at process exit for a full
// sweep.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.enclave = nil
	b.destroyed = true
}
