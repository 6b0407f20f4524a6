package crypto

import (
	"crypto/subtle"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// MAC is the keyed BLAKE2b authenticator driven incrementally over the
// header bytes and the ciphertext, in that order. Plaintext never
// enters the MAC.
type MAC struct {
	h hash.Hash
}

// NewMAC creates a keyed BLAKE2b authenticator with a 32-byte output.
func NewMAC(key []byte) (*MAC, error) {
	h, err := blake2b.New256(key)
	if err != nil {
		return nil, fmt.Errorf("keyed blake2b: %w", err)
	}
	return &MAC{h: h}, nil
}

// Update absorbs more authenticated bytes.
func (m *MAC) Update(p []byte) {
	m.h.Write(p)
}

// Sum finalizes the authenticator and returns the 32-byte tag.
func (m *MAC) Sum() []byte {
	return m.h.Sum(nil)
}

// Verify finalizes the authenticator and compares against candidate in
// constant time.
func (m *MAC) Verify(candidate []byte) bool {
	tag := m.h.Sum(nil)
	if len(candidate) != len(tag) {
		return false
	}
	return subtle.ConstantTimeCompare(tag, candidate) == 1
}
