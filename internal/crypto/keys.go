package crypto

import (
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

const (
	masterKeyLen = 32
	keyLen       = 32

	infoNonce   = "doby_nonce"
	infoEncrypt = "doby_encryption_key"
	infoAuth    = "doby_authentication_key"
)

// Keys holds the per-container derived material. Call Zero when the
// pipeline finishes, on every exit path.
type Keys struct {
	Nonce             []byte
	EncryptionKey     []byte
	AuthenticationKey []byte
}

// Zero wipes all derived material.
func (k *Keys) Zero() {
	Zero(k.Nonce)
	Zero(k.EncryptionKey)
	Zero(k.AuthenticationKey)
}

// Derive runs the full key schedule for a header and password:
// Argon2id (version 0x13) stretches the password into a 32-byte master
// key, then HKDF with BLAKE2b-512, salted with the container salt,
// expands the nonce and the encryption and authentication subkeys.
// Identical header bytes and password always produce identical output.
func Derive(password []byte, h *Header) (*Keys, error) {
	master := argon2.IDKey(password, h.Salt[:], h.Argon.TimeCost, h.Argon.MemoryCost, h.Argon.Parallelism, masterKeyLen)
	defer Zero(master)

	k := &Keys{}
	var err error
	if k.Nonce, err = expand(master, h.Salt[:], infoNonce, h.Cipher.NonceSize()); err != nil {
		return nil, err
	}
	if k.EncryptionKey, err = expand(master, h.Salt[:], infoEncrypt, keyLen); err != nil {
		k.Zero()
		return nil, err
	}
	if k.AuthenticationKey, err = expand(master, h.Salt[:], infoAuth, keyLen); err != nil {
		k.Zero()
		return nil, err
	}
	return k, nil
}

func expand(master, salt []byte, info string, n int) ([]byte, error) {
	out := make([]byte, n)
	kdf := hkdf.New(newBlake2b, master, salt, []byte(info))
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, fmt.Errorf("hkdf expand %s: %w", info, err)
	}
	return out, nil
}

// newBlake2b adapts the keyed blake2b constructor to HKDF's hash.Hash
// factory. The unkeyed 64-byte form never fails.
func newBlake2b() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	return h
}
