package crypto_test

import (
	"bytes"
	"testing"

	"doby/internal/crypto"
)

// cheapHeader uses minimal Argon2 costs so derivation stays fast.
func cheapHeader(cipher crypto.CipherAlgorithm) *crypto.Header {
	h := &crypto.Header{
		Argon:  crypto.ArgonParams{TimeCost: 1, MemoryCost: 8, Parallelism: 1},
		Cipher: cipher,
	}
	for i := range h.Salt {
		h.Salt[i] = 0x42
	}
	return h
}

func TestDerive(t *testing.T) {
	password := []byte("the password")

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		a, err := crypto.Derive(password, cheapHeader(crypto.AES256CTR))
		if err != nil {
			t.Fatalf("Derive() error = %v", err)
		}
		b, err := crypto.Derive(password, cheapHeader(crypto.AES256CTR))
		if err != nil {
			t.Fatalf("Derive() error = %v", err)
		}

		if !bytes.Equal(a.Nonce, b.Nonce) {
			t.Error("nonce not reproducible")
		}
		if !bytes.Equal(a.EncryptionKey, b.EncryptionKey) {
			t.Error("encryption key not reproducible")
		}
		if !bytes.Equal(a.AuthenticationKey, b.AuthenticationKey) {
			t.Error("authentication key not reproducible")
		}
	})

	t.Run("output lengths", func(t *testing.T) {
		t.Parallel()
		for _, tc := range []struct {
			cipher    crypto.CipherAlgorithm
			nonceSize int
		}{
			{crypto.AES256CTR, 16},
			{crypto.XChaCha20, 24},
		} {
			k, err := crypto.Derive(password, cheapHeader(tc.cipher))
			if err != nil {
				t.Fatalf("Derive(%s) error = %v", tc.cipher, err)
			}
			if len(k.Nonce) != tc.nonceSize {
				t.Errorf("%s nonce length = %d, want %d", tc.cipher, len(k.Nonce), tc.nonceSize)
			}
			if len(k.EncryptionKey) != 32 || len(k.AuthenticationKey) != 32 {
				t.Errorf("%s key lengths = %d/%d, want 32/32", tc.cipher, len(k.EncryptionKey), len(k.AuthenticationKey))
			}
		}
	})

	t.Run("subkeys are distinct", func(t *testing.T) {
		t.Parallel()
		k, err := crypto.Derive(password, cheapHeader(crypto.AES256CTR))
		if err != nil {
			t.Fatalf("Derive() error = %v", err)
		}
		if bytes.Equal(k.EncryptionKey, k.AuthenticationKey) {
			t.Error("encryption and authentication keys are equal")
		}
	})

	t.Run("password changes everything", func(t *testing.T) {
		t.Parallel()
		a, _ := crypto.Derive([]byte("one"), cheapHeader(crypto.AES256CTR))
		b, _ := crypto.Derive([]byte("two"), cheapHeader(crypto.AES256CTR))
		if bytes.Equal(a.EncryptionKey, b.EncryptionKey) {
			t.Error("different passwords derived the same encryption key")
		}
		if bytes.Equal(a.AuthenticationKey, b.AuthenticationKey) {
			t.Error("different passwords derived the same authentication key")
		}
	})

	t.Run("salt changes everything", func(t *testing.T) {
		t.Parallel()
		h := cheapHeader(crypto.AES256CTR)
		a, _ := crypto.Derive(password, h)
		h.Salt[0] ^= 0xFF
		b, _ := crypto.Derive(password, h)
		if bytes.Equal(a.Nonce, b.Nonce) {
			t.Error("different salts derived the same nonce")
		}
		if bytes.Equal(a.EncryptionKey, b.EncryptionKey) {
			t.Error("different salts derived the same encryption key")
		}
	})
}

func TestKeysZero(t *testing.T) {
	k, err := crypto.Derive([]byte("pw"), cheapHeader(crypto.XChaCha20))
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	k.Zero()

	for name, buf := range map[string][]byte{
		"nonce":              k.Nonce,
		"encryption key":     k.EncryptionKey,
		"authentication key": k.AuthenticationKey,
	} {
		for _, b := range buf {
			if b != 0 {
				t.Errorf("%s not zeroized", name)
				break
			}
		}
	}
}
