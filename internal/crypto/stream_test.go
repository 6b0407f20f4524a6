package crypto_test

import (
	"bytes"
	"testing"

	"doby/internal/crypto"
)

func TestNewStream(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, 32)

	for _, alg := range []crypto.CipherAlgorithm{crypto.AES256CTR, crypto.XChaCha20} {
		t.Run(alg.String(), func(t *testing.T) {
			nonce := bytes.Repeat([]byte{0x44}, alg.NonceSize())

			t.Run("keystream is continuous across calls", func(t *testing.T) {
				plain := bytes.Repeat([]byte("abcdefgh"), 100)

				one, err := crypto.NewStream(alg, key, nonce)
				if err != nil {
					t.Fatalf("NewStream() error = %v", err)
				}
				whole := append([]byte(nil), plain...)
				one.XORKeyStream(whole, whole)

				two, err := crypto.NewStream(alg, key, nonce)
				if err != nil {
					t.Fatalf("NewStream() error = %v", err)
				}
				split := append([]byte(nil), plain...)
				// uneven chunks must not disturb the counter
				start := 0
				for _, end := range []int{1, 18, 100, 467, len(split)} {
					two.XORKeyStream(split[start:end], split[start:end])
					start = end
				}

				if !bytes.Equal(whole, split) {
					t.Error("chunked keystream differs from contiguous keystream")
				}
			})

			t.Run("xor round trips", func(t *testing.T) {
				plain := []byte("the plaintext")
				buf := append([]byte(nil), plain...)

				enc, _ := crypto.NewStream(alg, key, nonce)
				enc.XORKeyStream(buf, buf)
				if bytes.Equal(buf, plain) {
					t.Fatal("keystream application left buffer unchanged")
				}

				dec, _ := crypto.NewStream(alg, key, nonce)
				dec.XORKeyStream(buf, buf)
				if !bytes.Equal(buf, plain) {
					t.Error("decrypting with a fresh stream did not recover plaintext")
				}
			})

			t.Run("wrong nonce length", func(t *testing.T) {
				if _, err := crypto.NewStream(alg, key, make([]byte, 5)); err == nil {
					t.Error("NewStream() accepted a 5-byte nonce")
				}
			})
		})
	}

	t.Run("unknown algorithm", func(t *testing.T) {
		if _, err := crypto.NewStream(crypto.CipherAlgorithm(0x7F), key, nil); err == nil {
			t.Error("NewStream() accepted an unknown algorithm")
		}
	})
}
