package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// NewStream constructs the keystream generator for the given cipher.
// Encryption and decryption are the same operation: XORKeyStream applied
// over successive buffers behaves as if applied over one contiguous
// stream, the counter is never reset.
//
// AES-256-CTR treats its 16-byte nonce as the full initial counter
// block, incremented big-endian. XChaCha20 uses the IETF extended-nonce
// construction with the block counter starting at zero.
func NewStream(alg CipherAlgorithm, key, nonce []byte) (cipher.Stream, error) {
	if len(nonce) != alg.NonceSize() {
		return nil, fmt.Errorf("%s: nonce length %d, want %d", alg, len(nonce), alg.NonceSize())
	}
	switch alg {
	case AES256CTR:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("aes: %w", err)
		}
		return cipher.NewCTR(block, nonce), nil
	case XChaCha20:
		s, err := chacha20.NewUnauthenticatedCipher(key, nonce)
		if err != nil {
			return nil, fmt.Errorf("xchacha20: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: tag 0x%02x", ErrUnknownCipher, byte(alg))
}
