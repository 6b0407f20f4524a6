// Package crypto implements the doby container primitives: the header
// codec, the Argon2id/HKDF key schedule, the keyed BLAKE2b authenticator
// and the stream cipher construction shared by both ciphers.
package crypto

import "fmt"

// CipherAlgorithm identifies the stream cipher used for a container.
// The value is the cipher tag byte written into the header.
type CipherAlgorithm byte

const (
	// AES256CTR is AES-256 in counter mode with a 16-byte nonce that
	// doubles as the full initial counter block.
	AES256CTR CipherAlgorithm = 0x00
	// XChaCha20 is the extended-nonce (24-byte) ChaCha20 variant.
	XChaCha20 CipherAlgorithm = 0x01
)

// NonceSize returns the nonce length in bytes for the cipher.
func (c CipherAlgorithm) NonceSize() int {
	switch c {
	case AES256CTR:
		return 16
	case XChaCha20:
		return 24
	}
	return 0
}

// Valid reports whether the tag byte names a known cipher.
func (c CipherAlgorithm) Valid() bool {
	return c == AES256CTR || c == XChaCha20
}

func (c CipherAlgorithm) String() string {
	switch c {
	case AES256CTR:
		return "AES-256-CTR"
	case XChaCha20:
		return "XChaCha20"
	}
	return fmt.Sprintf("unknown(0x%02x)", byte(c))
}

// ParseCipher maps the CLI cipher names to a CipherAlgorithm.
func ParseCipher(name string) (CipherAlgorithm, error) {
	switch name {
	case "aes":
		return AES256CTR, nil
	case "xchacha20":
		return XChaCha20, nil
	}
	return 0, fmt.Errorf("unknown cipher %q (expected \"aes\" or \"xchacha20\")", name)
}

// ArgonParams holds the Argon2id cost parameters carried in the header.
type ArgonParams struct {
	TimeCost    uint32 // iterations
	MemoryCost  uint32 // kilobytes
	Parallelism uint8  // lanes
}

// Validate enforces the header parameter floors: time >= 1, memory >= 8,
// parallelism >= 1.
func (p ArgonParams) Validate() error {
	if p.TimeCost < 1 {
		return fmt.Errorf("%w: time cost must be at least 1", ErrInvalidParams)
	}
	if p.MemoryCost < 8 {
		return fmt.Errorf("%w: memory cost must be at least 8 KB", ErrInvalidParams)
	}
	if p.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1", ErrInvalidParams)
	}
	return nil
}
