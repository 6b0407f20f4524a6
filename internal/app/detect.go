package app

import (
	"golang.org/x/sys/cpu"

	"doby/internal/crypto"
)

// DetectCipher picks the default cipher for this host: AES-256-CTR when
// the CPU advertises AES instructions, XChaCha20 otherwise. An absent or
// inconclusive probe therefore falls back to the CPU-agnostic cipher.
func DetectCipher() crypto.CipherAlgorithm {
	if cpu.X86.HasAES || cpu.ARM64.HasAES {
		return crypto.AES256CTR
	}
	return crypto.XChaCha20
}
