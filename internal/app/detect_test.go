package app_test

import (
	"testing"

	"doby/internal/app"
	"doby/internal/crypto"
)

func TestDetectCipher(t *testing.T) {
	got := app.DetectCipher()
	if got != crypto.AES256CTR && got != crypto.XChaCha20 {
		t.Errorf("DetectCipher() = %v, want AES-256-CTR or XChaCha20", got)
	}
}
