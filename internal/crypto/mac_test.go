package crypto_test

import (
	"bytes"
	"testing"

	"doby/internal/crypto"
)

func TestMAC(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, 32)

	t.Run("tag length", func(t *testing.T) {
		m, err := crypto.NewMAC(key)
		if err != nil {
			t.Fatalf("NewMAC() error = %v", err)
		}
		m.Update([]byte("data"))
		if got := len(m.Sum()); got != crypto.TagLen {
			t.Errorf("tag length = %d, want %d", got, crypto.TagLen)
		}
	})

	t.Run("incremental updates match one-shot", func(t *testing.T) {
		a, _ := crypto.NewMAC(key)
		a.Update([]byte("hello "))
		a.Update([]byte("world"))

		b, _ := crypto.NewMAC(key)
		b.Update([]byte("hello world"))

		if !bytes.Equal(a.Sum(), b.Sum()) {
			t.Error("split updates produced a different tag")
		}
	})

	t.Run("verify accepts matching tag", func(t *testing.T) {
		a, _ := crypto.NewMAC(key)
		a.Update([]byte("payload"))
		tag := a.Sum()

		b, _ := crypto.NewMAC(key)
		b.Update([]byte("payload"))
		if !b.Verify(tag) {
			t.Error("Verify() = false for a valid tag")
		}
	})

	t.Run("verify rejects altered tag", func(t *testing.T) {
		a, _ := crypto.NewMAC(key)
		a.Update([]byte("payload"))
		tag := a.Sum()
		tag[len(tag)-1] ^= 0x01

		b, _ := crypto.NewMAC(key)
		b.Update([]byte("payload"))
		if b.Verify(tag) {
			t.Error("Verify() = true for a flipped tag")
		}
	})

	t.Run("verify rejects wrong length", func(t *testing.T) {
		m, _ := crypto.NewMAC(key)
		if m.Verify([]byte("short")) {
			t.Error("Verify() = true for a short candidate")
		}
	})

	t.Run("key changes tag", func(t *testing.T) {
		other := bytes.Repeat([]byte{0x22}, 32)
		a, _ := crypto.NewMAC(key)
		a.Update([]byte("payload"))
		b, _ := crypto.NewMAC(other)
		b.Update([]byte("payload"))
		if bytes.Equal(a.Sum(), b.Sum()) {
			t.Error("different keys produced the same tag")
		}
	})
}
