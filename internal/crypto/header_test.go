package crypto_test

import (
	"bytes"
	"errors"
	"testing"

	"doby/internal/crypto"
)

func sampleHeader() *crypto.Header {
	h := &crypto.Header{
		Argon: crypto.ArgonParams{
			TimeCost:    10,
			MemoryCost:  4096,
			Parallelism: 4,
		},
		Cipher: crypto.AES256CTR,
	}
	for i := range h.Salt {
		h.Salt[i] = byte(i)
	}
	return h
}

func TestHeaderEncode(t *testing.T) {
	t.Run("byte-exact layout", func(t *testing.T) {
		h := sampleHeader()
		h.Salt = [crypto.SaltLen]byte{} // all zeros

		got := h.Encode()
		if len(got) != crypto.HeaderLen {
			t.Fatalf("encoded length = %d, want %d", len(got), crypto.HeaderLen)
		}

		want := append([]byte("DOBY"), make([]byte, crypto.SaltLen)...)
		want = append(want, 0x00, 0x00, 0x00, 0x0A) // time cost 10
		want = append(want, 0x00, 0x00, 0x10, 0x00) // memory cost 4096
		want = append(want, 0x04)                   // parallelism
		want = append(want, 0x00)                   // AES-256-CTR tag
		if !bytes.Equal(got, want) {
			t.Errorf("encoded header = %x, want %x", got, want)
		}
	})

	t.Run("parse round trip", func(t *testing.T) {
		h := sampleHeader()
		h.Cipher = crypto.XChaCha20

		parsed, err := crypto.ParseHeader(bytes.NewReader(h.Encode()))
		if err != nil {
			t.Fatalf("ParseHeader() error = %v", err)
		}
		if *parsed != *h {
			t.Errorf("parsed header = %+v, want %+v", parsed, h)
		}
	})
}

func TestParseHeader(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		in := sampleHeader().Encode()
		in[0] = 'X'
		_, err := crypto.ParseHeader(bytes.NewReader(in))
		if !errors.Is(err, crypto.ErrBadMagic) {
			t.Errorf("error = %v, want ErrBadMagic", err)
		}
	})

	t.Run("short input", func(t *testing.T) {
		_, err := crypto.ParseHeader(bytes.NewReader([]byte{'D', 'O'}))
		if !errors.Is(err, crypto.ErrBadMagic) {
			t.Errorf("error = %v, want ErrBadMagic", err)
		}
	})

	t.Run("truncated after magic", func(t *testing.T) {
		in := sampleHeader().Encode()[:30]
		_, err := crypto.ParseHeader(bytes.NewReader(in))
		if !errors.Is(err, crypto.ErrMalformedHeader) {
			t.Errorf("error = %v, want ErrMalformedHeader", err)
		}
	})

	t.Run("unknown cipher tag", func(t *testing.T) {
		in := sampleHeader().Encode()
		in[crypto.HeaderLen-1] = 0x02
		_, err := crypto.ParseHeader(bytes.NewReader(in))
		if !errors.Is(err, crypto.ErrUnknownCipher) {
			t.Errorf("error = %v, want ErrUnknownCipher", err)
		}
	})

	t.Run("zero parameters", func(t *testing.T) {
		for name, mutate := range map[string]func(*crypto.Header){
			"time":        func(h *crypto.Header) { h.Argon.TimeCost = 0 },
			"memory":      func(h *crypto.Header) { h.Argon.MemoryCost = 0 },
			"parallelism": func(h *crypto.Header) { h.Argon.Parallelism = 0 },
		} {
			h := sampleHeader()
			mutate(h)
			_, err := crypto.ParseHeader(bytes.NewReader(h.Encode()))
			if !errors.Is(err, crypto.ErrInvalidParams) {
				t.Errorf("%s = 0: error = %v, want ErrInvalidParams", name, err)
			}
		}
	})

	t.Run("memory floor is 8", func(t *testing.T) {
		h := sampleHeader()
		h.Argon.MemoryCost = 7
		if _, err := crypto.ParseHeader(bytes.NewReader(h.Encode())); !errors.Is(err, crypto.ErrInvalidParams) {
			t.Errorf("memory = 7: error = %v, want ErrInvalidParams", err)
		}

		h.Argon.MemoryCost = 8
		if _, err := crypto.ParseHeader(bytes.NewReader(h.Encode())); err != nil {
			t.Errorf("memory = 8: error = %v, want nil", err)
		}
	})
}
