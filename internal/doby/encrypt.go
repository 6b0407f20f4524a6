package doby

import (
	"fmt"
	"io"

	"doby/internal/crypto"
)

// Encrypt reads plaintext from r and writes a complete container to w:
// header, ciphertext of exactly the plaintext length, then the 32-byte
// tag. The MAC covers the header bytes in wire order followed by the
// ciphertext in stream order.
func (e *Engine) Encrypt(r io.Reader, w io.Writer) error {
	var h crypto.Header
	if _, err := io.ReadFull(e.random, h.Salt[:]); err != nil {
		return fmt.Errorf("%w: generating salt: %v", crypto.ErrEntropy, err)
	}
	h.Argon = e.params.Argon
	h.Cipher = e.params.Cipher

	header := h.Encode()
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	keys, err := crypto.Derive(e.params.Password, &h)
	if err != nil {
		return fmt.Errorf("deriving keys: %w", err)
	}
	defer keys.Zero()

	mac, err := crypto.NewMAC(keys.AuthenticationKey)
	if err != nil {
		return err
	}
	mac.Update(header)

	stream, err := crypto.NewStream(h.Cipher, keys.EncryptionKey, keys.Nonce)
	if err != nil {
		return err
	}

	e.logger.Debug("encrypting",
		"cipher", h.Cipher.String(),
		"block_size", e.params.BlockSize,
		"time_cost", h.Argon.TimeCost,
		"memory_cost", h.Argon.MemoryCost,
		"parallelism", h.Argon.Parallelism,
	)

	buf := make([]byte, e.params.BlockSize)
	defer crypto.Zero(buf)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			stream.XORKeyStream(chunk, chunk)
			mac.Update(chunk)
			if _, werr := w.Write(chunk); werr != nil {
				return fmt.Errorf("writing ciphertext: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading plaintext: %w", err)
		}
	}

	if _, err := w.Write(mac.Sum()); err != nil {
		return fmt.Errorf("writing authentication tag: %w", err)
	}
	return nil
}
