package doby

import (
	"fmt"
	"io"

	"doby/internal/crypto"
)

// Decrypt parses a container from r and writes the recovered plaintext
// to w. The trailing 32 bytes of the input are the candidate tag; since
// the input may be a pipe with no known length, the engine holds the
// last TagLen bytes in a rolling tail and only releases earlier bytes
// as confirmed ciphertext. Plaintext already written to w is unverified
// until Decrypt returns nil; callers must treat output as untrusted
// until then.
func (e *Engine) Decrypt(r io.Reader, w io.Writer) error {
	h, err := crypto.ParseHeader(r)
	if err != nil {
		return err
	}

	keys, err := crypto.Derive(e.params.Password, h)
	if err != nil {
		return fmt.Errorf("deriving keys: %w", err)
	}
	defer keys.Zero()

	mac, err := crypto.NewMAC(keys.AuthenticationKey)
	if err != nil {
		return err
	}
	mac.Update(h.Encode())

	stream, err := crypto.NewStream(h.Cipher, keys.EncryptionKey, keys.Nonce)
	if err != nil {
		return err
	}

	e.logger.Debug("decrypting",
		"cipher", h.Cipher.String(),
		"block_size", e.params.BlockSize,
		"time_cost", h.Argon.TimeCost,
		"memory_cost", h.Argon.MemoryCost,
		"parallelism", h.Argon.Parallelism,
	)

	// buf[:tail] holds the bytes not yet confirmed as ciphertext; the
	// rest is read space. tail never exceeds TagLen.
	buf := make([]byte, crypto.TagLen+e.params.BlockSize)
	defer crypto.Zero(buf)
	tail := 0
	for {
		n, rerr := r.Read(buf[tail:])
		if n > 0 {
			total := tail + n
			if total > crypto.TagLen {
				confirmed := buf[:total-crypto.TagLen]
				mac.Update(confirmed)
				stream.XORKeyStream(confirmed, confirmed)
				if _, werr := w.Write(confirmed); werr != nil {
					return fmt.Errorf("writing plaintext: %w", werr)
				}
				copy(buf, buf[len(confirmed):total])
				tail = crypto.TagLen
			} else {
				tail = total
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("reading ciphertext: %w", rerr)
		}
	}

	if tail < crypto.TagLen {
		return crypto.ErrTruncated
	}
	if !mac.Verify(buf[:crypto.TagLen]) {
		return crypto.ErrAuthenticationFailed
	}
	return nil
}
