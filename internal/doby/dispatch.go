package doby

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"doby/internal/crypto"
)

// Run chooses the mode for one invocation and drives the matching
// engine. With ForceEncrypt set it encrypts unconditionally. Otherwise
// it peeks the first 4 bytes of r: the doby magic selects decryption,
// anything else (including an input shorter than 4 bytes) selects
// encryption. The input may be a non-seekable pipe, so the peeked bytes
// are replayed by prepending them to the stream the chosen engine
// reads — the header parser re-reads the magic, and on the encrypt
// path the peeked bytes become the first plaintext bytes.
func (e *Engine) Run(r io.Reader, w io.Writer) error {
	if e.params.ForceEncrypt {
		e.logger.Info("mode forced", "mode", "encrypt")
		return e.Encrypt(r, w)
	}

	peek := make([]byte, len(crypto.Magic()))
	n, err := io.ReadFull(r, peek)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("reading magic bytes: %w", err)
	}
	rewound := io.MultiReader(bytes.NewReader(peek[:n]), r)

	if n == len(peek) && bytes.Equal(peek, crypto.Magic()) {
		e.logger.Info("mode detected", "mode", "decrypt")
		return e.Decrypt(rewound, w)
	}
	e.logger.Info("mode detected", "mode", "encrypt")
	return e.Encrypt(rewound, w)
}
