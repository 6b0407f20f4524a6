// Package doby implements the streaming encryption pipeline: the
// encrypt and decrypt engines and the mode dispatcher that chooses
// between them by peeking at the input's magic prefix.
package doby

import (
	"fmt"
	"io"

	"doby/internal/crypto"
)

// Params carries the user-supplied knobs for one invocation. It is
// constructed once and never mutated; only the engine reads it.
type Params struct {
	Argon        crypto.ArgonParams
	Cipher       crypto.CipherAlgorithm
	BlockSize    int
	ForceEncrypt bool
	// Password is the raw password bytes. Owned by the caller, which is
	// responsible for zeroizing it after the engine returns.
	Password []byte
}

// Validate rejects parameter combinations before any I/O happens.
func (p Params) Validate() error {
	if err := p.Argon.Validate(); err != nil {
		return err
	}
	if !p.Cipher.Valid() {
		return fmt.Errorf("%w: tag 0x%02x", crypto.ErrUnknownCipher, byte(p.Cipher))
	}
	if p.BlockSize < 1 {
		return fmt.Errorf("block size must be positive, got %d", p.BlockSize)
	}
	return nil
}

// Engine runs the single-threaded read→transform→write pipeline over one
// input/output pair. It owns both streams for the duration of a call.
type Engine struct {
	params Params
	logger Logger
	random io.Reader
}

// NewEngine creates an engine. random is the salt entropy source;
// production callers pass crypto/rand.Reader, tests may pass a
// deterministic reader to pin the salt.
func NewEngine(params Params, logger Logger, random io.Reader) *Engine {
	return &Engine{
		params: params,
		logger: logger,
		random: random,
	}
}
