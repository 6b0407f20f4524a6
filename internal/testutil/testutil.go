// Package testutil provides deterministic test doubles for the
// randomness and ID dependencies injected into the engine and app
// layers.
package testutil

import "fmt"

// ConstantReader is an endless randomness source yielding a single byte
// value. Handing it to the encrypt engine pins the salt, making
// containers reproducible.
type ConstantReader byte

func (c ConstantReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(c)
	}
	return len(p), nil
}

// FailingReader is a randomness source that always fails, for
// exercising the entropy-unavailable path.
type FailingReader struct{ Err error }

func (f FailingReader) Read([]byte) (int, error) { return 0, f.Err }

// SequentialIDs generates "id-1", "id-2", ... deterministically.
type SequentialIDs struct{ n int }

func (s *SequentialIDs) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}
