package crypto

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// SaltLen is the length of the random salt stored in the header.
	SaltLen = 64
	// HeaderLen is the total encoded header size.
	HeaderLen = len(magic) + SaltLen + 4 + 4 + 1 + 1
	// TagLen is the length of the BLAKE2b tag appended after the
	// ciphertext.
	TagLen = 32
	// Overhead is the number of bytes a container adds to its plaintext.
	Overhead = HeaderLen + TagLen
)

var magic = [4]byte{'D', 'O', 'B', 'Y'}

// Magic returns the 4-byte container magic.
func Magic() []byte { return magic[:] }

// Header is the fixed-layout container prefix. Every encoded byte of it,
// magic included, is fed into the MAC before any ciphertext.
type Header struct {
	Salt   [SaltLen]byte
	Argon  ArgonParams
	Cipher CipherAlgorithm
}

// Encode serializes the header in wire order: magic, salt, time cost,
// memory cost, parallelism, cipher tag. Multi-byte integers are
// big-endian.
func (h *Header) Encode() []byte {
	buf := make([]byte, 0, HeaderLen)
	buf = append(buf, magic[:]...)
	buf = append(buf, h.Salt[:]...)
	buf = binary.BigEndian.AppendUint32(buf, h.Argon.TimeCost)
	buf = binary.BigEndian.AppendUint32(buf, h.Argon.MemoryCost)
	buf = append(buf, h.Argon.Parallelism)
	buf = append(buf, byte(h.Cipher))
	return buf
}

// ParseHeader reads and validates exactly HeaderLen bytes from r.
// It fails with ErrBadMagic when the magic does not match, with
// ErrMalformedHeader when the rest of the header is truncated, and with
// ErrUnknownCipher or ErrInvalidParams when a field is out of range.
func ParseHeader(r io.Reader) (*Header, error) {
	var m [len(magic)]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: input shorter than %d bytes", ErrBadMagic, len(magic))
		}
		return nil, fmt.Errorf("reading magic bytes: %w", err)
	}
	if !bytes.Equal(m[:], magic[:]) {
		return nil, ErrBadMagic
	}

	buf := make([]byte, HeaderLen-len(magic))
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header shorter than %d bytes", ErrMalformedHeader, HeaderLen)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var h Header
	off := 0
	copy(h.Salt[:], buf[off:off+SaltLen])
	off += SaltLen
	h.Argon.TimeCost = binary.BigEndian.Uint32(buf[off:])
	off += 4
	h.Argon.MemoryCost = binary.BigEndian.Uint32(buf[off:])
	off += 4
	h.Argon.Parallelism = buf[off]
	off++
	h.Cipher = CipherAlgorithm(buf[off])

	if !h.Cipher.Valid() {
		return nil, fmt.Errorf("%w: tag 0x%02x", ErrUnknownCipher, byte(h.Cipher))
	}
	if err := h.Argon.Validate(); err != nil {
		return nil, err
	}
	return &h, nil
}
