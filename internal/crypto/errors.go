package crypto

import "errors"

// Error kinds surfaced by the container pipeline. Call sites wrap these
// with context; callers match with errors.Is.
var (
	// ErrBadMagic means the input does not start with the doby magic.
	ErrBadMagic = errors.New("doby format not recognized")

	// ErrMalformedHeader means the input starts with the magic but the
	// rest of the header is truncated.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrUnknownCipher means the header carries an unassigned cipher tag.
	ErrUnknownCipher = errors.New("unknown cipher")

	// ErrInvalidParams means a header field is outside its allowed range.
	ErrInvalidParams = errors.New("invalid argon2 parameters")

	// ErrTruncated means the stream ended before a full 32-byte tag.
	ErrTruncated = errors.New("truncated container: no authentication tag")

	// ErrAuthenticationFailed covers both a wrong password and a
	// tampered container; the two cases are indistinguishable.
	ErrAuthenticationFailed = errors.New("authentication failed: wrong password or corrupted data")

	// ErrEntropy means the OS random source failed.
	ErrEntropy = errors.New("random source unavailable")
)
