package lmbin

import (
	"errors"
	"fmt"
)

var (
	// ErrSanityFormat reports a readable file whose header does not match
	// the reference header.
	ErrSanityFormat = errors.New("lmbin: sanity header mismatch")

	// ErrFileTooLarge reports a model whose size does not fit in the address
	// space, so it can be neither mapped nor read whole.
	ErrFileTooLarge = errors.New("lmbin: file too large to map")

	errNilHeader = errors.New("lmbin: can't unmarshal into nil header")
)

func errShortHeader(n int) error {
	return fmt.Errorf("lmbin: need %d header bytes, got %d", SanityHeaderSize, n)
}

// FormatError describes where a header first differs from the reference.
type FormatError struct {
	// Offset of the first differing byte.
	Offset int
	// Field containing Offset.
	Field string
	// Reason is a best-effort diagnosis.
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v at byte %d (%s): %s", ErrSanityFormat, e.Offset, e.Field, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrSanityFormat
}

// IsSanityFormat reports whether err means the file was read but is not a
// compatible model.
func IsSanityFormat(err error) bool {
	return errors.Is(err, ErrSanityFormat)
}

// IsIO reports whether err means the file could not be read far enough to
// check it.
func IsIO(err error) bool {
	return err != nil && !errors.Is(err, ErrSanityFormat)
}
