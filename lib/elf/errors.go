package elf

import "github.com/pkg/errors"

var (
	// ErrOutOfBounds is returned when a read or an index goes past the
	// available bytes.
	ErrOutOfBounds = errors.New("elf: out of bounds")

	// ErrInvalidEncoding is returned for structurally invalid input such as
	// a bad magic or an unsupported class.
	ErrInvalidEncoding = errors.New("elf: invalid encoding")

	ErrUnsupportedClass = errors.Wrap(ErrInvalidEncoding, "unsupported class")
)

func outOfBounds(format string, args ...any) error {
	return errors.Wrapf(ErrOutOfBounds, format, args...)
}

func invalidEncoding(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidEncoding, format, args...)
}
