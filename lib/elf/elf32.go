package elf

import "github.com/pkg/errors"

// ParseELF32 is a placeholder for ELFCLASS32 images, which are not decoded.
func ParseELF32(data []byte) (*File, error) {
	if len(data) < 5 {
		return nil, outOfBounds("ident of %d bytes", len(data))
	}
	return nil, errors.Wrapf(ErrUnsupportedClass, "elf: ELFCLASS32 (class %d)", data[4])
}
