package elf

import (
	"encoding/binary"
)

// Reader is a forward-only cursor over a borrowed byte slice.
// All multi-byte integers are little-endian.
type Reader struct {
	buf []byte
	off int
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// ReadBytes returns the next n bytes and advances past them. The returned
// slice aliases the underlying buffer.
func (r *Reader) ReadBytes(n int) (b []byte, err error) {
	if n < 0 || n > len(r.buf)-r.off {
		err = outOfBounds("read %d bytes at offset %d of %d", n, r.off, len(r.buf))
		return
	}
	b = r.buf[r.off : r.off+n]
	r.off += n
	return
}

func (r *Reader) ReadByte() (byte, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Skip advances n bytes without returning them.
func (r *Reader) Skip(n int) error {
	_, err := r.ReadBytes(n)
	return err
}

// Remaining returns the unconsumed bytes without advancing.
func (r *Reader) Remaining() []byte {
	return r.buf[r.off:]
}

func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) Len() int {
	return len(r.buf) - r.off
}
