package obj

import (
	"bytes"
	"os"

	"github.com/pkg/errors"

	"github.com/ii64/elfdump/lib/elf"
)

// ReadFile loads path into memory and decodes it with dec. A nil dec uses
// the zero elf.Decoder.
func ReadFile(path string, dec *elf.Decoder) (obj *Object, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		return
	}
	obj, err = Read(path, data, dec)
	return
}

// Read checks the identification bytes of data and dispatches on the class.
// The returned Object does not reference data.
func Read(name string, data []byte, dec *elf.Decoder) (*Object, error) {
	if dec == nil {
		dec = &elf.Decoder{}
	}
	obj := &Object{
		Name: name,
		Size: int64(len(data)),
	}
	if err := obj.decode(data, dec); err != nil {
		return nil, errors.WithMessagef(err, "obj: %s", name)
	}
	return obj, nil
}

func (obj *Object) decode(data []byte, dec *elf.Decoder) (err error) {
	if len(data) < 6 {
		return errors.Wrapf(elf.ErrOutOfBounds, "%d bytes is too small for an ELF file", len(data))
	}
	if !bytes.HasPrefix(data, elf.Magic[:]) {
		return errors.Wrap(elf.ErrInvalidEncoding, "not an ELF file")
	}
	obj.Class = data[4]
	switch obj.Class {
	case elf.ELFCLASS64:
		if data[5] != elf.ELFDATA2LSB {
			return errors.Wrapf(elf.ErrInvalidEncoding, "unsupported data encoding %d", data[5])
		}
		obj.Elf, err = dec.Parse(data)
	case elf.ELFCLASS32:
		obj.Elf, err = elf.ParseELF32(data)
	default:
		err = errors.Wrapf(elf.ErrInvalidEncoding, "invalid class %d", obj.Class)
	}
	return
}
