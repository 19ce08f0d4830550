package elf

import "bytes"

const (
	Header64Size  = 64
	Prog64Size    = 56
	Section64Size = 64
)

// e_ident values checked by Validate.
const (
	ELFCLASS32  = 1
	ELFCLASS64  = 2
	ELFDATA2LSB = 1
	ELFDATA2MSB = 2
)

var Magic = [4]byte{0x7f, 'E', 'L', 'F'}

// Header is the ELF64 file header.
type Header struct {
	Magic        [4]byte
	Class        uint8
	Data         uint8
	IdentVersion uint8
	OSABI        uint8
	ABIVersion   uint8
	Pad          [7]byte

	Type      FileType
	RawType   uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	Phoff     uint64
	Shoff     uint64
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

// DecodeHeader decodes the file header from the first 64 bytes of b.
// It does not validate anything; see Validate.
func DecodeHeader(b []byte) (h Header, err error) {
	r := NewReader(b)
	var raw []byte
	if raw, err = r.ReadBytes(4); err != nil {
		return
	}
	copy(h.Magic[:], raw)
	for _, p := range []*uint8{&h.Class, &h.Data, &h.IdentVersion, &h.OSABI, &h.ABIVersion} {
		if *p, err = r.ReadByte(); err != nil {
			return
		}
	}
	if raw, err = r.ReadBytes(len(h.Pad)); err != nil {
		return
	}
	copy(h.Pad[:], raw)

	if h.RawType, err = r.ReadU16(); err != nil {
		return
	}
	h.Type = DecodeFileType(h.RawType)
	if h.Machine, err = r.ReadU16(); err != nil {
		return
	}
	if h.Version, err = r.ReadU32(); err != nil {
		return
	}
	for _, p := range []*uint64{&h.Entry, &h.Phoff, &h.Shoff} {
		if *p, err = r.ReadU64(); err != nil {
			return
		}
	}
	if h.Flags, err = r.ReadU32(); err != nil {
		return
	}
	for _, p := range []*uint16{&h.Ehsize, &h.Phentsize, &h.Phnum, &h.Shentsize, &h.Shnum, &h.Shstrndx} {
		if *p, err = r.ReadU16(); err != nil {
			return
		}
	}
	return
}

func (h *Header) IsValidMagic() bool {
	return bytes.Equal(h.Magic[:], Magic[:])
}

// Validate reports the first structural problem that makes the header
// unusable for ELF64 little-endian decoding.
func (h *Header) Validate() error {
	switch {
	case !h.IsValidMagic():
		return invalidEncoding("bad magic % x", h.Magic[:])
	case h.Class != ELFCLASS64:
		return invalidEncoding("class %d is not ELFCLASS64", h.Class)
	case h.Data != ELFDATA2LSB:
		return invalidEncoding("data encoding %d is not little-endian", h.Data)
	case h.Phnum > 0 && h.Phentsize != Prog64Size:
		return invalidEncoding("program header entry size %d, want %d", h.Phentsize, Prog64Size)
	case h.Shnum > 0 && h.Shentsize != Section64Size:
		return invalidEncoding("section header entry size %d, want %d", h.Shentsize, Section64Size)
	}
	return nil
}
