package elf

import (
	"bytes"
	"encoding/binary"
)

type enc struct {
	bytes.Buffer
}

func (e *enc) put(vs ...any) {
	for _, v := range vs {
		if err := binary.Write(&e.Buffer, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
}

func (e *enc) padTo(n int) {
	for e.Len() < n {
		e.WriteByte(0)
	}
}

func encodeHeader(e *enc, h Header) {
	e.put(h.Magic, h.Class, h.Data, h.IdentVersion, h.OSABI, h.ABIVersion, h.Pad)
	e.put(h.RawType, h.Machine, h.Version)
	e.put(h.Entry, h.Phoff, h.Shoff, h.Flags)
	e.put(h.Ehsize, h.Phentsize, h.Phnum, h.Shentsize, h.Shnum, h.Shstrndx)
}

func encodeProg(e *enc, p ProgHeader) {
	e.put(p.RawType, p.RawFlags, p.Off, p.Vaddr, p.Paddr, p.Filesz, p.Memsz, p.Align)
}

func encodeSection(e *enc, s SectionHeader) {
	e.put(s.NameOff, s.RawType, uint64(s.Flags), s.Addr, s.Offset, s.Size,
		s.Link, s.Info, s.Addralign, s.Entsize)
}

func baseHeader() Header {
	return Header{
		Magic:        Magic,
		Class:        ELFCLASS64,
		Data:         ELFDATA2LSB,
		IdentVersion: 1,
		Type:         FileTypeRel,
		RawType:      1,
		Machine:      62,
		Version:      1,
		Ehsize:       Header64Size,
		Phentsize:    Prog64Size,
		Shentsize:    Section64Size,
	}
}

// minimalImage is a header, one section header at 64 describing a one byte
// string table at 128.
func minimalImage() ([]byte, Header) {
	h := baseHeader()
	h.Shoff = 64
	h.Shnum = 1
	h.Shstrndx = 0

	var e enc
	encodeHeader(&e, h)
	encodeSection(&e, SectionHeader{RawType: 3, Offset: 128, Size: 1})
	e.WriteByte(0)
	return e.Bytes(), h
}

const execStrtab = "\x00.text\x00.data\x00.shstrtab\x00"

var execProgs = []ProgHeader{
	{Type: SegmentTypeLoad, RawType: 1, Flags: SegmentFlagRX, RawFlags: 5,
		Off: 0, Vaddr: 0x400000, Paddr: 0x400000, Filesz: 0x1c8, Memsz: 0x1c8, Align: 0x1000},
	{Type: SegmentTypeDynamic, RawType: 2, Flags: SegmentFlagRW, RawFlags: 6,
		Off: 0x2e10, Vaddr: 0x403e10, Paddr: 0x403e10, Filesz: 0x1d0, Memsz: 0x1d0, Align: 8},
}

var execSections = []SectionHeader{
	{Name: "", Type: SectionTypeNull},
	{Name: ".text", NameOff: 1, Type: SectionTypeProgBits, RawType: 1, Flags: SHF_ALLOC | SHF_EXECINSTR,
		Addr: 0x401000, Offset: 0x1000, Size: 0x185, Addralign: 16},
	{Name: ".data", NameOff: 7, Type: SectionTypeProgBits, RawType: 1, Flags: SHF_WRITE | SHF_ALLOC,
		Addr: 0x404000, Offset: 0x3000, Size: 0x10, Addralign: 8},
	{Name: ".shstrtab", NameOff: 13, Type: SectionTypeStrTab, RawType: 3,
		Offset: 176, Size: uint64(len(execStrtab)), Addralign: 1},
}

// execImage lays out header, two program headers at 64, the section name
// table at 176 and four section headers at 200.
func execImage() ([]byte, Header) {
	h := baseHeader()
	h.Type, h.RawType = FileTypeExec, 2
	h.Entry = 0x401000
	h.Phoff = 64
	h.Phnum = uint16(len(execProgs))
	h.Shoff = 200
	h.Shnum = uint16(len(execSections))
	h.Shstrndx = 3

	var e enc
	encodeHeader(&e, h)
	for _, p := range execProgs {
		encodeProg(&e, p)
	}
	e.WriteString(execStrtab)
	e.padTo(200)
	for _, s := range execSections {
		encodeSection(&e, s)
	}
	return e.Bytes(), h
}
