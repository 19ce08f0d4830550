package elf

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// File is a decoded ELF64 image. It holds no reference to the input buffer.
type File struct {
	Header
	Progs    []ProgHeader
	Sections []SectionHeader
}

type Stage string

const (
	StageHeader  Stage = "header"
	StageProg    Stage = "prog"
	StageSection Stage = "section"
	StageName    Stage = "name"
)

// Event describes one decoded structure. Index is -1 for the file header.
type Event struct {
	Stage  Stage
	Index  int
	Offset uint64
}

// Observer is called after each structure is decoded.
type Observer func(Event)

// Decoder parses ELF64 images. The zero value is ready to use.
type Decoder struct {
	Observe Observer
	// UsePhoff locates the program header table at e_phoff. By default the
	// table is read right after the file header.
	UsePhoff bool
}

// Parse decodes data with a zero Decoder.
func Parse(data []byte) (*File, error) {
	var d Decoder
	return d.Parse(data)
}

func (d *Decoder) observe(stage Stage, idx int, off uint64) {
	if d.Observe != nil {
		d.Observe(Event{Stage: stage, Index: idx, Offset: off})
	}
}

// Parse decodes the file header, the program header table, the section
// header table and the section names. Any failure aborts the whole parse.
func (d *Decoder) Parse(data []byte) (f *File, err error) {
	var h Header
	if h, err = DecodeHeader(data); err != nil {
		return nil, errors.Wrap(err, "elf: file header")
	}
	d.observe(StageHeader, -1, 0)

	var progs []ProgHeader
	if progs, err = d.readProgs(data, &h); err != nil {
		return nil, err
	}
	var sections []SectionHeader
	if sections, err = d.readSections(data, &h); err != nil {
		return nil, err
	}
	if sections, err = d.resolveNames(data, &h, sections); err != nil {
		return nil, err
	}
	f = &File{
		Header:   h,
		Progs:    progs,
		Sections: sections,
	}
	return
}

// tableReader positions a cursor at the absolute offset off.
func tableReader(data []byte, off uint64) (*Reader, error) {
	if off > uint64(len(data)) {
		return nil, outOfBounds("table offset %#x beyond file size %#x", off, len(data))
	}
	return NewReader(data[off:]), nil
}

func (d *Decoder) readProgs(data []byte, h *Header) (progs []ProgHeader, err error) {
	progs = make([]ProgHeader, 0, h.Phnum)
	if h.Phnum == 0 {
		return
	}
	base := uint64(Header64Size)
	if d.UsePhoff {
		base = h.Phoff
	}
	var r *Reader
	if r, err = tableReader(data, base); err != nil {
		return nil, errors.Wrap(err, "elf: program header table")
	}
	for i := 0; i < int(h.Phnum); i++ {
		off := base + uint64(r.Offset())
		var b []byte
		if b, err = r.ReadBytes(int(h.Phentsize)); err != nil {
			return nil, errors.Wrapf(err, "elf: program header %d", i)
		}
		var p ProgHeader
		if p, err = DecodeProgHeader(b); err != nil {
			return nil, errors.Wrapf(err, "elf: program header %d", i)
		}
		progs = append(progs, p)
		d.observe(StageProg, i, off)
	}
	return
}

func (d *Decoder) readSections(data []byte, h *Header) (sections []SectionHeader, err error) {
	sections = make([]SectionHeader, 0, h.Shnum)
	if h.Shnum == 0 {
		return
	}
	var r *Reader
	if r, err = tableReader(data, h.Shoff); err != nil {
		return nil, errors.Wrap(err, "elf: section header table")
	}
	for i := 0; i < int(h.Shnum); i++ {
		off := h.Shoff + uint64(r.Offset())
		var b []byte
		if b, err = r.ReadBytes(int(h.Shentsize)); err != nil {
			return nil, errors.Wrapf(err, "elf: section header %d", i)
		}
		var s SectionHeader
		if s, err = DecodeSectionHeader(b); err != nil {
			return nil, errors.Wrapf(err, "elf: section header %d", i)
		}
		sections = append(sections, s)
		d.observe(StageSection, i, off)
	}
	return
}

// resolveNames returns a copy of sections with Name set from the section
// name string table. A file without sections has nothing to resolve.
func (d *Decoder) resolveNames(data []byte, h *Header, sections []SectionHeader) (named []SectionHeader, err error) {
	named = make([]SectionHeader, len(sections))
	if len(sections) == 0 {
		return
	}
	var strtab StringTable
	if strtab, err = sectionBytes(data, sections, int(h.Shstrndx)); err != nil {
		return nil, errors.Wrap(err, "elf: section name table")
	}
	for i, s := range sections {
		if s.Name, err = strtab.Lookup(s.NameOff); err != nil {
			return nil, errors.Wrapf(err, "elf: name of section %d", i)
		}
		named[i] = s
		d.observe(StageName, i, uint64(s.NameOff))
	}
	return
}

func sectionBytes(data []byte, sections []SectionHeader, idx int) ([]byte, error) {
	if idx < 0 || idx >= len(sections) {
		return nil, outOfBounds("section index %d, have %d sections", idx, len(sections))
	}
	s := &sections[idx]
	end, ok := s.end()
	if !ok || end > uint64(len(data)) {
		return nil, outOfBounds("section %d range [%#x, %#x+%#x) beyond file size %#x",
			idx, s.Offset, s.Offset, s.Size, len(data))
	}
	return data[s.Offset:end], nil
}

// SectionData returns the bytes of section idx within data, the image f was
// parsed from.
func (f *File) SectionData(data []byte, idx int) ([]byte, error) {
	b, err := sectionBytes(data, f.Sections, idx)
	if err != nil {
		return nil, errors.Wrap(err, "elf: section data")
	}
	return b, nil
}

// Section returns the first section with the given name, or nil.
func (f *File) Section(name string) *SectionHeader {
	i := slices.IndexFunc(f.Sections, func(s SectionHeader) bool { return s.Name == name })
	if i < 0 {
		return nil
	}
	return &f.Sections[i]
}

func (f *File) SectionByType(typ SectionType) *SectionHeader {
	i := slices.IndexFunc(f.Sections, func(s SectionHeader) bool { return s.Type == typ })
	if i < 0 {
		return nil
	}
	return &f.Sections[i]
}
