package elf

// SectionHeader is one entry of the section header table. Name is filled in
// by the assembler from the section name string table.
type SectionHeader struct {
	Name      string
	NameOff   uint32
	Type      SectionType
	RawType   uint32
	Flags     SectionFlags
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	Addralign uint64
	Entsize   uint64
}

func DecodeSectionHeader(b []byte) (s SectionHeader, err error) {
	r := NewReader(b)
	if s.NameOff, err = r.ReadU32(); err != nil {
		return
	}
	if s.RawType, err = r.ReadU32(); err != nil {
		return
	}
	s.Type = DecodeSectionType(s.RawType)
	var flags uint64
	if flags, err = r.ReadU64(); err != nil {
		return
	}
	s.Flags = SectionFlags(flags)
	for _, f := range []*uint64{&s.Addr, &s.Offset, &s.Size} {
		if *f, err = r.ReadU64(); err != nil {
			return
		}
	}
	for _, f := range []*uint32{&s.Link, &s.Info} {
		if *f, err = r.ReadU32(); err != nil {
			return
		}
	}
	for _, f := range []*uint64{&s.Addralign, &s.Entsize} {
		if *f, err = r.ReadU64(); err != nil {
			return
		}
	}
	return
}

// Flag is the single-value view of Flags.
func (s *SectionHeader) Flag() SectionFlag {
	return DecodeSectionFlag(uint64(s.Flags))
}

// end returns Offset+Size, ok is false on overflow.
func (s *SectionHeader) end() (end uint64, ok bool) {
	end = s.Offset + s.Size
	return end, end >= s.Offset
}
