package elf

// ProgHeader is one entry of the program header table.
type ProgHeader struct {
	Type     SegmentType
	RawType  uint32
	Flags    SegmentFlag
	RawFlags uint32
	Off      uint64
	Vaddr    uint64
	Paddr    uint64
	Filesz   uint64
	Memsz    uint64
	Align    uint64
}

func DecodeProgHeader(b []byte) (p ProgHeader, err error) {
	r := NewReader(b)
	if p.RawType, err = r.ReadU32(); err != nil {
		return
	}
	p.Type = DecodeSegmentType(p.RawType)
	if p.RawFlags, err = r.ReadU32(); err != nil {
		return
	}
	p.Flags = DecodeSegmentFlag(p.RawFlags)
	for _, f := range []*uint64{&p.Off, &p.Vaddr, &p.Paddr, &p.Filesz, &p.Memsz, &p.Align} {
		if *f, err = r.ReadU64(); err != nil {
			return
		}
	}
	return
}
