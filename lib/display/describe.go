package display

import (
	stdelf "debug/elf"
	"fmt"

	"github.com/ii64/elfdump/lib/elf"
)

func hex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

func classString(c uint8) string {
	switch c {
	case elf.ELFCLASS32:
		return "ELF32"
	case elf.ELFCLASS64:
		return "ELF64"
	case 0:
		return "none"
	}
	return fmt.Sprintf("<unknown: %x>", c)
}

func dataString(d uint8) string {
	switch d {
	case elf.ELFDATA2LSB:
		return "2's complement, little endian"
	case elf.ELFDATA2MSB:
		return "2's complement, big endian"
	case 0:
		return "none"
	}
	return fmt.Sprintf("<unknown: %x>", d)
}

func osabiString(v uint8) string {
	return stdelf.OSABI(v).String()
}

func machineString(m uint16) string {
	return stdelf.Machine(m).String()
}

// Undefined tags fall back to the raw value, named when the standard
// library knows it.

func fileTypeString(h *elf.Header) string {
	if h.Type == elf.FileTypeUndefined {
		return fmt.Sprintf("%s (%#x)", h.Type, h.RawType)
	}
	return h.Type.String()
}

func segmentTypeString(p *elf.ProgHeader) string {
	if p.Type == elf.SegmentTypeUndefined {
		return stdelf.ProgType(p.RawType).String()
	}
	return p.Type.String()
}

func segmentFlagString(p *elf.ProgHeader) string {
	if p.Flags == elf.SegmentFlagUndefined {
		return fmt.Sprintf("%#x", p.RawFlags)
	}
	return p.Flags.String()
}

func sectionTypeString(s *elf.SectionHeader) string {
	if s.Type == elf.SectionTypeUndefined {
		return stdelf.SectionType(s.RawType).String()
	}
	return s.Type.String()
}
