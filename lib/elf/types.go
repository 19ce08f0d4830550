package elf

import "strings"

// FileType is the decoded e_type of the file header.
type FileType uint8

const (
	FileTypeUndefined FileType = iota
	FileTypeNone
	FileTypeRel
	FileTypeExec
	FileTypeDyn
	FileTypeCore
	FileTypeOSSpecific
	FileTypeProcSpecific
)

var fileTypeStrings = map[FileType]string{
	FileTypeUndefined:    "UNDEFINED",
	FileTypeNone:         "NONE (No file type)",
	FileTypeRel:          "REL (Relocatable file)",
	FileTypeExec:         "EXEC (Executable file)",
	FileTypeDyn:          "DYN (Shared object file)",
	FileTypeCore:         "CORE (Core file)",
	FileTypeOSSpecific:   "OS Specific",
	FileTypeProcSpecific: "Processor Specific",
}

func (t FileType) String() string {
	if s, ok := fileTypeStrings[t]; ok {
		return s
	}
	return fileTypeStrings[FileTypeUndefined]
}

func DecodeFileType(v uint16) FileType {
	switch {
	case v == 0:
		return FileTypeNone
	case v == 1:
		return FileTypeRel
	case v == 2:
		return FileTypeExec
	case v == 3:
		return FileTypeDyn
	case v == 4:
		return FileTypeCore
	case v >= 0xfe00 && v <= 0xfeff:
		return FileTypeOSSpecific
	case v >= 0xff00:
		return FileTypeProcSpecific
	}
	return FileTypeUndefined
}

// SegmentType is the decoded p_type of a program header.
type SegmentType uint8

const (
	SegmentTypeUndefined SegmentType = iota
	SegmentTypeNull
	SegmentTypeLoad
	SegmentTypeDynamic
)

func (t SegmentType) String() string {
	switch t {
	case SegmentTypeNull:
		return "NULL"
	case SegmentTypeLoad:
		return "LOAD"
	case SegmentTypeDynamic:
		return "DYNAMIC"
	}
	return "UNDEFINED"
}

func DecodeSegmentType(v uint32) SegmentType {
	switch v {
	case 0:
		return SegmentTypeNull
	case 1:
		return SegmentTypeLoad
	case 2:
		return SegmentTypeDynamic
	}
	return SegmentTypeUndefined
}

// SegmentFlag is one of the seven non-empty read/write/execute combinations.
type SegmentFlag uint8

const (
	SegmentFlagUndefined SegmentFlag = iota
	SegmentFlagX
	SegmentFlagW
	SegmentFlagWX
	SegmentFlagR
	SegmentFlagRX
	SegmentFlagRW
	SegmentFlagRWX
)

func (f SegmentFlag) has(pf uint8) bool {
	return f <= SegmentFlagRWX && uint8(f)&pf != 0
}

func (f SegmentFlag) Readable() bool   { return f.has(4) }
func (f SegmentFlag) Writable() bool   { return f.has(2) }
func (f SegmentFlag) Executable() bool { return f.has(1) }

func (f SegmentFlag) String() string {
	if f == SegmentFlagUndefined {
		return "UNDEFINED"
	}
	b := []byte("   ")
	if f.Readable() {
		b[0] = 'R'
	}
	if f.Writable() {
		b[1] = 'W'
	}
	if f.Executable() {
		b[2] = 'E'
	}
	return string(b)
}

// DecodeSegmentFlag maps p_flags 1..7 onto the PF_X/PF_W/PF_R combinations.
// Anything else, including masked OS or processor bits, is undefined.
func DecodeSegmentFlag(v uint32) SegmentFlag {
	if v >= 1 && v <= 7 {
		return SegmentFlag(v)
	}
	return SegmentFlagUndefined
}

// SectionType is the decoded sh_type of a section header.
type SectionType uint8

const (
	SectionTypeUndefined SectionType = iota
	SectionTypeNull
	SectionTypeProgBits
	SectionTypeSymTab
	SectionTypeStrTab
	SectionTypeRela
	SectionTypeHash
	SectionTypeDynamic
	SectionTypeNote
	SectionTypeNoBits
	SectionTypeRel
	SectionTypeShLib
	SectionTypeDynSym
	SectionTypeInitArray
	SectionTypeFiniArray
	SectionTypePreInitArray
	SectionTypeGroup
	SectionTypeSymTabShndx
	SectionTypeNum
	SectionTypeLoOS
)

var sectionTypeTags = map[uint32]SectionType{
	0:          SectionTypeNull,
	1:          SectionTypeProgBits,
	2:          SectionTypeSymTab,
	3:          SectionTypeStrTab,
	4:          SectionTypeRela,
	5:          SectionTypeHash,
	6:          SectionTypeDynamic,
	7:          SectionTypeNote,
	8:          SectionTypeNoBits,
	9:          SectionTypeRel,
	10:         SectionTypeShLib,
	11:         SectionTypeDynSym,
	14:         SectionTypeInitArray,
	15:         SectionTypeFiniArray,
	16:         SectionTypePreInitArray,
	17:         SectionTypeGroup,
	18:         SectionTypeSymTabShndx,
	19:         SectionTypeNum,
	0x60000000: SectionTypeLoOS,
}

var sectionTypeStrings = [...]string{
	SectionTypeUndefined:    "UNDEFINED",
	SectionTypeNull:         "NULL",
	SectionTypeProgBits:     "PROGBITS",
	SectionTypeSymTab:       "SYMTAB",
	SectionTypeStrTab:       "STRTAB",
	SectionTypeRela:         "RELA",
	SectionTypeHash:         "HASH",
	SectionTypeDynamic:      "DYNAMIC",
	SectionTypeNote:         "NOTE",
	SectionTypeNoBits:       "NOBITS",
	SectionTypeRel:          "REL",
	SectionTypeShLib:        "SHLIB",
	SectionTypeDynSym:       "DYNSYM",
	SectionTypeInitArray:    "INIT_ARRAY",
	SectionTypeFiniArray:    "FINI_ARRAY",
	SectionTypePreInitArray: "PREINIT_ARRAY",
	SectionTypeGroup:        "GROUP",
	SectionTypeSymTabShndx:  "SYMTAB_SHNDX",
	SectionTypeNum:          "NUM",
	SectionTypeLoOS:         "LOOS",
}

func (t SectionType) String() string {
	if int(t) < len(sectionTypeStrings) {
		return sectionTypeStrings[t]
	}
	return sectionTypeStrings[SectionTypeUndefined]
}

func DecodeSectionType(v uint32) SectionType {
	if t, ok := sectionTypeTags[v]; ok {
		return t
	}
	return SectionTypeUndefined
}

// SectionFlags is the raw sh_flags bitmask.
type SectionFlags uint64

const (
	SHF_WRITE            SectionFlags = 0x1
	SHF_ALLOC            SectionFlags = 0x2
	SHF_EXECINSTR        SectionFlags = 0x4
	SHF_MERGE            SectionFlags = 0x10
	SHF_STRINGS          SectionFlags = 0x20
	SHF_INFO_LINK        SectionFlags = 0x40
	SHF_LINK_ORDER       SectionFlags = 0x80
	SHF_OS_NONCONFORMING SectionFlags = 0x100
	SHF_GROUP            SectionFlags = 0x200
	SHF_TLS              SectionFlags = 0x400
	SHF_MASKOS           SectionFlags = 0x0ff00000
	SHF_MASKPROC         SectionFlags = 0xf0000000
	SHF_ORDERED          SectionFlags = 0x40000000
	SHF_EXCLUDE          SectionFlags = 0x80000000
)

// SectionFlag is a single decoded sh_flags value.
type SectionFlag uint8

const (
	SectionFlagUndefined SectionFlag = iota
	SectionFlagNone
	SectionFlagWrite
	SectionFlagAlloc
	SectionFlagExecInstr
	SectionFlagMerge
	SectionFlagStrings
	SectionFlagInfoLink
	SectionFlagLinkOrder
	SectionFlagOSNonConforming
	SectionFlagGroup
	SectionFlagTLS
	SectionFlagMaskOS
	SectionFlagMaskProc
	SectionFlagOrdered
	SectionFlagExclude
)

// bit order used by both the single value decoder and SectionFlags.String
var sectionFlagBits = []struct {
	bit  SectionFlags
	flag SectionFlag
	abbr string
}{
	{SHF_WRITE, SectionFlagWrite, "W"},
	{SHF_ALLOC, SectionFlagAlloc, "A"},
	{SHF_EXECINSTR, SectionFlagExecInstr, "X"},
	{SHF_MERGE, SectionFlagMerge, "M"},
	{SHF_STRINGS, SectionFlagStrings, "S"},
	{SHF_INFO_LINK, SectionFlagInfoLink, "I"},
	{SHF_LINK_ORDER, SectionFlagLinkOrder, "L"},
	{SHF_OS_NONCONFORMING, SectionFlagOSNonConforming, "O"},
	{SHF_GROUP, SectionFlagGroup, "G"},
	{SHF_TLS, SectionFlagTLS, "T"},
	{SHF_MASKOS, SectionFlagMaskOS, "o"},
	{SHF_MASKPROC, SectionFlagMaskProc, "p"},
	{SHF_ORDERED, SectionFlagOrdered, "R"},
	{SHF_EXCLUDE, SectionFlagExclude, "E"},
}

var sectionFlagStrings = [...]string{
	SectionFlagUndefined:       "UNDEFINED",
	SectionFlagNone:            "NONE",
	SectionFlagWrite:           "WRITE",
	SectionFlagAlloc:           "ALLOC",
	SectionFlagExecInstr:       "EXECINSTR",
	SectionFlagMerge:           "MERGE",
	SectionFlagStrings:         "STRINGS",
	SectionFlagInfoLink:        "INFO_LINK",
	SectionFlagLinkOrder:       "LINK_ORDER",
	SectionFlagOSNonConforming: "OS_NONCONFORMING",
	SectionFlagGroup:           "GROUP",
	SectionFlagTLS:             "TLS",
	SectionFlagMaskOS:          "MASKOS",
	SectionFlagMaskProc:        "MASKPROC",
	SectionFlagOrdered:         "ORDERED",
	SectionFlagExclude:         "EXCLUDE",
}

func (f SectionFlag) String() string {
	if int(f) < len(sectionFlagStrings) {
		return sectionFlagStrings[f]
	}
	return sectionFlagStrings[SectionFlagUndefined]
}

// DecodeSectionFlag maps a sh_flags value holding exactly one known flag
// (or one of the two masks) to its SectionFlag. Combined values decode to
// SectionFlagUndefined; use SectionFlags for those.
func DecodeSectionFlag(v uint64) SectionFlag {
	if v == 0 {
		return SectionFlagNone
	}
	for _, b := range sectionFlagBits {
		if SectionFlags(v) == b.bit {
			return b.flag
		}
	}
	return SectionFlagUndefined
}

func (f SectionFlags) Has(bit SectionFlags) bool {
	return f&bit == bit
}

// Flags splits the bitmask into its known single flags. The mask ranges are
// reported only for bits not already covered by ORDERED or EXCLUDE.
func (f SectionFlags) Flags() (fs []SectionFlag) {
	rest := f
	for _, b := range sectionFlagBits {
		switch b.bit {
		case SHF_MASKOS, SHF_MASKPROC:
			continue
		}
		if f.Has(b.bit) {
			fs = append(fs, b.flag)
			rest &^= b.bit
		}
	}
	if rest&SHF_MASKOS != 0 {
		fs = append(fs, SectionFlagMaskOS)
	}
	if rest&SHF_MASKPROC != 0 {
		fs = append(fs, SectionFlagMaskProc)
	}
	return
}

// Unknown returns the bits that are not covered by any known flag or mask.
func (f SectionFlags) Unknown() SectionFlags {
	known := SHF_MASKOS | SHF_MASKPROC
	for _, b := range sectionFlagBits {
		known |= b.bit
	}
	return f &^ known
}

// String renders the flags with readelf's single-letter keys, "x" marks
// unknown bits.
func (f SectionFlags) String() string {
	var sb strings.Builder
	for _, fl := range f.Flags() {
		for _, b := range sectionFlagBits {
			if b.flag == fl {
				sb.WriteString(b.abbr)
				break
			}
		}
	}
	if f.Unknown() != 0 {
		sb.WriteString("x")
	}
	return sb.String()
}
