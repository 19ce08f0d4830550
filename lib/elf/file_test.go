package elf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinimal(t *testing.T) {
	data, h := minimalImage()
	f, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, h, f.Header)
	assert.Empty(t, f.Progs)
	require.Len(t, f.Sections, 1)
	assert.Equal(t, SectionTypeStrTab, f.Sections[0].Type)
	assert.Equal(t, "", f.Sections[0].Name)
	assert.NoError(t, f.Validate())
}

func TestParseExec(t *testing.T) {
	data, h := execImage()
	f, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, h, f.Header)
	assert.Equal(t, execProgs, f.Progs)
	assert.Equal(t, execSections, f.Sections)
	assert.Equal(t, SectionFlagNone, f.Sections[0].Flag())
	assert.Equal(t, SectionFlagUndefined, f.Sections[1].Flag(), "AX is a combination")

	require.NotNil(t, f.Section(".data"))
	assert.Equal(t, uint64(0x404000), f.Section(".data").Addr)
	assert.Nil(t, f.Section(".bss"))
	assert.Equal(t, ".shstrtab", f.SectionByType(SectionTypeStrTab).Name)
	assert.Nil(t, f.SectionByType(SectionTypeSymTab))

	strtab, err := f.SectionData(data, 3)
	require.NoError(t, err)
	assert.Equal(t, execStrtab, string(strtab))
	_, err = f.SectionData(data, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds, ".text lies beyond the test image")
	_, err = f.SectionData(data, 4)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestParseTruncated(t *testing.T) {
	for name, build := range map[string]func() ([]byte, Header){
		"minimal": minimalImage,
		"exec":    execImage,
	} {
		t.Run(name, func(t *testing.T) {
			data, _ := build()
			for k := 0; k < len(data); k++ {
				f, err := Parse(data[:k])
				require.ErrorIs(t, err, ErrOutOfBounds, "prefix %d", k)
				require.Nil(t, f)
			}
			_, err := Parse(data)
			require.NoError(t, err)
		})
	}
}

func TestParseCounts(t *testing.T) {
	data, h := execImage()
	for phnum := uint16(0); phnum <= h.Phnum; phnum++ {
		b := append([]byte(nil), data...)
		b[56], b[57] = byte(phnum), 0
		f, err := Parse(b)
		require.NoError(t, err)
		assert.Len(t, f.Progs, int(phnum))
		assert.Len(t, f.Sections, int(h.Shnum))
	}
}

func TestParseIdempotent(t *testing.T) {
	data, _ := execImage()
	a, err := Parse(data)
	require.NoError(t, err)
	b, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseNoSections(t *testing.T) {
	data, _ := execImage()
	b := append([]byte(nil), data[:200]...)
	b[60], b[61] = 0, 0 // e_shnum
	f, err := Parse(b)
	require.NoError(t, err)
	assert.Len(t, f.Progs, 2)
	assert.Empty(t, f.Sections)
}

func TestParseBadReferences(t *testing.T) {
	cases := []struct {
		name   string
		modify func(b []byte)
	}{
		{"shstrndx out of range", func(b []byte) { b[62] = 4 }},
		{"shoff beyond file", func(b []byte) { b[40], b[41] = 0xff, 0xff }},
		{"phentsize zero", func(b []byte) { b[54] = 0 }},
		{"shentsize short", func(b []byte) { b[58] = 32 }},
		{"strtab offset overflow", func(b []byte) {
			// sh_offset of section 3
			for i := 0; i < 8; i++ {
				b[200+3*64+24+i] = 0xff
			}
		}},
		{"strtab size past end", func(b []byte) { b[200+3*64+33] = 0xff }},
		{"name offset past strtab", func(b []byte) { b[200+64] = 100 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, _ := execImage()
			c.modify(data)
			f, err := Parse(data)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			assert.Nil(t, f)
		})
	}
}

func TestParseProgsFollowHeader(t *testing.T) {
	for _, phoff := range []uint64{0, 0x10000000, 200} {
		data, _ := execImage()
		binary.LittleEndian.PutUint64(data[32:], phoff)
		f, err := Parse(data)
		require.NoError(t, err, "phoff %#x", phoff)
		assert.Equal(t, phoff, f.Phoff)
		assert.Equal(t, execProgs, f.Progs, "phoff %#x", phoff)
	}
}

func TestDecoderUsePhoff(t *testing.T) {
	d := Decoder{UsePhoff: true}

	data, _ := execImage()
	f, err := d.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, execProgs, f.Progs)

	binary.LittleEndian.PutUint64(data[32:], 0x10000000)
	f, err = d.Parse(data)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Nil(t, f)

	binary.LittleEndian.PutUint64(data[32:], 0)
	f, err = d.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x464c457f), f.Progs[0].RawType)
}

func TestParseUnknownTags(t *testing.T) {
	data, _ := execImage()
	data[16], data[17] = 0x34, 0x12 // e_type
	data[64], data[65], data[66], data[67] = 0x50, 0xe5, 0x74, 0x64
	data[68] = 0x0f
	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, FileTypeUndefined, f.Type)
	assert.Equal(t, uint16(0x1234), f.RawType)
	assert.Equal(t, SegmentTypeUndefined, f.Progs[0].Type)
	assert.Equal(t, uint32(0x6474e550), f.Progs[0].RawType)
	assert.Equal(t, SegmentFlagUndefined, f.Progs[0].Flags)
}

func TestDecoderObserve(t *testing.T) {
	data, _ := execImage()
	var events []Event
	d := Decoder{Observe: func(ev Event) { events = append(events, ev) }}
	_, err := d.Parse(data)
	require.NoError(t, err)

	count := map[Stage]int{}
	for _, ev := range events {
		count[ev.Stage]++
	}
	assert.Equal(t, map[Stage]int{StageHeader: 1, StageProg: 2, StageSection: 4, StageName: 4}, count)
	assert.Equal(t, Event{Stage: StageHeader, Index: -1}, events[0])
	assert.Equal(t, Event{Stage: StageProg, Index: 1, Offset: 64 + 56}, events[2])
	assert.Equal(t, Event{Stage: StageSection, Index: 0, Offset: 200}, events[3])
	assert.Equal(t, Event{Stage: StageName, Index: 3, Offset: 13}, events[len(events)-1])
}

func TestParseELF32(t *testing.T) {
	_, err := ParseELF32([]byte{0x7f, 'E', 'L', 'F', ELFCLASS32})
	assert.ErrorIs(t, err, ErrUnsupportedClass)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = ParseELF32([]byte{0x7f})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
