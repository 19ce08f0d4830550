package display

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ii64/elfdump/lib/elf"
	"github.com/ii64/elfdump/lib/obj"
)

// YAML renders one document per object.
type YAML struct{}

type fileView struct {
	File     string        `yaml:"file"`
	Size     int64         `yaml:"size"`
	Header   *headerView   `yaml:"header,omitempty"`
	Progs    []progView    `yaml:"program_headers,omitempty"`
	Sections []sectionView `yaml:"section_headers,omitempty"`
}

type headerView struct {
	Magic      string `yaml:"magic"`
	Class      string `yaml:"class"`
	Data       string `yaml:"data"`
	Version    uint8  `yaml:"ident_version"`
	OSABI      string `yaml:"os_abi"`
	ABIVersion uint8  `yaml:"abi_version"`
	Type       string `yaml:"type"`
	Machine    string `yaml:"machine"`
	ObjVersion uint32 `yaml:"version"`
	Entry      string `yaml:"entry"`
	Phoff      uint64 `yaml:"phoff"`
	Shoff      uint64 `yaml:"shoff"`
	Flags      string `yaml:"flags"`
	Ehsize     uint16 `yaml:"ehsize"`
	Phentsize  uint16 `yaml:"phentsize"`
	Phnum      uint16 `yaml:"phnum"`
	Shentsize  uint16 `yaml:"shentsize"`
	Shnum      uint16 `yaml:"shnum"`
	Shstrndx   uint16 `yaml:"shstrndx"`
}

type progView struct {
	Type   string `yaml:"type"`
	Flags  string `yaml:"flags"`
	Offset string `yaml:"offset"`
	Vaddr  string `yaml:"vaddr"`
	Paddr  string `yaml:"paddr"`
	Filesz uint64 `yaml:"filesz"`
	Memsz  uint64 `yaml:"memsz"`
	Align  uint64 `yaml:"align"`
}

type sectionView struct {
	Index     int      `yaml:"index"`
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Flags     []string `yaml:"flags,flow"`
	Addr      string   `yaml:"addr"`
	Offset    string   `yaml:"offset"`
	Size      uint64   `yaml:"size"`
	Link      uint32   `yaml:"link"`
	Info      uint32   `yaml:"info"`
	Addralign uint64   `yaml:"addralign"`
	Entsize   uint64   `yaml:"entsize"`
}

func newHeaderView(h *elf.Header) *headerView {
	return &headerView{
		Magic:      fmt.Sprintf("% x", h.Magic[:]),
		Class:      classString(h.Class),
		Data:       dataString(h.Data),
		Version:    h.IdentVersion,
		OSABI:      osabiString(h.OSABI),
		ABIVersion: h.ABIVersion,
		Type:       fileTypeString(h),
		Machine:    machineString(h.Machine),
		ObjVersion: h.Version,
		Entry:      hex(h.Entry),
		Phoff:      h.Phoff,
		Shoff:      h.Shoff,
		Flags:      hex(uint64(h.Flags)),
		Ehsize:     h.Ehsize,
		Phentsize:  h.Phentsize,
		Phnum:      h.Phnum,
		Shentsize:  h.Shentsize,
		Shnum:      h.Shnum,
		Shstrndx:   h.Shstrndx,
	}
}

func newFileView(o *obj.Object, sel Selection) *fileView {
	v := &fileView{File: o.Name, Size: o.Size}
	f := o.Elf
	if sel.Header {
		v.Header = newHeaderView(&f.Header)
	}
	if sel.Progs {
		for i := range f.Progs {
			p := &f.Progs[i]
			v.Progs = append(v.Progs, progView{
				Type:   segmentTypeString(p),
				Flags:  segmentFlagString(p),
				Offset: hex(p.Off),
				Vaddr:  hex(p.Vaddr),
				Paddr:  hex(p.Paddr),
				Filesz: p.Filesz,
				Memsz:  p.Memsz,
				Align:  p.Align,
			})
		}
	}
	if sel.Sections {
		for i := range f.Sections {
			s := &f.Sections[i]
			var flags []string
			for _, fl := range s.Flags.Flags() {
				flags = append(flags, fl.String())
			}
			if unk := s.Flags.Unknown(); unk != 0 {
				flags = append(flags, hex(uint64(unk)))
			}
			v.Sections = append(v.Sections, sectionView{
				Index:     i,
				Name:      s.Name,
				Type:      sectionTypeString(s),
				Flags:     flags,
				Addr:      hex(s.Addr),
				Offset:    hex(s.Offset),
				Size:      s.Size,
				Link:      s.Link,
				Info:      s.Info,
				Addralign: s.Addralign,
				Entsize:   s.Entsize,
			})
		}
	}
	return v
}

func (YAML) Render(w io.Writer, objs []*obj.Object, sel Selection) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, o := range objs {
		if err := enc.Encode(newFileView(o, sel)); err != nil {
			return errors.Wrapf(err, "display: yaml %s", o.Name)
		}
	}
	return enc.Close()
}
