package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/ii64/elfdump/lib/elf"
	"github.com/ii64/elfdump/lib/obj"
)

// Text renders readelf-like output.
type Text struct {
	Color bool
}

func (t *Text) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (t *Text) Render(out io.Writer, objs []*obj.Object, sel Selection) error {
	w := &errWriter{w: out}
	banner := t.style(color.Bold, color.FgHiBlue)
	for i, o := range objs {
		if len(objs) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			banner.Fprintf(w, "File: %s", o.Name)
			fmt.Fprintf(w, " (%s)\n", humanize.IBytes(uint64(o.Size)))
		}
		if sel.Header {
			t.header(w, &o.Elf.Header)
		}
		if sel.Progs {
			t.progs(w, o.Elf)
		}
		if sel.Sections {
			t.sections(w, o.Elf)
		}
		if w.err != nil {
			return errors.Wrapf(w.err, "display: text %s", o.Name)
		}
	}
	return nil
}

func (t *Text) header(w io.Writer, h *elf.Header) {
	t.style(color.Bold).Fprintln(w, "ELF Header:")
	fmt.Fprint(w, "  Magic:  ")
	for _, b := range h.Magic {
		fmt.Fprintf(w, " %02x", b)
	}
	fmt.Fprintf(w, " %02x %02x %02x %02x %02x", h.Class, h.Data, h.IdentVersion, h.OSABI, h.ABIVersion)
	for _, b := range h.Pad {
		fmt.Fprintf(w, " %02x", b)
	}
	fmt.Fprintln(w)

	field := func(name string, format string, args ...any) {
		fmt.Fprintf(w, "  %-35s"+format+"\n", append([]any{name + ":"}, args...)...)
	}
	field("Class", "%s", classString(h.Class))
	field("Data", "%s", dataString(h.Data))
	field("Version", "%d", h.IdentVersion)
	field("OS/ABI", "%s", osabiString(h.OSABI))
	field("ABI Version", "%d", h.ABIVersion)
	field("Type", "%s", fileTypeString(h))
	field("Machine", "%s", machineString(h.Machine))
	field("Version", "%#x", h.Version)
	field("Entry point address", "%#x", h.Entry)
	field("Start of program headers", "%d (bytes into file)", h.Phoff)
	field("Start of section headers", "%d (bytes into file)", h.Shoff)
	field("Flags", "%#x", h.Flags)
	field("Size of this header", "%d (bytes)", h.Ehsize)
	field("Size of program headers", "%d (bytes)", h.Phentsize)
	field("Number of program headers", "%d", h.Phnum)
	field("Size of section headers", "%d (bytes)", h.Shentsize)
	field("Number of section headers", "%d", h.Shnum)
	field("Section header string table index", "%d", h.Shstrndx)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func size(v uint64) string {
	return fmt.Sprintf("%#x (%s)", v, humanize.IBytes(v))
}

func (t *Text) progs(w io.Writer, f *elf.File) {
	fmt.Fprintln(w)
	if len(f.Progs) == 0 {
		fmt.Fprintln(w, "There are no program headers in this file.")
		return
	}
	t.style(color.Bold).Fprintln(w, "Program Headers:")
	table := newTable(w, []string{"Type", "Offset", "VirtAddr", "PhysAddr", "FileSiz", "MemSiz", "Flags", "Align"})
	for i := range f.Progs {
		p := &f.Progs[i]
		table.Append([]string{
			segmentTypeString(p),
			hex(p.Off),
			hex(p.Vaddr),
			hex(p.Paddr),
			size(p.Filesz),
			size(p.Memsz),
			segmentFlagString(p),
			hex(p.Align),
		})
	}
	table.Render()
}

func (t *Text) sections(w io.Writer, f *elf.File) {
	fmt.Fprintln(w)
	if len(f.Sections) == 0 {
		fmt.Fprintln(w, "There are no sections in this file.")
		return
	}
	t.style(color.Bold).Fprintln(w, "Section Headers:")
	table := newTable(w, []string{"[Nr]", "Name", "Type", "Address", "Offset", "Size", "EntSize", "Flags", "Link", "Info", "Align"})
	for i := range f.Sections {
		s := &f.Sections[i]
		table.Append([]string{
			"[" + strconv.Itoa(i) + "]",
			s.Name,
			sectionTypeString(s),
			hex(s.Addr),
			hex(s.Offset),
			size(s.Size),
			hex(s.Entsize),
			s.Flags.String(),
			strconv.FormatUint(uint64(s.Link), 10),
			strconv.FormatUint(uint64(s.Info), 10),
			strconv.FormatUint(s.Addralign, 10),
		})
	}
	table.Render()
	fmt.Fprintln(w, "Key to Flags:")
	fmt.Fprintln(w, "  W (write), A (alloc), X (execute), M (merge), S (strings), I (info),")
	fmt.Fprintln(w, "  L (link order), O (extra OS processing required), G (group), T (TLS),")
	fmt.Fprintln(w, "  o (OS specific), p (processor specific), R (ordered), E (exclude), x (unknown)")
}
