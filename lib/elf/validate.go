package elf

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/ii64/elfdump/lib/util"
)

// CheckAlign checks that a non-trivial p_align is a power of two and that
// p_vaddr and p_offset are congruent modulo p_align.
func (p *ProgHeader) CheckAlign() error {
	if p.Align <= 1 {
		return nil
	}
	if !util.IsPow2(p.Align) {
		return errors.Errorf("alignment %#x is not a power of two", p.Align)
	}
	if !util.Congruent(p.Vaddr, p.Off, p.Align) {
		return errors.Errorf("vaddr %#x and offset %#x differ modulo %#x", p.Vaddr, p.Off, p.Align)
	}
	return nil
}

// CheckAlign checks that a non-trivial sh_addralign is a power of two and
// that sh_addr is a multiple of it. The error names the next aligned address.
func (s *SectionHeader) CheckAlign() error {
	if s.Addralign <= 1 {
		return nil
	}
	if !util.IsPow2(s.Addralign) {
		return errors.Errorf("alignment %#x is not a power of two", s.Addralign)
	}
	if next := util.AlignUp(s.Addr, s.Addralign); next != s.Addr {
		return errors.Errorf("address %#x is not aligned to %#x (next %#x)", s.Addr, s.Addralign, next)
	}
	return nil
}

// Lint collects every alignment violation in f. Parse never rejects a file
// for these.
func (f *File) Lint() error {
	var result *multierror.Error
	for i := range f.Progs {
		if err := f.Progs[i].CheckAlign(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "program header %d", i))
		}
	}
	for i := range f.Sections {
		if err := f.Sections[i].CheckAlign(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "section %d (%s)", i, f.Sections[i].Name))
		}
	}
	return result.ErrorOrNil()
}
