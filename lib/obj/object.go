package obj

import "github.com/ii64/elfdump/lib/elf"

// Note: only ELFCLASS64 images are decoded, Elf is never nil for a
// successfully read Object.

type Object struct {
	Name  string
	Size  int64
	Class uint8
	Elf   *elf.File
}

// Check runs the structural header checks and the alignment lint.
func (obj *Object) Check() error {
	if err := obj.Elf.Validate(); err != nil {
		return err
	}
	return obj.Elf.Lint()
}
