package display

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/ii64/elfdump/lib/obj"
)

// Dump writes the decoded Go values with spew, for debugging the decoder.
type Dump struct{}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (Dump) Render(out io.Writer, objs []*obj.Object, sel Selection) error {
	w := &errWriter{w: out}
	for _, o := range objs {
		if sel.All() {
			dumpConfig.Fdump(w, o)
		} else {
			fmt.Fprintf(w, "# %s\n", o.Name)
			if sel.Header {
				dumpConfig.Fdump(w, o.Elf.Header)
			}
			if sel.Progs {
				dumpConfig.Fdump(w, o.Elf.Progs)
			}
			if sel.Sections {
				dumpConfig.Fdump(w, o.Elf.Sections)
			}
		}
		if w.err != nil {
			return errors.Wrapf(w.err, "display: dump %s", o.Name)
		}
	}
	return nil
}
