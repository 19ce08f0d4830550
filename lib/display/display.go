package display

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ii64/elfdump/lib/obj"
)

// Selection picks the parts of an object to render.
type Selection struct {
	Header   bool
	Progs    bool
	Sections bool
}

func (s Selection) All() bool {
	return s.Header && s.Progs && s.Sections
}

type Renderer interface {
	Render(w io.Writer, objs []*obj.Object, sel Selection) error
}

const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatDump = "dump"
)

var Formats = []string{FormatText, FormatYAML, FormatDump}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (n int, err error) {
	if ew.err != nil {
		return 0, ew.err
	}
	if n, err = ew.w.Write(p); err != nil {
		ew.err = err
	}
	return
}

func New(format string, color bool) (Renderer, error) {
	switch format {
	case FormatText:
		return &Text{Color: color}, nil
	case FormatYAML:
		return YAML{}, nil
	case FormatDump:
		return Dump{}, nil
	}
	return nil, errors.Errorf("display: unknown format %q", format)
}
