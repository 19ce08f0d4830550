package conf

import (
	"flag"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/ii64/elfdump/lib/display"
)

type Config struct {
	Files []string

	FileHeader     bool
	ProgramHeaders bool
	SectionHeaders bool
	All            bool

	// Format is one of display.Formats.
	Format string
	Color  bool

	// Strict fails on header validation and alignment lint errors.
	Strict  bool
	Verbose bool

	// UsePhoff reads the program header table at e_phoff instead of right
	// after the file header.
	UsePhoff bool

	fs *flag.FlagSet
}

func Default() *Config {
	return &Config{}
}

func (cfg *Config) Selection() display.Selection {
	if cfg.All {
		return display.Selection{Header: true, Progs: true, Sections: true}
	}
	sel := display.Selection{
		Header:   cfg.FileHeader,
		Progs:    cfg.ProgramHeaders,
		Sections: cfg.SectionHeaders,
	}
	if !sel.Header && !sel.Progs && !sel.Sections {
		sel.Header = true
	}
	return sel
}

func (cfg *Config) Validate() error {
	var result *multierror.Error

	if !slices.Contains(display.Formats, cfg.Format) {
		result = multierror.Append(result, errors.Errorf("unknown format %q, want one of %v", cfg.Format, display.Formats))
	}

	cfg.Files = cfg.Files[:0]
	for _, inp := range cfg.fs.Args() {
		if !validateFilePath(inp) {
			result = multierror.Append(result, errors.Errorf("file %q: missing or not a regular file", inp))
			continue
		}
		cfg.Files = append(cfg.Files, mustAbs(inp))
	}
	if result == nil && len(cfg.Files) < 1 {
		return errors.New("nothing to do")
	}
	return result.ErrorOrNil()
}
