package conf

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/ii64/elfdump/lib/display"
)

func (c *Config) FlagSet(name string, errorHandling flag.ErrorHandling) *flag.FlagSet {
	fs := flag.NewFlagSet(name, errorHandling)
	c.fs = fs

	fs.BoolVar(&c.FileHeader, "file-header", false, "Display the ELF file header")
	fs.BoolVar(&c.ProgramHeaders, "program-headers", false, "Display the program headers")
	fs.BoolVar(&c.SectionHeaders, "section-headers", false, "Display the section headers")
	fs.BoolVar(&c.All, "all", false, "Equivalent to -file-header -program-headers -section-headers")

	fs.StringVar(&c.Format, "format", getDefaultFormat(),
		"Output format: "+strings.Join(display.Formats, ", "))
	fs.BoolVar(&c.Color, "color", isatty.IsTerminal(os.Stdout.Fd()), "Colorize text output")

	fs.BoolVar(&c.Strict, "strict", false, "Fail on invalid header fields or misaligned segments and sections")
	fs.BoolVar(&c.Verbose, "v", false, "Enable debug logging")
	fs.BoolVar(&c.UsePhoff, "use-phoff", false, "Locate program headers at e_phoff instead of after the file header")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] elf-file...\n", name)
	}
	return fs
}

func getDefaultFormat() string {
	f := os.Getenv("ELFDUMP_FORMAT")
	if f == "" {
		return display.FormatText
	}
	return f
}
