package main

import (
	"flag"
	"os"

	"github.com/fatih/color"

	"github.com/ii64/elfdump/cmd"
	"github.com/ii64/elfdump/conf"
)

func _main(args []string) {
	var err error
	var exitCode int
	cfg := conf.Default()
	fs := cfg.FlagSet("elfdump", flag.ExitOnError)
	oldUsage := fs.Usage
	fs.Usage = func() {
		oldUsage()
		fs.PrintDefaults()
	}
	err = fs.Parse(args)
	if err != nil {
		goto Exit
	}
	err = cfg.Validate()
	if err != nil {
		goto Exit
	}
	err = cmd.Main(cfg)
Exit:
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", err)
		exitCode = 1
	}
	os.Exit(exitCode)
}

func main() {
	_main(os.Args[1:])
}
