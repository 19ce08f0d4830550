package cmd

import (
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/ii64/elfdump/conf"
	"github.com/ii64/elfdump/lib/display"
	"github.com/ii64/elfdump/lib/elf"
	"github.com/ii64/elfdump/lib/obj"
)

func Main(cfg *conf.Config) error {
	return Run(cfg, os.Stdout, NewLogger(os.Stderr, cfg.Verbose))
}

func NewLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// Run loads every configured file, then renders them all. Nothing is
// written to out if any file fails to load.
func Run(cfg *conf.Config, out io.Writer, logger log.Logger) (err error) {
	var r display.Renderer
	if r, err = display.New(cfg.Format, cfg.Color); err != nil {
		return
	}

	objs := make([]*obj.Object, 0, len(cfg.Files))
	for _, path := range cfg.Files {
		var o *obj.Object
		if o, err = load(path, cfg, logger); err != nil {
			return
		}
		objs = append(objs, o)
	}
	return r.Render(out, objs, cfg.Selection())
}

func load(path string, cfg *conf.Config, logger log.Logger) (o *obj.Object, err error) {
	dec := &elf.Decoder{
		Observe:  traceDecode(logger, path),
		UsePhoff: cfg.UsePhoff,
	}
	if o, err = obj.ReadFile(path, dec); err != nil {
		return
	}
	level.Debug(logger).Log("msg", "parsed", "file", path,
		"progs", len(o.Elf.Progs), "sections", len(o.Elf.Sections))

	if cfg.Strict {
		if err = o.Check(); err != nil {
			return nil, errors.WithMessagef(err, "strict check %s", path)
		}
		return
	}
	if verr := o.Elf.Validate(); verr != nil {
		level.Warn(logger).Log("msg", "invalid header", "file", path, "err", verr)
	}
	if lerr := o.Elf.Lint(); lerr != nil {
		level.Warn(logger).Log("msg", "misaligned entries", "file", path, "err", lerr)
	}
	return
}

func traceDecode(logger log.Logger, path string) elf.Observer {
	debug := level.Debug(log.With(logger, "file", path))
	return func(ev elf.Event) {
		debug.Log("msg", "decoded", "stage", ev.Stage, "index", ev.Index, "offset", ev.Offset)
	}
}
