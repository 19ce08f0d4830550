package conf

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ii64/elfdump/lib/display"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	cfg := Default()
	fs := cfg.FlagSet("elfdump", flag.ContinueOnError)
	require.NoError(t, fs.Parse(args))
	return cfg, cfg.Validate()
}

func touch(t *testing.T, name string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte{0x7f}, 0o644))
	return p
}

func TestDefaults(t *testing.T) {
	t.Setenv("ELFDUMP_FORMAT", "")
	p := touch(t, "a.out")
	cfg, err := parse(t, p)
	require.NoError(t, err)
	assert.Equal(t, []string{p}, cfg.Files)
	assert.Equal(t, display.FormatText, cfg.Format)
	assert.Equal(t, display.Selection{Header: true}, cfg.Selection())
}

func TestFormatFromEnv(t *testing.T) {
	t.Setenv("ELFDUMP_FORMAT", "yaml")
	cfg, err := parse(t, touch(t, "a.out"))
	require.NoError(t, err)
	assert.Equal(t, display.FormatYAML, cfg.Format)

	cfg, err = parse(t, "-format", "dump", touch(t, "b.out"))
	require.NoError(t, err)
	assert.Equal(t, display.FormatDump, cfg.Format)
}

func TestSelection(t *testing.T) {
	t.Setenv("ELFDUMP_FORMAT", "")
	cfg, err := parse(t, "-section-headers", "-program-headers", touch(t, "a.out"))
	require.NoError(t, err)
	assert.Equal(t, display.Selection{Progs: true, Sections: true}, cfg.Selection())

	cfg, err = parse(t, "-all", touch(t, "a.out"))
	require.NoError(t, err)
	assert.True(t, cfg.Selection().All())
}

func TestValidateCollectsErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := parse(t, "-format", "xml", filepath.Join(dir, "missing"), dir, touch(t, "ok"))
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 3)
}

func TestValidateNothingToDo(t *testing.T) {
	t.Setenv("ELFDUMP_FORMAT", "")
	_, err := parse(t)
	assert.EqualError(t, err, "nothing to do")
}

func TestUsePhoffFlag(t *testing.T) {
	cfg, err := parse(t, touch(t, "a.out"))
	require.NoError(t, err)
	assert.False(t, cfg.UsePhoff)

	cfg, err = parse(t, "-use-phoff", touch(t, "a.out"))
	require.NoError(t, err)
	assert.True(t, cfg.UsePhoff)
}
