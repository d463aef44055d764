package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconreport/internal/core/options"
	"reconreport/internal/core/reporter"
)

func TestRoot_MissingTarget(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, options.ErrMissingTarget)
	assert.Contains(t, reporter.StripANSI(stderr.String()), "Usage : reconreport <target>")
	assert.Empty(t, stdout.String())
}

func TestRoot_TooManyArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"a.example", "b.example"})
	assert.Error(t, cmd.Execute())
}

func TestRoot_Version(t *testing.T) {
	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), "ReconReport "))
}

func TestCLILogLevel(t *testing.T) {
	assert.Equal(t, "fatal", cliLogLevel(&rootFlags{}, "fatal"))
	assert.Equal(t, "debug", cliLogLevel(&rootFlags{logLevel: "debug"}, "fatal"))
}

func TestSelectOutputMode_NonInteractive(t *testing.T) {
	orig := isInteractive
	isInteractive = func() bool { return false }
	defer func() { isInteractive = orig }()

	var out bytes.Buffer
	mode, err := selectOutputMode(&out)
	require.NoError(t, err)
	assert.Equal(t, options.OutputTerminal, mode)
	assert.Contains(t, reporter.StripANSI(out.String()), "=== MENU ===")
}

func TestOpenAndCloseSink(t *testing.T) {
	tg := mustTarget(t, "example.com")

	var out bytes.Buffer
	opts := &options.ScanRunOptions{Output: options.OutputOptions{Mode: options.OutputTerminal}}
	sink, err := openSink(&out, opts, tg)
	require.NoError(t, err)
	assert.IsType(t, &reporter.ConsoleSink{}, sink)
	closeSink(&out, sink)
	assert.NotContains(t, out.String(), "Results saved")

	dir := t.TempDir()
	opts.Output = options.OutputOptions{Mode: options.OutputFile, Dir: dir}
	sink, err = openSink(&out, opts, tg)
	require.NoError(t, err)
	fs, ok := sink.(*reporter.FileSink)
	require.True(t, ok)
	assert.Equal(t, dir, filepath.Dir(fs.Path()))
	assert.Contains(t, reporter.StripANSI(out.String()), "Results exported to: "+fs.Path())

	closeSink(&out, sink)
	assert.Contains(t, reporter.StripANSI(out.String()), "Results saved to file")
	data, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Target: example.com")
}
