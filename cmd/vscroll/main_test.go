package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamStudy/vscroll/internal/core"
)

func TestLoadConfigWithFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vscroll.yaml")
	require.NoError(t, os.WriteFile(path, []byte("totalItems: 200\noverscanCount: 2\n"), 0o644))

	flags := &CLIFlags{}
	cmd := newRootCommand(flags)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--estimate", "7", "--seed", "9"}))

	config, err := loadConfigWithFlags(cmd, flags)
	require.NoError(t, err)

	assert.Equal(t, 200, config.TotalItems, "file value without a flag override")
	assert.Equal(t, 2, config.OverscanCount)
	assert.Equal(t, 7, config.EstimatedItemHeight)
	assert.Equal(t, int64(9), config.Seed)
	assert.Equal(t, core.DefaultMaxContentLines, config.MaxContentLines)
}

func TestNewLoggerWithoutFile(t *testing.T) {
	logger, closeLog, err := newLogger(core.DefaultConfig())
	require.NoError(t, err)
	defer closeLog()
	assert.NotNil(t, logger)
}

func TestNewLoggerWritesFile(t *testing.T) {
	config := core.DefaultConfig()
	config.LogFile = filepath.Join(t.TempDir(), "vscroll.log")

	logger, closeLog, err := newLogger(config)
	require.NoError(t, err)
	logger.Info("hello")
	closeLog()

	data, err := os.ReadFile(config.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "vscroll version dev")
}

func TestBenchCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"bench", "--items", "3000", "--measurements", "600", "--queries", "100"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "PASS")
	assert.Contains(t, out.String(), "3000")
}
