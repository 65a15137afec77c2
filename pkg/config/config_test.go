// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Bench.AnalyzerAddr)
	assert.Equal(t, "192.168.1.5:6005", cfg.Bench.LocalAddr)
	assert.Equal(t, "192.168.1.10:5005", cfg.Bench.RemoteAddr)

	assert.Equal(t, 3.1e9, cfg.Sweep.CenterHz)
	assert.Equal(t, 600e6, cfg.Sweep.SpanHz)
	assert.Equal(t, 100e3, cfg.Sweep.ResolutionBWHz)
	assert.Equal(t, 100*time.Millisecond, cfg.Sweep.TraceClearDwell)
	assert.Equal(t, 2*time.Second, cfg.Sweep.PostSendDwell)
	assert.Equal(t, 3*time.Second, cfg.Sweep.MaxHoldDwell)
	assert.Equal(t, 150*time.Millisecond, cfg.Sweep.PeakSearchDwell)

	assert.Equal(t, ":8080", cfg.Panel.Listen)
	assert.Equal(t, "reports", cfg.Report.Dir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
bench:
  analyzer_addr: 192.168.1.20
  local_addr: 10.0.0.1:6005
sweep:
  center_hz: 2.5e9
  post_send_dwell: 500ms
panel:
  listen: ":9090"
  username: operator
report:
  dir: /tmp/sweep-reports
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sweepbench.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.20", cfg.Bench.AnalyzerAddr)
	assert.Equal(t, "10.0.0.1:6005", cfg.Bench.LocalAddr)
	// Unset keys keep their defaults.
	assert.Equal(t, "192.168.1.10:5005", cfg.Bench.RemoteAddr)

	assert.Equal(t, 2.5e9, cfg.Sweep.CenterHz)
	assert.Equal(t, 500*time.Millisecond, cfg.Sweep.PostSendDwell)
	assert.Equal(t, 3*time.Second, cfg.Sweep.MaxHoldDwell)

	assert.Equal(t, ":9090", cfg.Panel.Listen)
	assert.Equal(t, "operator", cfg.Panel.Username)
	assert.Equal(t, "/tmp/sweep-reports", cfg.Report.Dir)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "sweepbench.yaml"),
		[]byte("bench: [unclosed"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}
