// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

// Package config loads bench configuration from a config file and the
// environment, with defaults matching the standard DTRC bench setup.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the bench configuration shared by the CLI commands.
type Config struct {
	Bench  BenchConfig
	Sweep  SweepConfig
	Panel  PanelConfig
	Report ReportConfig
}

// BenchConfig holds instrument and board endpoints.
type BenchConfig struct {
	AnalyzerAddr  string // SCPI raw-socket address, host[:port]
	GeneratorAddr string
	SupplyAddr    string
	LocalAddr     string // UDP source endpoint bound for the run
	RemoteAddr    string // DTRC board endpoint
}

// SweepConfig holds the analyzer setup and dwell intervals for a run.
type SweepConfig struct {
	CenterHz       float64
	SpanHz         float64
	ResolutionBWHz float64

	TraceClearDwell time.Duration
	PostSendDwell   time.Duration
	MaxHoldDwell    time.Duration
	PeakSearchDwell time.Duration
}

// PanelConfig holds the control-panel service settings.
type PanelConfig struct {
	Listen   string
	Username string
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	Dir string
}

// Load reads sweepbench.yaml (from the working directory or /etc/sweepbench)
// plus SWEEPBENCH_* environment variables, and returns the merged
// configuration. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("bench.analyzer_addr", "")
	v.SetDefault("bench.generator_addr", "")
	v.SetDefault("bench.supply_addr", "")
	v.SetDefault("bench.local_addr", "192.168.1.5:6005")
	v.SetDefault("bench.remote_addr", "192.168.1.10:5005")

	v.SetDefault("sweep.center_hz", 3.1e9)
	v.SetDefault("sweep.span_hz", 600e6)
	v.SetDefault("sweep.rbw_hz", 100e3)
	v.SetDefault("sweep.trace_clear_dwell", "100ms")
	v.SetDefault("sweep.post_send_dwell", "2s")
	v.SetDefault("sweep.max_hold_dwell", "3s")
	v.SetDefault("sweep.peak_search_dwell", "150ms")

	v.SetDefault("panel.listen", ":8080")
	v.SetDefault("panel.username", "")

	v.SetDefault("report.dir", "reports")

	v.SetConfigName("sweepbench")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/sweepbench")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("SWEEPBENCH")
	v.AutomaticEnv()

	cfg := &Config{}
	cfg.Bench.AnalyzerAddr = v.GetString("bench.analyzer_addr")
	cfg.Bench.GeneratorAddr = v.GetString("bench.generator_addr")
	cfg.Bench.SupplyAddr = v.GetString("bench.supply_addr")
	cfg.Bench.LocalAddr = v.GetString("bench.local_addr")
	cfg.Bench.RemoteAddr = v.GetString("bench.remote_addr")

	cfg.Sweep.CenterHz = v.GetFloat64("sweep.center_hz")
	cfg.Sweep.SpanHz = v.GetFloat64("sweep.span_hz")
	cfg.Sweep.ResolutionBWHz = v.GetFloat64("sweep.rbw_hz")
	cfg.Sweep.TraceClearDwell = v.GetDuration("sweep.trace_clear_dwell")
	cfg.Sweep.PostSendDwell = v.GetDuration("sweep.post_send_dwell")
	cfg.Sweep.MaxHoldDwell = v.GetDuration("sweep.max_hold_dwell")
	cfg.Sweep.PeakSearchDwell = v.GetDuration("sweep.peak_search_dwell")

	cfg.Panel.Listen = v.GetString("panel.listen")
	cfg.Panel.Username = v.GetString("panel.username")

	cfg.Report.Dir = v.GetString("report.dir")

	return cfg, nil
}
