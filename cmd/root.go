// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/radialab/sweepbench/pkg/config"
	"github.com/radialab/sweepbench/pkg/logger"
)

var (
	verbose bool

	benchCfg *config.Config
	log      logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sweepbench",
	Short: "DTRC board sweep automation",
	Long: `Sweepbench - automated swept RF testing for DTRC boards.

For each spot on the sweep axis, sweepbench injects the spot value plus the
configured pulse-width and PRT fields into a fixed 40-byte control packet,
transmits it to the board over UDP, waits for the hardware to settle, and
reads the peak frequency and power back from a spectrum analyzer over SCPI.

Configuration is read from sweepbench.yaml (working directory or
/etc/sweepbench) and SWEEPBENCH_* environment variables; command flags
override both. Instrument connections use SCPI raw sockets (port 5025) or
serial ports.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		benchCfg = cfg

		level := logger.InfoLevel
		if verbose {
			level = logger.DebugLevel
		}
		log = logger.NewConsole(level, os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
