// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/radialab/sweepbench/pkg/scpi"
)

var (
	discoverAddrs   []string
	discoverTimeout int
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Probe SCPI endpoints and identify instruments",
	Long: `Probe a list of SCPI raw-socket addresses with *IDN?.

Each address is dialed in turn and asked to identify itself. Addresses that
do not connect or do not answer are reported and skipped. With no --addr
flags the probe list is taken from the configured bench instruments
(analyzer, generator, supply).

Exit codes:
  0 - At least one instrument identified
  1 - No instrument answered
  2 - Nothing to probe (no addresses given or configured)

Examples:
  # Probe the configured bench
  sweepbench discover

  # Probe explicit addresses
  sweepbench discover --addr 192.168.1.20 --addr 192.168.1.21:5025`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().StringArrayVar(&discoverAddrs, "addr", nil, "SCPI address to probe (repeatable)")
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 3, "Per-address timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	addrs := discoverAddrs
	if len(addrs) == 0 {
		for _, a := range []string{
			benchCfg.Bench.AnalyzerAddr,
			benchCfg.Bench.GeneratorAddr,
			benchCfg.Bench.SupplyAddr,
		} {
			if a != "" {
				addrs = append(addrs, a)
			}
		}
	}
	if len(addrs) == 0 {
		fmt.Fprintf(os.Stderr, "No addresses to probe: pass --addr or configure bench instruments\n")
		os.Exit(2)
	}

	fmt.Printf("Sweepbench - Instrument Discovery\n")
	fmt.Printf("Addresses: %d\n", len(addrs))
	fmt.Printf("Timeout: %d seconds per address\n\n", discoverTimeout)

	arbiter := scpi.NewArbiter()
	found := 0
	for _, addr := range addrs {
		if !arbiter.Claim(addr) {
			fmt.Printf("%s: skipped (duplicate address)\n", addr)
			continue
		}
		idn, err := probeAddr(addr, time.Duration(discoverTimeout)*time.Second)
		if err != nil {
			fmt.Printf("%s: FAILED: %v\n", addr, err)
			continue
		}
		fmt.Printf("%s: %s\n", addr, idn)
		found++
	}

	fmt.Printf("\n--- Discovery summary ---\n")
	fmt.Printf("Instruments identified: %d/%d\n", found, len(addrs))

	if found == 0 {
		os.Exit(1)
	}
	return nil
}

func probeAddr(addr string, timeout time.Duration) (string, error) {
	conn, err := scpi.Dial(addr, timeout)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	return conn.Idn()
}
