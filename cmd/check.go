// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test analyzer connectivity with an identification query",
	Long: `Connect to the analyzer and query its identification string.

This command opens the SCPI connection (raw socket or serial), sends *IDN?,
and verifies the instrument answers an operation-complete poll. It is the
quickest way to confirm the bench wiring before starting a sweep run.

Exit codes:
  0 - Instrument identified
  1 - Connected but the instrument did not answer
  2 - Connection error

Examples:
  sweepbench check --analyzer 192.168.1.20
  sweepbench check --serial-port /dev/ttyUSB0 --serial-baud 9600`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := openAnalyzerConn()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Sweepbench - Connectivity Check\n")
	fmt.Printf("Connection: %s\n\n", connInfo)

	idn, err := conn.Idn()
	if err != nil {
		fmt.Fprintf(os.Stderr, "IDENTIFICATION FAILED: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Instrument: %s\n", idn)

	if err := conn.WaitComplete(); err != nil {
		fmt.Fprintf(os.Stderr, "OPERATION-COMPLETE FAILED: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Operation-complete poll OK\n")

	return nil
}
