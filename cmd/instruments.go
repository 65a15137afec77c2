// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"fmt"

	"github.com/radialab/sweepbench/pkg/scpi"
)

// Instrument connection flags shared by commands that talk SCPI.
var (
	analyzerAddr string
	serialPort   string
	serialBaud   int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&analyzerAddr, "analyzer", "a", "", "Analyzer SCPI address, host[:port]")
	rootCmd.PersistentFlags().StringVarP(&serialPort, "serial-port", "p", "", "Serial port device for serial SCPI instruments")
	rootCmd.PersistentFlags().IntVarP(&serialBaud, "serial-baud", "b", 115200, "Baud rate (serial only)")
}

// openAnalyzerConn opens the analyzer connection from flags or config.
// Serial takes precedence when --serial-port is given; otherwise the TCP
// address comes from --analyzer or bench.analyzer_addr.
func openAnalyzerConn() (*scpi.Conn, string, error) {
	if serialPort != "" {
		conn, err := scpi.OpenSerial(serialPort, serialBaud)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("Serial: %s @ %d baud", serialPort, serialBaud), nil
	}

	addr := analyzerAddr
	if addr == "" {
		addr = benchCfg.Bench.AnalyzerAddr
	}
	if addr == "" {
		return nil, "", fmt.Errorf("no analyzer address: set --analyzer, --serial-port, or bench.analyzer_addr")
	}

	conn, err := scpi.Dial(addr, scpi.DefaultTimeout)
	if err != nil {
		return nil, "", err
	}
	return conn, fmt.Sprintf("TCP: %s", conn.Addr()), nil
}
