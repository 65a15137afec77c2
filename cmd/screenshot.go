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

var screenshotOutput string

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the analyzer screen to a PNG file",
	Long: `Capture the analyzer display and save it as a PNG file.

The capture is stored on the instrument filesystem and transferred back over
the SCPI connection as a binary block. With no --output the file is named
screenshot_<timestamp>.png in the working directory.

Examples:
  sweepbench screenshot --analyzer 192.168.1.20
  sweepbench screenshot --analyzer 192.168.1.20 --output peak.png`,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().StringVarP(&screenshotOutput, "output", "o", "", "Output PNG path")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := openAnalyzerConn()
	if err != nil {
		return err
	}
	defer conn.Close()
	analyzer := scpi.NewAnalyzer(conn)

	output := screenshotOutput
	if output == "" {
		output = fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	}

	fmt.Printf("Sweepbench - Analyzer Screenshot\n")
	fmt.Printf("Connection: %s\n", connInfo)

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := analyzer.Screenshot(f); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Screenshot written: %s\n", output)
	return nil
}
