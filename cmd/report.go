// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/radialab/sweepbench/pkg/report"
)

var (
	reportBoard   int
	reportChannel int
	reportOutput  string
)

var reportCmd = &cobra.Command{
	Use:   "report <results.csv>",
	Short: "Render an HTML chart from a results CSV",
	Long: `Render the power and frequency charts for a finished run.

Reads a results CSV previously written by "sweepbench run" and renders the
interactive HTML chart page. With no --output the chart is written next to
the CSV with an .html extension.

Examples:
  sweepbench report reports/sweep_b1_c2_20250825_120000.csv
  sweepbench report results.csv --board 1 --channel 2 --output chart.html`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().IntVar(&reportBoard, "board", 1, "Board number for the chart title")
	reportCmd.Flags().IntVar(&reportChannel, "channel", 1, "Channel number for the chart title")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output HTML path")
}

func runReport(cmd *cobra.Command, args []string) error {
	csvPath := args[0]

	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	results, err := report.ReadCSV(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", csvPath, err)
	}

	output := reportOutput
	if output == "" {
		output = strings.TrimSuffix(csvPath, ".csv") + ".html"
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := report.RenderChart(out, reportBoard, reportChannel, results); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("Chart written: %s (%d measurements)\n", output, len(results))
	return nil
}
