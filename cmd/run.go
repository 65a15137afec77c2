// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/radialab/sweepbench/pkg/report"
	"github.com/radialab/sweepbench/pkg/scpi"
	"github.com/radialab/sweepbench/pkg/sweep"
	"github.com/radialab/sweepbench/pkg/transport"
)

var (
	runBoard        int
	runChannel      int
	runPulse        string
	runPRT          string
	runPulseOffsets []int
	runPRTOffsets   []int
	runLocalAddr    string
	runRemoteAddr   string
	runNoReport     bool
	runUseTUI       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a sweep run against one board/channel",
	Long: `Run the automated sweep for one DTRC board and channel.

For each spot value (0x00..0x50 in steps of 5) the run builds a 40-byte
control packet carrying the spot, pulse-width, and PRT bytes, transmits it
to the board over UDP, and reads the peak marker frequency/power from the
analyzer after the max-hold trace has settled. A failed spot is reported
and skipped; the run continues with the next spot.

Results are written as CSV plus an HTML chart under the report directory
unless --no-report is given.

Examples:
  # Sweep board 1, channel 2 with explicit field values
  sweepbench run --analyzer 192.168.1.20 --board 1 --channel 2 \
      --pulse "00 01" --prt "0A AB 00 00"

  # Watch progress in the terminal UI
  sweepbench run --analyzer 192.168.1.20 --tui`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&runBoard, "board", 1, "Board number (reporting label)")
	runCmd.Flags().IntVar(&runChannel, "channel", 1, "Channel number (reporting label)")
	runCmd.Flags().StringVar(&runPulse, "pulse", "00 00", "Pulse width, 2 hex bytes")
	runCmd.Flags().StringVar(&runPRT, "prt", "00 00 00 00", "PRT, 4 hex bytes")
	runCmd.Flags().IntSliceVar(&runPulseOffsets, "pulse-offsets", nil, "Payload offsets for the pulse-width bytes (default 10,11)")
	runCmd.Flags().IntSliceVar(&runPRTOffsets, "prt-offsets", nil, "Payload offsets for the PRT bytes (default 12,13,14,15)")
	runCmd.Flags().StringVar(&runLocalAddr, "local", "", "UDP source address (default from config)")
	runCmd.Flags().StringVar(&runRemoteAddr, "remote", "", "Board UDP address (default from config)")
	runCmd.Flags().BoolVar(&runNoReport, "no-report", false, "Skip CSV/chart output")
	runCmd.Flags().BoolVar(&runUseTUI, "tui", false, "Show progress in a terminal UI")
}

func runSweep(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := openAnalyzerConn()
	if err != nil {
		return err
	}
	defer conn.Close()
	analyzer := scpi.NewAnalyzer(conn)

	localAddr := runLocalAddr
	if localAddr == "" {
		localAddr = benchCfg.Bench.LocalAddr
	}
	remoteAddr := runRemoteAddr
	if remoteAddr == "" {
		remoteAddr = benchCfg.Bench.RemoteAddr
	}

	session, err := transport.Open(localAddr, remoteAddr)
	if err != nil {
		return err
	}
	defer session.Close()

	seq := sweep.New(analyzer, session, sweep.Config{
		Board:        runBoard,
		Channel:      runChannel,
		PulseWidth:   runPulse,
		PRT:          runPRT,
		PulseOffsets: runPulseOffsets,
		PRTOffsets:   runPRTOffsets,
		Setup: &sweep.Setup{
			CenterHz:       benchCfg.Sweep.CenterHz,
			SpanHz:         benchCfg.Sweep.SpanHz,
			ResolutionBWHz: benchCfg.Sweep.ResolutionBWHz,
		},
		Dwells: &sweep.Dwells{
			TraceClear: benchCfg.Sweep.TraceClearDwell,
			PostSend:   benchCfg.Sweep.PostSendDwell,
			MaxHold:    benchCfg.Sweep.MaxHoldDwell,
			PeakSearch: benchCfg.Sweep.PeakSearchDwell,
		},
		Logger: log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var results []sweep.Result
	if runUseTUI {
		results, err = runSweepTUI(ctx, seq)
	} else {
		fmt.Printf("Sweepbench - Sweep Run\n")
		fmt.Printf("Analyzer: %s\n", connInfo)
		fmt.Printf("Board: %d  Channel: %d\n", runBoard, runChannel)
		fmt.Printf("UDP: %s -> %s\n\n", session.LocalAddr(), session.RemoteAddr())

		seq.SetSink(sweep.SinkFunc(printProgress))
		results, err = seq.Run(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Printf("\n%d measurements collected\n", len(results))

	if runNoReport || len(results) == 0 {
		return nil
	}
	return writeRunReport(results)
}

// printProgress renders one progress event as a console line.
func printProgress(e sweep.Event) {
	switch e.Status {
	case sweep.StatusError:
		fmt.Printf("[%2d/%d] ERROR %s %s\n", e.Current, e.Total, e.Hex, e.Message)
	case sweep.StatusCompleted:
		fmt.Printf("%s\n", e.Message)
	default:
		if e.Hex != "" {
			fmt.Printf("[%2d/%d] %s %s\n", e.Current, e.Total, e.Hex, e.Message)
		} else {
			fmt.Printf("%s\n", e.Message)
		}
	}
}

// writeRunReport writes the CSV table and HTML chart for a finished run.
func writeRunReport(results []sweep.Result) error {
	if err := os.MkdirAll(benchCfg.Report.Dir, 0o755); err != nil {
		return err
	}

	base := fmt.Sprintf("sweep_b%d_c%d_%s", runBoard, runChannel, time.Now().Format("20060102_150405"))

	csvPath := filepath.Join(benchCfg.Report.Dir, base+".csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(csvFile, results); err != nil {
		csvFile.Close()
		return err
	}
	if err := csvFile.Close(); err != nil {
		return err
	}

	chartPath := filepath.Join(benchCfg.Report.Dir, base+".html")
	chartFile, err := os.Create(chartPath)
	if err != nil {
		return err
	}
	if err := report.RenderChart(chartFile, runBoard, runChannel, results); err != nil {
		chartFile.Close()
		return err
	}
	if err := chartFile.Close(); err != nil {
		return err
	}

	fmt.Printf("Report written: %s, %s\n", csvPath, chartPath)
	return nil
}
