// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/radialab/sweepbench/pkg/panel"
	"github.com/radialab/sweepbench/pkg/scpi"
	"github.com/radialab/sweepbench/pkg/sweep"
	"github.com/radialab/sweepbench/pkg/transport"
)

var (
	panelListen   string
	panelUsername string
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Serve the control-panel HTTP API",
	Long: `Serve the control-panel API for remote sweep runs.

Endpoints:
  POST /api/run    Start a sweep run (board, channel, pulse width, PRT)
  GET  /ws/events  WebSocket stream of progress events (CBOR frames)

At most one run is active at a time; a second start is rejected with 409.
Instrument and UDP addresses come from the bench configuration.

If a username is configured (--username or panel.username), all endpoints
require HTTP Basic auth. The password is read from the SWEEPBENCH_PASSWORD
environment variable, or prompted for at startup.

Examples:
  sweepbench panel --listen :8080
  SWEEPBENCH_PASSWORD=secret sweepbench panel --username operator`,
	RunE: runPanel,
}

func init() {
	rootCmd.AddCommand(panelCmd)
	panelCmd.Flags().StringVar(&panelListen, "listen", "", "Listen address (default from config, panel.listen)")
	panelCmd.Flags().StringVar(&panelUsername, "username", "", "Basic auth username (default from config, panel.username)")
}

func runPanel(cmd *cobra.Command, args []string) error {
	listen := panelListen
	if listen == "" {
		listen = benchCfg.Panel.Listen
	}
	username := panelUsername
	if username == "" {
		username = benchCfg.Panel.Username
	}

	password := ""
	if username != "" {
		var err error
		password, err = panelPassword()
		if err != nil {
			return err
		}
	}

	srv := panel.NewServer(runPanelSweep, username, password, log)

	fmt.Printf("Sweepbench - Control Panel\n")
	fmt.Printf("Listening: %s\n", listen)
	if username != "" {
		fmt.Printf("Auth: Basic (%s)\n", username)
	} else {
		fmt.Printf("Auth: disabled\n")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpSrv := &http.Server{Addr: listen, Handler: srv.Handler()}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		// Cancel the active run first so the sequencer stops promptly, then
		// drain the listener.
		srv.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// runPanelSweep wires one panel-initiated run: analyzer and UDP session from
// the bench configuration, progress into the panel hub.
func runPanelSweep(ctx context.Context, req panel.RunRequest, sink sweep.Sink) ([]sweep.Result, error) {
	conn, _, err := openAnalyzerConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	session, err := transport.Open(benchCfg.Bench.LocalAddr, benchCfg.Bench.RemoteAddr)
	if err != nil {
		return nil, err
	}

	seq := sweep.New(scpi.NewAnalyzer(conn), session, sweep.Config{
		Board:      req.Board,
		Channel:    req.Channel,
		PulseWidth: req.PulseWidth,
		PRT:        req.PRT,
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
	seq.SetSink(sink)
	return seq.Run(ctx)
}

// panelPassword reads the Basic auth password from the environment or, when
// unset, prompts without echo.
func panelPassword() (string, error) {
	if pw := os.Getenv("SWEEPBENCH_PASSWORD"); pw != "" {
		return pw, nil
	}
	fmt.Print("Panel password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %v", err)
	}
	return string(pw), nil
}
