// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/radialab/sweepbench/pkg/dtrc"
	"github.com/radialab/sweepbench/pkg/transport"
)

var (
	sendSpot         string
	sendPulse        string
	sendPRT          string
	sendPulseOffsets []int
	sendPRTOffsets   []int
	sendLocalAddr    string
	sendRemoteAddr   string
	sendDryRun       bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Build and transmit a single control packet",
	Long: `Build one 40-byte control packet and transmit it to the board.

This is the manual counterpart to a sweep run: the same template, field
injection, and UDP path, but for a single spot value chosen on the command
line. Useful for exercising one spot while watching the analyzer by hand.

With --dry-run the packet is built and printed but nothing is sent; no
network addresses are needed.

Examples:
  # Transmit spot 0x20 with explicit field values
  sweepbench send --spot 0x20 --pulse "00 01" --prt "0A AB 00 00"

  # Inspect the bytes without touching the network
  sweepbench send --spot 0x20 --dry-run`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVar(&sendSpot, "spot", "0x00", "Spot value, hex byte")
	sendCmd.Flags().StringVar(&sendPulse, "pulse", "00 00", "Pulse width, 2 hex bytes")
	sendCmd.Flags().StringVar(&sendPRT, "prt", "00 00 00 00", "PRT, 4 hex bytes")
	sendCmd.Flags().IntSliceVar(&sendPulseOffsets, "pulse-offsets", nil, "Payload offsets for the pulse-width bytes (default 10,11)")
	sendCmd.Flags().IntSliceVar(&sendPRTOffsets, "prt-offsets", nil, "Payload offsets for the PRT bytes (default 12,13,14,15)")
	sendCmd.Flags().StringVar(&sendLocalAddr, "local", "", "UDP source address (default from config)")
	sendCmd.Flags().StringVar(&sendRemoteAddr, "remote", "", "Board UDP address (default from config)")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "Build and print the packet without sending")
}

func runSend(cmd *cobra.Command, args []string) error {
	spot, err := parseSpot(sendSpot)
	if err != nil {
		return err
	}

	pulseOffsets := sendPulseOffsets
	if pulseOffsets == nil {
		pulseOffsets = dtrc.DefaultPulseWidthOffsets
	}
	prtOffsets := sendPRTOffsets
	if prtOffsets == nil {
		prtOffsets = dtrc.DefaultPRTOffsets
	}

	pulseBytes, err := dtrc.DecodeField(sendPulse, dtrc.PulseWidthLength)
	if err != nil {
		return err
	}
	prtBytes, err := dtrc.DecodeField(sendPRT, dtrc.PRTLength)
	if err != nil {
		return err
	}

	builder := dtrc.NewBuilder(dtrc.DefaultTemplate())
	builder.AddField(dtrc.Field{Name: dtrc.FieldPulseWidth, Bytes: pulseBytes, Offsets: pulseOffsets})
	builder.AddField(dtrc.Field{Name: dtrc.FieldPRT, Bytes: prtBytes, Offsets: prtOffsets})

	packet, err := builder.Build(spot)
	if err != nil {
		return err
	}

	fmt.Printf("Sweepbench - Manual Packet\n")
	fmt.Printf("Spot: 0x%02X\n", spot)
	fmt.Printf("Packet (%d bytes):\n  %s\n", len(packet), dtrc.EncodeField(packet))

	if sendDryRun {
		return nil
	}

	localAddr := sendLocalAddr
	if localAddr == "" {
		localAddr = benchCfg.Bench.LocalAddr
	}
	remoteAddr := sendRemoteAddr
	if remoteAddr == "" {
		remoteAddr = benchCfg.Bench.RemoteAddr
	}

	session, err := transport.Open(localAddr, remoteAddr)
	if err != nil {
		return err
	}
	defer session.Close()

	n, err := session.Send(packet)
	if err != nil {
		return err
	}
	fmt.Printf("Sent %d bytes: %s -> %s\n", n, session.LocalAddr(), session.RemoteAddr())
	return nil
}

// parseSpot accepts "0x20", "20", or decimal-looking hex; the spot axis is a
// single byte.
func parseSpot(s string) (byte, error) {
	text := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(text, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid spot value %q: expecting a hex byte like 0x20", s)
	}
	return byte(v), nil
}
