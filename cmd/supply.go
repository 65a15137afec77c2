// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/radialab/sweepbench/pkg/scpi"
)

var (
	supplyAddr string
	supplyVolt float64
	supplyCurr float64
	supplyOVP  float64
	supplyOn   bool
	supplyOff  bool
)

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Control the bench power supply",
	Long: `Program the power supply feeding the board under test.

Applies the requested voltage, current limit, and over-voltage protection,
optionally toggles the output, and prints the measured output afterwards.
With no flags the measured state is printed unchanged.

Examples:
  # 28 V at 2 A limit with 30 V OVP, output on
  sweepbench supply --addr 192.168.1.22 --volt 28 --curr 2 --ovp 30 --on

  # Read back the measured output
  sweepbench supply --addr 192.168.1.22`,
	RunE: runSupply,
}

func init() {
	rootCmd.AddCommand(supplyCmd)
	supplyCmd.Flags().StringVar(&supplyAddr, "addr", "", "Supply SCPI address (default from config, bench.supply_addr)")
	supplyCmd.Flags().Float64Var(&supplyVolt, "volt", 0, "Output voltage in volts")
	supplyCmd.Flags().Float64Var(&supplyCurr, "curr", 0, "Current limit in amps")
	supplyCmd.Flags().Float64Var(&supplyOVP, "ovp", 0, "Over-voltage protection level in volts")
	supplyCmd.Flags().BoolVar(&supplyOn, "on", false, "Enable the output")
	supplyCmd.Flags().BoolVar(&supplyOff, "off", false, "Disable the output")
}

func runSupply(cmd *cobra.Command, args []string) error {
	if supplyOn && supplyOff {
		return fmt.Errorf("--on and --off are mutually exclusive")
	}

	addr := supplyAddr
	if addr == "" {
		addr = benchCfg.Bench.SupplyAddr
	}
	if addr == "" {
		return fmt.Errorf("no supply address: set --addr or bench.supply_addr")
	}

	conn, err := scpi.Dial(addr, scpi.DefaultTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	sup := scpi.NewSupply(conn)

	idn, err := conn.Idn()
	if err != nil {
		return fmt.Errorf("supply identification: %w", err)
	}
	fmt.Printf("Supply: %s\n", idn)

	if cmd.Flags().Changed("ovp") {
		if err := sup.SetOVP(supplyOVP); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("volt") {
		if err := sup.SetVoltage(supplyVolt); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("curr") {
		if err := sup.SetCurrent(supplyCurr); err != nil {
			return err
		}
	}
	if supplyOn {
		if err := sup.OutputOn(); err != nil {
			return err
		}
	}
	if supplyOff {
		if err := sup.OutputOff(); err != nil {
			return err
		}
	}

	volts, err := sup.MeasureVoltage()
	if err != nil {
		return err
	}
	amps, err := sup.MeasureCurrent()
	if err != nil {
		return err
	}
	watts, err := sup.MeasurePower()
	if err != nil {
		return err
	}

	fmt.Printf("Measured: %.3f V  %.3f A  %.3f W\n", volts, amps, watts)
	return nil
}
