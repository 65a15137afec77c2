// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package scpi

import "fmt"

// Supply drives a Keysight N8700-series power supply.
type Supply struct {
	c *Conn
}

// NewSupply wraps an open SCPI connection as a supply driver.
func NewSupply(c *Conn) *Supply {
	return &Supply{c: c}
}

// Conn exposes the underlying connection.
func (s *Supply) Conn() *Conn {
	return s.c
}

// SetVoltage programs the output voltage in volts. SCPI: VOLT <value>
func (s *Supply) SetVoltage(volts float64) error {
	return s.c.Command(fmt.Sprintf("VOLT %g", volts))
}

// SetCurrent programs the output current limit in amps. SCPI: CURR <value>
func (s *Supply) SetCurrent(amps float64) error {
	return s.c.Command(fmt.Sprintf("CURR %g", amps))
}

// SetOVP programs the over-voltage protection level. SCPI: VOLT:PROT <value>
func (s *Supply) SetOVP(volts float64) error {
	return s.c.Command(fmt.Sprintf("VOLT:PROT %g", volts))
}

// OVP queries the over-voltage protection level.
func (s *Supply) OVP() (float64, error) {
	return s.c.QueryFloat("VOLT:PROT?")
}

// OutputOn enables the output. SCPI: OUTP ON
func (s *Supply) OutputOn() error {
	return s.c.Command("OUTP ON")
}

// OutputOff disables the output. SCPI: OUTP OFF
func (s *Supply) OutputOff() error {
	return s.c.Command("OUTP OFF")
}

// MeasureVoltage reads the actual output voltage. SCPI: MEAS:VOLT?
func (s *Supply) MeasureVoltage() (float64, error) {
	return s.c.QueryFloat("MEAS:VOLT?")
}

// MeasureCurrent reads the actual output current. SCPI: MEAS:CURR?
func (s *Supply) MeasureCurrent() (float64, error) {
	return s.c.QueryFloat("MEAS:CURR?")
}

// MeasurePower reads the actual output power. SCPI: MEAS:POW?
func (s *Supply) MeasurePower() (float64, error) {
	return s.c.QueryFloat("MEAS:POW?")
}

// SaveState saves the volatile state to a memory slot. SCPI: SAV <n>
func (s *Supply) SaveState(slot int) error {
	return s.c.Command(fmt.Sprintf("SAV %d", slot))
}

// RecallState recalls a memory slot. SCPI: RCL <n>
func (s *Supply) RecallState(slot int) error {
	return s.c.Command(fmt.Sprintf("RCL %d", slot))
}
