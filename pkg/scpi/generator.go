// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package scpi

import (
	"fmt"
	"strings"
)

// Generator drives a Rohde & Schwarz SMB100A-class signal generator.
type Generator struct {
	c *Conn
}

// NewGenerator wraps an open SCPI connection as a generator driver.
func NewGenerator(c *Conn) *Generator {
	return &Generator{c: c}
}

// Conn exposes the underlying connection.
func (g *Generator) Conn() *Conn {
	return g.c
}

// SetFrequency sets the carrier frequency. SCPI: SOUR:FREQ:CW <Hz>
func (g *Generator) SetFrequency(hz float64) error {
	return g.c.Command(fmt.Sprintf("SOUR:FREQ:CW %g", hz))
}

// Frequency reads the carrier frequency back.
func (g *Generator) Frequency() (float64, error) {
	return g.c.QueryFloat("SOUR:FREQ:CW?")
}

// SetPower sets the RF level in dBm. SCPI: SOUR:POW:LEV:IMM:AMPL <dBm>
func (g *Generator) SetPower(dbm float64) error {
	return g.c.Command(fmt.Sprintf("SOUR:POW:LEV:IMM:AMPL %g", dbm))
}

// Power reads the RF level back.
func (g *Generator) Power() (float64, error) {
	return g.c.QueryFloat("SOUR:POW:LEV:IMM:AMPL?")
}

// RFOn enables the RF output. SCPI: OUTP ON
func (g *Generator) RFOn() error {
	return g.c.Command("OUTP ON")
}

// RFOff disables the RF output. SCPI: OUTP OFF
func (g *Generator) RFOff() error {
	return g.c.Command("OUTP OFF")
}

// IsRFOn queries the RF output state.
func (g *Generator) IsRFOn() (bool, error) {
	reply, err := g.c.Query("OUTP:STAT?")
	if err != nil {
		return false, err
	}
	switch strings.ToUpper(strings.TrimSpace(reply)) {
	case "1", "ON":
		return true, nil
	default:
		return false, nil
	}
}
