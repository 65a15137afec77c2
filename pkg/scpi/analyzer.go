// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package scpi

import (
	"fmt"
	"io"
)

// Analyzer drives a Keysight PXA-class (N9030x) signal analyzer. It
// satisfies the sweep engine's Analyzer capability.
type Analyzer struct {
	c *Conn
}

// NewAnalyzer wraps an open SCPI connection as an analyzer driver.
func NewAnalyzer(c *Conn) *Analyzer {
	return &Analyzer{c: c}
}

// Conn exposes the underlying connection for identification and teardown.
func (a *Analyzer) Conn() *Conn {
	return a.c
}

// SetCenterFrequency sets the center frequency. SCPI: :FREQ:CENT <Hz>
func (a *Analyzer) SetCenterFrequency(hz float64) error {
	return a.c.Command(fmt.Sprintf(":FREQ:CENT %g", hz))
}

// CenterFrequency reads the center frequency back.
func (a *Analyzer) CenterFrequency() (float64, error) {
	return a.c.QueryFloat(":FREQ:CENT?")
}

// SetSpan sets the span. SCPI: :FREQ:SPAN <Hz>
func (a *Analyzer) SetSpan(hz float64) error {
	return a.c.Command(fmt.Sprintf(":FREQ:SPAN %g", hz))
}

// Span reads the span back.
func (a *Analyzer) Span() (float64, error) {
	return a.c.QueryFloat(":FREQ:SPAN?")
}

// SetResolutionBandwidth sets the RBW. SCPI: :BAND:RES <Hz>
func (a *Analyzer) SetResolutionBandwidth(hz float64) error {
	return a.c.Command(fmt.Sprintf(":BAND:RES %g", hz))
}

// ResetTrace returns the trace to clear/write mode and waits for the
// instrument to settle.
func (a *Analyzer) ResetTrace() error {
	if err := a.c.Command(":TRAC:TYPE WRIT"); err != nil {
		return err
	}
	return a.c.WaitComplete()
}

// HoldMaxTrace arms max-hold trace mode and waits for the instrument to
// settle. Real time must pass afterwards for the hold to accumulate.
func (a *Analyzer) HoldMaxTrace() error {
	if err := a.c.Command(":TRAC:TYPE MAXH"); err != nil {
		return err
	}
	return a.c.WaitComplete()
}

// PeakSearch moves the marker to the trace peak. SCPI: :CALC:MARK:MAX
func (a *Analyzer) PeakSearch() error {
	return a.c.Command(":CALC:MARK:MAX")
}

// MarkerFrequency reads the marker X value in Hz. SCPI: :CALC:MARK:X?
func (a *Analyzer) MarkerFrequency() (float64, error) {
	return a.c.QueryFloat(":CALC:MARK:X?")
}

// MarkerPower reads the marker Y value in dBm. SCPI: :CALC:MARK:Y?
func (a *Analyzer) MarkerPower() (float64, error) {
	return a.c.QueryFloat(":CALC:MARK:Y?")
}

// RefLevel reads the current reference level in dBm.
func (a *Analyzer) RefLevel() (float64, error) {
	return a.c.QueryFloat(":DISP:WIND:TRAC:Y:RLEV?")
}

// SetRefLevel sets the reference level in dBm.
func (a *Analyzer) SetRefLevel(dbm float64) error {
	return a.c.Command(fmt.Sprintf(":DISP:WIND:TRAC:Y:RLEV %g", dbm))
}

// StepRefLevel moves the reference level by delta dB and returns the new
// level.
func (a *Analyzer) StepRefLevel(delta float64) (float64, error) {
	cur, err := a.RefLevel()
	if err != nil {
		return 0, err
	}
	next := cur + delta
	if err := a.SetRefLevel(next); err != nil {
		return 0, err
	}
	return next, nil
}

// Screenshot captures the analyzer screen as PNG and writes the image bytes
// to w. The capture is stored on the instrument filesystem and transferred
// back as an IEEE block.
func (a *Analyzer) Screenshot(w io.Writer) error {
	const tmpName = "tmp_screenshot.png"

	if err := a.c.Command(fmt.Sprintf(":MMEM:STOR:SCR '%s'", tmpName)); err != nil {
		return fmt.Errorf("screenshot capture: %w", err)
	}
	if err := a.c.WaitComplete(); err != nil {
		return fmt.Errorf("screenshot capture: %w", err)
	}

	payload, err := a.c.QueryBinary(fmt.Sprintf(":MMEM:DATA? '%s'", tmpName))
	if err != nil {
		return fmt.Errorf("screenshot transfer: %w", err)
	}
	if len(payload) == 0 {
		return fmt.Errorf("screenshot transfer: empty payload returned from instrument")
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("screenshot write: %w", err)
	}
	return nil
}
