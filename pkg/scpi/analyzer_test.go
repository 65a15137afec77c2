// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package scpi

import (
	"bytes"
	"strings"
	"testing"
)

func TestAnalyzerSetupCommands(t *testing.T) {
	rwc := newScriptedConn("")
	a := NewAnalyzer(NewConn(rwc))

	if err := a.SetCenterFrequency(3.1e9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.SetSpan(600e6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.SetResolutionBandwidth(100e3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := ":FREQ:CENT 3.1e+09\n:FREQ:SPAN 6e+08\n:BAND:RES 100000\n"
	if got := rwc.written.String(); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
}

func TestAnalyzerTraceModes(t *testing.T) {
	// Each trace mode change waits on *OPC?.
	rwc := newScriptedConn("1\n1\n")
	a := NewAnalyzer(NewConn(rwc))

	if err := a.ResetTrace(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.HoldMaxTrace(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := ":TRAC:TYPE WRIT\n*OPC?\n:TRAC:TYPE MAXH\n*OPC?\n"
	if got := rwc.written.String(); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
}

func TestAnalyzerMarkerReads(t *testing.T) {
	rwc := newScriptedConn("3.099E+09\n-42.5\n")
	a := NewAnalyzer(NewConn(rwc))

	if err := a.PeakSearch(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	freq, err := a.MarkerFrequency()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	power, err := a.MarkerPower()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if freq != 3.099e9 {
		t.Errorf("MarkerFrequency = %g, want 3.099e9", freq)
	}
	if power != -42.5 {
		t.Errorf("MarkerPower = %g, want -42.5", power)
	}

	written := rwc.written.String()
	for _, cmd := range []string{":CALC:MARK:MAX\n", ":CALC:MARK:X?\n", ":CALC:MARK:Y?\n"} {
		if !strings.Contains(written, cmd) {
			t.Errorf("command %q not sent; wrote %q", cmd, written)
		}
	}
}

func TestAnalyzerScreenshot(t *testing.T) {
	image := "\x89PNGdata"
	// *OPC? ack, then the file transfer as a definite-length block.
	rwc := newScriptedConn("1\n#18" + image)
	a := NewAnalyzer(NewConn(rwc))

	var out bytes.Buffer
	if err := a.Screenshot(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != image {
		t.Errorf("image = %q, want %q", out.String(), image)
	}

	written := rwc.written.String()
	if !strings.Contains(written, ":MMEM:STOR:SCR") || !strings.Contains(written, ":MMEM:DATA?") {
		t.Errorf("screenshot commands missing; wrote %q", written)
	}
}
