// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

// Package sweep drives the swept DTRC test: it iterates the sweep axis,
// builds and transmits one control packet per spot, sequences the analyzer
// protocol around each transmission, isolates per-spot failures, and reports
// progress to an observer.
package sweep

// DeclaredTotal is the step total announced on the progress stream.
//
// The default axis enumerates 17 spots (0x00..0x50 step 0x05), but the
// original control panel contract declares 0x51 packets and renders the
// completion line as "<results>/81". Consumers must treat the declared total
// as an upper bound, not an exact count.
const DeclaredTotal = 0x51

// Axis is an ordered, finite enumeration of sweep values: Start up to and
// including End, stepping by Step.
type Axis struct {
	Start byte
	End   byte
	Step  byte
}

// DefaultAxis returns the standard spot enumeration 0x00..0x50 step 0x05.
func DefaultAxis() Axis {
	return Axis{Start: 0x00, End: 0x50, Step: 0x05}
}

// Values returns the axis values in ascending order with no repeats.
// A zero Step yields just the start value.
func (a Axis) Values() []byte {
	if a.Step == 0 || a.End < a.Start {
		return []byte{a.Start}
	}
	values := make([]byte, 0, (int(a.End)-int(a.Start))/int(a.Step)+1)
	for v := int(a.Start); v <= int(a.End); v += int(a.Step) {
		values = append(values, byte(v))
	}
	return values
}

// Count returns the number of spots the axis enumerates.
func (a Axis) Count() int {
	return len(a.Values())
}
