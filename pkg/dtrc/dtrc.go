// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

// Package dtrc builds the fixed-layout control packets sent to a DTRC board
// during a sweep run.
//
// A control packet is a raw 40-byte image: a constant template with a small
// number of injection offsets. Byte 9 carries the swept spot value; the
// pulse-width and PRT fields occupy configurable offsets (bytes 10-11 and
// 12-15 by default). The board decodes the packet bit-exactly, so the
// builder never reorders or frames the payload.
package dtrc

// PayloadLength is the exact wire size of a DTRC control packet.
const PayloadLength = 40

// SweepOffset is the fixed byte position that carries the current sweep value.
const SweepOffset = 9

// Shipped field byte lengths.
const (
	PulseWidthLength = 2
	PRTLength        = 4
)

// Shipped field names.
const (
	FieldPulseWidth = "pulse_width"
	FieldPRT        = "prt"
)

// Default injection offsets for the shipped fields.
var (
	DefaultPulseWidthOffsets = []int{10, 11}
	DefaultPRTOffsets        = []int{12, 13, 14, 15}
)

// Template is the constant 40-byte packet image a run starts from. Each
// built packet derives from a private copy; the template is never mutated.
type Template [PayloadLength]byte

// DefaultTemplate returns the standard DTRC control packet image.
func DefaultTemplate() Template {
	return Template{
		0x00, 0xAB, 0xAB, 0x06, 0x00, 0x00, 0x07, 0x00, 0x00, 0x00,
		0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10, 0x11, 0x12, 0x13, 0x00,
		0x15, 0x16, 0x17, 0x18, 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E,
		0x1F, 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28,
	}
}

// Field is a named group of bytes injected at fixed offsets. Bytes are
// written to Offsets pairwise in order: Bytes[i] lands at Offsets[i].
type Field struct {
	Name    string
	Bytes   []byte
	Offsets []int
}
