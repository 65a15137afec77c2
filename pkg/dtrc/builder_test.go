// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package dtrc

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuildDefaultTemplate(t *testing.T) {
	b := NewBuilder(DefaultTemplate())
	b.AddField(Field{Name: FieldPulseWidth, Bytes: []byte{0x00, 0x01}, Offsets: DefaultPulseWidthOffsets})
	b.AddField(Field{Name: FieldPRT, Bytes: []byte{0x0A, 0xAB, 0x00, 0x00}, Offsets: DefaultPRTOffsets})

	packet, err := b.Build(0x20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(packet) != PayloadLength {
		t.Fatalf("packet length = %d, want %d", len(packet), PayloadLength)
	}

	if packet[SweepOffset] != 0x20 {
		t.Errorf("sweep byte = 0x%02X, want 0x20", packet[SweepOffset])
	}
	if packet[10] != 0x00 || packet[11] != 0x01 {
		t.Errorf("pulse-width bytes = %02X %02X, want 00 01", packet[10], packet[11])
	}
	if !bytes.Equal(packet[12:16], []byte{0x0A, 0xAB, 0x00, 0x00}) {
		t.Errorf("prt bytes = % X, want 0A AB 00 00", packet[12:16])
	}

	// Every byte outside the injected offsets matches the template.
	template := DefaultTemplate()
	injected := map[int]bool{SweepOffset: true, 10: true, 11: true, 12: true, 13: true, 14: true, 15: true}
	for i := 0; i < PayloadLength; i++ {
		if injected[i] {
			continue
		}
		if packet[i] != template[i] {
			t.Errorf("byte %d = 0x%02X, want template 0x%02X", i, packet[i], template[i])
		}
	}
}

func TestBuildEachCallIsFresh(t *testing.T) {
	b := NewBuilder(DefaultTemplate())

	first, err := b.Build(0x05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.Build(0x10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first[SweepOffset] != 0x05 {
		t.Errorf("first sweep byte = 0x%02X, want 0x05", first[SweepOffset])
	}
	if second[SweepOffset] != 0x10 {
		t.Errorf("second sweep byte = 0x%02X, want 0x10", second[SweepOffset])
	}

	// Mutating one buffer must not leak into the next build.
	first[0] = 0xFF
	third, err := b.Build(0x05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third[0] == 0xFF {
		t.Error("builder reused a returned buffer")
	}
}

func TestBuildSweepByteWinsCollision(t *testing.T) {
	b := NewBuilder(DefaultTemplate())
	// Field deliberately aimed at the sweep offset.
	b.AddField(Field{Name: "overlap", Bytes: []byte{0xEE}, Offsets: []int{SweepOffset}})

	packet, err := b.Build(0x30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if packet[SweepOffset] != 0x30 {
		t.Errorf("sweep byte = 0x%02X, want 0x30 (sweep write is last)", packet[SweepOffset])
	}
}

func TestBuildOffsetOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		offset int
	}{
		{"negative", -1},
		{"at payload length", PayloadLength},
		{"past payload length", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(DefaultTemplate())
			b.AddField(Field{Name: FieldPulseWidth, Bytes: []byte{0x01}, Offsets: []int{tt.offset}})

			_, err := b.Build(0x00)
			var oerr *OffsetError
			if !errors.As(err, &oerr) {
				t.Fatalf("expected *OffsetError, got %v", err)
			}
			if oerr.Offset != tt.offset {
				t.Errorf("OffsetError.Offset = %d, want %d", oerr.Offset, tt.offset)
			}
			if oerr.Field != FieldPulseWidth {
				t.Errorf("OffsetError.Field = %q, want %q", oerr.Field, FieldPulseWidth)
			}
		})
	}
}

func TestBuildExtraOffsetsLeftUntouched(t *testing.T) {
	// More offsets than bytes: surplus offsets keep their template value.
	b := NewBuilder(DefaultTemplate())
	b.AddField(Field{Name: "short", Bytes: []byte{0x77}, Offsets: []int{20, 21}})

	packet, err := b.Build(0x00)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	template := DefaultTemplate()
	if packet[20] != 0x77 {
		t.Errorf("byte 20 = 0x%02X, want 0x77", packet[20])
	}
	if packet[21] != template[21] {
		t.Errorf("byte 21 = 0x%02X, want template 0x%02X", packet[21], template[21])
	}
}
