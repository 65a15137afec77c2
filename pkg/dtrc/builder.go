// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package dtrc

// Builder produces control packets from a template and a set of configured
// fields. The builder itself is configured once per run and read-only
// afterwards; every Build call returns a fresh buffer.
type Builder struct {
	template Template
	fields   []Field
}

// NewBuilder creates a packet builder over the given template.
func NewBuilder(template Template) *Builder {
	return &Builder{template: template}
}

// AddField appends a field to the injection list. Fields are written in the
// order they were added; offsets are range-checked at build time.
func (b *Builder) AddField(f Field) {
	b.fields = append(b.fields, f)
}

// Fields returns the configured fields in injection order.
func (b *Builder) Fields() []Field {
	return b.fields
}

// Build returns a new PayloadLength-byte packet: the template copy with each
// field written to its offsets in configuration order, then sweepValue at
// SweepOffset. The sweep write happens last so the sweep byte always
// reflects the current spot even if a field offset collides with it.
func (b *Builder) Build(sweepValue byte) ([]byte, error) {
	packet := make([]byte, PayloadLength)
	copy(packet, b.template[:])

	for _, f := range b.fields {
		for i, off := range f.Offsets {
			if off < 0 || off >= PayloadLength {
				return nil, &OffsetError{Field: f.Name, Offset: off, PayloadLen: PayloadLength}
			}
			if i < len(f.Bytes) {
				packet[off] = f.Bytes[i]
			}
		}
	}

	packet[SweepOffset] = sweepValue
	return packet, nil
}
