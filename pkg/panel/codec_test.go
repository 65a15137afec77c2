// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radialab/sweepbench/pkg/sweep"
)

func TestEventCodecRoundTrip(t *testing.T) {
	original := sweep.Event{
		Status:  sweep.StatusRunning,
		Current: 0x21,
		Total:   0x51,
		Board:   1,
		Channel: 2,
		Hex:     "0x20",
		Message: "Sending spot 0x20",
	}

	frame, err := EncodeEvent(original)
	require.NoError(t, err)
	require.NotEmpty(t, frame)

	decoded, err := DecodeEvent(frame)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEventCodecOmitsEmptyHex(t *testing.T) {
	withHex, err := EncodeEvent(sweep.Event{Status: sweep.StatusRunning, Hex: "0x00"})
	require.NoError(t, err)
	withoutHex, err := EncodeEvent(sweep.Event{Status: sweep.StatusRunning})
	require.NoError(t, err)

	assert.Less(t, len(withoutHex), len(withHex))
}

func TestDecodeEventGarbage(t *testing.T) {
	_, err := DecodeEvent([]byte{0xFF, 0x00, 0x13})
	assert.Error(t, err)
}
