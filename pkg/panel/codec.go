// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

// Package panel exposes the control-panel service: an HTTP endpoint that
// starts sweep runs and a websocket stream that carries progress events to
// connected clients as CBOR binary frames.
package panel

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/radialab/sweepbench/pkg/sweep"
)

// EncodeEvent encodes a progress event as a CBOR binary frame.
func EncodeEvent(e sweep.Event) ([]byte, error) {
	return cbor.Marshal(e)
}

// DecodeEvent decodes a CBOR binary frame back into a progress event.
func DecodeEvent(data []byte) (sweep.Event, error) {
	var e sweep.Event
	err := cbor.Unmarshal(data, &e)
	return e, err
}
