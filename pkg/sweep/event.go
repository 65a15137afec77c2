// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package sweep

// Status is the progress state carried by an Event.
type Status string

const (
	StatusRunning   Status = "running"
	StatusError     Status = "error"
	StatusCompleted Status = "completed"
)

// Event is one progress record pushed to the registered sink.
//
// Events for a run are emitted in strictly increasing step order; the
// completed event is always last. Total is the declared step count, which
// may exceed the actual enumeration (see DeclaredTotal).
type Event struct {
	Status  Status `json:"status" cbor:"1,keyasint"`
	Current int    `json:"current" cbor:"2,keyasint"`
	Total   int    `json:"total" cbor:"3,keyasint"`
	Board   int    `json:"board_no" cbor:"4,keyasint"`
	Channel int    `json:"channel_no" cbor:"5,keyasint"`
	Hex     string `json:"hex,omitempty" cbor:"6,keyasint,omitempty"`
	Message string `json:"message" cbor:"7,keyasint"`
}

// Sink receives progress events. Implementations are diagnostic only: the
// sequencer discards anything a sink does (including panics), so a sink can
// never change the outcome of a run.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Notify implements Sink.
func (f SinkFunc) Notify(e Event) {
	f(e)
}
