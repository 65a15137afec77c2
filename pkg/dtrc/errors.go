// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package dtrc

import "fmt"

// ValidationError reports malformed hex input or a wrong decoded byte count.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// OffsetError reports a configured injection offset outside the payload.
type OffsetError struct {
	Field      string
	Offset     int
	PayloadLen int
}

// Error implements the error interface.
func (e *OffsetError) Error() string {
	return fmt.Sprintf("%s offset %d is out of range for payload length %d",
		e.Field, e.Offset, e.PayloadLen)
}
