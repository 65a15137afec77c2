// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package sweep

import "fmt"

// ConfigError reports a missing capability or wrong field-offset arity.
// Config errors are fatal and surface before any instrument interaction.
type ConfigError struct {
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return e.Message
}

// TransportError reports a failed packet transmission for one spot. It is
// isolated: the run records an error event and continues with the next spot.
type TransportError struct {
	Spot byte
	Err  error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("UDP send failed: %v", e.Err)
}

// Unwrap returns the underlying send error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// MeasurementError reports a failed marker read for one spot. It is
// isolated: the spot contributes no result and the run continues.
type MeasurementError struct {
	Spot byte
	Err  error
}

// Error implements the error interface.
func (e *MeasurementError) Error() string {
	return fmt.Sprintf("analyzer read failed: %v", e.Err)
}

// Unwrap returns the underlying read error.
func (e *MeasurementError) Unwrap() error {
	return e.Err
}
