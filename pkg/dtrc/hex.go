// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package dtrc

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeField parses a hex field value into exactly expectedLen bytes.
//
// Input accepts bare or whitespace-separated hex pairs ("0AAB" or "0A AB").
// An empty string is valid and decodes to expectedLen zero bytes. Odd digit
// counts, non-hex characters, and wrong byte counts fail with a
// *ValidationError. The function is pure; it never touches instrument or
// network state.
func DecodeField(text string, expectedLen int) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return make([]byte, expectedLen), nil
	}

	s := strings.Join(strings.Fields(text), "")
	if len(s)%2 != 0 {
		return nil, &ValidationError{
			Message: "hex string length must be even (pairs of hex digits)",
		}
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf("invalid hex input: %v", err),
		}
	}

	if len(b) != expectedLen {
		return nil, &ValidationError{
			Message: fmt.Sprintf("expecting %d bytes, got %d", expectedLen, len(b)),
		}
	}

	return b, nil
}

// EncodeField renders bytes as uppercase space-separated hex pairs, the
// inverse of DecodeField for display and logging.
func EncodeField(b []byte) string {
	pairs := make([]string, len(b))
	for i, v := range b {
		pairs[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(pairs, " ")
}
