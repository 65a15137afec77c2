// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package scpi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// ReadBlock reads an IEEE-488.2 definite-length block "#<d><nnn><data...>"
// from r and returns the payload bytes. A reply that does not start with
// '#' is read to the next newline and returned as-is, matching instruments
// that answer short binary queries in plain text.
func ReadBlock(r *bufio.Reader) ([]byte, error) {
	first, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read block header: %w", err)
	}

	if first != '#' {
		if err := r.UnreadByte(); err != nil {
			return nil, err
		}
		line, err := r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read unframed reply: %w", err)
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		return line, nil
	}

	digit, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read block header digits: %w", err)
	}
	nd := int(digit - '0')
	if nd < 0 || nd > 9 {
		return nil, fmt.Errorf("invalid block header digit %q", digit)
	}
	if nd == 0 {
		// Indefinite-length blocks are not produced by the instruments on
		// this bench; read until EOF as a fallback.
		return io.ReadAll(r)
	}

	lenDigits := make([]byte, nd)
	if _, err := io.ReadFull(r, lenDigits); err != nil {
		return nil, fmt.Errorf("incomplete block header: %w", err)
	}
	n, err := strconv.Atoi(string(lenDigits))
	if err != nil {
		return nil, fmt.Errorf("invalid block length %q: %w", lenDigits, err)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("incomplete block payload: %w", err)
	}
	return payload, nil
}

// ParseBlock parses a complete in-memory IEEE-488.2 block. Raw data without
// a '#' header is returned unchanged.
func ParseBlock(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if raw[0] != '#' {
		return raw, nil
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("invalid block header")
	}
	nd := int(raw[1] - '0')
	if nd < 0 || nd > 9 {
		return nil, fmt.Errorf("invalid block header digit %q", raw[1])
	}
	if nd == 0 {
		return raw[2:], nil
	}
	if len(raw) < 2+nd {
		return nil, fmt.Errorf("incomplete block header")
	}
	n, err := strconv.Atoi(string(raw[2 : 2+nd]))
	if err != nil {
		return nil, fmt.Errorf("invalid block length: %w", err)
	}
	start := 2 + nd
	if len(raw) < start+n {
		return nil, fmt.Errorf("incomplete block payload: want %d bytes, have %d", n, len(raw)-start)
	}
	return raw[start : start+n], nil
}
