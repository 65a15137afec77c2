// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

// Package report renders sweep results as CSV tables and HTML charts,
// organized per board and channel.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/radialab/sweepbench/pkg/sweep"
)

var csvHeader = []string{"spot", "freq_hz", "power_dbm"}

// WriteCSV writes results as a CSV table with a header row.
func WriteCSV(w io.Writer, results []sweep.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.Spot,
			strconv.FormatFloat(r.FrequencyHz, 'g', -1, 64),
			strconv.FormatFloat(r.PowerDBm, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a results table previously written by WriteCSV.
func ReadCSV(r io.Reader) ([]sweep.Result, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty results file")
	}

	start := 0
	if len(records[0]) > 0 && records[0][0] == csvHeader[0] {
		start = 1
	}

	results := make([]sweep.Result, 0, len(records)-start)
	for i, record := range records[start:] {
		if len(record) < 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i+start+1, len(record))
		}
		freq, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad frequency %q: %w", i+start+1, record[1], err)
		}
		power, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad power %q: %w", i+start+1, record[2], err)
		}
		results = append(results, sweep.Result{Spot: record[0], FrequencyHz: freq, PowerDBm: power})
	}
	return results, nil
}
