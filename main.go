// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs
//
// Sweepbench - DTRC board sweep automation bench

package main

import (
	"fmt"
	"os"

	"github.com/radialab/sweepbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
