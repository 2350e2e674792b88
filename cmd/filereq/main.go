// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

// Command filereq checks and formats file requirement expressions.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Process exit codes.
const (
	exitUnsatisfied = 1
	exitFailure     = 2
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errUnsatisfied) {
			os.Exit(exitUnsatisfied)
		}

		fmt.Fprintf(os.Stderr, "filereq: %v\n", err)
		os.Exit(exitFailure)
	}
}
