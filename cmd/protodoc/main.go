// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/protodoc-foundation/protodoc/cmd/protodoc/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own diagnostics (like the
		// cumulative-state dump on a fatal generation error) return
		// an ExitError with the desired code. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
