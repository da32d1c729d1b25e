// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/protodoc-foundation/protodoc/cmd/protodoc/cli"
	"github.com/protodoc-foundation/protodoc/lib/docsink"
)

// ValidateCommand returns the "protodoc validate" command. It runs the
// full merge-render-assemble pipeline against an in-memory sink, so
// every structural problem a real run would hit (unparseable layer,
// missing documentation section, malformed response flags) surfaces
// without touching the output directory.
func ValidateCommand() *cli.Command {
	var flagValues generateFlags

	return &cli.Command{
		Name:    "validate",
		Summary: "Check definition layers without writing output",
		Usage:   "protodoc validate [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flagValues.register(flags)
			return flags
		},
		Run: func(args []string) error {
			cfg, err := flagValues.resolve()
			if err != nil {
				return err
			}

			sink := docsink.NewMemory()
			summary, err := runGeneration(cfg, sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				return err
			}

			for _, doc := range summary.Documents {
				fmt.Printf("ok  %s (version %s)\n", doc.Filename, doc.Version)
			}
			fmt.Printf("ok  %s\n%d layers validated\n", summary.IndexFile, len(summary.Documents))
			return nil
		},
	}
}
