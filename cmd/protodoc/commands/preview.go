// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/protodoc-foundation/protodoc/cmd/protodoc/cli"
	"github.com/protodoc-foundation/protodoc/lib/preview"
)

// PreviewCommand returns the "protodoc preview" command.
func PreviewCommand() *cli.Command {
	var width int
	var plain bool

	return &cli.Command{
		Name:    "preview",
		Summary: "Render a generated markdown document in the terminal",
		Usage:   "protodoc preview <document.md> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("preview", pflag.ContinueOnError)
			flags.IntVar(&width, "width", 0, "line width (default: terminal width, capped at 120)")
			flags.BoolVar(&plain, "plain", false, "disable colors and styling")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one document path, got %d arguments", len(args))
			}

			profile := termenv.Ascii
			if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
				profile = termenv.ANSI256
			}
			if width <= 0 {
				width = 100
				if terminalWidth, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = min(terminalWidth, 120)
				}
			}

			rendered, err := preview.RenderFile(args[0], preview.Options{
				Width:   width,
				Profile: profile,
			})
			if err != nil {
				return err
			}
			fmt.Print(rendered)
			return nil
		},
	}
}
