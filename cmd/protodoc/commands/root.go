// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the protodoc CLI command tree.
package commands

import (
	"fmt"

	"github.com/protodoc-foundation/protodoc/cmd/protodoc/cli"
	"github.com/protodoc-foundation/protodoc/lib/version"
)

// Root builds and returns the complete protodoc command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "protodoc",
		Description: `protodoc: layered protocol documentation generator.

Merges versioned protocol definition files (JSONC or YAML) into a
cumulative specification and renders one markdown reference document
per version, plus a cross-version index.`,
		Subcommands: []*cli.Command{
			GenerateCommand(),
			ValidateCommand(),
			PreviewCommand(),
			BundleCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("protodoc %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Generate documentation from ./definitions into ./docs",
				Command:     "protodoc generate",
			},
			{
				Description: "Generate with HTML renditions using a project config",
				Command:     "protodoc generate --config protodoc.yaml --html",
			},
			{
				Description: "Check definitions without writing anything",
				Command:     "protodoc validate",
			},
			{
				Description: "Preview a generated document in the terminal",
				Command:     "protodoc preview docs/xap_0.2.0.md",
			},
			{
				Description: "Pack the generated docs into a release bundle",
				Command:     "protodoc bundle --out protocol-docs.tar.zst",
			},
		},
	}
}
