// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/protodoc-foundation/protodoc/cmd/protodoc/cli"
	"github.com/protodoc-foundation/protodoc/lib/bundle"
	"github.com/protodoc-foundation/protodoc/lib/config"
)

// BundleCommand returns the "protodoc bundle" command.
func BundleCommand() *cli.Command {
	var configPath, docsDir, outPath string

	return &cli.Command{
		Name:    "bundle",
		Summary: "Pack generated documents into a zstd-compressed tar archive",
		Usage:   "protodoc bundle [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("bundle", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to protodoc.yaml")
			flags.StringVar(&docsDir, "docs", "", "documents directory (overrides config output.dir)")
			flags.StringVar(&outPath, "out", "", "archive path (default: <docs dir>.tar.zst)")
			return flags
		},
		Run: func(args []string) error {
			var cfg *config.Config
			var err error
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if docsDir == "" {
				docsDir = cfg.Output.Dir
			}
			if outPath == "" {
				outPath = bundle.DefaultName(docsDir)
			}

			count, err := bundle.Create(docsDir, outPath)
			if err != nil {
				return err
			}
			fmt.Printf("bundled %d documents into %s\n", count, outPath)
			return nil
		},
	}
}
