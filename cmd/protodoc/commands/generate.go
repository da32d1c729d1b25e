// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/protodoc-foundation/protodoc/cmd/protodoc/cli"
	"github.com/protodoc-foundation/protodoc/lib/config"
	"github.com/protodoc-foundation/protodoc/lib/definition"
	"github.com/protodoc-foundation/protodoc/lib/docsink"
	"github.com/protodoc-foundation/protodoc/lib/generate"
)

// generateFlags holds the flag values shared by generate and validate.
type generateFlags struct {
	configPath string
	inputDir   string
	outputDir  string
	html       bool
	verbose    bool
}

func (f *generateFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.configPath, "config", "", "path to protodoc.yaml (default: PROTODOC_CONFIG or built-in defaults)")
	flags.StringVar(&f.inputDir, "input", "", "definition directory (overrides config)")
	flags.StringVar(&f.outputDir, "output", "", "output directory (overrides config)")
	flags.BoolVar(&f.verbose, "verbose", false, "enable debug logging")
}

// resolve loads the effective configuration: file (or environment, or
// defaults) with flag overrides applied on top.
func (f *generateFlags) resolve() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.inputDir != "" {
		cfg.Input.Dir = f.inputDir
	}
	if f.outputDir != "" {
		cfg.Output.Dir = f.outputDir
	}
	if f.html {
		cfg.Output.HTML = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (f *generateFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// GenerateCommand returns the "protodoc generate" command.
func GenerateCommand() *cli.Command {
	var flagValues generateFlags

	return &cli.Command{
		Name:    "generate",
		Summary: "Merge definition layers and write the reference documents",
		Description: `Merge the versioned definition files in the input directory, in
ascending filename order, and write one markdown document per version
plus the cross-version index. Unchanged documents are left untouched.`,
		Usage: "protodoc generate [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flagValues.register(flags)
			flags.BoolVar(&flagValues.html, "html", false, "also write HTML renditions")
			return flags
		},
		Run: func(args []string) error {
			cfg, err := flagValues.resolve()
			if err != nil {
				return err
			}

			sink, err := docsink.NewDir(cfg.Output.Dir)
			if err != nil {
				return err
			}

			summary, err := runGeneration(cfg, sink, flagValues.logger())
			if err != nil {
				return err
			}

			written := 0
			for _, doc := range summary.Documents {
				if doc.Written {
					written++
				}
			}
			fmt.Printf("generated %d documents (%d changed) and %s in %s\n",
				len(summary.Documents), written, summary.IndexFile, cfg.Output.Dir)
			return nil
		},
	}
}

// runGeneration executes a run and converts fatal tree-state errors
// into a diagnostic dump plus a silent non-zero exit. The dump is the
// cumulative definition state at the point of failure, which is what
// one needs to find the offending layer content.
func runGeneration(cfg *config.Config, sink generate.Sink, logger *slog.Logger) (*generate.Summary, error) {
	provider := &generate.DirectoryProvider{
		Dir:        cfg.Input.Dir,
		Extensions: cfg.Input.Extensions,
	}

	summary, err := generate.Run(provider, sink, generate.Options{
		Sentinel:      cfg.Merge.Sentinel,
		IndexFile:     cfg.Index.File,
		IndexTitle:    cfg.Index.Title,
		VersionPrefix: cfg.Index.VersionPrefix,
		HTML:          cfg.Output.HTML,
		Logger:        logger,
	})
	if err != nil {
		var stateErr *generate.StateError
		if errors.As(err, &stateErr) {
			fmt.Fprintf(os.Stderr, "error: %v\n", stateErr)
			fmt.Fprintln(os.Stderr, "cumulative definition state at failure:")
			os.Stderr.Write(definition.Dump(stateErr.State))
			return nil, &cli.ExitError{Code: 1}
		}
		return nil, err
	}
	return summary, nil
}
