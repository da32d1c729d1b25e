// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	t.Parallel()

	var gotArgs []string
	root := &Command{
		Name: "protodoc",
		Subcommands: []*Command{
			{
				Name: "generate",
				Run: func(args []string) error {
					gotArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"generate", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "extra" {
		t.Errorf("subcommand args = %v, want [extra]", gotArgs)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	t.Parallel()

	var outputDir string
	cmd := &Command{
		Name: "generate",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flagSet.StringVar(&outputDir, "output", "docs", "output directory")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	if err := cmd.Execute([]string{"--output", "site"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outputDir != "site" {
		t.Errorf("output = %q, want %q", outputDir, "site")
	}
}

func TestExecuteSuggestsCommand(t *testing.T) {
	t.Parallel()

	root := &Command{
		Name: "protodoc",
		Subcommands: []*Command{
			{Name: "generate", Run: func([]string) error { return nil }},
			{Name: "validate", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"genrate"})
	if err == nil {
		t.Fatal("Execute succeeded on unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "generate"?`) {
		t.Errorf("error = %q, want generate suggestion", err)
	}
}

func TestExecuteSuggestsFlag(t *testing.T) {
	t.Parallel()

	cmd := &Command{
		Name: "generate",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flagSet.Bool("html", false, "also write HTML")
			return flagSet
		},
		Run: func([]string) error { return nil },
	}

	err := cmd.Execute([]string{"--htlm"})
	if err == nil {
		t.Fatal("Execute succeeded on unknown flag")
	}
	if !strings.Contains(err.Error(), "--html") {
		t.Errorf("error = %q, want --html suggestion", err)
	}
}

func TestExecuteRequiresSubcommand(t *testing.T) {
	t.Parallel()

	root := &Command{
		Name: "protodoc",
		Subcommands: []*Command{
			{Name: "generate", Run: func([]string) error { return nil }},
		},
	}

	if err := root.Execute(nil); err == nil {
		t.Error("Execute succeeded without a subcommand")
	}
}

func TestPrintHelpListsCommandsAndFlags(t *testing.T) {
	t.Parallel()

	root := &Command{
		Name:        "protodoc",
		Description: "Layered protocol documentation generator.",
		Subcommands: []*Command{
			{Name: "generate", Summary: "Generate documentation"},
			{Name: "validate", Summary: "Validate definition layers"},
		},
		Examples: []Example{
			{Description: "Generate with defaults", Command: "protodoc generate"},
		},
	}

	var help strings.Builder
	root.PrintHelp(&help)
	out := help.String()

	for _, want := range []string{
		"Layered protocol documentation generator.",
		"Usage:",
		"protodoc <command> [flags]",
		"generate",
		"Validate definition layers",
		"# Generate with defaults",
		"Run 'protodoc <command> --help'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}

func TestFullNameWalksParents(t *testing.T) {
	t.Parallel()

	called := false
	leaf := &Command{
		Name: "generate",
		Run: func([]string) error {
			called = true
			return nil
		},
	}
	root := &Command{Name: "protodoc", Subcommands: []*Command{leaf}}

	if err := root.Execute([]string{"generate"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !called {
		t.Error("leaf command never ran")
	}
	if got := leaf.fullName(); got != "protodoc generate" {
		t.Errorf("fullName = %q, want %q", got, "protodoc generate")
	}
}

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"generate", "generate", 0},
		{"genrate", "generate", 1},
		{"bundle", "preview", 6},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
