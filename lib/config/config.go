// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides run configuration for protodoc.
//
// Configuration is loaded from a single YAML file specified by:
//   - PROTODOC_CONFIG environment variable, or
//   - --config flag passed to the command
//
// Every field has a working default, so a config file is optional:
// a bare `protodoc generate` in a directory with a definitions/
// subdirectory just works. Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full protodoc configuration.
type Config struct {
	// Input configures definition layer discovery.
	Input InputConfig `yaml:"input"`

	// Output configures where generated documents go.
	Output OutputConfig `yaml:"output"`

	// Merge configures the layered merge.
	Merge MergeConfig `yaml:"merge"`

	// Index configures the cross-layer index document.
	Index IndexConfig `yaml:"index"`
}

// InputConfig configures definition layer discovery.
type InputConfig struct {
	// Dir is the directory scanned for definition files.
	// Default: definitions
	Dir string `yaml:"dir"`

	// Extensions lists accepted file extensions (with leading dot).
	// Default: .jsonc, .json, .yaml, .yml
	Extensions []string `yaml:"extensions"`
}

// OutputConfig configures where generated documents go.
type OutputConfig struct {
	// Dir is the directory receiving generated documents.
	// Default: docs
	Dir string `yaml:"dir"`

	// HTML also writes an HTML rendition of every document.
	// Default: false
	HTML bool `yaml:"html"`
}

// MergeConfig configures the layered merge.
type MergeConfig struct {
	// Sentinel is the reset token recognized inside trees and at the
	// head of sequences. Default: !reset!
	Sentinel string `yaml:"sentinel"`
}

// IndexConfig configures the cross-layer index document.
type IndexConfig struct {
	// File names the index document. Default: protocol_reference.md
	File string `yaml:"file"`

	// Title is the index document's title line.
	// Default: # Protocol Reference
	Title string `yaml:"title"`

	// VersionPrefix is stripped from layer stems to derive display
	// versions (e.g. "xap_" turns "xap_0.2.0" into "0.2.0").
	// Default: empty (stems are used verbatim)
	VersionPrefix string `yaml:"version_prefix"`
}

// Default returns the default configuration. These defaults make a
// config file optional for conventionally laid-out projects.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir:        "definitions",
			Extensions: []string{".jsonc", ".json", ".yaml", ".yml"},
		},
		Output: OutputConfig{
			Dir: "docs",
		},
		Merge: MergeConfig{
			Sentinel: "!reset!",
		},
		Index: IndexConfig{
			File:  "protocol_reference.md",
			Title: "# Protocol Reference",
		},
	}
}

// Load loads configuration from the PROTODOC_CONFIG environment
// variable when set, and returns defaults otherwise.
func Load() (*Config, error) {
	path := os.Getenv("PROTODOC_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, on top of
// the defaults. The config file is the single source of truth;
// environment variables never override file values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Input.Dir == "" {
		errs = append(errs, fmt.Errorf("input.dir is required"))
	}
	for _, extension := range c.Input.Extensions {
		if !strings.HasPrefix(extension, ".") {
			errs = append(errs, fmt.Errorf("input.extensions entry %q must start with a dot", extension))
		}
	}
	if c.Output.Dir == "" {
		errs = append(errs, fmt.Errorf("output.dir is required"))
	}
	if c.Merge.Sentinel == "" {
		errs = append(errs, fmt.Errorf("merge.sentinel is required"))
	}
	if c.Index.File == "" {
		errs = append(errs, fmt.Errorf("index.file is required"))
	}
	if strings.ContainsAny(c.Index.File, "/\\") {
		errs = append(errs, fmt.Errorf("index.file must be a bare file name, got %q", c.Index.File))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
