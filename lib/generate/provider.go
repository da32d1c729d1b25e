// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/protodoc-foundation/protodoc/lib/definition"
)

// DefaultExtensions are the definition file extensions a
// DirectoryProvider accepts when none are configured.
var DefaultExtensions = []string{".jsonc", ".json", ".yaml", ".yml"}

// DirectoryProvider discovers definition layers in a single directory.
// Files matching the configured extensions are parsed in ascending
// lexicographic filename order, which is the merge order: version
// numbers are zero-extended in practice (xap_0.0.1, xap_0.1.0, ...)
// so name order is version order.
type DirectoryProvider struct {
	// Dir is the directory to scan.
	Dir string

	// Extensions filters discovered files. Nil selects
	// DefaultExtensions.
	Extensions []string
}

// Layers reads and parses every matching definition file. A file that
// fails to parse aborts discovery before any merge happens.
func (p *DirectoryProvider) Layers() ([]Layer, error) {
	extensions := p.Extensions
	if extensions == nil {
		extensions = DefaultExtensions
	}

	dirEntries, err := os.ReadDir(p.Dir)
	if err != nil {
		return nil, fmt.Errorf("discovering definition layers: %w", err)
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		if slices.Contains(extensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)

	layers := make([]Layer, 0, len(names))
	for _, name := range names {
		path := filepath.Join(p.Dir, name)
		tree, err := definition.ReadFile(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, Layer{Stem: definition.Stem(name), Tree: tree})
	}
	return layers, nil
}
