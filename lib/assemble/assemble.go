// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package assemble concatenates the rendered sections of a cumulative
// definition tree into one output document per layer, and builds the
// cross-layer index document.
package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/protodoc-foundation/protodoc/lib/definition"
	"github.com/protodoc-foundation/protodoc/lib/render"
)

// MissingSectionError reports an "order" entry with no corresponding
// section text. This is a fatal configuration error: the definition
// layers promised a section that neither a renderer nor direct
// authoring ever populated.
type MissingSectionError struct {
	// Section is the order entry that failed to resolve.
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("documentation order references section %q, which has no content", e.Section)
}

// Document concatenates the documentation sections of tree in the
// order given by the documentation "order" sequence. Each section is
// trimmed of leading and trailing whitespace and followed by a blank
// line. Returns a *MissingSectionError if an order entry has no
// section text.
func Document(tree *definition.Tree) (string, error) {
	doc := tree.Subtree(render.KeyDocumentation)
	if doc == nil {
		return "", fmt.Errorf("%s: missing or not a mapping", render.KeyDocumentation)
	}

	orderValue, ok := doc.Get("order")
	if !ok {
		return "", fmt.Errorf("%s.order: missing", render.KeyDocumentation)
	}
	order, ok := orderValue.(definition.Sequence)
	if !ok {
		return "", fmt.Errorf("%s.order: not a sequence", render.KeyDocumentation)
	}

	var out strings.Builder
	for _, entry := range order {
		scalar, ok := entry.(definition.Scalar)
		if !ok {
			return "", fmt.Errorf("%s.order: entry is not a section key", render.KeyDocumentation)
		}
		section, ok := doc.Get(scalar.Text)
		if !ok {
			return "", &MissingSectionError{Section: scalar.Text}
		}
		out.WriteString(strings.TrimSpace(definition.Text(section)))
		out.WriteString("\n\n")
	}
	return out.String(), nil
}

// IndexEntry describes one produced layer document for the index.
type IndexEntry struct {
	// Stem is the layer's source file stem, e.g. "xap_0.2.0".
	Stem string

	// Version is the display version derived from the stem.
	Version string

	// Filename is the layer document's output file name.
	Filename string
}

// Index builds the cross-layer index document: a title line followed
// by one link per layer document, sorted descending by stem so the
// newest protocol version lists first. The input slice is not
// modified.
func Index(title string, entries []IndexEntry) string {
	sorted := make([]IndexEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Stem > sorted[j].Stem
	})

	var out strings.Builder
	out.WriteString(title)
	out.WriteString("\n\n")
	for _, entry := range sorted {
		fmt.Fprintf(&out, "* [Version %s](%s)\n", entry.Version, entry.Filename)
	}
	return out.String()
}
