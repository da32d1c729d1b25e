// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package render derives the reserved documentation sections of a
// cumulative definition tree from its source keys: the type catalog,
// the term glossary, and the response-flag table.
//
// Each renderer is a pure function of the current tree state and is
// recomputed after every merge in which its source key is present, so
// sections stay consistent as layers accumulate. Rendered text lands
// under reserved keys inside the "documentation" subtree, alongside
// the directly authored sections.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/protodoc-foundation/protodoc/lib/definition"
)

// Source keys read by the renderers.
const (
	KeyTypeDocs        = "type_docs"
	KeyTermDefinitions = "term_definitions"
	KeyResponseFlags   = "response_flags"

	// KeyDocumentation is the subtree holding authored and rendered
	// sections plus the assembly order.
	KeyDocumentation = "documentation"
)

// Reserved section keys written by the renderers. Their text is
// machine-derived, never authored directly.
const (
	SectionTypeDocs        = "!type_docs!"
	SectionTermDefinitions = "!term_definitions!"
	SectionResponseFlags   = "!response_flags!"
)

// placeholderName marks an undefined response-flag bit.
const placeholderName = "-"

// Refresh recomputes every reserved documentation section whose source
// key is present in tree. Sections whose source key is absent are left
// untouched. Refresh is idempotent: repeated calls on the same tree
// state produce identical output.
func Refresh(tree *definition.Tree) error {
	if tree.Has(KeyTypeDocs) {
		if err := refreshNameTable(tree, KeyTypeDocs, SectionTypeDocs); err != nil {
			return err
		}
	}
	if tree.Has(KeyTermDefinitions) {
		if err := refreshNameTable(tree, KeyTermDefinitions, SectionTermDefinitions); err != nil {
			return err
		}
	}
	if tree.Has(KeyResponseFlags) {
		if err := refreshResponseFlags(tree); err != nil {
			return err
		}
	}
	return nil
}

// refreshNameTable renders a two-column name/definition table from the
// mapping at sourceKey, with rows sorted ascending by name. The type
// catalog and the term glossary share this shape.
func refreshNameTable(tree *definition.Tree, sourceKey, sectionKey string) error {
	defs := tree.Subtree(sourceKey)
	if defs == nil {
		return fmt.Errorf("%s: not a mapping", sourceKey)
	}

	names := defs.Keys()
	sort.Strings(names)

	var table strings.Builder
	table.WriteString("| Name | Definition |\n| -- | -- |\n")
	for _, name := range names {
		value, _ := defs.Get(name)
		fmt.Fprintf(&table, "| _%s_ | %s |\n", name, definition.Text(value))
	}

	return setSection(tree, sectionKey, table.String())
}

// refreshResponseFlags renders the response-flag bit table from the
// "bits" mapping under response_flags. Bits "0" through "7" that are
// not defined are filled in with placeholder records first — in the
// source tree itself, so later merges and renders see the filled
// defaults. The table lists Bit 7 down to Bit 0; a bullet line follows
// for every bit with a real (non-placeholder) name, in the same
// descending order.
func refreshResponseFlags(tree *definition.Tree) error {
	flags := tree.Subtree(KeyResponseFlags)
	if flags == nil {
		return fmt.Errorf("%s: not a mapping", KeyResponseFlags)
	}
	bits := flags.Subtree("bits")
	if bits == nil {
		return fmt.Errorf("%s.bits: missing or not a mapping", KeyResponseFlags)
	}

	for n := 0; n < 8; n++ {
		index := strconv.Itoa(n)
		if !bits.Has(index) {
			placeholder := definition.NewTree()
			placeholder.Set("name", definition.String(placeholderName))
			placeholder.Set("description", definition.String(placeholderName))
			bits.Set(index, placeholder)
		}
	}

	header := make([]string, 0, 8)
	names := make([]string, 0, 8)
	var bullets strings.Builder
	for n := 7; n >= 0; n-- {
		bit := bits.Subtree(strconv.Itoa(n))
		if bit == nil {
			return fmt.Errorf("%s.bits.%d: not a mapping", KeyResponseFlags, n)
		}
		name := fieldText(bit, "name")
		header = append(header, fmt.Sprintf("Bit %d", n))
		names = append(names, name)
		if name != placeholderName {
			fmt.Fprintf(&bullets, "\n* `Bit %d`: %s", n, fieldText(bit, "description"))
		}
	}

	var table strings.Builder
	table.WriteString("| " + strings.Join(header, " | ") + " |\n")
	table.WriteString("|" + strings.Repeat("--|", 8) + "\n")
	table.WriteString("| " + strings.Join(names, " | ") + " |\n")
	table.WriteString(bullets.String())
	table.WriteString("\n")

	return setSection(tree, SectionResponseFlags, table.String())
}

// fieldText returns the display text of a record field, or the
// placeholder when the field is absent.
func fieldText(record *definition.Tree, field string) string {
	value, ok := record.Get(field)
	if !ok {
		return placeholderName
	}
	return definition.Text(value)
}

// setSection writes rendered text under a reserved key inside the
// documentation subtree. A missing documentation subtree means the
// definition layers never declared one, which leaves nowhere to put
// derived sections.
func setSection(tree *definition.Tree, sectionKey, text string) error {
	doc := tree.Subtree(KeyDocumentation)
	if doc == nil {
		return fmt.Errorf("%s: missing or not a mapping, cannot store %s", KeyDocumentation, sectionKey)
	}
	doc.Set(sectionKey, definition.String(text))
	return nil
}
