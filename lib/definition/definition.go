// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package definition provides the value model for protocol definition
// documents: an insertion-ordered tree of scalars, sequences, and nested
// trees, plus parsing from JSONC and YAML sources.
//
// Definition files are authored as JSONC (JSON extended with // comments
// and trailing commas) or plain YAML. Both formats decode through
// yaml.v3 document nodes, which preserve mapping key order — key order
// is what makes merged documentation sections deterministic.
package definition

import (
	"strconv"
)

// Value is one node in a definition tree: a Scalar leaf, a Sequence,
// or a nested *Tree.
type Value interface {
	isValue()
}

// ScalarKind identifies the primitive type of a Scalar.
type ScalarKind int

const (
	// KindString is a text scalar.
	KindString ScalarKind = iota
	// KindInt is an integer scalar.
	KindInt
	// KindFloat is a floating-point scalar.
	KindFloat
	// KindBool is a boolean scalar.
	KindBool
	// KindNull is an explicit null.
	KindNull
)

// Scalar is a leaf value. Text holds the canonical rendering: the raw
// string for KindString, decimal digits for KindInt/KindFloat, "true"
// or "false" for KindBool, and "" for KindNull.
type Scalar struct {
	Kind ScalarKind
	Text string
}

func (Scalar) isValue() {}

// String constructs a string scalar.
func String(text string) Scalar {
	return Scalar{Kind: KindString, Text: text}
}

// Bool constructs a boolean scalar.
func Bool(v bool) Scalar {
	return Scalar{Kind: KindBool, Text: strconv.FormatBool(v)}
}

// Int constructs an integer scalar.
func Int(v int64) Scalar {
	return Scalar{Kind: KindInt, Text: strconv.FormatInt(v, 10)}
}

// Null constructs a null scalar.
func Null() Scalar {
	return Scalar{Kind: KindNull}
}

// Equal reports whether two scalars have the same kind and text.
func (s Scalar) Equal(other Scalar) bool {
	return s.Kind == other.Kind && s.Text == other.Text
}

// IsString reports whether the scalar is a string with the given text.
func (s Scalar) IsString(text string) bool {
	return s.Kind == KindString && s.Text == text
}

// Sequence is an ordered list of values.
type Sequence []Value

func (Sequence) isValue() {}

// Tree is an insertion-ordered mapping from string keys to values.
// Setting an existing key updates the value in place without moving
// the key; new keys append to the end of the order.
type Tree struct {
	keys    []string
	entries map[string]Value
}

func (*Tree) isValue() {}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{entries: make(map[string]Value)}
}

// Len returns the number of keys in the tree.
func (t *Tree) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order. The returned slice is a
// copy; mutating it does not affect the tree.
func (t *Tree) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Get returns the value stored under key, if any.
func (t *Tree) Get(key string) (Value, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Tree) Has(key string) bool {
	_, ok := t.entries[key]
	return ok
}

// Set stores value under key. An existing key keeps its position in
// the order; a new key appends.
func (t *Tree) Set(key string, value Value) {
	if t.entries == nil {
		t.entries = make(map[string]Value)
	}
	if _, ok := t.entries[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = value
}

// Delete removes key and its position in the order. Removing an
// absent key is a no-op.
func (t *Tree) Delete(key string) {
	if _, ok := t.entries[key]; !ok {
		return
	}
	delete(t.entries, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Subtree returns the nested tree stored under key, or nil if the key
// is absent or holds a non-tree value.
func (t *Tree) Subtree(key string) *Tree {
	v, ok := t.entries[key]
	if !ok {
		return nil
	}
	sub, ok := v.(*Tree)
	if !ok {
		return nil
	}
	return sub
}

// Clone returns a deep copy of the tree. The copy shares no mutable
// state with the original.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	clone := &Tree{
		keys:    make([]string, len(t.keys)),
		entries: make(map[string]Value, len(t.entries)),
	}
	copy(clone.keys, t.keys)
	for key, value := range t.entries {
		clone.entries[key] = CloneValue(value)
	}
	return clone
}

// CloneValue returns a deep copy of a value. Scalars are copied by
// value; sequences and trees are copied recursively.
func CloneValue(v Value) Value {
	switch value := v.(type) {
	case Scalar:
		return value
	case Sequence:
		clone := make(Sequence, len(value))
		for i, element := range value {
			clone[i] = CloneValue(element)
		}
		return clone
	case *Tree:
		return value.Clone()
	default:
		return v
	}
}

// Text returns a plain-text rendering of a value for use in rendered
// documentation cells: scalar text as-is, and a compact JSON encoding
// for sequences and trees. Nil values render as "null".
func Text(v Value) string {
	if scalar, ok := v.(Scalar); ok {
		if scalar.Kind == KindNull {
			return "null"
		}
		return scalar.Text
	}
	return string(AppendJSON(nil, v, ""))
}
