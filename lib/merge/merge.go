// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package merge implements the layered merge that folds an ordered
// sequence of partial definition trees into one cumulative tree.
//
// Later layers override earlier layers for plain values. Sequences
// append unless the incoming sequence starts with the reset sentinel,
// in which case the prior contents are discarded. Nested trees merge
// recursively unless the incoming tree contains the sentinel key, in
// which case it replaces the prior subtree outright; the sentinel key
// itself never survives a merge of two trees.
package merge

import (
	"github.com/protodoc-foundation/protodoc/lib/definition"
)

// DefaultSentinel is the reset token used when no override is
// configured. It must never collide with legitimate key or value
// content in definition files.
const DefaultSentinel = "!reset!"

// Merger folds definition layers using a configured reset sentinel.
type Merger struct {
	sentinel string
}

// New returns a Merger using the given reset sentinel. An empty
// sentinel selects DefaultSentinel.
func New(sentinel string) *Merger {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	return &Merger{sentinel: sentinel}
}

// Sentinel returns the configured reset token.
func (m *Merger) Sentinel() string {
	return m.sentinel
}

// Merge combines an existing cumulative tree with one incoming layer
// and returns a new tree. Neither input is mutated, and the result
// shares no mutable state with either.
//
// When existing is nil the result is a deep copy of incoming, taken
// verbatim: sentinel keys in a first layer are preserved, matching
// the per-key rules which only strip sentinels when two trees
// actually combine.
func (m *Merger) Merge(existing, incoming *definition.Tree) *definition.Tree {
	if incoming == nil {
		return existing.Clone()
	}
	if existing == nil {
		return incoming.Clone()
	}

	result := existing.Clone()
	for _, key := range incoming.Keys() {
		value, _ := incoming.Get(key)
		m.apply(result, key, value)
	}
	return result
}

// Fold merges layers left to right into a single cumulative tree.
func (m *Merger) Fold(layers ...*definition.Tree) *definition.Tree {
	var cumulative *definition.Tree
	for _, layer := range layers {
		cumulative = m.Merge(cumulative, layer)
	}
	return cumulative
}

// apply merges one incoming key/value pair into target. The merge rule
// is selected by the type of the incoming value:
//
//   - nested tree over an existing tree: replace when the incoming
//     tree carries the sentinel key, otherwise merge recursively;
//     either way the sentinel key is stripped from the result
//   - sequence over an existing sequence: full replace when the first
//     element is the sentinel token (dropped from the result),
//     otherwise append
//   - anything else, including a key absent from target or a
//     structural type mismatch: the incoming value is set directly
func (m *Merger) apply(target *definition.Tree, key string, value definition.Value) {
	previous, present := target.Get(key)

	switch incoming := value.(type) {
	case *definition.Tree:
		previousTree, wasTree := previous.(*definition.Tree)
		if !present {
			// New key: taken verbatim, sentinel included. Stripping
			// only happens when two trees combine.
			target.Set(key, incoming.Clone())
			return
		}
		var merged *definition.Tree
		if !wasTree || incoming.Has(m.sentinel) {
			merged = incoming.Clone()
		} else {
			merged = m.Merge(previousTree, incoming)
		}
		merged.Delete(m.sentinel)
		target.Set(key, merged)

	case definition.Sequence:
		previousSequence, wasSequence := previous.(definition.Sequence)
		if !present || !wasSequence {
			target.Set(key, definition.CloneValue(incoming))
			return
		}
		if m.startsWithSentinel(incoming) {
			target.Set(key, definition.CloneValue(incoming[1:]))
			return
		}
		combined := make(definition.Sequence, 0, len(previousSequence)+len(incoming))
		combined = append(combined, previousSequence...)
		for _, element := range incoming {
			combined = append(combined, definition.CloneValue(element))
		}
		target.Set(key, combined)

	default:
		target.Set(key, definition.CloneValue(value))
	}
}

// startsWithSentinel reports whether the first element of a sequence
// is the reset token. Only the first element is checked: a sentinel
// appearing later in a sequence is ordinary appended data. An empty
// sequence never resets.
func (m *Merger) startsWithSentinel(sequence definition.Sequence) bool {
	if len(sequence) == 0 {
		return false
	}
	scalar, ok := sequence[0].(definition.Scalar)
	return ok && scalar.IsString(m.sentinel)
}
