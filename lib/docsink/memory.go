// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package docsink

// Memory is an in-memory sink. It backs validation runs (which must
// not touch the filesystem) and tests.
type Memory struct {
	// Docs maps document name to the last content written.
	Docs map[string]string

	// Order records document names in first-write order.
	Order []string
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{Docs: make(map[string]string)}
}

// Write stores content under name. The result's Path is the bare name.
func (m *Memory) Write(name, content string) (Result, error) {
	if _, seen := m.Docs[name]; !seen {
		m.Order = append(m.Order, name)
	}
	previous, had := m.Docs[name]
	m.Docs[name] = content
	return Result{
		Path:    name,
		Digest:  hashContent(content),
		Written: !had || previous != content,
	}, nil
}
