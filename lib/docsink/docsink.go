// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package docsink writes generated documents to their destination.
//
// The directory sink hashes content with BLAKE3 and skips the write
// when the target file already holds identical bytes, keeping repeat
// runs cheap and leaving file modification times honest: a timestamp
// only changes when the document actually changed.
package docsink

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// Result describes the outcome of writing one document.
type Result struct {
	// Path is the absolute or sink-relative location of the document.
	Path string

	// Digest is the hex-encoded BLAKE3 hash of the content.
	Digest string

	// Written is false when the target already held identical content
	// and the write was skipped.
	Written bool
}

// Dir is a filesystem sink rooted at a single output directory.
// Existing files are overwritten; unchanged content is skipped.
type Dir struct {
	root string
}

// NewDir returns a sink rooted at root, creating the directory if
// needed.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

// Root returns the sink's output directory.
func (d *Dir) Root() string {
	return d.root
}

// Write stores content under name inside the sink directory. When the
// existing file content hashes identically, nothing is written and the
// result reports Written: false.
func (d *Dir) Write(name, content string) (Result, error) {
	path := filepath.Join(d.root, name)
	digest := hashContent(content)
	result := Result{Path: path, Digest: digest}

	if existing, err := os.ReadFile(path); err == nil {
		if hashContent(string(existing)) == digest {
			return result, nil
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return result, fmt.Errorf("writing %s: %w", path, err)
	}
	result.Written = true
	return result, nil
}

func hashContent(content string) string {
	sum := blake3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
