// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package generate drives a documentation run: it folds definition
// layers into a cumulative tree in discovery order, refreshes the
// derived documentation sections after every merge, assembles one
// document per layer, and finishes with a cross-layer index document.
//
// Processing is strictly sequential with no retry. The first failure
// aborts the run; documents already written for earlier layers stay on
// disk as-is. Fatal errors carry the cumulative tree at the point of
// failure (see StateError) so the caller can dump it for diagnosis.
package generate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/protodoc-foundation/protodoc/lib/assemble"
	"github.com/protodoc-foundation/protodoc/lib/definition"
	"github.com/protodoc-foundation/protodoc/lib/docsink"
	"github.com/protodoc-foundation/protodoc/lib/htmlexport"
	"github.com/protodoc-foundation/protodoc/lib/merge"
	"github.com/protodoc-foundation/protodoc/lib/render"
)

// Layer is one definition layer: a parsed tree plus the stem of the
// file it came from. Layers are immutable once read.
type Layer struct {
	// Stem is the source file name without directory or extension,
	// e.g. "xap_0.2.0". It names the layer's output document and
	// encodes its display version.
	Stem string

	// Tree is the parsed definition content.
	Tree *definition.Tree
}

// Provider supplies definition layers in merge order. The order must
// be deterministic and stable across runs.
type Provider interface {
	Layers() ([]Layer, error)
}

// Sink accepts named text documents. Implementations overwrite
// existing content.
type Sink interface {
	Write(name, content string) (docsink.Result, error)
}

// Options configures a run. Zero values select the defaults noted on
// each field.
type Options struct {
	// Sentinel is the reset token (default merge.DefaultSentinel).
	Sentinel string

	// IndexFile names the index document (default "protocol_reference.md").
	IndexFile string

	// IndexTitle is the index document's title line
	// (default "# Protocol Reference").
	IndexTitle string

	// VersionPrefix is stripped from a layer stem to derive its
	// display version, e.g. prefix "xap_" turns stem "xap_0.2.0"
	// into version "0.2.0". An empty prefix leaves stems untouched.
	VersionPrefix string

	// HTML also writes an HTML rendition next to each markdown
	// document, including the index.
	HTML bool

	// Logger receives run progress. Nil discards logs.
	Logger *slog.Logger
}

// DocumentInfo describes one produced layer document.
type DocumentInfo struct {
	Stem     string
	Version  string
	Filename string

	// Written is false when the sink skipped an unchanged document.
	Written bool
}

// Summary reports what a run produced.
type Summary struct {
	Documents []DocumentInfo
	IndexFile string
}

// StateError is a fatal run error carrying the cumulative tree at the
// point of failure for diagnosis.
type StateError struct {
	// Stem identifies the layer being processed when the run failed.
	Stem string

	// State is the cumulative tree after the failing layer's merge.
	State *definition.Tree

	// Err is the underlying failure.
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("layer %s: %v", e.Stem, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// Run executes one documentation run. See the package comment for the
// control flow and failure semantics.
func Run(provider Provider, sink Sink, opts Options) (*Summary, error) {
	if opts.IndexFile == "" {
		opts.IndexFile = "protocol_reference.md"
	}
	if opts.IndexTitle == "" {
		opts.IndexTitle = "# Protocol Reference"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	layers, err := provider.Layers()
	if err != nil {
		return nil, err
	}
	if len(layers) == 0 {
		return nil, errors.New("no definition layers found")
	}

	merger := merge.New(opts.Sentinel)
	summary := &Summary{IndexFile: opts.IndexFile}
	var entries []assemble.IndexEntry
	var cumulative *definition.Tree

	for _, layer := range layers {
		cumulative = merger.Merge(cumulative, layer.Tree)

		if err := render.Refresh(cumulative); err != nil {
			return nil, &StateError{Stem: layer.Stem, State: cumulative, Err: err}
		}

		text, err := assemble.Document(cumulative)
		if err != nil {
			return nil, &StateError{Stem: layer.Stem, State: cumulative, Err: err}
		}

		name := layer.Stem + ".md"
		result, err := sink.Write(name, text)
		if err != nil {
			return nil, err
		}
		logger.Info("document assembled",
			"layer", layer.Stem, "path", result.Path, "written", result.Written)

		if opts.HTML {
			if err := writeHTML(sink, name, layer.Stem, text); err != nil {
				return nil, err
			}
		}

		version := strings.TrimPrefix(layer.Stem, opts.VersionPrefix)
		summary.Documents = append(summary.Documents, DocumentInfo{
			Stem:     layer.Stem,
			Version:  version,
			Filename: name,
			Written:  result.Written,
		})
		entries = append(entries, assemble.IndexEntry{
			Stem:     layer.Stem,
			Version:  version,
			Filename: name,
		})
	}

	index := assemble.Index(opts.IndexTitle, entries)
	result, err := sink.Write(opts.IndexFile, index)
	if err != nil {
		return nil, err
	}
	logger.Info("index assembled",
		"path", result.Path, "documents", len(entries), "written", result.Written)

	if opts.HTML {
		title := strings.TrimLeft(opts.IndexTitle, "# ")
		if err := writeHTML(sink, opts.IndexFile, title, index); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

func writeHTML(sink Sink, markdownName, title, markdown string) error {
	page, err := htmlexport.Render(title, markdown)
	if err != nil {
		return fmt.Errorf("%s: %w", markdownName, err)
	}
	if _, err := sink.Write(htmlexport.DocumentName(markdownName), page); err != nil {
		return err
	}
	return nil
}
