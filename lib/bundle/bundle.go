// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle packs a generated documentation directory into a
// single zstd-compressed tar archive, suitable for attaching to a
// release or shipping to a docs host. Generated documents are text,
// where zstd earns its keep.
package bundle

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Create archives every regular file directly inside docsDir (no
// recursion; the generator writes a flat directory) into a
// zstd-compressed tar at outPath. Returns the number of files
// archived. Entries are added in sorted name order so identical
// inputs produce identical archives.
func Create(docsDir, outPath string) (int, error) {
	dirEntries, err := os.ReadDir(docsDir)
	if err != nil {
		return 0, fmt.Errorf("reading docs directory: %w", err)
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	if len(names) == 0 {
		return 0, fmt.Errorf("no documents in %s", docsDir)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("creating bundle %s: %w", outPath, err)
	}
	defer out.Close()

	compressor, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, fmt.Errorf("creating zstd writer: %w", err)
	}
	archive := tar.NewWriter(compressor)

	for _, name := range names {
		if err := addFile(archive, docsDir, name); err != nil {
			return 0, err
		}
	}

	if err := archive.Close(); err != nil {
		return 0, fmt.Errorf("finalizing archive: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return 0, fmt.Errorf("finalizing compression: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("closing bundle: %w", err)
	}
	return len(names), nil
}

func addFile(archive *tar.Writer, dir, name string) error {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("tar header for %s: %w", path, err)
	}
	header.Name = name
	if err := archive.WriteHeader(header); err != nil {
		return fmt.Errorf("writing tar header for %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	if _, err := io.Copy(archive, file); err != nil {
		return fmt.Errorf("archiving %s: %w", path, err)
	}
	return nil
}

// DefaultName derives a bundle file name from the docs directory,
// e.g. "docs" becomes "docs.tar.zst".
func DefaultName(docsDir string) string {
	base := filepath.Base(strings.TrimRight(docsDir, "/"))
	if base == "." || base == "" {
		base = "docs"
	}
	return base + ".tar.zst"
}
