// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestCreateRoundTrip(t *testing.T) {
	t.Parallel()

	docs := t.TempDir()
	contents := map[string]string{
		"protocol_reference.md": "# Protocol Reference\n",
		"xap_0.0.1.md":          "# Protocol\n\nBase revision.\n",
		"xap_0.1.0.md":          "# Protocol\n\nSecond revision.\n",
	}
	for name, content := range contents {
		if err := os.WriteFile(filepath.Join(docs, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	// Subdirectories are not archived.
	if err := os.Mkdir(filepath.Join(docs, "assets"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "docs.tar.zst")
	count, err := Create(docs, outPath)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if count != 3 {
		t.Errorf("archived %d files, want 3", count)
	}

	file, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()
	decompressor, err := zstd.NewReader(file)
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer decompressor.Close()

	archive := tar.NewReader(decompressor)
	var names []string
	extracted := make(map[string]string)
	for {
		header, err := archive.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("tar.Next: %v", err)
		}
		data, err := io.ReadAll(archive)
		if err != nil {
			t.Fatalf("reading %s: %v", header.Name, err)
		}
		names = append(names, header.Name)
		extracted[header.Name] = string(data)
	}

	// Entries come out in sorted name order.
	want := []string{"protocol_reference.md", "xap_0.0.1.md", "xap_0.1.0.md"}
	if len(names) != len(want) {
		t.Fatalf("archive holds %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("entry %d = %q, want %q", i, names[i], name)
		}
		if extracted[name] != contents[name] {
			t.Errorf("content of %s = %q, want %q", name, extracted[name], contents[name])
		}
	}
}

func TestCreateEmptyDirectory(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "docs.tar.zst")
	if _, err := Create(t.TempDir(), outPath); err == nil {
		t.Error("Create succeeded on an empty directory")
	}
}

func TestCreateMissingDirectory(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "docs.tar.zst")
	if _, err := Create(filepath.Join(t.TempDir(), "absent"), outPath); err == nil {
		t.Error("Create succeeded on a missing directory")
	}
}

func TestDefaultName(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"docs", "docs.tar.zst"},
		{"out/site/", "site.tar.zst"},
		{".", "docs.tar.zst"},
		{"", "docs.tar.zst"},
	}
	for _, tc := range cases {
		if got := DefaultName(tc.in); got != tc.want {
			t.Errorf("DefaultName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
