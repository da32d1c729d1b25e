// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/protodoc-foundation/protodoc/lib/docsink"
)

const layerOne = `{
	// Base protocol description.
	"version": "0.0.1",
	"documentation": {
		"order": ["intro", "!term_definitions!"],
		"intro": "# Protocol\n\nBase revision."
	},
	"term_definitions": {
		"token": "an opaque request identifier"
	}
}`

const layerTwo = `{
	"version": "0.1.0",
	"documentation": {
		"order": ["!reset!", "intro", "!term_definitions!", "!response_flags!"]
	},
	"term_definitions": {
		"capability": "a feature bit advertised by the device"
	},
	"response_flags": {
		"define_prefix": "RESPONSE_FLAG",
		"bits": {
			"0": {"name": "SUCCESS", "description": "request succeeded"}
		}
	}
}`

func writeLayers(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func TestRun_LayeredDocuments(t *testing.T) {
	t.Parallel()

	dir := writeLayers(t, map[string]string{
		"xap_0.0.1.jsonc": layerOne,
		"xap_0.1.0.jsonc": layerTwo,
	})

	sink := docsink.NewMemory()
	summary, err := Run(&DirectoryProvider{Dir: dir}, sink, Options{VersionPrefix: "xap_"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(summary.Documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(summary.Documents))
	}
	if summary.Documents[0].Stem != "xap_0.0.1" || summary.Documents[1].Stem != "xap_0.1.0" {
		t.Errorf("document order = %v", summary.Documents)
	}
	if summary.Documents[1].Version != "0.1.0" {
		t.Errorf("version = %q, want %q", summary.Documents[1].Version, "0.1.0")
	}

	// The first layer has no response flags section anywhere.
	first := sink.Docs["xap_0.0.1.md"]
	if strings.Contains(first, "Bit 7") {
		t.Errorf("first document contains response flags table:\n%s", first)
	}
	if !strings.Contains(first, "| _token_ | an opaque request identifier |") {
		t.Errorf("first document missing term table:\n%s", first)
	}

	// The second layer merges in response flags and a new term.
	second := sink.Docs["xap_0.1.0.md"]
	if !strings.Contains(second, "| Bit 7 | Bit 6 | Bit 5 | Bit 4 | Bit 3 | Bit 2 | Bit 1 | Bit 0 |") {
		t.Errorf("second document missing response flags header:\n%s", second)
	}
	if !strings.Contains(second, "* `Bit 0`: request succeeded") {
		t.Errorf("second document missing flag bullet:\n%s", second)
	}
	if !strings.Contains(second, "| _capability_ |") || !strings.Contains(second, "| _token_ |") {
		t.Errorf("second document missing merged terms:\n%s", second)
	}

	// Index links descending by stem.
	index := sink.Docs["protocol_reference.md"]
	want := "# Protocol Reference\n\n" +
		"* [Version 0.1.0](xap_0.1.0.md)\n" +
		"* [Version 0.0.1](xap_0.0.1.md)\n"
	if index != want {
		t.Errorf("index = %q, want %q", index, want)
	}
}

func TestRun_MissingSectionCarriesState(t *testing.T) {
	t.Parallel()

	dir := writeLayers(t, map[string]string{
		"xap_0.0.1.jsonc": `{
			"documentation": {
				"order": ["intro", "ghost"],
				"intro": "# Protocol"
			}
		}`,
	})

	_, err := Run(&DirectoryProvider{Dir: dir}, docsink.NewMemory(), Options{})
	var state *StateError
	if !errors.As(err, &state) {
		t.Fatalf("Run() error = %v, want StateError", err)
	}
	if state.Stem != "xap_0.0.1" {
		t.Errorf("failing stem = %q", state.Stem)
	}
	if state.State == nil || state.State.Subtree("documentation") == nil {
		t.Error("StateError does not carry the cumulative tree")
	}
}

func TestRun_EarlierDocumentsSurviveFailure(t *testing.T) {
	t.Parallel()

	dir := writeLayers(t, map[string]string{
		"xap_0.0.1.jsonc": layerOne,
		"xap_0.1.0.jsonc": `{
			"documentation": {
				"order": ["missing"]
			}
		}`,
	})

	sink := docsink.NewMemory()
	_, err := Run(&DirectoryProvider{Dir: dir}, sink, Options{})
	if err == nil {
		t.Fatal("Run() succeeded, want StateError")
	}
	if _, ok := sink.Docs["xap_0.0.1.md"]; !ok {
		t.Error("first layer's document was not written before the failure")
	}
	if _, ok := sink.Docs["protocol_reference.md"]; ok {
		t.Error("index written despite aborted run")
	}
}

func TestRun_SecondRunSkipsUnchanged(t *testing.T) {
	t.Parallel()

	dir := writeLayers(t, map[string]string{"xap_0.0.1.jsonc": layerOne})
	sink, err := docsink.NewDir(filepath.Join(t.TempDir(), "docs"))
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}

	first, err := Run(&DirectoryProvider{Dir: dir}, sink, Options{})
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if !first.Documents[0].Written {
		t.Error("first run reported Written = false")
	}

	second, err := Run(&DirectoryProvider{Dir: dir}, sink, Options{})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if second.Documents[0].Written {
		t.Error("unchanged rerun reported Written = true")
	}
}

func TestRun_HTMLRendition(t *testing.T) {
	t.Parallel()

	dir := writeLayers(t, map[string]string{"xap_0.0.1.jsonc": layerOne})
	sink := docsink.NewMemory()
	if _, err := Run(&DirectoryProvider{Dir: dir}, sink, Options{HTML: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	page, ok := sink.Docs["xap_0.0.1.html"]
	if !ok {
		t.Fatal("HTML rendition not written")
	}
	if !strings.Contains(page, "<h1") || !strings.Contains(page, "Base revision.") {
		t.Errorf("HTML page missing rendered content:\n%s", page)
	}
	if _, ok := sink.Docs["protocol_reference.html"]; !ok {
		t.Error("HTML index not written")
	}
}

func TestRun_NoLayers(t *testing.T) {
	t.Parallel()

	_, err := Run(&DirectoryProvider{Dir: t.TempDir()}, docsink.NewMemory(), Options{})
	if err == nil || !strings.Contains(err.Error(), "no definition layers") {
		t.Errorf("Run() error = %v, want no-layers error", err)
	}
}

func TestDirectoryProvider_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	dir := writeLayers(t, map[string]string{
		"xap_0.1.0.jsonc": `{"b": 2}`,
		"xap_0.0.1.yaml":  "a: 1\n",
		"notes.txt":       "ignore me",
	})
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	layers, err := (&DirectoryProvider{Dir: dir}).Layers()
	if err != nil {
		t.Fatalf("Layers: %v", err)
	}
	if len(layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(layers))
	}
	if layers[0].Stem != "xap_0.0.1" || layers[1].Stem != "xap_0.1.0" {
		t.Errorf("layer order = [%s %s]", layers[0].Stem, layers[1].Stem)
	}
}

func TestDirectoryProvider_ParseFailureAborts(t *testing.T) {
	t.Parallel()

	dir := writeLayers(t, map[string]string{"xap_0.0.1.jsonc": `{"unterminated": `})
	if _, err := (&DirectoryProvider{Dir: dir}).Layers(); err == nil {
		t.Error("Layers() succeeded on malformed input")
	}
}
