// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package htmlexport

import (
	"strings"
	"testing"
)

func TestRenderProducesCompletePage(t *testing.T) {
	t.Parallel()

	page, err := Render("XAP 0.2.0", "# Protocol\n\nSome *emphasis*.\n")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>XAP 0.2.0</title>",
		"<h1",
		"<em>emphasis</em>",
		"</html>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q:\n%s", want, page)
		}
	}
}

func TestRenderGFMTable(t *testing.T) {
	t.Parallel()

	markdown := "| Name | Definition |\n| -- | -- |\n| _u8_ | unsigned byte |\n"
	page, err := Render("types", markdown)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(page, "<table>") || !strings.Contains(page, "<td><em>u8</em></td>") {
		t.Errorf("GFM table not rendered:\n%s", page)
	}
}

func TestRenderEscapesTitle(t *testing.T) {
	t.Parallel()

	page, err := Render(`<script>"x"</script>`, "body")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(page, "<script>") {
		t.Errorf("title not escaped:\n%s", page)
	}
}

func TestDocumentName(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"xap_0.2.0.md", "xap_0.2.0.html"},
		{"protocol_reference.md", "protocol_reference.html"},
		{"README", "README.html"},
		{".md", ".md.html"},
	}
	for _, tc := range cases {
		if got := DocumentName(tc.in); got != tc.want {
			t.Errorf("DocumentName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
