// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlexport renders generated markdown documents as
// standalone HTML pages. The markdown produced by the assembler leans
// on GFM tables, so the GFM extension set is always enabled.
package htmlexport

import (
	"bytes"
	"fmt"
	"html"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// converterInstance is initialized once and reused. The configuration
// never changes and goldmark.Markdown is safe to share across calls.
var (
	converterInstance goldmark.Markdown
	converterOnce     sync.Once
)

func converter() goldmark.Markdown {
	converterOnce.Do(func() {
		converterInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
			),
		)
	})
	return converterInstance
}

// Render converts markdown text into a complete HTML document with the
// given title.
func Render(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := converter().Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.3rem 0.6rem; text-align: left; }
code { background: #f2f2f2; padding: 0.1rem 0.25rem; }
</style>
</head>
<body>
`, html.EscapeString(title))
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}

// DocumentName converts a markdown document name to its HTML
// counterpart, e.g. "xap_0.2.0.md" becomes "xap_0.2.0.html".
func DocumentName(markdownName string) string {
	const suffix = ".md"
	if len(markdownName) > len(suffix) && markdownName[len(markdownName)-len(suffix):] == suffix {
		return markdownName[:len(markdownName)-len(suffix)] + ".html"
	}
	return markdownName + ".html"
}
