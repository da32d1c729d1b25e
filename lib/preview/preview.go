// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package preview renders a generated markdown document as styled
// terminal output, so authors can inspect a protocol reference page
// without leaving the shell. The documents the generator produces are
// table- and list-heavy, so those get first-class treatment; exotic
// markdown (raw HTML, images) degrades to plain text.
package preview

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Options controls preview rendering.
type Options struct {
	// Width is the target line width. Zero selects 100 columns.
	Width int

	// Profile is the terminal color profile. Use termenv.Ascii for
	// uncolored output (non-TTY destinations).
	Profile termenv.Profile
}

// parserInstance is initialized once and reused; the parser
// configuration never changes and goldmark parsers are safe to share.
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func parser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return parserInstance
}

// Render converts markdown text to styled terminal output.
func Render(markdown string, opts Options) string {
	if markdown == "" {
		return ""
	}
	if opts.Width <= 0 {
		opts.Width = 100
	}

	source := []byte(markdown)
	document := parser().Parser().Parse(text.NewReader(source))

	lipRenderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(opts.Profile))
	lipRenderer.SetColorProfile(opts.Profile)

	walker := &docWalker{
		source:   source,
		width:    opts.Width,
		renderer: lipRenderer,
	}
	ast.Walk(document, walker.walk)

	return strings.TrimRight(walker.out.String(), "\n") + "\n"
}

// RenderFile reads a markdown document from disk and renders it.
func RenderFile(path string, opts Options) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Render(string(data), opts), nil
}

// docWalker walks a goldmark AST and accumulates styled terminal
// text. Paragraph inline content collects in a buffer and wraps as a
// unit when the paragraph closes; goldmark's streaming renderer
// interface does not fit that pattern.
type docWalker struct {
	source   []byte
	width    int
	renderer *lipgloss.Renderer

	out    strings.Builder
	inline strings.Builder

	bold   int
	italic int
	strike int

	listDepth   int
	itemCounter []int // per-depth ordered-list counters, 0 for bullets

	// pendingBullet prefixes the first line of the next flushed
	// paragraph, replacing the plain list indent.
	pendingBullet string
}

func (w *docWalker) style() lipgloss.Style {
	return w.renderer.NewStyle()
}

func (w *docWalker) faint() lipgloss.Style {
	return w.style().Foreground(lipgloss.Color("245"))
}

func (w *docWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindDocument:
		// Nothing to do at either boundary.

	case ast.KindHeading:
		if entering {
			w.inline.Reset()
		} else {
			w.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			w.inline.Reset()
		} else {
			w.flushParagraph()
		}

	case ast.KindFencedCodeBlock:
		if entering {
			w.writeCodeBlock(node.(*ast.FencedCodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindList:
		if entering {
			start := 0
			if list := node.(*ast.List); list.IsOrdered() {
				start = list.Start
			}
			w.listDepth++
			w.itemCounter = append(w.itemCounter, start)
		} else {
			w.listDepth--
			w.itemCounter = w.itemCounter[:len(w.itemCounter)-1]
			if w.listDepth == 0 {
				w.blankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			w.writeItemBullet()
		}

	case ast.KindThematicBreak:
		if entering {
			w.blankLine()
			w.out.WriteString(w.faint().Render(strings.Repeat("─", w.width)))
			w.out.WriteString("\n\n")
		}

	case ast.KindText:
		if entering {
			w.writeText(node.(*ast.Text))
		}

	case ast.KindString:
		if entering {
			w.inline.WriteString(w.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		if node.(*ast.Emphasis).Level >= 2 {
			w.bold += enterDelta(entering)
		} else {
			w.italic += enterDelta(entering)
		}

	case ast.KindCodeSpan:
		if entering {
			w.inline.WriteString(w.faint().Render(w.collectText(node)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			link := node.(*ast.Link)
			w.inline.WriteString(w.collectText(node))
			if len(link.Destination) > 0 {
				w.inline.WriteString(" " + w.faint().Render("("+string(link.Destination)+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			w.inline.WriteString(w.faint().Render(string(node.(*ast.AutoLink).URL(w.source))))
		}

	case extast.KindStrikethrough:
		w.strike += enterDelta(entering)

	case extast.KindTable:
		if entering {
			w.writeTable(node.(*extast.Table))
			return ast.WalkSkipChildren, nil
		}
	}

	return ast.WalkContinue, nil
}

func enterDelta(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

// styled applies the current emphasis state to a text fragment.
func (w *docWalker) styled(content string) string {
	style := w.style()
	if w.bold > 0 {
		style = style.Bold(true)
	}
	if w.italic > 0 {
		style = style.Italic(true)
	}
	if w.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (w *docWalker) writeText(node *ast.Text) {
	w.inline.WriteString(w.styled(string(node.Segment.Value(w.source))))
	if node.SoftLineBreak() {
		// Soft breaks become spaces so hard-wrapped source reflows
		// at the preview width.
		w.inline.WriteString(" ")
	}
	if node.HardLineBreak() {
		w.inline.WriteString("\n")
	}
}

func (w *docWalker) flushParagraph() {
	content := w.inline.String()
	w.inline.Reset()
	if content == "" {
		return
	}
	indent := strings.Repeat("  ", w.listDepth)
	first := indent
	if w.pendingBullet != "" {
		first = w.pendingBullet
		w.pendingBullet = ""
	}
	wrapped := ansi.Wrap(content, w.width-len(indent), " ,.;-+|")
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			w.out.WriteString(first + line + "\n")
		} else {
			w.out.WriteString(indent + line + "\n")
		}
	}
	if w.listDepth == 0 {
		w.blankLine()
	}
}

func (w *docWalker) leaveHeading(heading *ast.Heading) {
	content := ansi.Strip(w.inline.String())
	w.inline.Reset()
	if content == "" {
		return
	}
	style := w.style().Bold(true)
	if heading.Level <= 2 {
		style = style.Underline(true)
	}
	w.blankLine()
	w.out.WriteString(style.Render(content))
	w.out.WriteString("\n\n")
}

func (w *docWalker) writeItemBullet() {
	indent := strings.Repeat("  ", w.listDepth-1)
	counter := &w.itemCounter[len(w.itemCounter)-1]
	if *counter > 0 {
		w.pendingBullet = fmt.Sprintf("%s%d. ", indent, *counter)
		*counter++
	} else {
		w.pendingBullet = indent + "• "
	}
}

func (w *docWalker) writeCodeBlock(node *ast.FencedCodeBlock) {
	language := string(node.Language(w.source))
	var code strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(w.source))
	}

	w.blankLine()
	for _, line := range strings.Split(strings.TrimRight(w.highlight(code.String(), language), "\n"), "\n") {
		w.out.WriteString("    " + line + "\n")
	}
	w.blankLine()
}

// highlight syntax-colors code with chroma, falling back to faint
// plain text when the language is unknown or highlighting fails.
func (w *docWalker) highlight(code, language string) string {
	if language == "" || w.renderer.ColorProfile() == termenv.Ascii {
		return w.faint().Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return w.faint().Render(code)
	}
	return buffer.String()
}

// collectText gathers the plain text of a node's inline children.
func (w *docWalker) collectText(node ast.Node) string {
	var out strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			out.Write(typed.Segment.Value(w.source))
		case *ast.String:
			out.Write(typed.Value)
		default:
			out.WriteString(w.collectText(child))
		}
	}
	return out.String()
}

func (w *docWalker) writeTable(table *extast.Table) {
	var header []string
	var rows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case extast.KindTableHeader:
			header = w.collectRow(child)
		case extast.KindTableRow:
			rows = append(rows, w.collectRow(child))
		}
	}

	columns := len(header)
	if columns == 0 && len(rows) > 0 {
		columns = len(rows[0])
	}
	if columns == 0 {
		return
	}

	widths := make([]int, columns)
	measure := func(row []string) {
		for i, cell := range row {
			if i < columns && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}

	w.blankLine()
	if len(header) > 0 {
		w.out.WriteString(w.formatRow(header, widths, w.style().Bold(true)))
		var dividers []string
		for _, width := range widths {
			dividers = append(dividers, strings.Repeat("─", width))
		}
		w.out.WriteString(w.faint().Render(strings.Join(dividers, "  ")) + "\n")
	}
	for _, row := range rows {
		w.out.WriteString(w.formatRow(row, widths, w.style()))
	}
	w.blankLine()
}

func (w *docWalker) collectRow(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, strings.TrimSpace(w.collectText(cell)))
	}
	return cells
}

func (w *docWalker) formatRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padding := widths[i] - lipgloss.Width(cell)
		if padding < 0 {
			padding = 0
		}
		parts[i] = style.Render(cell) + strings.Repeat(" ", padding)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ") + "\n"
}

// blankLine ensures the output ends with exactly one blank line.
func (w *docWalker) blankLine() {
	current := w.out.String()
	if current == "" {
		return
	}
	for !strings.HasSuffix(w.out.String(), "\n\n") {
		w.out.WriteString("\n")
	}
}
