package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rivo/uniseg"

	"github.com/mdtree-go/mdtree/document"
)

// colorFor assigns each item kind a fixed ANSI color, cycling through a
// small palette so sibling kinds are visually distinct without needing a
// lookup table the size of the Kind enum.
var kindPalette = []string{"36", "33", "32", "35", "34", "31"}

func colorFor(k document.Kind) string {
	return kindPalette[int(k)%len(kindPalette)]
}

// dumpTree writes items as an indented, depth-first tree to w. When color
// is true each line's kind label is wrapped in its ANSI color; gutter is
// padded to the widest kind label actually present so the " @line:col"
// position column lines up regardless of which kinds appear, measured in
// display cells (not bytes) via uniseg so multi-byte kind names — none of
// the built-in ones are, but a plugin-registered document.UserDefined kind
// could supply one — still align.
func dumpTree(w io.Writer, items []document.Item, color bool) {
	gutter := 0
	document.Walk(items, func(it, _ document.Item) {
		if n := uniseg.StringWidth(it.Kind().String()); n > gutter {
			gutter = n
		}
	})
	for _, it := range items {
		dumpOne(w, it, 0, gutter, color)
	}
}

func dumpOne(w io.Writer, it document.Item, depth, gutter int, color bool) {
	indent := strings.Repeat("  ", depth)
	label := it.Kind().String()
	pad := strings.Repeat(" ", gutter-uniseg.StringWidth(label))
	if color {
		label = fmt.Sprintf("\x1b[%sm%s\x1b[0m", colorFor(it.Kind()), label)
	}
	if a, ok := it.(*document.Anchor); ok {
		fmt.Fprintf(w, "%s%s%s  %s\n", indent, label, pad, a.Path)
		return
	}
	if _, ok := it.(*document.PageBreak); ok {
		fmt.Fprintf(w, "%s%s%s\n", indent, label, pad)
		return
	}

	sp := it.Span()
	fmt.Fprintf(w, "%s%s%s  @%d:%d-%d:%d\n", indent, label, pad, sp.Start.Line, sp.Start.Col, sp.End.Line, sp.End.Col)

	for _, c := range childrenOf(it) {
		dumpOne(w, c, depth+1, gutter, color)
	}
}

// childrenOf mirrors document.Walk's own descent rules, just returning the
// direct children instead of visiting them, so the tree dump can recurse
// one level at a time without re-walking already-visited subtrees.
func childrenOf(it document.Item) []document.Item {
	switch n := it.(type) {
	case *document.Heading:
		if n.Text != nil {
			return []document.Item{n.Text}
		}
	case *document.Paragraph:
		return n.Inlines
	case *document.Blockquote:
		return n.Children
	case *document.List:
		out := make([]document.Item, len(n.Items))
		for i, li := range n.Items {
			out[i] = li
		}
		return out
	case *document.ListItem:
		return n.Children
	case *document.Table:
		out := make([]document.Item, len(n.Rows))
		for i, r := range n.Rows {
			out[i] = r
		}
		return out
	case *document.TableRow:
		out := make([]document.Item, len(n.Cells))
		for i, c := range n.Cells {
			out[i] = c
		}
		return out
	case *document.TableCell:
		return n.Inlines
	case *document.Link:
		if n.Content != nil {
			return []document.Item{n.Content}
		}
	case *document.Image:
		if n.Content != nil {
			return []document.Item{n.Content}
		}
	case *document.Footnote:
		return n.Body
	}
	return nil
}

func wantColor() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
