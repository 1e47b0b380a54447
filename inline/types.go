// Package inline implements the second parser phase: tokenizing a
// paragraph-like block's content into emphasis/code/link/image/math/break
// tokens and resolving the delimiter-run ambiguity (CommonMark's emphasis
// algorithm, extended with strikethrough, math and user-defined emphasis
// templates) and reference-style links.
package inline

import "github.com/mdtree-go/mdtree/document"

// nodeKind discriminates the entries of the flat token stream built by the
// first scan, before bracket and delimiter resolution collapse it down to
// resolved document.Items.
type nodeKind int

const (
	nodeText nodeKind = iota
	nodeDelim
	nodeBracketOpen
	nodeBracketClose
	nodeHardBreak
	nodeLeaf
)

// node is one entry of the flat pre-resolution token stream.
type node struct {
	kind nodeKind

	// startIdx/endIdx locate this token in the shared runes/positions
	// arrays built by flattenLines; endIdx is exclusive. Used by bracket
	// resolution to look ahead at the raw characters following a `]` for
	// an inline `(url "title")` or reference `[label]`.
	startIdx, endIdx int

	// nodeText
	text []rune
	pos  []document.Position // one per rune in text

	// nodeDelim
	marker   rune
	count    int
	canOpen  bool
	canClose bool
	active   bool
	start    document.Position
	end      document.Position

	// nodeBracketOpen / nodeBracketClose
	isImage bool

	// nodeHardBreak
	breakPos document.Position

	// nodeLeaf: an already-fully-resolved item (code span, autolink,
	// raw HTML span, math span) that delimiter resolution must treat as
	// opaque and pass through untouched.
	leaf document.Item
}

func textNode(runes []rune, positions []document.Position) node {
	return node{kind: nodeText, text: runes, pos: positions}
}
