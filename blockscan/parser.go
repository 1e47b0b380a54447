// Package blockscan is the block-level scanner: a single forward pass over
// a document's lines that classifies each line into a block kind (heading,
// list, blockquote, code, table, paragraph, ...), recursing into
// containers by stripping their prefix and handing the remainder to a
// fresh descent, and dispatching paragraph-like content to the inline
// tokenizer once a block's extent is known.
package blockscan

import (
	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/linesource"
	"github.com/mdtree-go/mdtree/plugin"
	"github.com/mdtree-go/mdtree/pstring"
	"github.com/mdtree-go/mdtree/refres"
)

// Parser holds the state shared across one document's recursive descent:
// the reference collector every link/footnote/heading definition feeds,
// and the plugin registry the inline phase consults.
type Parser struct {
	refs *refres.Collector
	reg  *plugin.Registry
}

// New returns a Parser that resolves references against refs and consults
// reg for inline plugin behavior.
func New(refs *refres.Collector, reg *plugin.Registry) *Parser {
	return &Parser{refs: refs, reg: reg}
}

// Parse converts src's raw lines into position-preserving strings (tabs
// expanded to 4-column stops, matching CommonMark) and runs the block
// scan over them.
func (p *Parser) Parse(src *linesource.Source) []document.Item {
	var lines []*pstring.PString
	for {
		l, ok := src.Next()
		if !ok {
			break
		}
		lines = append(lines, pstring.NewLine(l.Number, l.Text, 0).ExpandTabs(4))
	}
	return p.parseBlocks(newPStream(lines))
}

// pstream is a forward-only stream of PStrings with push-back, mirroring
// linesource.Source's stack-based pushback idiom for a richer element
// type: recursing into a container (blockquote, list item) strips that
// container's prefix with PString.Slice, which keeps every remaining
// character's virgin position intact, so the recursive descent never
// needs a separate column-offset side table.
type pstream struct {
	lines  []*pstring.PString
	pos    int
	pushed []*pstring.PString
}

func newPStream(lines []*pstring.PString) *pstream {
	return &pstream{lines: lines}
}

func (s *pstream) Next() (*pstring.PString, bool) {
	if n := len(s.pushed); n > 0 {
		l := s.pushed[n-1]
		s.pushed = s.pushed[:n-1]
		return l, true
	}
	if s.pos >= len(s.lines) {
		return nil, false
	}
	l := s.lines[s.pos]
	s.pos++
	return l, true
}

func (s *pstream) Push(l *pstring.PString) {
	s.pushed = append(s.pushed, l)
}

func (s *pstream) Peek() (*pstring.PString, bool) {
	l, ok := s.Next()
	if ok {
		s.Push(l)
	}
	return l, ok
}

// parseBlocks is the main classification loop. It always runs over a
// stream whose lines have already had any enclosing container's prefix
// stripped, so indented-code detection (4+ columns) and everything else
// below is always relative to column 0 of the current stream.
func (p *Parser) parseBlocks(ps *pstream) []document.Item {
	var items []document.Item
	var paraLines []*pstring.PString

	flushPara := func() {
		if len(paraLines) == 0 {
			return
		}
		items = append(items, p.buildParagraph(paraLines))
		paraLines = nil
	}

	for {
		line, ok := ps.Peek()
		if !ok {
			break
		}
		s := line.AsString()
		trimmed := trimSpace(s)

		if trimmed == "" {
			ps.Next()
			flushPara()
			continue
		}

		if len(paraLines) > 0 {
			if level, ok := setextLevel(trimmed); ok {
				underline, _ := ps.Next()
				items = append(items, p.buildSetextHeading(paraLines, level, underline))
				paraLines = nil
				continue
			}
		}

		indent := indentWidth(s)

		if indent < 4 {
			switch {
			case isThematicBreak(trimmed):
				ps.Next()
				flushPara()
				items = append(items, thematicBreak(line))
				continue
			case isATXLine(s, indent):
				ps.Next()
				flushPara()
				items = append(items, p.atxHeading(line))
				continue
			case isFenceOpenLine(s, indent):
				ps.Next()
				flushPara()
				items = append(items, p.fencedBlock(ps, line, indent))
				continue
			case isBlockquoteStart(s, indent):
				flushPara()
				items = append(items, p.blockquote(ps))
				continue
			case isListStartLine(s, indent):
				flushPara()
				items = append(items, p.list(ps))
				continue
			case isFootnoteDefStart(s, indent):
				flushPara()
				items = append(items, p.footnoteDef(ps))
				continue
			case p.isLinkDefStart(s, indent):
				if p.tryLinkDef(ps) {
					flushPara()
					continue
				}
			case isHTMLBlockStartLine(s, indent):
				ps.Next()
				flushPara()
				items = append(items, p.htmlBlock(ps, line))
				continue
			case len(paraLines) == 0 && isTableStart(ps, s):
				ps.Next()
				items = append(items, p.table(ps, line))
				continue
			}
		}

		if indent >= 4 && len(paraLines) == 0 {
			ps.Next()
			items = append(items, p.indentedCode(ps, line))
			continue
		}

		ps.Next()
		paraLines = append(paraLines, line)
	}

	flushPara()
	return items
}
