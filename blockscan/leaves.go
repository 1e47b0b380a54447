package blockscan

import (
	"strings"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/inline"
	"github.com/mdtree-go/mdtree/pstring"
)

func trimSpace(s string) string { return strings.TrimSpace(s) }

// indentWidth counts leading space columns. Tabs are already expanded to
// 4-column stops by the time a line reaches here, so this is a plain
// count, not a tab-aware walk.
func indentWidth(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

func isThematicBreak(trimmed string) bool {
	if len(trimmed) == 0 {
		return false
	}
	ch := rune(trimmed[0])
	if ch != '*' && ch != '-' && ch != '_' {
		return false
	}
	count := 0
	for _, r := range trimmed {
		if r == ' ' || r == '\t' {
			continue
		}
		if r != ch {
			return false
		}
		count++
	}
	return count >= 3
}

// setextLevel reports whether trimmed is a valid setext underline: a run
// of only `=` (level 1) or only `-` (level 2).
func setextLevel(trimmed string) (int, bool) {
	if trimmed == "" {
		return 0, false
	}
	allEq, allDash := true, true
	for _, r := range trimmed {
		if r != '=' {
			allEq = false
		}
		if r != '-' {
			allDash = false
		}
	}
	if allEq {
		return 1, true
	}
	if allDash {
		return 2, true
	}
	return 0, false
}

func isATXLine(s string, indent int) bool {
	i := indent
	n := len(s)
	hashes := 0
	for i < n && s[i] == '#' && hashes < 6 {
		i++
		hashes++
	}
	if hashes == 0 {
		return false
	}
	return i == n || s[i] == ' ' || s[i] == '\t'
}

// atxHeading assumes isATXLine already matched the current line.
func (p *Parser) atxHeading(line *pstring.PString) *document.Heading {
	n := line.Len()
	runes := []rune(line.AsString())
	i := indentWidth(line.AsString())
	level := 0
	for i < n && runes[i] == '#' && level < 6 {
		i++
		level++
	}
	start := i
	for start < n && (runes[start] == ' ' || runes[start] == '\t') {
		start++
	}
	end := n
	for end > start && (runes[end-1] == ' ' || runes[end-1] == '\t') {
		end--
	}
	hend := end
	for hend > start && runes[hend-1] == '#' {
		hend--
	}
	if hend == start || (hend > start && (runes[hend-1] == ' ' || runes[hend-1] == '\t')) {
		end = hend
		for end > start && (runes[end-1] == ' ' || runes[end-1] == '\t') {
			end--
		}
	}

	span := document.Span{Start: line.VirginPos(0), End: line.VirginPos(n - 1)}
	h := &document.Heading{SpanV: span, Level: level}
	if end <= start {
		h.Text = &document.Paragraph{SpanV: span}
		p.refs.RegisterHeading(h, "")
		return h
	}
	content := line.Slice(start, end)
	processed := content.Clone().ProcessBackslashEscapes()
	items := inline.Parse([]*pstring.PString{processed}, p.refs, p.reg)
	para := &document.Paragraph{
		SpanV:   document.Span{Start: content.VirginPos(0), End: content.VirginPos(content.Len() - 1)},
		Inlines: items,
	}
	h.Text = para
	p.refs.RegisterHeading(h, inline.PlainText(items))
	return h
}

func thematicBreak(line *pstring.PString) *document.HorizontalLine {
	n := line.Len()
	return &document.HorizontalLine{
		SpanV: document.Span{Start: line.VirginPos(0), End: line.VirginPos(n - 1)},
	}
}
