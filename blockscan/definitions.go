package blockscan

import (
	"strings"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/pstring"
)

func (p *Parser) isLinkDefStart(s string, indent int) bool {
	runes := []rune(s)
	if indent >= len(runes) || runes[indent] != '[' {
		return false
	}
	if indent+1 < len(runes) && runes[indent+1] == '^' {
		return false // footnote definition, not a link definition
	}
	j := indent + 1
	for j < len(runes) && runes[j] != ']' {
		if runes[j] == '\\' && j+1 < len(runes) {
			j += 2
			continue
		}
		j++
	}
	return j+1 < len(runes) && runes[j+1] == ':'
}

// tryLinkDef consumes a `[label]: destination "title"` definition (with an
// optional title carried onto the next line) and registers it with the
// reference collector. Once isLinkDefStart has matched, this always
// commits to consuming the line — a malformed destination just registers
// an empty URL rather than leaving the scanner's position ambiguous.
func (p *Parser) tryLinkDef(ps *pstream) bool {
	line, ok := ps.Next()
	if !ok {
		return false
	}
	s := []rune(line.AsString())
	i := 0
	for i < len(s) && s[i] != '[' {
		i++
	}
	i++
	labelStart := i
	for i < len(s) && s[i] != ']' {
		if s[i] == '\\' && i+1 < len(s) {
			i += 2
			continue
		}
		i++
	}
	label := string(s[labelStart:min(i, len(s))])
	i += 2 // skip "]:"
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}

	var url string
	if i < len(s) && s[i] == '<' {
		i++
		start := i
		for i < len(s) && s[i] != '>' {
			i++
		}
		url = string(s[start:min(i, len(s))])
		if i < len(s) {
			i++
		}
	} else {
		start := i
		for i < len(s) && s[i] != ' ' && s[i] != '\t' {
			i++
		}
		url = string(s[start:i])
	}
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}

	var title string
	if i < len(s) {
		if t, ok := parseTitle(s[i:]); ok {
			title = t
		}
	} else if next, ok := ps.Peek(); ok {
		if t, ok := parseTitle([]rune(next.AsString())); ok {
			title = t
			ps.Next()
		}
	}

	span := document.Span{Start: line.VirginPos(0), End: line.VirginPos(max(line.Len()-1, 0))}
	p.refs.DefineLink(label, url, title, span)
	return true
}

// parseTitle recognizes a `"..."`, `'...'` or `(...)` wrapped title,
// trimming surrounding whitespace first.
func parseTitle(runes []rune) (string, bool) {
	str := strings.TrimSpace(string(runes))
	rr := []rune(str)
	if len(rr) < 2 {
		return "", false
	}
	var closeCh rune
	switch rr[0] {
	case '"':
		closeCh = '"'
	case '\'':
		closeCh = '\''
	case '(':
		closeCh = ')'
	default:
		return "", false
	}
	if rr[len(rr)-1] != closeCh {
		return "", false
	}
	return string(rr[1 : len(rr)-1]), true
}

func isFootnoteDefStart(s string, indent int) bool {
	runes := []rune(s)
	if indent+1 >= len(runes) || runes[indent] != '[' || runes[indent+1] != '^' {
		return false
	}
	j := indent + 2
	for j < len(runes) && runes[j] != ']' {
		j++
	}
	return j > indent+2 && j+1 < len(runes) && runes[j+1] == ':'
}

// footnoteDef consumes a `[^id]: ...` definition. Continuation lines
// (including further paragraphs) belong to the body as long as they carry
// at least 4 columns of indent, matching a list item's continuation rule;
// unlike a list item, a footnote definition does not accept a lazy
// (unindented) paragraph continuation, a documented simplification.
func (p *Parser) footnoteDef(ps *pstream) *document.Footnote {
	first, _ := ps.Next()
	runes := []rune(first.AsString())
	indent := indentWidth(first.AsString())

	j := indent + 2
	idStart := j
	for j < len(runes) && runes[j] != ']' {
		j++
	}
	id := string(runes[idStart:j])
	j += 2
	for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
		j++
	}

	const contentCol = 4
	var inner []*pstring.PString
	if j < first.Len() {
		inner = append(inner, first.Slice(j, first.Len()))
	}
	start := first.VirginPos(indent)
	end := first.VirginPos(max(first.Len()-1, 0))

	for {
		line, ok := ps.Peek()
		if !ok {
			break
		}
		s2 := line.AsString()
		if trimSpace(s2) == "" {
			ps.Next()
			nxt, ok2 := ps.Peek()
			if ok2 && indentWidth(nxt.AsString()) >= contentCol {
				inner = append(inner, pstring.NewLine(line.Line(), "", 1))
				end = line.VirginPos(max(line.Len()-1, 0))
				continue
			}
			ps.Push(line)
			break
		}
		if indentWidth(s2) >= contentCol {
			ps.Next()
			inner = append(inner, line.Slice(contentCol, line.Len()))
			end = line.VirginPos(max(line.Len()-1, 0))
			continue
		}
		break
	}

	body := p.parseBlocks(newPStream(inner))
	fn := &document.Footnote{SpanV: document.Span{Start: start, End: end}, ID: id, Body: body}
	p.refs.DefineFootnote(id, fn)
	return fn
}
