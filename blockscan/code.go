package blockscan

import (
	"strings"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/pstring"
)

func isFenceOpenLine(s string, indent int) bool {
	_, n, _, ok := parseFence(s, indent)
	return ok && n >= 3
}

// parseFence reads a fence marker starting at indent: the fence rune, its
// run length, and the trimmed info string following it. A backtick fence's
// info string may not itself contain a backtick.
func parseFence(s string, indent int) (ch rune, length int, info string, ok bool) {
	runes := []rune(s)
	if indent >= len(runes) {
		return 0, 0, "", false
	}
	ch = runes[indent]
	if ch != '`' && ch != '~' {
		return 0, 0, "", false
	}
	i := indent
	for i < len(runes) && runes[i] == ch {
		i++
	}
	length = i - indent
	if length < 3 {
		return 0, 0, "", false
	}
	info = strings.TrimSpace(string(runes[i:]))
	if ch == '`' && strings.ContainsRune(info, '`') {
		return 0, 0, "", false
	}
	return ch, length, info, true
}

// fencedBlock consumes lines up to (and including) a matching closing
// fence, or to end-of-input. A ```math info string produces a block Math
// item instead of a Code item; anything else produces Code.
func (p *Parser) fencedBlock(ps *pstream, open *pstring.PString, indent int) document.Item {
	ch, openLen, info, _ := parseFence(open.AsString(), indent)
	openSpan := document.Span{Start: open.VirginPos(indent), End: open.VirginPos(open.Len() - 1)}
	syntaxSpan := document.Span{}
	if info != "" {
		idx := strings.Index(open.AsString(), info)
		if idx >= 0 {
			syntaxSpan = document.Span{Start: open.VirginPos(idx), End: open.VirginPos(idx + len([]rune(info)) - 1)}
		}
	}

	var bodyLines []string
	var closeLine *pstring.PString
	for {
		line, ok := ps.Next()
		if !ok {
			break
		}
		s := line.AsString()
		closeIndent := indentWidth(s)
		if closeIndent < 4 {
			if cch, clen, cinfo, cok := parseFence(s, closeIndent); cok && cch == ch && clen >= openLen && cinfo == "" {
				closeLine = line
				break
			}
		}
		bodyLines = append(bodyLines, stripFenceIndent(s, indent))
	}

	text := strings.Join(bodyLines, "\n")
	if len(bodyLines) > 0 {
		text += "\n"
	}

	endPos := open.VirginPos(open.Len() - 1)
	closeSpan := document.Span{}
	if closeLine != nil {
		endPos = closeLine.VirginPos(closeLine.Len() - 1)
		closeSpan = document.Span{Start: closeLine.VirginPos(indentWidth(closeLine.AsString())), End: endPos}
	}

	span := document.Span{Start: open.VirginPos(0), End: endPos}

	if strings.EqualFold(info, "math") {
		return &document.Math{
			SpanV:      span,
			IsBlock:    true,
			Expr:       text,
			OpenDelim:  openSpan,
			CloseDelim: closeSpan,
			SyntaxPos:  syntaxSpan,
		}
	}
	return &document.Code{
		SpanV:      span,
		IsBlock:    true,
		Text:       text,
		Syntax:     info,
		OpenDelim:  openSpan,
		CloseDelim: closeSpan,
		SyntaxPos:  syntaxSpan,
	}
}

// stripFenceIndent removes up to indent columns of leading whitespace from
// a fenced code body line, matching the fence marker's own indentation.
func stripFenceIndent(s string, indent int) string {
	i := 0
	for i < len(s) && i < indent && s[i] == ' ' {
		i++
	}
	return s[i:]
}

// indentedCode consumes this and any further 4+-space-indented lines
// (blank lines interleaved are allowed as long as more indented lines
// follow) into a single Code block, stripping exactly 4 columns from
// each.
func (p *Parser) indentedCode(ps *pstream, first *pstring.PString) *document.Code {
	var bodyLines []string
	start := first.VirginPos(4)
	last := first
	bodyLines = append(bodyLines, string([]rune(first.AsString())[4:]))

	for {
		line, ok := ps.Peek()
		if !ok {
			break
		}
		s := line.AsString()
		if trimSpace(s) == "" {
			// lookahead: keep only if a further indented line follows
			ps.Next()
			blankRunes := []rune(s)
			blankBody := ""
			if len(blankRunes) > 4 {
				blankBody = string(blankRunes[4:])
			}
			next, ok2 := ps.Peek()
			if ok2 && indentWidth(next.AsString()) >= 4 {
				bodyLines = append(bodyLines, blankBody)
				continue
			}
			ps.Push(line)
			break
		}
		if indentWidth(s) < 4 {
			break
		}
		ps.Next()
		bodyLines = append(bodyLines, string([]rune(s)[4:]))
		last = line
	}

	for len(bodyLines) > 0 && trimSpace(bodyLines[len(bodyLines)-1]) == "" {
		bodyLines = bodyLines[:len(bodyLines)-1]
	}

	text := strings.Join(bodyLines, "\n")
	if len(bodyLines) > 0 {
		text += "\n"
	}
	return &document.Code{
		SpanV:   document.Span{Start: start, End: last.VirginPos(last.Len() - 1)},
		IsBlock: true,
		Text:    text,
	}
}
