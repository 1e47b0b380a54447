package blockscan

import (
	"strings"
	"unicode"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/pstring"
)

// isHTMLBlockStartLine is a deliberately loose recognizer for the opening
// line of an HTML block: CommonMark distinguishes seven numbered kinds of
// HTML block with different termination rules; this carries the four
// that have an unambiguous closing token (comment, processing instruction,
// CDATA, and a `<!` declaration closed by `>`) plus a single blanket
// "looks like a tag" fallback for the rest, ended by a blank line, rather
// than enumerating every block-level tag name.
func isHTMLBlockStartLine(s string, indent int) bool {
	runes := []rune(s)
	if indent >= len(runes) || runes[indent] != '<' {
		return false
	}
	if indent+1 >= len(runes) {
		return false
	}
	next := runes[indent+1]
	return next == '!' || next == '?' || next == '/' || unicode.IsLetter(next)
}

func (p *Parser) htmlBlock(ps *pstream, first *pstring.PString) *document.RawHTML {
	s := first.AsString()
	trimmed := trimSpace(s)

	var lines []string
	lines = append(lines, s)
	end := first

	switch {
	case strings.HasPrefix(trimmed, "<!--"):
		end = consumeUntilMarker(ps, &lines, s, "-->", end)
	case strings.HasPrefix(trimmed, "<?"):
		end = consumeUntilMarker(ps, &lines, s, "?>", end)
	case strings.HasPrefix(trimmed, "<![CDATA["):
		end = consumeUntilMarker(ps, &lines, s, "]]>", end)
	case len(trimmed) > 1 && trimmed[1] == '!':
		end = consumeUntilMarker(ps, &lines, s, ">", end)
	default:
		for {
			line, ok := ps.Peek()
			if !ok {
				break
			}
			if trimSpace(line.AsString()) == "" {
				break
			}
			ps.Next()
			lines = append(lines, line.AsString())
			end = line
		}
	}

	return &document.RawHTML{
		SpanV: document.Span{Start: first.VirginPos(0), End: end.VirginPos(max(end.Len()-1, 0))},
		Text:  strings.Join(lines, "\n"),
	}
}

// consumeUntilMarker appends lines (already seeded with the opening line's
// text in *lines) until one contains marker or input ends.
func consumeUntilMarker(ps *pstream, lines *[]string, firstText, marker string, end *pstring.PString) *pstring.PString {
	if strings.Contains(firstText, marker) {
		return end
	}
	for {
		line, ok := ps.Next()
		if !ok {
			return end
		}
		*lines = append(*lines, line.AsString())
		end = line
		if strings.Contains(line.AsString(), marker) {
			return end
		}
	}
}
