package blockscan

import (
	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/inline"
	"github.com/mdtree-go/mdtree/pstring"
)

// buildParagraph dispatches a run of raw content lines to the inline
// tokenizer, after resolving backslash escapes. Escape processing happens
// here rather than earlier in the block scan, so that the column math
// list/blockquote stripping relies on (indent widths, fence/marker
// detection) always sees the author's literal characters.
func (p *Parser) buildParagraph(lines []*pstring.PString) *document.Paragraph {
	span := document.Span{
		Start: lines[0].VirginPos(0),
		End:   lines[len(lines)-1].VirginPos(max(lines[len(lines)-1].Len()-1, 0)),
	}
	processed := make([]*pstring.PString, len(lines))
	for i, l := range lines {
		processed[i] = l.Clone().ProcessBackslashEscapes()
	}
	items := inline.Parse(processed, p.refs, p.reg)
	return &document.Paragraph{SpanV: span, Inlines: items}
}

// buildSetextHeading retrofits a just-closed paragraph into a heading when
// its lines are immediately followed by a setext underline; the
// underline's own line contributes only to the heading's span, not to its
// text.
func (p *Parser) buildSetextHeading(lines []*pstring.PString, level int, underline *pstring.PString) *document.Heading {
	para := p.buildParagraph(lines)
	span := para.SpanV
	if underline != nil {
		span.End = underline.VirginPos(max(underline.Len()-1, 0))
	}
	h := &document.Heading{SpanV: span, Level: level, Text: para}
	p.refs.RegisterHeading(h, inline.PlainText(para.Inlines))
	return h
}
