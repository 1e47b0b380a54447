package inline

import (
	"strings"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/plugin"
)

// toItems materializes a fully-resolved node stream (no remaining brackets
// that matched, no remaining delimiter runs that matched) into the final
// document.Item sequence. Anything left over at this point — a delimiter
// run nobody claimed, a `[` or `]` that never found a partner — is literal
// text, marked TextWithoutFormat so a renderer can tell it apart from text
// the author actually wrote unstyled.
func toItems(nodes []node, positions []document.Position, reg *plugin.Registry) []document.Item {
	items := make([]document.Item, 0, len(nodes))
	for _, nd := range nodes {
		switch nd.kind {
		case nodeLeaf:
			items = append(items, nd.leaf)
		case nodeText:
			if len(nd.text) == 0 {
				continue
			}
			val := string(nd.text)
			if reg != nil {
				val = reg.Apply(val)
			}
			items = append(items, &document.Text{
				SpanV: document.Span{Start: nd.pos[0], End: nd.pos[len(nd.pos)-1]},
				Value: val,
				Opts:  document.TextNormal,
			})
		case nodeDelim:
			if nd.count <= 0 {
				continue
			}
			items = append(items, literalDelimText(nd))
		case nodeBracketOpen, nodeBracketClose:
			items = append(items, literalBracketText(nd, positions))
		case nodeHardBreak:
			items = append(items, &document.LineBreak{
				SpanV: document.Span{Start: nd.breakPos, End: nd.breakPos},
				Hard:  true,
			})
		}
	}
	return items
}

func literalDelimText(nd node) *document.Text {
	return &document.Text{
		SpanV: document.Span{Start: nd.start, End: nd.end},
		Value: strings.Repeat(string(nd.marker), nd.count),
		Opts:  document.TextWithoutFormat,
	}
}

func literalBracketText(nd node, positions []document.Position) *document.Text {
	val := "]"
	if nd.kind == nodeBracketOpen {
		if nd.isImage {
			val = "!["
		} else {
			val = "["
		}
	}
	return &document.Text{
		SpanV: document.Span{Start: positions[nd.startIdx], End: positions[nd.endIdx-1]},
		Value: val,
		Opts:  document.TextWithoutFormat,
	}
}

// applyStyleToItems ORs style into every Text/Link/Image leaf directly
// within items, recording the consumed delimiter positions. Emphasis has
// no generic "styled group" container in the item model — Style is a
// bitmask carried by the leaf itself — so a style that spans mixed content
// (a code span sitting next to plain text inside one `*...*` run, say)
// lands on the Text/Link/Image leaves in that span and leaves the rest
// (Code, Math, RawHTML, FootnoteRef) unstyled.
func applyStyleToItems(items []document.Item, style document.Style, openPos, closePos document.Position) {
	for _, it := range items {
		switch v := it.(type) {
		case *document.Text:
			v.Style |= style
			v.OpenDelims = append(v.OpenDelims, openPos)
			v.CloseDelims = append(v.CloseDelims, closePos)
		case *document.Link:
			v.Style |= style
			v.OpenDelims = append(v.OpenDelims, openPos)
			v.CloseDelims = append(v.CloseDelims, closePos)
		case *document.Image:
			v.Style |= style
			v.OpenDelims = append(v.OpenDelims, openPos)
			v.CloseDelims = append(v.CloseDelims, closePos)
		}
	}
}

// PlainText flattens a resolved inline item sequence down to its plain
// text content, ignoring style/link/image wrapping — used to derive a
// heading's slug text and a styled link's plain display text.
func PlainText(items []document.Item) string {
	return plainTextOf(items)
}

func plainTextOf(items []document.Item) string {
	var sb strings.Builder
	for _, it := range items {
		switch v := it.(type) {
		case *document.Text:
			sb.WriteString(v.Value)
		case *document.Link:
			sb.WriteString(v.Text)
		case *document.Image:
			sb.WriteString(v.Text)
		case *document.Code:
			sb.WriteString(v.Text)
		case *document.Math:
			sb.WriteString(v.Expr)
		}
	}
	return sb.String()
}
