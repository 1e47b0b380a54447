package inline

import (
	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/plugin"
)

// matchCount decides how many marker characters a closer/opener pair
// actually consumes. `*`/`_` follow CommonMark: a run of two or more on
// both sides makes strong emphasis (consumes 2), otherwise plain emphasis
// (consumes 1). `~~` strikethrough requires two on both sides or it isn't
// a match at all. A plugin marker always consumes exactly one, since
// EmphasisTemplate defines a single style bit, not a bold/italic pair.
func matchCount(marker rune, openCount, closeCount int, reg *plugin.Registry) int {
	switch marker {
	case '*', '_':
		if openCount >= 2 && closeCount >= 2 {
			return 2
		}
		return 1
	case '~':
		if openCount >= 2 && closeCount >= 2 {
			return 2
		}
		return 0
	default:
		if reg != nil && reg.HasMarker(marker) {
			return 1
		}
		return 0
	}
}

func styleForMarker(marker rune, useCount int, reg *plugin.Registry) (document.Style, bool) {
	switch marker {
	case '*', '_':
		if useCount == 2 {
			return document.StyleBold, true
		}
		return document.StyleItalic, true
	case '~':
		return document.StyleStrike, true
	default:
		if reg != nil {
			return reg.StyleFor(marker)
		}
		return 0, false
	}
}

type openMark struct {
	outIdx int
	marker rune
}

// resolveEmphasis runs CommonMark's delimiter-stack algorithm over a flat
// node stream that's already free of link/image brackets (resolveBrackets
// runs first). Closers are matched against the nearest still-active opener
// of the same marker; a run can satisfy several matches in turn (e.g.
// `***x***` closes as strong, then what's left of the run closes again as
// plain emphasis around the now-styled result), which is why a styled
// match is spliced back into the stream as an ordinary leaf rather than
// returned directly.
func resolveEmphasis(nodes []node, positions []document.Position, reg *plugin.Registry) []document.Item {
	var out []node
	var stack []openMark

	for _, nd := range nodes {
		if nd.kind != nodeDelim {
			out = append(out, nd)
			continue
		}
		cur := nd
		for cur.count > 0 && cur.canClose {
			matchIdx := -1
			for s := len(stack) - 1; s >= 0; s-- {
				om := stack[s]
				if om.marker != cur.marker {
					continue
				}
				if out[om.outIdx].count <= 0 {
					continue
				}
				matchIdx = s
				break
			}
			if matchIdx < 0 {
				break
			}

			om := stack[matchIdx]
			opener := &out[om.outIdx]
			useCount := matchCount(cur.marker, opener.count, cur.count, reg)
			if useCount <= 0 {
				stack = stack[:matchIdx]
				continue
			}
			style, ok := styleForMarker(cur.marker, useCount, reg)
			if !ok {
				stack = stack[:matchIdx]
				continue
			}

			openConsumedStart := opener.endIdx - useCount
			closeConsumedEnd := cur.startIdx + useCount
			openPos := positions[openConsumedStart]
			closePos := positions[closeConsumedEnd-1]

			content := append([]node(nil), out[om.outIdx+1:]...)
			innerItems := toItems(content, positions, reg)
			applyStyleToItems(innerItems, style, openPos, closePos)

			opener.count -= useCount
			opener.endIdx -= useCount
			cur.count -= useCount
			cur.startIdx += useCount

			out = out[:om.outIdx+1]
			for _, it := range innerItems {
				out = append(out, node{kind: nodeLeaf, leaf: it})
			}

			if opener.count <= 0 {
				stack = stack[:matchIdx]
			} else {
				stack = stack[:matchIdx+1]
			}
		}
		if cur.count > 0 {
			out = append(out, cur)
			if cur.canOpen {
				stack = append(stack, openMark{outIdx: len(out) - 1, marker: cur.marker})
			}
		}
	}

	return toItems(out, positions, reg)
}
