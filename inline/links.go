package inline

import (
	"strings"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/plugin"
	"github.com/mdtree-go/mdtree/refres"
)

// resolveInline runs the two interdependent resolution passes over a
// tokenized node stream: brackets first (link/image/footnote-ref), then
// delimiter runs (emphasis/strikethrough/plugin styles) over whatever
// brackets left behind. CommonMark requires this order because emphasis
// markers inside an unresolved `[...]` span only get a chance to mean
// anything once it's decided whether the brackets form a link at all.
func resolveInline(nodes []node, runes []rune, positions []document.Position, refs *refres.Collector, reg *plugin.Registry) []document.Item {
	b := resolveBrackets(nodes, runes, positions, refs, reg)
	return resolveEmphasis(b, positions, reg)
}

// resolveBrackets implements CommonMark's bracket-matching algorithm: walk
// left to right, push `[`/`![` openers onto a stack, and on each `]` search
// the stack (nearest first) for an opener that's still active. A match
// that resolves to a real link deactivates every earlier opener still on
// the stack, since link text can't itself contain a link; an opener that's
// never matched, or whose match fails to resolve to a link/image/footnote,
// is left in place to fall back to literal `[`/`]` text later.
func resolveBrackets(nodes []node, runes []rune, positions []document.Position, refs *refres.Collector, reg *plugin.Registry) []node {
	result := append([]node(nil), nodes...)
	var stack []int

	i := 0
	for i < len(result) {
		switch result[i].kind {
		case nodeBracketOpen:
			stack = append(stack, i)
			i++
		case nodeBracketClose:
			k := -1
			for s := len(stack) - 1; s >= 0; s-- {
				if result[stack[s]].active {
					k = s
					break
				}
			}
			if k < 0 {
				i++
				continue
			}
			oidx := stack[k]
			isImage := result[oidx].isImage

			item, consumedEnd := tryResolveBracket(result, oidx, i, runes, positions, refs, reg, isImage)
			if item == nil {
				stack = stack[:k]
				i++
				continue
			}

			tail := append([]node(nil), result[i+1:]...)
			tail = trimConsumed(tail, consumedEnd)

			leafSpan := node{kind: nodeLeaf, leaf: item, startIdx: result[oidx].startIdx, endIdx: consumedEnd}
			newResult := append([]node(nil), result[:oidx]...)
			newResult = append(newResult, leafSpan)
			newResult = append(newResult, tail...)
			result = newResult

			if !isImage {
				for _, s := range stack[:k] {
					result[s].active = false
				}
			}
			stack = stack[:k]
			i = oidx + 1
		default:
			i++
		}
	}
	return result
}

// tryResolveBracket attempts, in order, a footnote reference, an inline
// `(url "title")` destination, a full `[label]` reference, and a shortcut
// reference using the bracketed text itself as the label. It returns the
// resolved item and the rune index just past whatever extra syntax it
// consumed, or (nil, 0) if none of the forms apply.
func tryResolveBracket(result []node, oidx, cidx int, runes []rune, positions []document.Position, refs *refres.Collector, reg *plugin.Registry, isImage bool) (document.Item, int) {
	openEnd := result[oidx].endIdx
	closeStart := result[cidx].startIdx
	closeEnd := result[cidx].endIdx
	span := func(end int) document.Span {
		return document.Span{Start: positions[result[oidx].startIdx], End: positions[end-1]}
	}

	if !isImage && openEnd < len(runes) && runes[openEnd] == '^' {
		id := string(runes[openEnd+1 : closeStart])
		if id != "" {
			if fn, ok := refs.ResolveFootnote(id); ok {
				return &document.FootnoteRef{SpanV: span(closeEnd), ID: id, Target: fn}, closeEnd
			}
			// Not a footnote after all; `[^id]` is also valid link-reference
			// label syntax, so fall back to an ordinary reference lookup
			// before giving up, flagging the oddity on the resulting Link.
			if def, ok := refs.ResolveLink("^" + id); ok {
				return &document.Link{
					SpanV: span(closeEnd), Text: "^" + id,
					URL: def.URL, Title: def.Title, FootnoteStyle: true,
				}, closeEnd
			}
			return nil, 0
		}
	}

	if url, title, end, ok := parseLinkTail(runes, closeEnd); ok {
		inner := resolveInline(result[oidx+1:cidx], runes, positions, refs, reg)
		return buildLink(inner, url, title, isImage, span(end)), end
	}

	if label, end, ok := parseReferenceLabel(runes, closeEnd); ok {
		lbl := label
		if lbl == "" {
			lbl = string(runes[openEnd:closeStart])
		}
		if def, ok := refs.ResolveLink(lbl); ok {
			inner := resolveInline(result[oidx+1:cidx], runes, positions, refs, reg)
			return buildLink(inner, def.URL, def.Title, isImage, span(end)), end
		}
		return nil, 0
	}

	lbl := string(runes[openEnd:closeStart])
	if def, ok := refs.ResolveLink(lbl); ok {
		inner := resolveInline(result[oidx+1:cidx], runes, positions, refs, reg)
		return buildLink(inner, def.URL, def.Title, isImage, span(closeEnd)), closeEnd
	}
	return nil, 0
}

func buildLink(inner []document.Item, url, title string, isImage bool, span document.Span) document.Item {
	if len(inner) == 1 {
		if t, ok := inner[0].(*document.Text); ok && t.Style == 0 && t.Opts == document.TextNormal {
			if isImage {
				return &document.Image{SpanV: span, Text: t.Value, URL: url, Title: title}
			}
			return &document.Link{SpanV: span, Text: t.Value, URL: url, Title: title}
		}
	}
	text := plainTextOf(inner)
	content := &document.Paragraph{SpanV: span, Inlines: inner}
	if isImage {
		return &document.Image{SpanV: span, Text: text, Content: content, URL: url, Title: title}
	}
	return &document.Link{SpanV: span, Text: text, Content: content, URL: url, Title: title}
}

// trimConsumed drops nodes fully inside [0,target) of the shared rune
// index space, and truncates the one node straddling target — splitting
// is only meaningful for a text node; a delimiter/bracket/leaf token that
// happens to straddle the boundary (which the inline `(url)`/`[label]`
// grammar never produces in practice) is dropped whole rather than torn
// in half.
func trimConsumed(nodes []node, target int) []node {
	i := 0
	for i < len(nodes) {
		lo, hi := nodes[i].startIdx, nodes[i].endIdx
		if hi <= target {
			nodes = append(nodes[:i], nodes[i+1:]...)
			continue
		}
		if lo >= target {
			break
		}
		if nodes[i].kind == nodeText {
			off := target - lo
			nd := nodes[i]
			nd.text = nd.text[off:]
			nd.pos = nd.pos[off:]
			nd.startIdx = target
			nodes[i] = nd
		} else {
			nodes = append(nodes[:i], nodes[i+1:]...)
		}
		break
	}
	return nodes
}

func skipInlineWS(runes []rune, j int) int {
	for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n') {
		j++
	}
	return j
}

// parseLinkTail parses a CommonMark inline link destination/title,
// `(<dest> "title")`, starting at a rune index that should hold the `(`.
func parseLinkTail(runes []rune, start int) (url, title string, consumedEnd int, ok bool) {
	if start >= len(runes) || runes[start] != '(' {
		return "", "", 0, false
	}
	j := skipInlineWS(runes, start+1)

	if j < len(runes) && runes[j] == '<' {
		k := j + 1
		for k < len(runes) && runes[k] != '>' && runes[k] != '\n' {
			k++
		}
		if k >= len(runes) || runes[k] != '>' {
			return "", "", 0, false
		}
		url = string(runes[j+1 : k])
		j = k + 1
	} else {
		k := j
		depth := 0
		for k < len(runes) {
			r := runes[k]
			if r == '\\' && k+1 < len(runes) {
				k += 2
				continue
			}
			if r == '(' {
				depth++
			} else if r == ')' {
				if depth == 0 {
					break
				}
				depth--
			} else if r == ' ' || r == '\t' || r == '\n' {
				break
			}
			k++
		}
		url = string(runes[j:k])
		j = k
	}

	j = skipInlineWS(runes, j)
	if j < len(runes) && (runes[j] == '"' || runes[j] == '\'' || runes[j] == '(') {
		quote := runes[j]
		closeQuote := quote
		if quote == '(' {
			closeQuote = ')'
		}
		k := j + 1
		for k < len(runes) && runes[k] != closeQuote {
			k++
		}
		if k >= len(runes) {
			return "", "", 0, false
		}
		title = string(runes[j+1 : k])
		j = k + 1
		j = skipInlineWS(runes, j)
	}

	if j >= len(runes) || runes[j] != ')' {
		return "", "", 0, false
	}
	url = unescapeLinkText(url)
	return url, title, j + 1, true
}

func unescapeLinkText(s string) string {
	return strings.NewReplacer(`\(`, "(", `\)`, ")", `\\`, `\`).Replace(s)
}

// parseReferenceLabel parses a full-reference `[label]` tail, including
// the collapsed `[]` form (returned as an empty label, which the caller
// then falls back to using the link text itself).
func parseReferenceLabel(runes []rune, start int) (label string, consumedEnd int, ok bool) {
	if start >= len(runes) || runes[start] != '[' {
		return "", 0, false
	}
	j := start + 1
	for j < len(runes) && runes[j] != ']' && runes[j] != '[' {
		j++
	}
	if j >= len(runes) || runes[j] != ']' {
		return "", 0, false
	}
	return string(runes[start+1 : j]), j + 1, true
}
