package inline

import (
	"unicode"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/plugin"
)

// emphasisMarkers returns the built-in emphasis/strikethrough markers plus
// any registered emphasis-template markers.
func emphasisMarkers(reg *plugin.Registry) map[rune]bool {
	m := map[rune]bool{'*': true, '_': true, '~': true}
	if reg != nil {
		for _, t := range reg.EmphasisTemplates() {
			m[t.Marker] = true
		}
	}
	return m
}

// scan performs the first tokenizer pass: a left-to-right walk over the
// flattened rune stream producing a flat node list. Code spans, raw HTML
// spans, autolinks and math spans are resolved immediately as opaque leaf
// nodes (their content can't itself contain further markup); emphasis
// delimiter runs and link/image brackets are left as markers for the later
// resolution passes.
func scan(runes []rune, positions []document.Position, hardBefore []bool, reg *plugin.Registry) []node {
	markers := emphasisMarkers(reg)
	var nodes []node
	var textRun []rune
	var textPos []document.Position
	textStart := -1

	flushText := func() {
		if len(textRun) > 0 {
			nd := textNode(textRun, textPos)
			nd.startIdx = textStart
			nd.endIdx = textStart + len(textRun)
			nodes = append(nodes, nd)
			textRun = nil
			textPos = nil
			textStart = -1
		}
	}

	i := 0
	n := len(runes)
	for i < n {
		if hardBefore[i] {
			flushText()
			nodes = append(nodes, node{kind: nodeHardBreak, breakPos: positions[i], startIdx: i, endIdx: i})
		}

		r := runes[i]

		switch {
		case r == '`':
			if nd, next, ok := scanCodeSpan(runes, positions, i); ok {
				flushText()
				nodes = append(nodes, nd)
				i = next
				continue
			}
		case r == '$':
			if nd, next, ok := scanInlineMath(runes, positions, i); ok {
				flushText()
				nodes = append(nodes, nd)
				i = next
				continue
			}
		case r == '<':
			if nd, next, ok := scanAutolink(runes, positions, i); ok {
				flushText()
				nodes = append(nodes, nd)
				i = next
				continue
			}
			if nd, next, ok := scanRawHTMLSpan(runes, positions, i); ok {
				flushText()
				nodes = append(nodes, nd)
				i = next
				continue
			}
		case r == '[':
			flushText()
			nodes = append(nodes, node{kind: nodeBracketOpen, isImage: false, start: positions[i], active: true, startIdx: i, endIdx: i + 1})
			i++
			continue
		case r == '!' && i+1 < n && runes[i+1] == '[':
			flushText()
			nodes = append(nodes, node{kind: nodeBracketOpen, isImage: true, start: positions[i], active: true, startIdx: i, endIdx: i + 2})
			i += 2
			continue
		case r == ']':
			flushText()
			nodes = append(nodes, node{kind: nodeBracketClose, start: positions[i], startIdx: i, endIdx: i + 1})
			i++
			continue
		case markers[r]:
			j := i
			for j < n && runes[j] == r {
				j++
			}
			count := j - i
			before := runeBefore(runes, i)
			after := runeAfter(runes, j)
			canOpen, canClose := flanking(before, after, r, i, j, runes)
			flushText()
			nodes = append(nodes, node{
				kind: nodeDelim, marker: r, count: count,
				canOpen: canOpen, canClose: canClose, active: true,
				start: positions[i], end: positions[j-1],
				startIdx: i, endIdx: j,
			})
			i = j
			continue
		}

		if textStart < 0 {
			textStart = i
		}
		textRun = append(textRun, r)
		textPos = append(textPos, positions[i])
		i++
	}
	flushText()
	return nodes
}

func runeBefore(runes []rune, i int) rune {
	if i == 0 {
		return ' '
	}
	return runes[i-1]
}

func runeAfter(runes []rune, j int) rune {
	if j >= len(runes) {
		return ' '
	}
	return runes[j]
}

func isUnicodeWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

func isUnicodePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// flanking implements CommonMark's left/right-flanking delimiter-run rules,
// plus the `_` intraword restriction: an underscore run can open only if
// it isn't also right-flanking, or is preceded by punctuation, and
// symmetrically for closing.
func flanking(before, after rune, marker rune, i, j int, runes []rune) (canOpen, canClose bool) {
	leftFlanking := !isUnicodeWhitespace(after) &&
		(!isUnicodePunct(after) || isUnicodeWhitespace(before) || isUnicodePunct(before))
	rightFlanking := !isUnicodeWhitespace(before) &&
		(!isUnicodePunct(before) || isUnicodeWhitespace(after) || isUnicodePunct(after))

	canOpen = leftFlanking
	canClose = rightFlanking

	if marker == '_' {
		canOpen = leftFlanking && (!rightFlanking || isUnicodePunct(before))
		canClose = rightFlanking && (!leftFlanking || isUnicodePunct(after))
	}
	return canOpen, canClose
}
