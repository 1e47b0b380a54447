package inline

import (
	"strings"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/pstring"
)

// flattenLines joins a block's content lines into one logical rune stream,
// replacing a soft line break with a single space (so that whitespace-based
// flanking rules see it exactly as they'd see any other space) and
// recording where a hard line break (two or more trailing spaces, or a
// trailing backslash) occurred so the tokenizer can emit a LineBreak item
// at that point instead.
func flattenLines(lines []*pstring.PString) (runes []rune, positions []document.Position, hardBefore []bool) {
	pending := false
	for li, ln := range lines {
		text := []rune(ln.AsString())
		end := len(text)
		spaces := 0
		for end > 0 && text[end-1] == ' ' {
			end--
			spaces++
		}
		backslash := end > 0 && text[end-1] == '\\'
		isLast := li == len(lines)-1
		hard := !isLast && (spaces >= 2 || backslash)
		content := text[:end]
		if backslash && hard {
			content = text[:end-1]
		}
		for i, r := range content {
			runes = append(runes, r)
			positions = append(positions, ln.VirginPos(i))
			hardBefore = append(hardBefore, pending)
			pending = false
		}
		if !isLast {
			if hard {
				pending = true
			} else {
				runes = append(runes, ' ')
				idx := len(text) - 1
				if idx < 0 {
					idx = 0
				}
				positions = append(positions, ln.VirginPos(idx))
				hardBefore = append(hardBefore, pending)
				pending = false
			}
		}
	}
	return runes, positions, hardBefore
}

// trimmedEqualSpace collapses internal whitespace runs to a single space
// and trims the ends.
func trimmedEqualSpace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
