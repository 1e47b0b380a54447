package blockscan

import (
	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/pstring"
)

// startsNewBlock reports whether a line independently begins some other
// block type, and so cannot be absorbed as a lazy paragraph continuation
// of an open blockquote or list item. An indented-code-looking line does
// NOT start a new block here — CommonMark's own rule is that indented code
// cannot interrupt a paragraph.
func startsNewBlock(s string, indent int) bool {
	trimmed := trimSpace(s)
	if trimmed == "" {
		return true
	}
	if indent >= 4 {
		return false
	}
	if isThematicBreak(trimmed) {
		return true
	}
	if isATXLine(s, indent) {
		return true
	}
	if isFenceOpenLine(s, indent) {
		return true
	}
	if isBlockquoteStart(s, indent) {
		return true
	}
	if isListStartLine(s, indent) {
		return true
	}
	return false
}

func isBlockquoteStart(s string, indent int) bool {
	runes := []rune(s)
	return indent < len(runes) && runes[indent] == '>'
}

func stripBlockquoteMarker(line *pstring.PString, indent int) *pstring.PString {
	runes := []rune(line.AsString())
	i := indent + 1
	if i < len(runes) && runes[i] == ' ' {
		i++
	}
	return line.Slice(i, line.Len())
}

func (p *Parser) blockquote(ps *pstream) *document.Blockquote {
	var inner []*pstring.PString
	var start, end document.Position
	have := false

	for {
		line, ok := ps.Peek()
		if !ok {
			break
		}
		s := line.AsString()
		indent := indentWidth(s)
		trimmed := trimSpace(s)

		if isBlockquoteStart(s, indent) {
			ps.Next()
			stripped := stripBlockquoteMarker(line, indent)
			inner = append(inner, stripped)
			if !have {
				start = line.VirginPos(0)
				have = true
			}
			end = line.VirginPos(max(line.Len()-1, 0))
			continue
		}
		if trimmed != "" && have && !startsNewBlock(s, indent) {
			ps.Next()
			inner = append(inner, line)
			end = line.VirginPos(max(line.Len()-1, 0))
			continue
		}
		break
	}

	children := p.parseBlocks(newPStream(inner))
	return &document.Blockquote{SpanV: document.Span{Start: start, End: end}, Children: children}
}

// detectListMarker reports whether a bullet or ordered-list marker starts
// at indent, returning whether it's ordered, the ordered start number, and
// the rune index just past the delimiter character.
func detectListMarker(s string, indent int) (ok bool, ordered bool, start int, markerEnd int) {
	runes := []rune(s)
	if indent >= len(runes) {
		return false, false, 0, 0
	}
	if ch := runes[indent]; ch == '-' || ch == '+' || ch == '*' {
		after := indent + 1
		if after >= len(runes) || runes[after] == ' ' || runes[after] == '\t' {
			return true, false, 0, after
		}
		return false, false, 0, 0
	}
	j := indent
	for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' && j-indent < 9 {
		j++
	}
	if j > indent && j < len(runes) && (runes[j] == '.' || runes[j] == ')') {
		after := j + 1
		if after >= len(runes) || runes[after] == ' ' || runes[after] == '\t' {
			n := 0
			for _, r := range runes[indent:j] {
				n = n*10 + int(r-'0')
			}
			return true, true, n, after
		}
	}
	return false, false, 0, 0
}

func isListStartLine(s string, indent int) bool {
	ok, _, _, _ := detectListMarker(s, indent)
	return ok
}

// detectTaskCheckbox recognizes a GFM task-list checkbox (`[ ]`, `[x]`,
// `[X]`) immediately at col, followed by a space, a tab or end of line.
func detectTaskCheckbox(runes []rune, col int) (ok bool, checked bool, newCol int) {
	if col+2 >= len(runes) || runes[col] != '[' || runes[col+2] != ']' {
		return false, false, col
	}
	mark := runes[col+1]
	if mark != ' ' && mark != 'x' && mark != 'X' {
		return false, false, col
	}
	after := col + 3
	if after < len(runes) && runes[after] != ' ' && runes[after] != '\t' {
		return false, false, col
	}
	newCol = after
	if after < len(runes) && runes[after] == ' ' {
		newCol++
	}
	return true, mark == 'x' || mark == 'X', newCol
}

func typeFor(ordered bool) document.ListType {
	if ordered {
		return document.ListOrdered
	}
	return document.ListUnordered
}

func (p *Parser) list(ps *pstream) *document.List {
	var items []*document.ListItem
	listType := document.ListUnordered
	var bulletCh rune
	started := false
	var start, end document.Position

	for {
		line, ok := ps.Peek()
		if !ok {
			break
		}
		s := line.AsString()
		indent := indentWidth(s)
		if indent >= 4 {
			break
		}
		ok2, ordered, startNum, markerEnd := detectListMarker(s, indent)
		if !ok2 {
			break
		}
		curBullet := rune(0)
		if !ordered {
			curBullet = []rune(s)[indent]
		}
		if !started {
			listType = typeFor(ordered)
			bulletCh = curBullet
			started = true
			start = line.VirginPos(indent)
		} else {
			if ordered != (listType == document.ListOrdered) {
				break
			}
			if !ordered && curBullet != bulletCh {
				break
			}
		}
		item := p.listItem(ps, indent, markerEnd, ordered, startNum)
		items = append(items, item)
		end = item.SpanV.End
	}

	return &document.List{SpanV: document.Span{Start: start, End: end}, Type: listType, Items: items}
}

func (p *Parser) listItem(ps *pstream, indent, markerEnd int, ordered bool, startNum int) *document.ListItem {
	first, _ := ps.Next()
	runes := []rune(first.AsString())

	delimPos := first.VirginPos(max(markerEnd-1, indent))

	spaceCount := 0
	for markerEnd+spaceCount < len(runes) && runes[markerEnd+spaceCount] == ' ' {
		spaceCount++
	}
	atEOL := markerEnd+spaceCount >= len(runes)
	var contentCol int
	switch {
	case atEOL:
		contentCol = min(markerEnd+1, len(runes))
	case spaceCount >= 1 && spaceCount <= 4:
		contentCol = markerEnd + spaceCount
	default:
		contentCol = markerEnd + 1
	}

	isTask, checked, afterCheck := detectTaskCheckbox(runes, contentCol)
	if isTask {
		contentCol = afterCheck
	}

	var inner []*pstring.PString
	if contentCol < first.Len() {
		inner = append(inner, first.Slice(contentCol, first.Len()))
	}

	startPos := first.VirginPos(indent)
	endPos := first.VirginPos(max(first.Len()-1, 0))

	for {
		line, ok := ps.Peek()
		if !ok {
			break
		}
		s2 := line.AsString()
		trimmed2 := trimSpace(s2)

		if trimmed2 == "" {
			ps.Next()
			nxt, ok2 := ps.Peek()
			if ok2 && indentWidth(nxt.AsString()) >= contentCol && indentWidth(nxt.AsString()) > 0 {
				inner = append(inner, pstring.NewLine(line.Line(), "", 1))
				endPos = line.VirginPos(max(line.Len()-1, 0))
				continue
			}
			ps.Push(line)
			break
		}

		ind2 := indentWidth(s2)
		if ind2 >= contentCol {
			ps.Next()
			inner = append(inner, line.Slice(contentCol, line.Len()))
			endPos = line.VirginPos(max(line.Len()-1, 0))
			continue
		}
		if len(inner) > 0 && !startsNewBlock(s2, ind2) {
			ps.Next()
			inner = append(inner, line)
			endPos = line.VirginPos(max(line.Len()-1, 0))
			continue
		}
		break
	}

	children := p.parseBlocks(newPStream(inner))
	return &document.ListItem{
		SpanV:    document.Span{Start: startPos, End: endPos},
		Type:     typeFor(ordered),
		Start:    startNum,
		DelimPos: delimPos,
		IsTask:   isTask,
		Checked:  checked,
		Children: children,
	}
}
