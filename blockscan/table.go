package blockscan

import (
	"strings"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/inline"
	"github.com/mdtree-go/mdtree/pstring"
)

// splitTableRow splits a GFM table row on unescaped `|`, dropping one
// optional leading/trailing pipe and trimming each cell. A `\|` inside a
// cell is unescaped to a literal pipe rather than treated as a separator;
// pipes inside a backtick code span are not specially protected, a known
// simplification against the full GFM grammar.
func splitTableRow(s string) []string {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")

	var cells []string
	var cur strings.Builder
	runes := []rune(trimmed)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) && runes[i+1] == '|' {
			cur.WriteRune('|')
			i++
			continue
		}
		if runes[i] == '|' {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(runes[i])
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

// parseDelimiterRow validates a GFM table delimiter row (e.g. `:--|--:`)
// and returns its per-column alignment; it requires exactly ncols cells,
// each consisting of dashes with optional leading/trailing colons.
func parseDelimiterRow(s string, ncols int) ([]document.Align, bool) {
	cells := splitTableRow(s)
	if len(cells) != ncols {
		return nil, false
	}
	aligns := make([]document.Align, len(cells))
	for i, c := range cells {
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		body := strings.Trim(c, ":")
		if body == "" || strings.Trim(body, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns[i] = document.AlignCenter
		case right:
			aligns[i] = document.AlignRight
		default:
			aligns[i] = document.AlignLeft
		}
	}
	return aligns, true
}

// isTableStart peeks at the line after the candidate header row (without
// consuming either) and checks it is a valid delimiter row matching the
// header's column count.
func isTableStart(ps *pstream, headerStr string) bool {
	header, ok := ps.Next()
	if !ok {
		return false
	}
	defer ps.Push(header)
	delimLine, ok2 := ps.Peek()
	if !ok2 {
		return false
	}
	cols := splitTableRow(headerStr)
	if len(cols) == 0 {
		return false
	}
	_, dok := parseDelimiterRow(delimLine.AsString(), len(cols))
	return dok
}

func (p *Parser) table(ps *pstream, header *pstring.PString) *document.Table {
	delimLine, _ := ps.Next()
	headerCells := splitTableRow(header.AsString())
	ncols := len(headerCells)
	aligns, _ := parseDelimiterRow(delimLine.AsString(), ncols)

	rows := []*document.TableRow{p.buildTableRow(header, headerCells, ncols)}
	end := delimLine.VirginPos(max(delimLine.Len()-1, 0))

	for {
		line, ok := ps.Peek()
		if !ok {
			break
		}
		s := line.AsString()
		if trimSpace(s) == "" || indentWidth(s) >= 4 {
			break
		}
		ps.Next()
		rows = append(rows, p.buildTableRow(line, splitTableRow(s), ncols))
		end = line.VirginPos(max(line.Len()-1, 0))
	}

	return &document.Table{
		SpanV:   document.Span{Start: header.VirginPos(0), End: end},
		Columns: ncols,
		Aligns:  aligns,
		Rows:    rows,
	}
}

// buildTableRow parses each cell's raw text as inline content. Cell
// position is approximated by the row's own span: splitTableRow discards
// each cell's original column offset, so interior-span precision within a
// row is a known simplification.
func (p *Parser) buildTableRow(line *pstring.PString, cells []string, ncols int) *document.TableRow {
	rowSpan := document.Span{Start: line.VirginPos(0), End: line.VirginPos(max(line.Len()-1, 0))}
	out := make([]*document.TableCell, ncols)
	for i := 0; i < ncols; i++ {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		cellPS := pstring.NewLine(line.Line(), text, line.VirginPos(0).Col).ProcessBackslashEscapes()
		items := inline.Parse([]*pstring.PString{cellPS}, p.refs, p.reg)
		out[i] = &document.TableCell{SpanV: rowSpan, Inlines: items}
	}
	return &document.TableRow{SpanV: rowSpan, Cells: out}
}
