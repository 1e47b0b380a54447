package document

import "fmt"

// String returns the lowercase node-type name used by debug tooling (the
// tree dump in cmd/mdtree). User-defined kinds print as "user:<n>".
func (k Kind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindPageBreak:
		return "pagebreak"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindBlockquote:
		return "blockquote"
	case KindList:
		return "list"
	case KindListItem:
		return "listitem"
	case KindCode:
		return "code"
	case KindMath:
		return "math"
	case KindTable:
		return "table"
	case KindTableRow:
		return "tablerow"
	case KindTableCell:
		return "tablecell"
	case KindHorizontalLine:
		return "hr"
	case KindLineBreak:
		return "linebreak"
	case KindText:
		return "text"
	case KindLink:
		return "link"
	case KindImage:
		return "image"
	case KindFootnoteRef:
		return "footnoteref"
	case KindFootnote:
		return "footnote"
	case KindRawHTML:
		return "rawhtml"
	default:
		if k >= UserDefined {
			return fmt.Sprintf("user:%d", int(k-UserDefined))
		}
		return fmt.Sprintf("kind:%d", int(k))
	}
}
