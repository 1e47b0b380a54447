// Package poscache builds a read-only interval index over a finalised
// document, answering "innermost-first chain of items covering this
// source rectangle" queries — the structure a text-editor integration
// would use to map a cursor position back to the enclosing node.
package poscache

import "github.com/mdtree-go/mdtree/document"

// Cache is a flat, depth-first pre-order array of every item in a
// document, including items nested inside structural containers. Because
// a pre-order walk visits a container before its children, and every
// child's span starts no earlier than its parent's, the array is
// non-decreasing in span-start order — which is what makes the binary
// search in Find valid.
type Cache struct {
	flat []document.Item
}

// Build descends into items (and recursively into every structural
// container spec.md's position cache names: Blockquote, List, ListItem,
// Paragraph, Table, TableRow, TableCell, Footnote, Heading's own text),
// flattening them into one pre-order array. A user-registered item type
// (Kind() >= document.UserDefined) is appended but never descended into —
// its span indexes it opaquely, since its internal shape is unknown here.
func Build(items []document.Item) *Cache {
	c := &Cache{}
	for _, it := range items {
		c.add(it)
	}
	return c
}

func (c *Cache) add(it document.Item) {
	c.flat = append(c.flat, it)
	if it.Kind() >= document.UserDefined {
		return
	}
	switch v := it.(type) {
	case *document.Blockquote:
		for _, ch := range v.Children {
			c.add(ch)
		}
	case *document.List:
		for _, li := range v.Items {
			c.add(li)
		}
	case *document.ListItem:
		for _, ch := range v.Children {
			c.add(ch)
		}
	case *document.Paragraph:
		for _, in := range v.Inlines {
			c.add(in)
		}
	case *document.Heading:
		if v.Text != nil {
			c.add(v.Text)
		}
	case *document.Table:
		for _, r := range v.Rows {
			c.add(r)
		}
	case *document.TableRow:
		for _, cell := range v.Cells {
			c.add(cell)
		}
	case *document.TableCell:
		for _, in := range v.Inlines {
			c.add(in)
		}
	case *document.Footnote:
		for _, ch := range v.Body {
			c.add(ch)
		}
	case *document.Link:
		if v.Content != nil {
			c.add(v.Content)
		}
	case *document.Image:
		if v.Content != nil {
			c.add(v.Content)
		}
	}
}

// Find returns the innermost-first chain of items whose spans each
// contain r: chain[0] is the deepest (most specific) containing item,
// chain[len-1] the outermost. An empty result means r lies inside no
// item.
//
// The binary search locates the candidate window — every item whose span
// could possibly start at or before r (anything starting later can't
// contain it) — and the linear scan over that window keeps only the ones
// that actually do, which by the pre-order/monotonic property above is
// exactly the ancestor chain, outer-to-inner; reversing it gives the
// contract's innermost-first order.
func (c *Cache) Find(r document.Span) []document.Item {
	lo, hi := 0, len(c.flat)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.flat[mid].Span().Start.LessEq(r.Start) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	var chain []document.Item
	for i := 0; i < lo; i++ {
		if c.flat[i].Span().Contains(r) {
			chain = append(chain, c.flat[i])
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// FindPoint is Find for a single-position query.
func (c *Cache) FindPoint(p document.Position) []document.Item {
	return c.Find(document.Span{Start: p, End: p})
}
