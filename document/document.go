package document

// Document is the parsed form of one or more Markdown files: an ordered
// sequence of top-level items plus the three secondary label maps collected
// during parsing.
//
// A Document owns every item reachable from Items or from the label maps;
// nothing in here is owned by, or aliases, any other Document. It is safe
// to read a finalised Document from multiple goroutines, but it must not be
// mutated concurrently with any read (including by the position cache).
type Document struct {
	Items []Item

	// LabeledLinks maps a `[label]: url "title"` definition's label to an
	// independent Link value holding its url/title. Resolved reference
	// links in the tree copy these fields rather than pointing at this map.
	LabeledLinks map[string]*Link

	// LabeledFootnotes maps a footnote id to its Footnote body. FootnoteRef
	// items in the tree point directly into the values of this map.
	LabeledFootnotes map[string]*Footnote

	// LabeledHeadings maps a heading's synthesised label to the Heading
	// item that appears in Items (or nested inside a Blockquote/ListItem).
	LabeledHeadings map[string]*Heading
}

// New returns an empty document with initialised label maps.
func New() *Document {
	return &Document{
		LabeledLinks:     make(map[string]*Link),
		LabeledFootnotes: make(map[string]*Footnote),
		LabeledHeadings:  make(map[string]*Heading),
	}
}

// Clone produces a structurally-equal Document with completely independent
// item identity: no item in the result aliases an item in d, and mutating
// one tree never affects the other. Cross-references (FootnoteRef -> its
// Footnote, a heading label -> its Heading) are re-pointed at the cloned
// counterparts rather than left dangling at the originals.
func (d *Document) Clone() *Document {
	ctx := newCloneCtx()

	// Footnotes are cloned first and registered in ctx so that any
	// FootnoteRef encountered while cloning Items resolves to the same
	// cloned instance, however many times it's referenced.
	newFootnotes := make(map[string]*Footnote, len(d.LabeledFootnotes))
	for id, fn := range d.LabeledFootnotes {
		cloned := fn.cloneWith(ctx)
		nf := cloned.(*Footnote)
		ctx.footnotes[fn] = nf
		newFootnotes[id] = nf
	}

	newItems := cloneItems(d.Items, ctx)

	newLinks := make(map[string]*Link, len(d.LabeledLinks))
	for label, l := range d.LabeledLinks {
		newLinks[label] = l.cloneWith(ctx).(*Link)
	}

	newHeadings := make(map[string]*Heading, len(d.LabeledHeadings))
	for label, h := range d.LabeledHeadings {
		if nh, ok := ctx.headings[h]; ok {
			newHeadings[label] = nh
		}
	}

	return &Document{
		Items:            newItems,
		LabeledLinks:     newLinks,
		LabeledFootnotes: newFootnotes,
		LabeledHeadings:  newHeadings,
	}
}

// Walk visits every item reachable from d.Items in depth-first pre-order,
// calling visit(item, parent) for each. parent is nil for top-level items.
// Children of a KindFootnote or KindLink/KindImage's Content are visited
// too, but FootnoteRef.Target is not descended into (footnotes are walked
// once, where they appear in the top-level Items).
func Walk(items []Item, visit func(item, parent Item)) {
	walkList(items, nil, visit)
}

func walkList(items []Item, parent Item, visit func(item, parent Item)) {
	for _, it := range items {
		visit(it, parent)
		walkChildren(it, visit)
	}
}

func walkChildren(it Item, visit func(item, parent Item)) {
	switch n := it.(type) {
	case *Heading:
		if n.Text != nil {
			visit(n.Text, n)
			walkChildren(n.Text, visit)
		}
	case *Paragraph:
		walkList(n.Inlines, n, visit)
	case *Blockquote:
		walkList(n.Children, n, visit)
	case *List:
		for _, li := range n.Items {
			visit(li, n)
			walkChildren(li, visit)
		}
	case *ListItem:
		walkList(n.Children, n, visit)
	case *Table:
		for _, r := range n.Rows {
			visit(r, n)
			walkChildren(r, visit)
		}
	case *TableRow:
		for _, c := range n.Cells {
			visit(c, n)
			walkChildren(c, visit)
		}
	case *TableCell:
		walkList(n.Inlines, n, visit)
	case *Link:
		if n.Content != nil {
			visit(n.Content, n)
			walkChildren(n.Content, visit)
		}
	case *Image:
		if n.Content != nil {
			visit(n.Content, n)
			walkChildren(n.Content, visit)
		}
	case *Footnote:
		walkList(n.Body, n, visit)
	}
}
