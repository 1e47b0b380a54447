package document

// Kind discriminates the closed set of item variants. It is a plain integer
// rather than a type switch over an interface hierarchy so that opaque
// consumers (the position cache) can index any node, including ones
// registered by a host application, by comparing against UserDefined.
type Kind int

const (
	KindAnchor Kind = iota
	KindPageBreak
	KindHeading
	KindParagraph
	KindBlockquote
	KindList
	KindListItem
	KindCode
	KindMath
	KindTable
	KindTableRow
	KindTableCell
	KindHorizontalLine
	KindLineBreak
	KindText
	KindLink
	KindImage
	KindFootnoteRef
	KindFootnote
	KindRawHTML

	// UserDefined is the first tag available to host-registered item types.
	// The position cache indexes anything with Kind() >= UserDefined by span
	// only, without attempting to descend into its children.
	UserDefined Kind = 1000
)

// Style is a bitmask of inline formatting applied to a Text, Link or Image
// run. The low bits are reserved for the built-in styles; bits at
// StyleUserBase and above are available to emphasis-template plugins.
type Style uint64

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleStrike

	// StyleUserBase is the first bit a plugin-registered emphasis template
	// may claim. Plugins are responsible for not colliding with each other;
	// per §9's open question, a colliding registration is first-come-wins.
	StyleUserBase Style = 1 << 8
)

// TextOpts records rendering hints on a Text run that aren't part of the
// style bitmask itself.
type TextOpts uint8

const (
	TextNormal TextOpts = iota
	// TextWithoutFormat marks a Text run produced from delimiter characters
	// that could not be matched to a partner and so were downgraded to
	// literal text at emit time.
	TextWithoutFormat
)

// Item is implemented by every node in a parsed document.
type Item interface {
	Kind() Kind
	Span() Span

	// Clone returns a deep, independently-owned copy of the item. Items that
	// hold non-owning cross-references (FootnoteRef) resolve those
	// references against the clone produced by Document.Clone rather than
	// aliasing the original; calling Clone on such an item in isolation
	// gives it its own deep copy of the referenced item.
	Clone() Item

	cloneWith(ctx *cloneCtx) Item
}

type cloneCtx struct {
	footnotes map[*Footnote]*Footnote
	headings  map[*Heading]*Heading
}

func newCloneCtx() *cloneCtx {
	return &cloneCtx{
		footnotes: make(map[*Footnote]*Footnote),
		headings:  make(map[*Heading]*Heading),
	}
}

func cloneItems(items []Item, ctx *cloneCtx) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.cloneWith(ctx)
	}
	return out
}

func clonePositions(ps []Position) []Position {
	if ps == nil {
		return nil
	}
	return append([]Position(nil), ps...)
}

// StyleDelims is embedded by the item variants that carry a style bitmask
// (Text, Link, Image): the ordered lists of where each open/close delimiter
// for that run was found in the source.
type StyleDelims struct {
	OpenDelims  []Position
	CloseDelims []Position
}

func (d StyleDelims) clone() StyleDelims {
	return StyleDelims{
		OpenDelims:  clonePositions(d.OpenDelims),
		CloseDelims: clonePositions(d.CloseDelims),
	}
}

// Anchor marks the start of one file's subtree in a multi-file document. It
// carries no span of its own: it is a synthetic insertion, not a source
// construct.
type Anchor struct {
	Path string
}

func (a *Anchor) Kind() Kind   { return KindAnchor }
func (a *Anchor) Span() Span   { return NullSpan() }
func (a *Anchor) Clone() Item  { return a.cloneWith(newCloneCtx()) }
func (a *Anchor) cloneWith(*cloneCtx) Item {
	cp := *a
	return &cp
}

// PageBreak separates consecutive per-file subtrees in multi-file mode.
type PageBreak struct{}

func (p *PageBreak) Kind() Kind  { return KindPageBreak }
func (p *PageBreak) Span() Span  { return NullSpan() }
func (p *PageBreak) Clone() Item { return &PageBreak{} }
func (p *PageBreak) cloneWith(*cloneCtx) Item {
	return &PageBreak{}
}

// Heading is a level 1-6 heading owning a Paragraph for its text, with a
// synthesised, document-unique Label.
type Heading struct {
	SpanV Span
	Level int
	Text  *Paragraph
	Label string
}

func (h *Heading) Kind() Kind { return KindHeading }
func (h *Heading) Span() Span { return h.SpanV }
func (h *Heading) Clone() Item {
	return h.cloneWith(newCloneCtx())
}
func (h *Heading) cloneWith(ctx *cloneCtx) Item {
	cp := &Heading{SpanV: h.SpanV, Level: h.Level, Label: h.Label}
	if h.Text != nil {
		cp.Text = h.Text.cloneWith(ctx).(*Paragraph)
	}
	ctx.headings[h] = cp
	return cp
}

// Paragraph is an ordered sequence of inline items.
type Paragraph struct {
	SpanV   Span
	Inlines []Item
}

func (p *Paragraph) Kind() Kind { return KindParagraph }
func (p *Paragraph) Span() Span { return p.SpanV }
func (p *Paragraph) Clone() Item {
	return p.cloneWith(newCloneCtx())
}
func (p *Paragraph) cloneWith(ctx *cloneCtx) Item {
	return &Paragraph{SpanV: p.SpanV, Inlines: cloneItems(p.Inlines, ctx)}
}

// Blockquote is an ordered sequence of block items.
type Blockquote struct {
	SpanV    Span
	Children []Item
}

func (b *Blockquote) Kind() Kind { return KindBlockquote }
func (b *Blockquote) Span() Span { return b.SpanV }
func (b *Blockquote) Clone() Item {
	return b.cloneWith(newCloneCtx())
}
func (b *Blockquote) cloneWith(ctx *cloneCtx) Item {
	return &Blockquote{SpanV: b.SpanV, Children: cloneItems(b.Children, ctx)}
}

// ListType distinguishes ordered from unordered lists and list items.
type ListType int

const (
	ListUnordered ListType = iota
	ListOrdered
)

// List is an ordered sequence of ListItem.
type List struct {
	SpanV Span
	Type  ListType
	Items []*ListItem
}

func (l *List) Kind() Kind { return KindList }
func (l *List) Span() Span { return l.SpanV }
func (l *List) Clone() Item {
	return l.cloneWith(newCloneCtx())
}
func (l *List) cloneWith(ctx *cloneCtx) Item {
	cp := &List{SpanV: l.SpanV, Type: l.Type}
	if l.Items != nil {
		cp.Items = make([]*ListItem, len(l.Items))
		for i, it := range l.Items {
			cp.Items[i] = it.cloneWith(ctx).(*ListItem)
		}
	}
	return cp
}

// ListItem is one entry of a List: its marker position, an optional
// ordered-list start number, an optional task-list checkbox state, and the
// ordered sequence of block items forming its body.
type ListItem struct {
	SpanV    Span
	Type     ListType
	Start    int // meaningful only when Type == ListOrdered
	DelimPos Position
	IsTask   bool
	Checked  bool
	Children []Item
}

func (l *ListItem) Kind() Kind { return KindListItem }
func (l *ListItem) Span() Span { return l.SpanV }
func (l *ListItem) Clone() Item {
	return l.cloneWith(newCloneCtx())
}
func (l *ListItem) cloneWith(ctx *cloneCtx) Item {
	return &ListItem{
		SpanV:    l.SpanV,
		Type:     l.Type,
		Start:    l.Start,
		DelimPos: l.DelimPos,
		IsTask:   l.IsTask,
		Checked:  l.Checked,
		Children: cloneItems(l.Children, ctx),
	}
}

// Code is an inline or block code span/block: its text, optional syntax
// (info-string) tag, and the spans of its opening/closing delimiters and of
// the syntax tag itself.
type Code struct {
	SpanV      Span
	IsBlock    bool
	Text       string
	Syntax     string
	OpenDelim  Span
	CloseDelim Span
	SyntaxPos  Span
}

func (c *Code) Kind() Kind { return KindCode }
func (c *Code) Span() Span { return c.SpanV }
func (c *Code) Clone() Item {
	return c.cloneWith(newCloneCtx())
}
func (c *Code) cloneWith(*cloneCtx) Item {
	cp := *c
	return &cp
}

// Math is an inline or block LaTeX math span: its expression text and the
// spans of its delimiters ($…$, $$…$$, or a ```math fence and its tag).
type Math struct {
	SpanV      Span
	IsBlock    bool
	Expr       string
	OpenDelim  Span
	CloseDelim Span
	SyntaxPos  Span
}

func (m *Math) Kind() Kind { return KindMath }
func (m *Math) Span() Span { return m.SpanV }
func (m *Math) Clone() Item {
	return m.cloneWith(newCloneCtx())
}
func (m *Math) cloneWith(*cloneCtx) Item {
	cp := *m
	return &cp
}

// Align is a table column's alignment, from the delimiter row.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Table is a GFM table: its column count, per-column alignment, and ordered
// rows. Row 0 is the header row.
type Table struct {
	SpanV   Span
	Columns int
	Aligns  []Align
	Rows    []*TableRow
}

func (t *Table) Kind() Kind { return KindTable }
func (t *Table) Span() Span { return t.SpanV }
func (t *Table) Clone() Item {
	return t.cloneWith(newCloneCtx())
}
func (t *Table) cloneWith(ctx *cloneCtx) Item {
	cp := &Table{SpanV: t.SpanV, Columns: t.Columns, Aligns: append([]Align(nil), t.Aligns...)}
	if t.Rows != nil {
		cp.Rows = make([]*TableRow, len(t.Rows))
		for i, r := range t.Rows {
			cp.Rows[i] = r.cloneWith(ctx).(*TableRow)
		}
	}
	return cp
}

// TableRow is one row of a Table, including the header row.
type TableRow struct {
	SpanV Span
	Cells []*TableCell
}

func (r *TableRow) Kind() Kind { return KindTableRow }
func (r *TableRow) Span() Span { return r.SpanV }
func (r *TableRow) Clone() Item {
	return r.cloneWith(newCloneCtx())
}
func (r *TableRow) cloneWith(ctx *cloneCtx) Item {
	cp := &TableRow{SpanV: r.SpanV}
	if r.Cells != nil {
		cp.Cells = make([]*TableCell, len(r.Cells))
		for i, c := range r.Cells {
			cp.Cells[i] = c.cloneWith(ctx).(*TableCell)
		}
	}
	return cp
}

// TableCell holds the inline content of one table cell.
type TableCell struct {
	SpanV   Span
	Inlines []Item
}

func (c *TableCell) Kind() Kind { return KindTableCell }
func (c *TableCell) Span() Span { return c.SpanV }
func (c *TableCell) Clone() Item {
	return c.cloneWith(newCloneCtx())
}
func (c *TableCell) cloneWith(ctx *cloneCtx) Item {
	return &TableCell{SpanV: c.SpanV, Inlines: cloneItems(c.Inlines, ctx)}
}

// HorizontalLine is a thematic break (`---`, `***`, `___`).
type HorizontalLine struct {
	SpanV Span
}

func (h *HorizontalLine) Kind() Kind { return KindHorizontalLine }
func (h *HorizontalLine) Span() Span { return h.SpanV }
func (h *HorizontalLine) Clone() Item {
	cp := *h
	return &cp
}
func (h *HorizontalLine) cloneWith(*cloneCtx) Item {
	cp := *h
	return &cp
}

// LineBreak is a hard or soft inline line break.
type LineBreak struct {
	SpanV Span
	Hard  bool
}

func (l *LineBreak) Kind() Kind { return KindLineBreak }
func (l *LineBreak) Span() Span { return l.SpanV }
func (l *LineBreak) Clone() Item {
	cp := *l
	return &cp
}
func (l *LineBreak) cloneWith(*cloneCtx) Item {
	cp := *l
	return &cp
}

// Text is a run of plain or styled inline text.
type Text struct {
	SpanV Span
	Value string
	Style Style
	StyleDelims
	SpaceBefore bool
	SpaceAfter  bool
	Opts        TextOpts
}

func (t *Text) Kind() Kind { return KindText }
func (t *Text) Span() Span { return t.SpanV }
func (t *Text) Clone() Item {
	return t.cloneWith(newCloneCtx())
}
func (t *Text) cloneWith(*cloneCtx) Item {
	cp := *t
	cp.StyleDelims = t.StyleDelims.clone()
	return &cp
}

// Link is an inline link. Text holds plain display text; Content holds
// styled display content (nested emphasis/images, never nested links) when
// the link body itself contains inline markup.
type Link struct {
	SpanV   Span
	Text    string
	Content *Paragraph
	URL     string
	Title   string
	// FootnoteStyle marks a link written with footnote-reference bracket
	// syntax that nonetheless resolved to a normal link definition rather
	// than a footnote body.
	FootnoteStyle bool
	Style         Style
	StyleDelims
}

func (l *Link) Kind() Kind { return KindLink }
func (l *Link) Span() Span { return l.SpanV }
func (l *Link) Clone() Item {
	return l.cloneWith(newCloneCtx())
}
func (l *Link) cloneWith(ctx *cloneCtx) Item {
	cp := &Link{
		SpanV: l.SpanV, Text: l.Text, URL: l.URL, Title: l.Title,
		FootnoteStyle: l.FootnoteStyle, Style: l.Style, StyleDelims: l.StyleDelims.clone(),
	}
	if l.Content != nil {
		cp.Content = l.Content.cloneWith(ctx).(*Paragraph)
	}
	return cp
}

// Image is an inline image; same shape as Link (CommonMark treats images as
// links prefixed with `!`).
type Image struct {
	SpanV   Span
	Text    string
	Content *Paragraph
	URL     string
	Title   string
	Style   Style
	StyleDelims
}

func (im *Image) Kind() Kind { return KindImage }
func (im *Image) Span() Span { return im.SpanV }
func (im *Image) Clone() Item {
	return im.cloneWith(newCloneCtx())
}
func (im *Image) cloneWith(ctx *cloneCtx) Item {
	cp := &Image{
		SpanV: im.SpanV, Text: im.Text, URL: im.URL, Title: im.Title,
		Style: im.Style, StyleDelims: im.StyleDelims.clone(),
	}
	if im.Content != nil {
		cp.Content = im.Content.cloneWith(ctx).(*Paragraph)
	}
	return cp
}

// FootnoteRef is a `[^id]` reference resolved to its Footnote body.
type FootnoteRef struct {
	SpanV  Span
	ID     string
	Target *Footnote
}

func (f *FootnoteRef) Kind() Kind { return KindFootnoteRef }
func (f *FootnoteRef) Span() Span { return f.SpanV }
func (f *FootnoteRef) Clone() Item {
	return f.cloneWith(newCloneCtx())
}
func (f *FootnoteRef) cloneWith(ctx *cloneCtx) Item {
	cp := &FootnoteRef{SpanV: f.SpanV, ID: f.ID}
	if f.Target != nil {
		if nf, ok := ctx.footnotes[f.Target]; ok {
			cp.Target = nf
		} else {
			cp.Target = f.Target.cloneWith(ctx).(*Footnote)
			ctx.footnotes[f.Target] = cp.Target
		}
	}
	return cp
}

// Footnote is the body of a `[^id]: ...` definition: an ordered sequence of
// block items, possibly spanning multiple paragraphs.
type Footnote struct {
	SpanV Span
	ID    string
	Body  []Item
}

func (f *Footnote) Kind() Kind { return KindFootnote }
func (f *Footnote) Span() Span { return f.SpanV }
func (f *Footnote) Clone() Item {
	return f.cloneWith(newCloneCtx())
}
func (f *Footnote) cloneWith(ctx *cloneCtx) Item {
	cp := &Footnote{SpanV: f.SpanV, ID: f.ID, Body: cloneItems(f.Body, ctx)}
	return cp
}

// RawHTML is an opaque HTML span or block preserved verbatim.
type RawHTML struct {
	SpanV Span
	Text  string
}

func (r *RawHTML) Kind() Kind { return KindRawHTML }
func (r *RawHTML) Span() Span { return r.SpanV }
func (r *RawHTML) Clone() Item {
	cp := *r
	return &cp
}
func (r *RawHTML) cloneWith(*cloneCtx) Item {
	cp := *r
	return &cp
}
