// Package refres collects link-reference definitions, footnote definitions
// and heading anchors during the block phase and resolves references
// against them during the inline phase. It also owns heading-label
// deduplication, since that's a cross-heading concern that can't be decided
// locally at the point a single heading is parsed.
package refres

import (
	"strconv"

	"github.com/mdtree-go/mdtree/document"
)

// Collector accumulates one document's labeled links, footnotes and
// headings. It is not safe for concurrent use; the block and inline phases
// that share it run sequentially within one parse.
type Collector struct {
	FilePath string

	links     map[string]*document.Link
	footnotes map[string]*document.Footnote
	headings  map[string]*document.Heading

	usedLabels map[string]bool
	slugCounts map[string]int
}

// NewCollector returns a Collector for the document rooted at filePath
// (used verbatim as the suffix of every heading label it mints).
func NewCollector(filePath string) *Collector {
	return &Collector{
		FilePath:   filePath,
		links:      make(map[string]*document.Link),
		footnotes:  make(map[string]*document.Footnote),
		headings:   make(map[string]*document.Heading),
		usedLabels: make(map[string]bool),
		slugCounts: make(map[string]int),
	}
}

// DefineLink registers a `[label]: url "title"` definition. CommonMark
// gives the first definition of a given (normalised) label priority; later
// duplicate definitions are ignored.
func (c *Collector) DefineLink(label, url, title string, span document.Span) {
	key := NormalizeLabel(label)
	if key == "" {
		return
	}
	if _, exists := c.links[key]; exists {
		return
	}
	c.links[key] = &document.Link{SpanV: span, Text: label, URL: url, Title: title}
}

// ResolveLink looks up a link definition by its (un-normalised) label text.
func (c *Collector) ResolveLink(label string) (*document.Link, bool) {
	l, ok := c.links[NormalizeLabel(label)]
	return l, ok
}

// DefineFootnote registers a `[^id]: ...` definition. As with links, the
// first definition of a given id wins.
func (c *Collector) DefineFootnote(id string, fn *document.Footnote) {
	if _, exists := c.footnotes[id]; exists {
		return
	}
	c.footnotes[id] = fn
}

// ResolveFootnote looks up a footnote definition by id.
func (c *Collector) ResolveFootnote(id string) (*document.Footnote, bool) {
	fn, ok := c.footnotes[id]
	return fn, ok
}

// RegisterHeading assigns h a document-unique label of the form
// `#<slug>/<file-path>` and records it in the heading map. Colliding slugs
// receive `-1`, `-2`, … suffixes; a generated label that's already taken
// (because some other heading's own slug happens to collide with it) keeps
// incrementing until a free one is found. A slug that itself ends in `-N`
// and collides gets its own suffix appended, giving `-N-M`.
func (c *Collector) RegisterHeading(h *document.Heading, plainText string) {
	slug := Slugify(plainText)
	label := c.mintLabel(slug)
	h.Label = label
	c.headings[label] = h
}

func (c *Collector) mintLabel(slug string) string {
	label := "#" + slug + "/" + c.FilePath
	if !c.usedLabels[label] {
		c.usedLabels[label] = true
		return label
	}
	n := c.slugCounts[slug] + 1
	for {
		candidate := "#" + slug + "-" + strconv.Itoa(n) + "/" + c.FilePath
		if !c.usedLabels[candidate] {
			c.usedLabels[candidate] = true
			c.slugCounts[slug] = n
			return candidate
		}
		n++
	}
}

// Links returns the collected label -> link-definition map.
func (c *Collector) Links() map[string]*document.Link { return c.links }

// Footnotes returns the collected id -> footnote map.
func (c *Collector) Footnotes() map[string]*document.Footnote { return c.footnotes }

// Headings returns the collected label -> heading map.
func (c *Collector) Headings() map[string]*document.Heading { return c.headings }
