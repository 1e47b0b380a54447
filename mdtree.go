// Package mdtree wires the block scanner, inline tokenizer, reference
// resolver, plugin registry and multi-file walker into the two entry
// points most callers need: Parse for a single in-memory document, and
// ParseFile for a document that may pull in other files from disk.
package mdtree

import (
	"fmt"
	"os"

	"github.com/mdtree-go/mdtree/blockscan"
	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/linesource"
	"github.com/mdtree-go/mdtree/plugin"
	"github.com/mdtree-go/mdtree/poscache"
	"github.com/mdtree-go/mdtree/refres"
	"github.com/mdtree-go/mdtree/walker"
)

// Options configures a parse. The zero value parses a single in-memory
// document with no plugins and no recursion.
type Options struct {
	// Plugins, if non-nil, is consulted by the inline tokenizer for custom
	// emphasis templates and text-transform plugins.
	Plugins *plugin.Registry

	// Recursive makes ParseFile follow local Markdown links transitively,
	// assembling a multi-file document via walker.Walk instead of parsing
	// just the one file.
	Recursive bool

	// Extensions overrides walker.DefaultExtensions when Recursive is set.
	Extensions []string
}

// Parse parses a single in-memory Markdown document. The source path is
// used only to seed the reference collector's per-file namespace (labels
// stay unique within one document); it need not exist on disk.
func Parse(text string, sourcePath string, opts Options) *document.Document {
	refs := refres.NewCollector(sourcePath)
	bp := blockscan.New(refs, opts.Plugins)
	items := bp.Parse(linesource.New(text))
	return assemble(items, refs)
}

// ParseFile reads path and parses it. With Options.Recursive set, it
// instead follows every local Markdown link path (transitively) reaches,
// via walker.Walk, and returns one combined document spanning all of them.
func ParseFile(path string, opts Options) (*document.Document, error) {
	if opts.Recursive {
		w := walker.New(opts.Plugins, opts.Extensions)
		items, err := w.Walk(path)
		if err != nil {
			return nil, err
		}
		return assembleWalked(items), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return Parse(string(content), path, opts), nil
}

// assemble builds a Document from one file's parsed items and its
// collector's resolved label maps.
func assemble(items []document.Item, refs *refres.Collector) *document.Document {
	doc := document.New()
	doc.Items = items
	doc.LabeledLinks = refs.Links()
	doc.LabeledFootnotes = refs.Footnotes()
	doc.LabeledHeadings = refs.Headings()
	return doc
}

// assembleWalked builds a Document from a multi-file item stream. Label
// maps are per-file internally (each file gets its own Collector inside
// walker), so a combined document only exposes item-tree structure and
// leaves cross-file label lookups to whichever Anchor/heading pair a
// caller cares about; FootnoteRef and reference-link resolution already
// happened per-file during the walk.
func assembleWalked(items []document.Item) *document.Document {
	doc := document.New()
	doc.Items = items
	return doc
}

// BuildCache returns a position cache over doc's item tree, for
// find-first-in-cache style rectangle-to-node queries.
func BuildCache(doc *document.Document) *poscache.Cache {
	return poscache.Build(doc.Items)
}
