// Package walker implements the multi-file document assembler: starting
// from a root Markdown file, it follows every resolved Link that targets
// another local Markdown file, parsing each exactly once, and assembles
// one combined item list with an Anchor/PageBreak marker per file.
//
// The traversal itself is grounded on a depth-first, visited-set walk —
// the same shape as a directory crawler following cross-file references —
// generalized here to walk a parsed document's link tree instead of a
// filesystem tree.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdtree-go/mdtree/blockscan"
	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/linesource"
	"github.com/mdtree-go/mdtree/plugin"
	"github.com/mdtree-go/mdtree/refres"
)

// DefaultExtensions are the file suffixes (lowercase, dot-prefixed) the
// walker treats as Markdown when deciding whether a link is followable.
var DefaultExtensions = []string{".md", ".markdown"}

// Walker holds the configuration shared across one multi-file assembly.
type Walker struct {
	extensions map[string]bool
	reg        *plugin.Registry
}

// New returns a Walker that follows links ending in one of extensions
// (DefaultExtensions if nil or empty) and parses each file against reg.
func New(reg *plugin.Registry, extensions []string) *Walker {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	m := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		m[strings.ToLower(e)] = true
	}
	return &Walker{extensions: m, reg: reg}
}

type fileDoc struct {
	path  string
	items []document.Item
	refs  *refres.Collector
}

// Walk parses rootPath and every local Markdown file it (transitively)
// links to, scoped to rootPath's own directory, and returns one combined
// item list: each file's subtree prefixed by an Anchor and separated from
// the previous file's by a PageBreak. A link that resolves to a visited
// file has its URL rewritten to that file's absolute path (the same value
// carried by its Anchor); a bare `#fragment` link is resolved against the
// current file's own heading table when the fragment matches a heading
// there, and left unchanged otherwise. A linked file that fails to parse
// or read is silently omitted — per the multi-file contract the main
// document is still returned, just without that file's anchor.
func (w *Walker) Walk(rootPath string) ([]document.Item, error) {
	rootAbs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve root path %q: %w", rootPath, err)
	}
	scopeDir := filepath.Dir(rootAbs)

	visited := make(map[string]bool)
	docs := make(map[string]*fileDoc)
	var order []string

	stack := []string{rootAbs}
	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[path] {
			continue
		}
		visited[path] = true
		order = append(order, path)

		fd, err := w.parseOne(path)
		if err != nil {
			continue
		}
		docs[path] = fd

		var links []string
		collectLocalLinks(fd.items, &links)
		for i := len(links) - 1; i >= 0; i-- {
			resolved, ok := w.resolveLocal(path, links[i])
			if !ok || visited[resolved] || !w.inScope(scopeDir, resolved) {
				continue
			}
			stack = append(stack, resolved)
		}
	}

	var out []document.Item
	for _, path := range order {
		fd, ok := docs[path]
		if !ok {
			continue
		}
		if len(out) > 0 {
			out = append(out, &document.PageBreak{})
		}
		out = append(out, &document.Anchor{Path: path})
		rewriteLinks(fd.items, path, docs, w)
		out = append(out, fd.items...)
	}
	return out, nil
}

func (w *Walker) parseOne(path string) (*fileDoc, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	refsC := refres.NewCollector(path)
	bp := blockscan.New(refsC, w.reg)
	items := bp.Parse(linesource.New(string(content)))
	return &fileDoc{path: path, items: items, refs: refsC}, nil
}

func (w *Walker) inScope(scopeDir, path string) bool {
	rel, err := filepath.Rel(scopeDir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// resolveLocal turns a Link's raw url into an absolute path, if it looks
// like a followable local Markdown file: no scheme, not a mailto:, not a
// bare fragment, and its extension (fragment stripped) is one of the
// walker's configured extensions.
func (w *Walker) resolveLocal(currentFile, url string) (string, bool) {
	if strings.Contains(url, "://") || strings.HasPrefix(url, "mailto:") {
		return "", false
	}
	if idx := strings.Index(url, "#"); idx >= 0 {
		url = url[:idx]
	}
	if url == "" {
		return "", false
	}
	if !w.extensions[strings.ToLower(filepath.Ext(url))] {
		return "", false
	}
	var resolved string
	if filepath.IsAbs(url) {
		resolved = url
	} else {
		resolved = filepath.Join(filepath.Dir(currentFile), url)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", false
	}
	if st, err := os.Stat(abs); err != nil || st.IsDir() {
		return "", false
	}
	return abs, true
}

func collectLocalLinks(items []document.Item, out *[]string) {
	for _, it := range items {
		switch v := it.(type) {
		case *document.Link:
			if !v.FootnoteStyle {
				*out = append(*out, v.URL)
			}
			if v.Content != nil {
				collectLocalLinks(v.Content.Inlines, out)
			}
		case *document.Image:
			if v.Content != nil {
				collectLocalLinks(v.Content.Inlines, out)
			}
		case *document.Paragraph:
			collectLocalLinks(v.Inlines, out)
		case *document.Heading:
			if v.Text != nil {
				collectLocalLinks(v.Text.Inlines, out)
			}
		case *document.Blockquote:
			collectLocalLinks(v.Children, out)
		case *document.List:
			for _, li := range v.Items {
				collectLocalLinks(li.Children, out)
			}
		case *document.ListItem:
			collectLocalLinks(v.Children, out)
		case *document.Table:
			for _, r := range v.Rows {
				for _, c := range r.Cells {
					collectLocalLinks(c.Inlines, out)
				}
			}
		case *document.Footnote:
			collectLocalLinks(v.Body, out)
		}
	}
}

func rewriteLinks(items []document.Item, currentFile string, docs map[string]*fileDoc, w *Walker) {
	for _, it := range items {
		switch v := it.(type) {
		case *document.Link:
			rewriteOneLink(v, currentFile, docs, w)
			if v.Content != nil {
				rewriteLinks(v.Content.Inlines, currentFile, docs, w)
			}
		case *document.Image:
			if v.Content != nil {
				rewriteLinks(v.Content.Inlines, currentFile, docs, w)
			}
		case *document.Paragraph:
			rewriteLinks(v.Inlines, currentFile, docs, w)
		case *document.Heading:
			if v.Text != nil {
				rewriteLinks(v.Text.Inlines, currentFile, docs, w)
			}
		case *document.Blockquote:
			rewriteLinks(v.Children, currentFile, docs, w)
		case *document.List:
			for _, li := range v.Items {
				rewriteLinks(li.Children, currentFile, docs, w)
			}
		case *document.ListItem:
			rewriteLinks(v.Children, currentFile, docs, w)
		case *document.Table:
			for _, r := range v.Rows {
				for _, c := range r.Cells {
					rewriteLinks(c.Inlines, currentFile, docs, w)
				}
			}
		case *document.Footnote:
			rewriteLinks(v.Body, currentFile, docs, w)
		}
	}
}

func rewriteOneLink(l *document.Link, currentFile string, docs map[string]*fileDoc, w *Walker) {
	if strings.HasPrefix(l.URL, "#") {
		fd := docs[currentFile]
		if fd == nil {
			return
		}
		slug := refres.Slugify(strings.TrimPrefix(l.URL, "#"))
		want := "#" + slug + "/" + currentFile
		for label, h := range fd.refs.Headings() {
			if label == want {
				l.URL = h.Label
				return
			}
		}
		return
	}
	resolved, ok := w.resolveLocal(currentFile, l.URL)
	if !ok {
		return
	}
	if _, known := docs[resolved]; known {
		l.URL = resolved
	}
}
