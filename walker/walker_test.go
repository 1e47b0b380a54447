package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdtree-go/mdtree/document"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

func TestWalkSingleFile(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "# Hello\n\npara\n")

	w := New(nil, nil)
	items, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want Anchor+Heading+Paragraph: %+v", len(items), items)
	}
	a, ok := items[0].(*document.Anchor)
	if !ok {
		t.Fatalf("items[0] = %+v, want *Anchor", items[0])
	}
	rootAbs, _ := filepath.Abs(root)
	if a.Path != rootAbs {
		t.Errorf("Anchor.Path = %q, want %q", a.Path, rootAbs)
	}
}

func TestWalkFollowsLocalLinksInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "# B\n")
	writeFile(t, dir, "root.md", "# Root\n\nsee [b](b.md) and [c](c.md)\n")
	root := filepath.Join(dir, "root.md")
	writeFile(t, dir, "c.md", "# C\n")

	w := New(nil, nil)
	items, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	var anchors []string
	for _, it := range items {
		if a, ok := it.(*document.Anchor); ok {
			anchors = append(anchors, filepath.Base(a.Path))
		}
	}
	want := []string{"root.md", "b.md", "c.md"}
	if len(anchors) != len(want) {
		t.Fatalf("anchors = %v, want %v", anchors, want)
	}
	for i := range want {
		if anchors[i] != want[i] {
			t.Errorf("anchors[%d] = %q, want %q", i, anchors[i], want[i])
		}
	}
}

func TestWalkOmitsMissingLinkedFile(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "see [gone](gone.md)\n")

	w := New(nil, nil)
	items, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	var anchors int
	for _, it := range items {
		if _, ok := it.(*document.Anchor); ok {
			anchors++
		}
	}
	if anchors != 1 {
		t.Fatalf("got %d anchors, want 1 (missing file silently omitted)", anchors)
	}
}

func TestWalkDoesNotRevisitAFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "[back](root.md)\n")
	root := writeFile(t, dir, "root.md", "[b](b.md)\n")

	w := New(nil, nil)
	items, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	var anchors int
	for _, it := range items {
		if _, ok := it.(*document.Anchor); ok {
			anchors++
		}
	}
	if anchors != 2 {
		t.Fatalf("got %d anchors, want exactly 2 (no revisit cycle)", anchors)
	}
}

func TestWalkRewritesSameFileFragmentLink(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "# My Heading\n\nsee [it](#my-heading)\n")

	w := New(nil, nil)
	items, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	var h *document.Heading
	var link *document.Link
	for _, it := range items {
		if hh, ok := it.(*document.Heading); ok {
			h = hh
		}
		if p, ok := it.(*document.Paragraph); ok {
			for _, in := range p.Inlines {
				if l, ok := in.(*document.Link); ok {
					link = l
				}
			}
		}
	}
	if h == nil || link == nil {
		t.Fatalf("missing heading or link in %+v", items)
	}
	if link.URL != h.Label {
		t.Errorf("link.URL = %q, want heading label %q", link.URL, h.Label)
	}
}

func TestWalkRejectsOutOfScopeFile(t *testing.T) {
	outside := t.TempDir()
	scoped := t.TempDir()
	writeFile(t, outside, "escape.md", "# Escape\n")
	root := writeFile(t, scoped, "root.md", "[out](../"+filepath.Base(outside)+"/escape.md)\n")

	w := New(nil, nil)
	items, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	var anchors int
	for _, it := range items {
		if _, ok := it.(*document.Anchor); ok {
			anchors++
		}
	}
	if anchors != 1 {
		t.Fatalf("got %d anchors, want 1 (out-of-scope file not followed)", anchors)
	}
}
