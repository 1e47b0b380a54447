package mdtree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdtree-go/mdtree/document"
)

func TestParseBasicDocument(t *testing.T) {
	doc := Parse("# Title\n\nsome *text*\n", "doc.md", Options{})
	if len(doc.Items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(doc.Items), doc.Items)
	}
	h, ok := doc.Items[0].(*document.Heading)
	if !ok || h.Level != 1 {
		t.Fatalf("items[0] = %+v", doc.Items[0])
	}
	if doc.LabeledHeadings[h.Label] != h {
		t.Fatalf("heading not registered in LabeledHeadings")
	}
}

func TestParseFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	if err := os.WriteFile(path, []byte("# A\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	doc, err := ParseFile(path, Options{})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(doc.Items))
	}
}

func TestParseFileMissingFileErrors(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.md"), Options{})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseFileRecursiveAssemblesLinkedFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte("# B\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	root := filepath.Join(dir, "root.md")
	if err := os.WriteFile(root, []byte("# Root\n\nsee [b](b.md)\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	doc, err := ParseFile(root, Options{Recursive: true})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	var anchors int
	for _, it := range doc.Items {
		if _, ok := it.(*document.Anchor); ok {
			anchors++
		}
	}
	if anchors != 2 {
		t.Fatalf("got %d anchors, want 2", anchors)
	}
}

func TestBuildCacheFindsHeading(t *testing.T) {
	doc := Parse("# Title\n", "doc.md", Options{})
	cache := BuildCache(doc)
	h := doc.Items[0].(*document.Heading)
	chain := cache.Find(h.Text.SpanV)
	if len(chain) == 0 {
		t.Fatal("expected a non-empty chain for the heading's own text span")
	}
}
