package blockscan

import (
	"testing"

	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/linesource"
	"github.com/mdtree-go/mdtree/refres"
)

func parseDoc(t *testing.T, text string) ([]document.Item, *refres.Collector) {
	t.Helper()
	refs := refres.NewCollector("doc.md")
	p := New(refs, nil)
	return p.Parse(linesource.New(text)), refs
}

func TestATXHeading(t *testing.T) {
	items, _ := parseDoc(t, "## Title ##\n")
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	h, ok := items[0].(*document.Heading)
	if !ok || h.Level != 2 {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if got := h.Text.Inlines[0].(*document.Text).Value; got != "Title" {
		t.Errorf("heading text = %q, want %q", got, "Title")
	}
}

func TestSetextHeading(t *testing.T) {
	items, _ := parseDoc(t, "Title\n=====\n")
	h, ok := items[0].(*document.Heading)
	if !ok || h.Level != 1 {
		t.Fatalf("items[0] = %+v", items[0])
	}
}

func TestThematicBreak(t *testing.T) {
	items, _ := parseDoc(t, "para\n\n***\n")
	var found bool
	for _, it := range items {
		if _, ok := it.(*document.HorizontalLine); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("no thematic break in %+v", items)
	}
}

func TestFencedCodeBlock(t *testing.T) {
	items, _ := parseDoc(t, "```go\nfmt.Println(1)\n```\n")
	c, ok := items[0].(*document.Code)
	if !ok || !c.IsBlock || c.Syntax != "go" {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if c.Text != "fmt.Println(1)\n" {
		t.Errorf("Text = %q", c.Text)
	}
}

func TestFencedMathBlock(t *testing.T) {
	items, _ := parseDoc(t, "```math\nE = mc^2\n```\n")
	m, ok := items[0].(*document.Math)
	if !ok || !m.IsBlock {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if m.Expr != "E = mc^2\n" {
		t.Errorf("Expr = %q", m.Expr)
	}
}

func TestIndentedCodeBlock(t *testing.T) {
	items, _ := parseDoc(t, "    line one\n    line two\n")
	c, ok := items[0].(*document.Code)
	if !ok || !c.IsBlock || c.Syntax != "" {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if c.Text != "line one\nline two\n" {
		t.Errorf("Text = %q", c.Text)
	}
}

func TestBlockquote(t *testing.T) {
	items, _ := parseDoc(t, "> a\n> b\n")
	bq, ok := items[0].(*document.Blockquote)
	if !ok || len(bq.Children) != 1 {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if _, ok := bq.Children[0].(*document.Paragraph); !ok {
		t.Errorf("blockquote child = %+v, want Paragraph", bq.Children[0])
	}
}

func TestBulletList(t *testing.T) {
	items, _ := parseDoc(t, "- one\n- two\n")
	l, ok := items[0].(*document.List)
	if !ok || l.Type != document.ListUnordered || len(l.Items) != 2 {
		t.Fatalf("items[0] = %+v", items[0])
	}
}

func TestOrderedList(t *testing.T) {
	items, _ := parseDoc(t, "1. one\n2. two\n")
	l, ok := items[0].(*document.List)
	if !ok || l.Type != document.ListOrdered || len(l.Items) != 2 {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if l.Items[0].Start != 1 {
		t.Errorf("first item Start = %d, want 1", l.Items[0].Start)
	}
}

func TestTaskList(t *testing.T) {
	items, _ := parseDoc(t, "- [ ] todo\n- [x] done\n")
	l, ok := items[0].(*document.List)
	if !ok || len(l.Items) != 2 {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if !l.Items[0].IsTask || l.Items[0].Checked {
		t.Errorf("item 0 = %+v, want IsTask true, Checked false", l.Items[0])
	}
	if !l.Items[1].IsTask || !l.Items[1].Checked {
		t.Errorf("item 1 = %+v, want IsTask true, Checked true", l.Items[1])
	}
}

func TestLinkReferenceDefinitionResolvesElsewhere(t *testing.T) {
	items, refs := parseDoc(t, "[foo]: /url \"Title\"\n\nsee [foo]\n")
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 (definition produces no item): %+v", len(items), items)
	}
	if _, ok := refs.ResolveLink("foo"); !ok {
		t.Fatalf("link definition foo not registered")
	}
}

func TestFootnoteDefinition(t *testing.T) {
	items, refs := parseDoc(t, "para[^1]\n\n[^1]: the note\n    continues here\n")
	var found *document.Footnote
	for _, it := range items {
		if fn, ok := it.(*document.Footnote); ok {
			found = fn
		}
	}
	if found == nil {
		t.Fatalf("footnote definition missing from top-level items: %+v", items)
	}
	if len(found.Body) != 1 {
		t.Fatalf("footnote body = %+v, want 1 paragraph", found.Body)
	}
	fn, ok := refs.ResolveFootnote("1")
	if !ok || fn != found {
		t.Fatalf("ResolveFootnote(1) = %+v, ok=%v, want the same Footnote the top-level items carry", fn, ok)
	}
}

func TestTable(t *testing.T) {
	items, _ := parseDoc(t, "| a | b |\n|---|:-:|\n| 1 | 2 |\n")
	tbl, ok := items[0].(*document.Table)
	if !ok || tbl.Columns != 2 || len(tbl.Rows) != 2 {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if tbl.Aligns[1] != document.AlignCenter {
		t.Errorf("Aligns = %v, want column 1 centered", tbl.Aligns)
	}
}

func TestHTMLCommentBlock(t *testing.T) {
	items, _ := parseDoc(t, "<!-- a comment\nspanning lines -->\n")
	h, ok := items[0].(*document.RawHTML)
	if !ok {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if h.Text == "" {
		t.Errorf("RawHTML.Text empty")
	}
}

func TestParagraph(t *testing.T) {
	items, _ := parseDoc(t, "just some\ncontinued text\n")
	p, ok := items[0].(*document.Paragraph)
	if !ok || len(p.Inlines) == 0 {
		t.Fatalf("items[0] = %+v", items[0])
	}
}
