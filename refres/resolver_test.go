package refres

import (
	"testing"

	"github.com/mdtree-go/mdtree/document"
)

func TestNormalizeLabel(t *testing.T) {
	cases := map[string]string{
		"Foo Bar":    "foo bar",
		"foo   bar":  "foo bar",
		"  Foo  ":    "foo",
		"ALLCAPS":    "allcaps",
	}
	for in, want := range cases {
		if got := NormalizeLabel(in); got != want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":  "hello-world",
		"  leading":      "leading",
		"trailing  ":     "trailing",
		"a---b":          "a-b",
		"Já ça va":       "já-ça-va",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefineLinkFirstWins(t *testing.T) {
	c := NewCollector("doc.md")
	c.DefineLink("foo", "/first", "", document.Span{})
	c.DefineLink("FOO", "/second", "", document.Span{})
	l, ok := c.ResolveLink("foo")
	if !ok || l.URL != "/first" {
		t.Fatalf("ResolveLink(foo) = %+v, ok=%v, want URL /first", l, ok)
	}
}

func TestDefineFootnoteFirstWins(t *testing.T) {
	c := NewCollector("doc.md")
	c.DefineFootnote("1", &document.Footnote{ID: "1"})
	second := &document.Footnote{ID: "1", Body: []document.Item{&document.HorizontalLine{}}}
	c.DefineFootnote("1", second)
	fn, ok := c.ResolveFootnote("1")
	if !ok || fn.Body != nil {
		t.Fatalf("ResolveFootnote(1) took the second definition: %+v", fn)
	}
}

func TestRegisterHeadingDedupesSlugs(t *testing.T) {
	c := NewCollector("doc.md")
	h1 := &document.Heading{}
	h2 := &document.Heading{}
	h3 := &document.Heading{}
	c.RegisterHeading(h1, "Intro")
	c.RegisterHeading(h2, "Intro")
	c.RegisterHeading(h3, "Intro")

	if h1.Label != "#intro/doc.md" {
		t.Errorf("h1.Label = %q", h1.Label)
	}
	if h2.Label != "#intro-1/doc.md" {
		t.Errorf("h2.Label = %q", h2.Label)
	}
	if h3.Label != "#intro-2/doc.md" {
		t.Errorf("h3.Label = %q", h3.Label)
	}
	if len(c.Headings()) != 3 {
		t.Errorf("Headings() has %d entries, want 3", len(c.Headings()))
	}
}

func TestRegisterHeadingCollidesWithExplicitSlugName(t *testing.T) {
	// A heading literally titled "Intro-1" should not collide silently with
	// the synthesised dedup suffix for a second "Intro" heading.
	c := NewCollector("doc.md")
	hExplicit := &document.Heading{}
	hDup1 := &document.Heading{}
	hDup2 := &document.Heading{}

	c.RegisterHeading(hExplicit, "Intro-1")
	c.RegisterHeading(hDup1, "Intro")
	c.RegisterHeading(hDup2, "Intro")

	labels := map[string]bool{hExplicit.Label: true, hDup1.Label: true, hDup2.Label: true}
	if len(labels) != 3 {
		t.Fatalf("expected 3 distinct labels, got %v", labels)
	}
}
