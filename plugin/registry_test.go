package plugin

import (
	"testing"

	"github.com/mdtree-go/mdtree/document"
)

func TestAddTextPluginOrdersByID(t *testing.T) {
	r := New()
	r.AddTextPlugin(5, func(s string) string { return s + "5" }, true, nil)
	r.AddTextPlugin(1, func(s string) string { return s + "1" }, true, nil)
	r.AddTextPlugin(3, func(s string) string { return s + "3" }, true, nil)

	ids := make([]int, len(r.TextPlugins()))
	for i, p := range r.TextPlugins() {
		ids[i] = p.ID
	}
	want := []int{1, 3, 5}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestApplyRunsOnlyRunOnTextPlugins(t *testing.T) {
	r := New()
	r.AddTextPlugin(1, func(s string) string { return s + "A" }, true, nil)
	r.AddTextPlugin(2, func(s string) string { return s + "B" }, false, nil)
	if got := r.Apply("x"); got != "xA" {
		t.Fatalf("Apply(x) = %q, want xA", got)
	}
}

func TestAddEmphasisTemplateFirstComeWins(t *testing.T) {
	r := New()
	r.AddEmphasisTemplate('^', document.StyleUserBase)
	r.AddEmphasisTemplate('^', document.StyleUserBase<<1)

	style, ok := r.StyleFor('^')
	if !ok || style != document.StyleUserBase {
		t.Fatalf("StyleFor(^) = %v, ok=%v, want the first registration", style, ok)
	}
	if len(r.EmphasisTemplates()) != 1 {
		t.Fatalf("EmphasisTemplates() has %d entries, want 1", len(r.EmphasisTemplates()))
	}
}

func TestHasMarker(t *testing.T) {
	r := New()
	if r.HasMarker('^') {
		t.Fatal("HasMarker(^) true before registration")
	}
	r.AddEmphasisTemplate('^', document.StyleUserBase)
	if !r.HasMarker('^') {
		t.Fatal("HasMarker(^) false after registration")
	}
}

func TestZeroValueRegistryIsUsable(t *testing.T) {
	var r Registry
	if got := r.Apply("unchanged"); got != "unchanged" {
		t.Fatalf("Apply on zero value = %q", got)
	}
	if r.HasMarker('*') {
		t.Fatal("zero-value registry reports a marker registered")
	}
}
