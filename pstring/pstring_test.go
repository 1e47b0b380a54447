package pstring

import (
	"testing"

	"github.com/mdtree-go/mdtree/document"
)

func TestNewLineVirginPos(t *testing.T) {
	p := NewLine(3, "abc", 5)
	for i, want := range []int{5, 6, 7} {
		if got := p.VirginPos(i); got != (document.Position{Line: 3, Col: want}) {
			t.Errorf("VirginPos(%d) = %v, want line 3 col %d", i, got, want)
		}
	}
}

func TestVirginPosClampsOutOfRange(t *testing.T) {
	p := NewLine(1, "ab", 1)
	if got := p.VirginPos(-1); got.Col != 1 {
		t.Errorf("VirginPos(-1) = %v, want col 1", got)
	}
	if got := p.VirginPos(50); got.Col != 2 {
		t.Errorf("VirginPos(50) = %v, want col 2 (last char)", got)
	}
	empty := NewLine(1, "", 1)
	if got := empty.VirginPos(0); got.Col != 0 {
		t.Errorf("VirginPos(0) on empty = %v, want col 0", got)
	}
}

func TestSlicePreservesVirginColumns(t *testing.T) {
	p := NewLine(1, "hello world", 1)
	s := p.Slice(6, 11)
	if s.AsString() != "world" {
		t.Fatalf("AsString() = %q", s.AsString())
	}
	if got := s.VirginPos(0); got.Col != 7 {
		t.Errorf("sliced VirginPos(0) = %v, want col 7", got)
	}
}

func TestReplaceShrinkKeepsFirstColumn(t *testing.T) {
	p := NewLine(1, "a**b**c", 1)
	p.Replace("**", "")
	if p.AsString() != "ab**c" {
		t.Fatalf("AsString() = %q", p.AsString())
	}
	// The surviving 'b' should keep its original column (4).
	if got := p.VirginPos(1); got.Col != 4 {
		t.Errorf("VirginPos(1) after shrink = %v, want col 4", got)
	}
}

func TestReplaceAllRemovesEveryOccurrence(t *testing.T) {
	p := NewLine(1, "a\\*b\\*c", 1)
	p.ReplaceAll("\\*", "*")
	if p.AsString() != "a*b*c" {
		t.Fatalf("AsString() = %q", p.AsString())
	}
}

func TestProcessBackslashEscapes(t *testing.T) {
	p := NewLine(1, `\*not emphasis\*`, 1)
	p.ProcessBackslashEscapes()
	if p.AsString() != "*not emphasis*" {
		t.Fatalf("AsString() = %q", p.AsString())
	}
}

func TestExpandTabsAlignsToStops(t *testing.T) {
	p := NewLine(1, "a\tb", 1)
	p.ExpandTabs(4)
	if p.AsString() != "a   b" {
		t.Fatalf("AsString() = %q", p.AsString())
	}
}

func TestSimplifiedCollapsesWhitespace(t *testing.T) {
	p := NewLine(1, "  a   b  ", 1)
	s := p.Simplified()
	if s.AsString() != "a b" {
		t.Fatalf("AsString() = %q", s.AsString())
	}
}

func TestRemoveKeepsTrailingColumnsMonotonic(t *testing.T) {
	p := NewLine(1, "abcdef", 1)
	p.Remove(1, 2) // removes "bc"
	if p.AsString() != "adef" {
		t.Fatalf("AsString() = %q", p.AsString())
	}
	if got := p.VirginPos(1); got.Col != 4 {
		t.Errorf("VirginPos(1) after Remove = %v, want col 4 (the 'd')", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewLine(1, "abc", 1)
	c := p.Clone()
	c.Remove(0, 1)
	if p.AsString() != "abc" {
		t.Errorf("original mutated: %q", p.AsString())
	}
	if c.AsString() != "bc" {
		t.Errorf("clone = %q, want %q", c.AsString(), "bc")
	}
}
