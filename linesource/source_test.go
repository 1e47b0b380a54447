package linesource

import "testing"

func TestNewSplitsLinesAndStripsCR(t *testing.T) {
	s := New("a\r\nb\nc")
	var got []Line
	for {
		l, ok := s.Next()
		if !ok {
			break
		}
		got = append(got, l)
	}
	want := []Line{{Text: "a", Number: 1}, {Text: "b", Number: 2}, {Text: "c", Number: 3}}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNewDropsFinalTrailingNewline(t *testing.T) {
	s := New("a\nb\n")
	if s.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", s.LineCount())
	}
}

func TestPushBackReplaysLine(t *testing.T) {
	s := New("a\nb")
	l1, _ := s.Next()
	s.Push(l1)
	replay, ok := s.Next()
	if !ok || replay != l1 {
		t.Fatalf("replayed line = %+v, ok=%v, want %+v", replay, ok, l1)
	}
	l2, ok := s.Next()
	if !ok || l2.Text != "b" {
		t.Fatalf("next line after replay = %+v, ok=%v", l2, ok)
	}
}

func TestPushBackStackOrder(t *testing.T) {
	s := New("a\nb")
	l1, _ := s.Next()
	l2, _ := s.Next()
	s.Push(l1)
	s.Push(l2)
	first, _ := s.Next()
	if first != l2 {
		t.Errorf("first replay = %+v, want %+v (last pushed)", first, l2)
	}
	second, _ := s.Next()
	if second != l1 {
		t.Errorf("second replay = %+v, want %+v (first pushed)", second, l1)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := New("only")
	p, ok := s.Peek()
	if !ok || p.Text != "only" {
		t.Fatalf("Peek() = %+v, ok=%v", p, ok)
	}
	n, ok := s.Next()
	if !ok || n.Text != "only" {
		t.Fatalf("Next() after Peek = %+v, ok=%v", n, ok)
	}
}

func TestDone(t *testing.T) {
	s := New("a")
	if s.Done() {
		t.Fatal("Done() true before reading")
	}
	s.Next()
	if !s.Done() {
		t.Fatal("Done() false after draining")
	}
}

func TestFromLinesPreservesLineNumbers(t *testing.T) {
	s := FromLines([]Line{{Text: "x", Number: 42}})
	l, ok := s.Next()
	if !ok || l.Number != 42 {
		t.Fatalf("Next() = %+v, ok=%v, want Number 42", l, ok)
	}
}
