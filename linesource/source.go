// Package linesource produces a Markdown document as a sequence of
// (raw-text, line-number) pairs and supports pushing a line back so a block
// that over-read can return it unconsumed.
package linesource

import "strings"

// Line is one line of raw source text and its 1-based line number.
type Line struct {
	Text   string
	Number int
}

// Source is a forward-only stream of Lines with an unbounded push-back
// stack. Returning a line rewinds only the logical read cursor: the line's
// Number travels with it, so numbering is never recomputed.
type Source struct {
	lines  []Line
	pos    int // index into lines of the next line Next() will return
	pushed []Line
}

// New splits text into lines (on \n, with a trailing \r stripped from each)
// and returns a Source starting at line 1. A final line with no trailing
// newline is included; text ending in "\n" does not produce a trailing
// empty line.
func New(text string) *Source {
	raw := strings.Split(text, "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]Line, len(raw))
	for i, l := range raw {
		lines[i] = Line{Text: strings.TrimSuffix(l, "\r"), Number: i + 1}
	}
	return &Source{lines: lines}
}

// FromLines builds a Source directly from already-numbered lines. Each
// line keeps the Number it was given, so lines taken from the middle of a
// document are never renumbered relative to that document.
func FromLines(lines []Line) *Source {
	return &Source{lines: append([]Line(nil), lines...)}
}

// Next returns the next line and true, or a zero Line and false at
// end-of-input. It drains the push-back stack first, in last-in-first-out
// order.
func (s *Source) Next() (Line, bool) {
	if n := len(s.pushed); n > 0 {
		l := s.pushed[n-1]
		s.pushed = s.pushed[:n-1]
		return l, true
	}
	if s.pos >= len(s.lines) {
		return Line{}, false
	}
	l := s.lines[s.pos]
	s.pos++
	return l, true
}

// Push returns a line to the front of the stream; the next call to Next
// will return it again, unchanged. Callers may push back more than one
// line before reading again; they come off in reverse order of pushing, as
// a stack.
func (s *Source) Push(l Line) {
	s.pushed = append(s.pushed, l)
}

// Peek returns the line Next would return without consuming it.
func (s *Source) Peek() (Line, bool) {
	l, ok := s.Next()
	if ok {
		s.Push(l)
	}
	return l, ok
}

// Done reports whether the stream (including the push-back stack) is
// exhausted.
func (s *Source) Done() bool {
	return len(s.pushed) == 0 && s.pos >= len(s.lines)
}

// LineCount returns the total number of lines in the underlying document,
// regardless of how much has been consumed.
func (s *Source) LineCount() int {
	return len(s.lines)
}
