// Package pstring implements the position-preserving string: a mutable
// logical line of text that remembers, for every character it currently
// holds, the (line, column) in the original source that produced it.
//
// Every primitive (Replace, Remove, Simplified, tab expansion, backslash
// escape processing) re-projects the virgin-position map rather than
// discarding it, so that positions recorded by later phases (the inline
// tokenizer) can be traced back through escape processing and whitespace
// normalisation to the byte the author actually typed.
package pstring

import (
	"strings"
	"unicode"

	"github.com/mdtree-go/mdtree/document"
)

// PString is one logical line of content together with its virgin-position
// map. It is not safe for concurrent use; callers own it exclusively for
// its lifetime, matching the single-threaded parser described by the
// design.
type PString struct {
	line  int
	chars []rune
	cols  []int
}

// NewLine builds a PString from raw source text, a 1-based line number, and
// the 0-based column of its first character. The virgin map starts as the
// identity mapping: logical character i maps to column startCol+i.
func NewLine(line int, text string, startCol int) *PString {
	chars := []rune(text)
	cols := make([]int, len(chars))
	for i := range chars {
		cols[i] = startCol + i
	}
	return &PString{line: line, chars: chars, cols: cols}
}

// Line returns the source line number this string was built from.
func (p *PString) Line() int { return p.line }

// Len returns the number of logical characters currently held.
func (p *PString) Len() int { return len(p.chars) }

// AsString returns the current logical content.
func (p *PString) AsString() string { return string(p.chars) }

// VirginPos returns the original source position that produced logical
// character i. It is monotonically non-decreasing in i across any sequence
// of Replace/Remove/Simplified calls.
func (p *PString) VirginPos(i int) document.Position {
	if i < 0 {
		i = 0
	}
	if i >= len(p.cols) {
		if len(p.cols) == 0 {
			return document.Position{Line: p.line, Col: 0}
		}
		i = len(p.cols) - 1
	}
	return document.Position{Line: p.line, Col: p.cols[i]}
}

// Clone returns an independent copy of the string and its virgin map.
func (p *PString) Clone() *PString {
	return &PString{
		line:  p.line,
		chars: append([]rune(nil), p.chars...),
		cols:  append([]int(nil), p.cols...),
	}
}

// Slice extracts the logical substring [start, end) as a new, independent
// PString; the extracted portion keeps its original virgin columns.
func (p *PString) Slice(start, end int) *PString {
	if start < 0 {
		start = 0
	}
	if end > len(p.chars) {
		end = len(p.chars)
	}
	if start > end {
		start = end
	}
	return &PString{
		line:  p.line,
		chars: append([]rune(nil), p.chars[start:end]...),
		cols:  append([]int(nil), p.cols[start:end]...),
	}
}

func findRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, n := range needle {
			if haystack[i+j] != n {
				continue outer
			}
		}
		return i
	}
	return -1
}

// Replace substitutes the first occurrence of needle with with, re-mapping
// virgin columns for the replaced region:
//
//   - when with is no longer than the matched region, each resulting
//     character keeps the virgin column of the corresponding original
//     character (a replacement that shrinks to nothing removes the region's
//     columns entirely);
//   - when with is longer than the matched region, the extra inserted
//     characters all collapse onto the virgin column of the region's first
//     character.
//
// Replace is a no-op if needle does not occur.
func (p *PString) Replace(needle, with string) *PString {
	nr := []rune(needle)
	idx := findRunes(p.chars, nr)
	if idx < 0 {
		return p
	}
	end := idx + len(nr)
	p.replaceRange(idx, end, []rune(with))
	return p
}

// ReplaceAll repeatedly applies Replace until needle no longer occurs.
func (p *PString) ReplaceAll(needle, with string) *PString {
	nr := []rune(needle)
	if len(nr) == 0 {
		return p
	}
	for {
		idx := findRunes(p.chars, nr)
		if idx < 0 {
			return p
		}
		p.replaceRange(idx, idx+len(nr), []rune(with))
	}
}

func (p *PString) replaceRange(start, end int, with []rune) {
	origCols := p.cols[start:end]
	var base int
	switch {
	case len(origCols) > 0:
		base = origCols[0]
	case start < len(p.cols):
		base = p.cols[start]
	case len(p.cols) > 0:
		base = p.cols[len(p.cols)-1]
	default:
		base = 0
	}

	newCols := make([]int, len(with))
	for i := range with {
		if i < len(origCols) {
			newCols[i] = origCols[i]
		} else {
			newCols[i] = base
		}
	}

	chars := make([]rune, 0, len(p.chars)-(end-start)+len(with))
	chars = append(chars, p.chars[:start]...)
	chars = append(chars, with...)
	chars = append(chars, p.chars[end:]...)

	cols := make([]int, 0, cap(chars))
	cols = append(cols, p.cols[:start]...)
	cols = append(cols, newCols...)
	cols = append(cols, p.cols[end:]...)

	p.chars = chars
	p.cols = cols
}

// Remove deletes the logical run [offset, offset+length), dropping its
// virgin columns; characters after the removed run keep their original
// columns, which is what makes VirginPos stay monotonic across the delete.
func (p *PString) Remove(offset, length int) *PString {
	if length <= 0 {
		return p
	}
	end := offset + length
	if end > len(p.chars) {
		end = len(p.chars)
	}
	if offset < 0 || offset >= end {
		return p
	}
	p.replaceRange(offset, end, nil)
	return p
}

// Simplified returns a new PString with leading/trailing whitespace
// trimmed and interior runs of whitespace collapsed to a single space,
// following the same collapse rule as Replace: a collapsed run's surviving
// space keeps the virgin column of the run's first character.
func (p *PString) Simplified() *PString {
	var chars []rune
	var cols []int

	i := 0
	n := len(p.chars)
	// Skip leading whitespace.
	for i < n && unicode.IsSpace(p.chars[i]) {
		i++
	}
	for i < n {
		if unicode.IsSpace(p.chars[i]) {
			start := i
			for i < n && unicode.IsSpace(p.chars[i]) {
				i++
			}
			if i >= n {
				break // trailing whitespace: drop it
			}
			chars = append(chars, ' ')
			cols = append(cols, p.cols[start])
			continue
		}
		chars = append(chars, p.chars[i])
		cols = append(cols, p.cols[i])
		i++
	}

	return &PString{line: p.line, chars: chars, cols: cols}
}

// ExpandTabs replaces every tab character with enough spaces to reach the
// next stop of tabSize columns measured in logical characters so far; all
// spaces inserted for one tab collapse onto that tab's original column.
func (p *PString) ExpandTabs(tabSize int) *PString {
	if tabSize <= 0 {
		tabSize = 4
	}
	for {
		idx := -1
		for i, c := range p.chars {
			if c == '\t' {
				idx = i
				break
			}
		}
		if idx < 0 {
			return p
		}
		spaces := tabSize - (idx % tabSize)
		p.replaceRange(idx, idx+1, []rune(strings.Repeat(" ", spaces)))
	}
}

// backslashEscapable is the CommonMark set of ASCII punctuation characters
// that may be backslash-escaped.
const backslashEscapable = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ProcessBackslashEscapes removes the backslash from every
// `\`+punctuation pair, left to right, so later phases see the literal
// character at the position of the character it escaped (not the
// backslash).
func (p *PString) ProcessBackslashEscapes() *PString {
	i := 0
	for i < len(p.chars)-1 {
		if p.chars[i] == '\\' && strings.ContainsRune(backslashEscapable, p.chars[i+1]) {
			p.replaceRange(i, i+1, nil)
			i++
			continue
		}
		i++
	}
	return p
}
