package inline

import (
	"strings"
	"unicode"

	"github.com/mdtree-go/mdtree/document"
)

// scanCodeSpan tries to parse a backtick-delimited code span starting at i
// (runes[i] == '`'). It returns the resolved leaf node and the index just
// past the closing fence, or ok=false if no matching closer of the same
// run length exists (in which case the backticks are left as literal
// text).
func scanCodeSpan(runes []rune, positions []document.Position, i int) (node, int, bool) {
	n := i
	for n < len(runes) && runes[n] == '`' {
		n++
	}
	fenceLen := n - i
	j := n
	for j < len(runes) {
		if runes[j] != '`' {
			j++
			continue
		}
		k := j
		for k < len(runes) && runes[k] == '`' {
			k++
		}
		if k-j == fenceLen {
			content := runes[n:j]
			text := stripCodeSpanPadding(string(content))
			item := &document.Code{
				SpanV:      document.Span{Start: positions[i], End: positions[k-1]},
				Text:       text,
				OpenDelim:  document.Span{Start: positions[i], End: positions[n-1]},
				CloseDelim: document.Span{Start: positions[j], End: positions[k-1]},
			}
			return node{kind: nodeLeaf, leaf: item, startIdx: i, endIdx: k}, k, true
		}
		j = k
	}
	return node{}, i, false
}

func stripCodeSpanPadding(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, " ") && strings.HasSuffix(s, " ") && strings.TrimSpace(s) != "" {
		return s[1 : len(s)-1]
	}
	return s
}

// scanInlineMath tries to parse a `$...$` inline math span starting at i
// (runes[i] == '$'). Per the spec, both delimiters must be adjacent to
// non-space content, which rules out `$5 and $6` being read as math.
func scanInlineMath(runes []rune, positions []document.Position, i int) (node, int, bool) {
	if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '$' {
		return node{}, i, false
	}
	for j := i + 1; j < len(runes); j++ {
		if runes[j] != '$' {
			continue
		}
		if runes[j-1] == ' ' {
			return node{}, i, false
		}
		if j+1 < len(runes) && runes[j+1] == '$' {
			return node{}, i, false
		}
		content := string(runes[i+1 : j])
		item := &document.Math{
			SpanV:      document.Span{Start: positions[i], End: positions[j]},
			Expr:       content,
			OpenDelim:  document.Span{Start: positions[i], End: positions[i]},
			CloseDelim: document.Span{Start: positions[j], End: positions[j]},
		}
		return node{kind: nodeLeaf, leaf: item, startIdx: i, endIdx: j + 1}, j + 1, true
	}
	return node{}, i, false
}

var autolinkSchemes = []string{"http", "https", "ftp", "ftps", "mailto", "tel", "file", "irc"}

// scanAutolink tries to parse a CommonMark `<scheme:...>` or `<email>`
// autolink starting at i (runes[i] == '<').
func scanAutolink(runes []rune, positions []document.Position, i int) (node, int, bool) {
	j := i + 1
	start := j
	for j < len(runes) && runes[j] != '>' && runes[j] != ' ' && runes[j] != '<' {
		j++
	}
	if j >= len(runes) || runes[j] != '>' {
		return node{}, i, false
	}
	body := string(runes[start:j])
	if looksLikeURI(body) {
		return autolinkNode(body, body, positions[i], positions[j], i, j+1), j + 1, true
	}
	if looksLikeEmail(body) {
		return autolinkNode(body, "mailto:"+body, positions[i], positions[j], i, j+1), j + 1, true
	}
	return node{}, i, false
}

func autolinkNode(text, url string, start, end document.Position, startIdx, endIdx int) node {
	item := &document.Link{
		SpanV: document.Span{Start: start, End: end},
		Text:  text,
		URL:   url,
	}
	return node{kind: nodeLeaf, leaf: item, startIdx: startIdx, endIdx: endIdx}
}

func looksLikeURI(s string) bool {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}
	scheme := strings.ToLower(s[:i])
	for _, sc := range autolinkSchemes {
		if scheme == sc {
			return i+1 < len(s)
		}
	}
	return false
}

func looksLikeEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	for _, r := range local {
		if unicode.IsSpace(r) {
			return false
		}
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, r := range domain {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

var htmlBlockTagLike = func(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
}

// scanRawHTMLSpan tries to parse an inline raw-HTML construct starting at i
// (runes[i] == '<'): a comment, processing instruction, or open/close tag.
// Attribute values are scanned so that a `>` inside a quoted attribute
// doesn't end the tag early.
func scanRawHTMLSpan(runes []rune, positions []document.Position, i int) (node, int, bool) {
	n := len(runes)
	if i+3 < n && runes[i+1] == '!' && runes[i+2] == '-' && runes[i+3] == '-' {
		if end := indexOfRunes(runes, "-->", i+4); end >= 0 {
			return rawHTML(runes, positions, i, end+3), end + 3, true
		}
		return node{}, i, false
	}
	if i+1 < n && runes[i+1] == '?' {
		if end := indexOfRunes(runes, "?>", i+2); end >= 0 {
			return rawHTML(runes, positions, i, end+2), end + 2, true
		}
		return node{}, i, false
	}
	j := i + 1
	closing := false
	if j < n && runes[j] == '/' {
		closing = true
		j++
	}
	start := j
	for j < n && htmlBlockTagLike(runes[j]) {
		j++
	}
	if j == start {
		return node{}, i, false
	}
	_ = closing
	// Scan attributes/whitespace until an unquoted '>'.
	for j < n {
		switch runes[j] {
		case '>':
			return rawHTML(runes, positions, i, j+1), j + 1, true
		case '"', '\'':
			quote := runes[j]
			j++
			for j < n && runes[j] != quote {
				j++
			}
			if j >= n {
				return node{}, i, false
			}
			j++
		default:
			j++
		}
	}
	return node{}, i, false
}

func rawHTML(runes []rune, positions []document.Position, start, end int) node {
	item := &document.RawHTML{
		SpanV: document.Span{Start: positions[start], End: positions[end-1]},
		Text:  string(runes[start:end]),
	}
	return node{kind: nodeLeaf, leaf: item, startIdx: start, endIdx: end}
}

func indexOfRunes(haystack []rune, needle string, from int) int {
	nr := []rune(needle)
	for i := from; i+len(nr) <= len(haystack); i++ {
		match := true
		for k, r := range nr {
			if haystack[i+k] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
