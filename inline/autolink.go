package inline

import (
	"regexp"
	"strings"

	"github.com/mdtree-go/mdtree/document"
)

// GFM extended autolinks: bare `www.`/`http(s)://` URLs and bare emails in
// ordinary text, turned into links without the `<...>` wrapper CommonMark
// proper requires. Recognised schemes are deliberately narrow (http/https
// and the `www.` prefix), matching the GFM spec's own extended-autolink
// grammar rather than the much looser schemes leaf.go's `<scheme:...>`
// form accepts.
var (
	bareURLPattern   = regexp.MustCompile(`(?i)\b(https?://[^\s<>]+|www\.[^\s<>]+)`)
	bareEmailPattern = regexp.MustCompile(`[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?)+`)

	// trailingPunct is trimmed off the end of a bare-URL match per the GFM
	// rule; a trailing `)` is special-cased below since it can legitimately
	// close a balanced paren inside the URL.
	trailingPunct = ".,:;!?*_~'\""
)

// expandBareAutolinks post-processes a finished item list (after bracket
// and emphasis resolution), splitting any plain Text run that contains a
// bare URL or email into Text/Link/Text pieces. It only looks inside plain
// (unstyled, TextNormal) Text items — a bare URL that already sits inside
// emphasis or a link's display text doesn't get re-linked.
func expandBareAutolinks(items []document.Item) []document.Item {
	out := make([]document.Item, 0, len(items))
	for _, it := range items {
		t, ok := it.(*document.Text)
		if !ok || t.Style != 0 || t.Opts != document.TextNormal {
			out = append(out, it)
			continue
		}
		out = append(out, splitBareAutolinks(t)...)
	}
	return out
}

// autolinkMatch is one bare-URL or bare-email match found in a Text run's
// value.
type autolinkMatch struct {
	start, end int
	url        string
	isEmail    bool
}

func splitBareAutolinks(t *document.Text) []document.Item {
	var matches []autolinkMatch
	for _, loc := range bareURLPattern.FindAllStringIndex(t.Value, -1) {
		start, end := loc[0], trimBareURLEnd(t.Value, loc[0], loc[1])
		if end <= start {
			continue
		}
		matches = append(matches, autolinkMatch{start: start, end: end, url: t.Value[start:end]})
	}
	for _, loc := range bareEmailPattern.FindAllStringIndex(t.Value, -1) {
		start, end := loc[0], loc[1]
		if overlapsAny(matches, start, end) {
			continue
		}
		matches = append(matches, autolinkMatch{start: start, end: end, url: t.Value[start:end], isEmail: true})
	}
	if len(matches) == 0 {
		return []document.Item{t}
	}
	sortMatches(matches)

	runes := []rune(t.Value)
	byteToRune := byteIndexToRune(t.Value)

	var out []document.Item
	cursor := 0
	for _, m := range matches {
		rs, re := byteToRune[m.start], byteToRune[m.end]
		if rs < cursor {
			continue
		}
		if rs > cursor {
			out = append(out, textSlice(t, runes, cursor, rs))
		}
		url := m.url
		if m.isEmail {
			url = "mailto:" + url
		} else if !strings.Contains(strings.ToLower(url), "://") {
			url = "http://" + url
		}
		out = append(out, &document.Link{
			SpanV: document.Span{Start: runeOffsetPos(t, rs), End: runeOffsetPos(t, re-1)},
			Text:  m.url,
			URL:   url,
		})
		cursor = re
	}
	if cursor < len(runes) {
		out = append(out, textSlice(t, runes, cursor, len(runes)))
	}
	return out
}

func trimBareURLEnd(s string, start, end int) int {
	for end > start && strings.ContainsRune(trailingPunct, rune(s[end-1])) {
		end--
	}
	for end > start && s[end-1] == ')' {
		depth := 0
		for i := start; i < end; i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
		}
		if depth >= 0 {
			break
		}
		end--
	}
	return end
}

func overlapsAny(matches []autolinkMatch, start, end int) bool {
	for _, m := range matches {
		if start < m.end && end > m.start {
			return true
		}
	}
	return false
}

func sortMatches(matches []autolinkMatch) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].start < matches[j-1].start; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
}

func byteIndexToRune(s string) map[int]int {
	m := make(map[int]int, len(s)+1)
	ri := 0
	for bi := range s {
		m[bi] = ri
		ri++
	}
	m[len(s)] = ri
	return m
}

func textSlice(orig *document.Text, runes []rune, from, to int) *document.Text {
	return &document.Text{
		SpanV: document.Span{Start: runeOffsetPos(orig, from), End: runeOffsetPos(orig, to-1)},
		Value: string(runes[from:to]),
		Opts:  document.TextNormal,
	}
}

// runeOffsetPos approximates a sub-span's position by reusing the parent
// Text's own span endpoints; virgin per-rune columns aren't retained once
// a Text has been materialized, so a bare-autolink split inside a run that
// itself spans a replace/remove edit gets the run's outer bounds rather
// than an exact interior column.
func runeOffsetPos(t *document.Text, offset int) document.Position {
	if offset <= 0 {
		return t.SpanV.Start
	}
	return t.SpanV.End
}
