package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *Document {
	fn := &Footnote{SpanV: Span{}, ID: "1", Body: []Item{
		&Paragraph{Inlines: []Item{&Text{Value: "note body"}}},
	}}
	ref := &FootnoteRef{ID: "1", Target: fn}
	h := &Heading{Level: 1, Text: &Paragraph{Inlines: []Item{&Text{Value: "Title"}}}, Label: "#title/doc.md"}

	doc := New()
	doc.Items = []Item{
		h,
		&Paragraph{Inlines: []Item{&Text{Value: "intro "}, ref}},
	}
	doc.LabeledFootnotes["1"] = fn
	doc.LabeledHeadings["#title/doc.md"] = h
	return doc
}

func TestCloneProducesIndependentTree(t *testing.T) {
	doc := sampleDoc()
	clone := doc.Clone()

	origHeading := doc.Items[0].(*Heading)
	cloneHeading := clone.Items[0].(*Heading)
	require.NotSame(t, origHeading, cloneHeading, "clone must not alias the original Heading")
	assert.Equal(t, "Title", cloneHeading.Text.Inlines[0].(*Text).Value)

	cloneHeading.Level = 9
	assert.NotEqual(t, 9, origHeading.Level, "mutating the clone must not mutate the original")
}

func TestCloneRepointsFootnoteRef(t *testing.T) {
	doc := sampleDoc()
	clone := doc.Clone()

	clonePara := clone.Items[1].(*Paragraph)
	var cloneRef *FootnoteRef
	for _, it := range clonePara.Inlines {
		if r, ok := it.(*FootnoteRef); ok {
			cloneRef = r
		}
	}
	require.NotNil(t, cloneRef, "clone lost the FootnoteRef")

	cloneFn := clone.LabeledFootnotes["1"]
	assert.Same(t, cloneFn, cloneRef.Target, "cloned FootnoteRef.Target must point at the cloned Footnote map entry")
	assert.NotSame(t, doc.LabeledFootnotes["1"], cloneRef.Target, "cloned FootnoteRef.Target must not alias the original Footnote")
}

func TestCloneRepointsHeadingLabelMap(t *testing.T) {
	doc := sampleDoc()
	clone := doc.Clone()

	cloneHeading := clone.Items[0].(*Heading)
	assert.Same(t, cloneHeading, clone.LabeledHeadings["#title/doc.md"])
}

func TestWalkVisitsNestedItems(t *testing.T) {
	doc := sampleDoc()
	var kinds []Kind
	Walk(doc.Items, func(it, _ Item) {
		kinds = append(kinds, it.Kind())
	})
	want := []Kind{KindHeading, KindParagraph, KindText, KindParagraph, KindText, KindFootnoteRef}
	assert.Equal(t, want, kinds)
}

func TestWalkReportsParent(t *testing.T) {
	doc := sampleDoc()
	var parentOfFirstText Item
	Walk(doc.Items, func(it, parent Item) {
		if txt, ok := it.(*Text); ok && txt.Value == "Title" {
			parentOfFirstText = parent
		}
	})
	require.NotNil(t, parentOfFirstText, "parent not reported for heading text")
	assert.IsType(t, &Paragraph{}, parentOfFirstText)
}

func TestKindStringNamesKnownKinds(t *testing.T) {
	assert.Equal(t, "heading", KindHeading.String())
	assert.Equal(t, "user:5", (UserDefined + 5).String())
}

func TestSpanContains(t *testing.T) {
	outer := Span{Start: Position{Line: 1, Col: 1}, End: Position{Line: 5, Col: 1}}
	inner := Span{Start: Position{Line: 2, Col: 1}, End: Position{Line: 3, Col: 1}}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}
