package inline

import (
	"github.com/mdtree-go/mdtree/document"
	"github.com/mdtree-go/mdtree/plugin"
	"github.com/mdtree-go/mdtree/pstring"
	"github.com/mdtree-go/mdtree/refres"
)

// Parse converts a paragraph-like block's raw content lines into the final
// ordered sequence of inline items: flatten joins soft/hard breaks, scan
// tokenizes code/math/autolink/raw-HTML spans and leaves everything else
// as delimiter/bracket markers, and resolveInline collapses those markers
// into links, images, footnote references and styled text.
func Parse(lines []*pstring.PString, refs *refres.Collector, reg *plugin.Registry) []document.Item {
	if len(lines) == 0 {
		return nil
	}
	runes, positions, hardBefore := flattenLines(lines)
	nodes := scan(runes, positions, hardBefore, reg)
	items := resolveInline(nodes, runes, positions, refs, reg)
	return expandBareAutolinks(items)
}
