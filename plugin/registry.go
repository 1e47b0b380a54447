// Package plugin implements the registered inline text post-processor
// registry and the parametric emphasis-template factory that lets a host
// application register its own delimiter pairs (e.g. `^text^` for a custom
// style bit) alongside the built-in `*`/`_`/`~~` markers.
package plugin

import (
	"sort"

	"github.com/mdtree-go/mdtree/document"
)

// TextPluginFunc post-processes the literal value of a text run and
// returns its replacement.
type TextPluginFunc func(text string) string

// TextPlugin is one registered post-processor: a priority tag used to
// order plugins deterministically, the function itself, whether it runs
// over Text items (as opposed to, say, raw-HTML spans only), and an opaque
// parameter bag the function can close over at registration time.
type TextPlugin struct {
	ID        int
	Fn        TextPluginFunc
	RunOnText bool
	Params    map[string]string
}

// EmphasisTemplate is a user-defined `{marker, style-bit}` pair that
// extends the delimiter set with the same open/close flanking rules as
// `*`.
type EmphasisTemplate struct {
	Marker rune
	Style  document.Style
}

// Registry holds one document parse's plugin configuration. The zero value
// is usable (no plugins registered).
type Registry struct {
	textPlugins []TextPlugin
	templates   []EmphasisTemplate
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// AddTextPlugin registers a text post-processor, keeping the internal
// slice sorted by id so that TextPlugins always returns plugins in a
// deterministic, id-ascending application order regardless of
// registration order.
func (r *Registry) AddTextPlugin(id int, fn TextPluginFunc, runOnText bool, params map[string]string) {
	p := TextPlugin{ID: id, Fn: fn, RunOnText: runOnText, Params: params}
	i := sort.Search(len(r.textPlugins), func(i int) bool { return r.textPlugins[i].ID >= id })
	r.textPlugins = append(r.textPlugins, TextPlugin{})
	copy(r.textPlugins[i+1:], r.textPlugins[i:])
	r.textPlugins[i] = p
}

// TextPlugins returns the registered plugins in application order.
func (r *Registry) TextPlugins() []TextPlugin {
	return r.textPlugins
}

// Apply runs every registered text plugin (in order) over text and returns
// the final value.
func (r *Registry) Apply(text string) string {
	for _, p := range r.textPlugins {
		if p.RunOnText {
			text = p.Fn(text)
		}
	}
	return text
}

// AddEmphasisTemplate registers a user-defined delimiter/style-bit pair.
// Per the open question in the design notes, a marker already claimed by
// an earlier registration (built-in or plugin) is left alone:
// first-come-wins.
func (r *Registry) AddEmphasisTemplate(marker rune, style document.Style) {
	if marker == '*' || marker == '_' || marker == '~' || r.HasMarker(marker) {
		return
	}
	r.templates = append(r.templates, EmphasisTemplate{Marker: marker, Style: style})
}

// EmphasisTemplates returns the registered emphasis templates in
// registration order.
func (r *Registry) EmphasisTemplates() []EmphasisTemplate {
	return r.templates
}

// HasMarker reports whether marker is already claimed by a registered
// template.
func (r *Registry) HasMarker(marker rune) bool {
	for _, t := range r.templates {
		if t.Marker == marker {
			return true
		}
	}
	return false
}

// StyleFor returns the style bit registered for marker, if any.
func (r *Registry) StyleFor(marker rune) (document.Style, bool) {
	for _, t := range r.templates {
		if t.Marker == marker {
			return t.Style, true
		}
	}
	return 0, false
}
