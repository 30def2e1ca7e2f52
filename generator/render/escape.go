package render

import (
	"slices"
	"strings"
)

// MDX parses braces as expressions, so they are escaped along with the HTML metacharacters.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"{", "&#123;",
	"}", "&#125;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"{", "&#123;",
	"}", "&#125;",
	`"`, "&quot;",
)

// Escape escapes s for use as text content of the output.
func Escape(s string) string {
	return escaper.Replace(s)
}

// EscapeAttr escapes s for use as a double quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// inlineText escapes a text run for inline output. Line breaks in the source are soft breaks.
func inlineText(s string) string {
	return Escape(strings.ReplaceAll(s, "\n", " "))
}

// Images collects the names of images referenced during a render pass.
type Images struct {
	names []string
}

// Add records name. Repeated names are only recorded once. Add on a nil accumulator is a no-op.
func (im *Images) Add(name string) {
	if im == nil || slices.Contains(im.names, name) {
		return
	}
	im.names = append(im.names, name)
}

// Names returns the recorded names in order of their first occurrence.
func (im *Images) Names() []string {
	if im == nil {
		return nil
	}
	return slices.Clone(im.names)
}
