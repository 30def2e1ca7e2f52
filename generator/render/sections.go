package render

import (
	"fmt"
	"strconv"
	"strings"

	"znkr.io/doxymd/generator/dom"
)

// maxHeadingLevel is the deepest heading Markdown supports.
const maxHeadingLevel = 6

func registerSections(reg Registerer) {
	reg.Lines(dom.KindSection, renderSection)
	reg.Lines(dom.KindHeading, renderHeading)
	reg.Lines(dom.KindTitle, renderTitle)
	reg.String(dom.KindTitle, renderTitleString)
}

// Heading returns the lines of a heading at the given level, with an anchor derived from id
// unless id is empty. Levels deeper than Markdown supports are emulated by a bold paragraph.
func (r *Renderer) Heading(level int, title, id string) []string {
	var anchor string
	if id != "" {
		anchor = r.resolver.Anchor(id)
	}
	level = max(level, 1)

	if level > maxHeadingLevel {
		r.log.Debug("heading too deep, using bold text", "level", level, "id", id)
		if anchor == "" {
			return []string{"<p><b>" + title + "</b></p>"}
		}
		return []string{fmt.Sprintf(`<p id="%s"><b>%s</b></p>`, EscapeAttr(anchor), title)}
	}

	if r.html {
		if anchor == "" {
			return []string{fmt.Sprintf("<h%d>%s</h%d>", level, title, level)}
		}
		return []string{fmt.Sprintf(`<h%d id="%s">%s</h%d>`, level, EscapeAttr(anchor), title, level)}
	}

	h := strings.Repeat("#", level) + " " + title
	if anchor != "" {
		h += " {#" + anchor + "}"
	}
	return []string{"", h, ""}
}

// HeadingOffset returns the configured heading offset.
func (r *Renderer) HeadingOffset() int { return r.opts.HeadingOffset }

func renderSection(r *Renderer, n *dom.Node) []string {
	title := n.First(dom.KindTitle)
	var text string
	if title != nil {
		text = strings.TrimSpace(r.RenderInlineMany(title.Children))
	}
	lines := r.Heading(sectionDepth(r, n.Kind)+r.opts.HeadingOffset, text, n.ID())

	rest := make([]dom.Content, 0, len(n.Children))
	for _, c := range n.Children {
		if c, ok := c.(*dom.Node); ok && c == title {
			continue
		}
		rest = append(rest, c)
	}
	return append(lines, r.RenderBlockMany(rest)...)
}

// sectionDepth returns the nesting depth of a section kind, taken from the nearest sectN kind in
// its chain.
func sectionDepth(r *Renderer, k dom.Kind) int {
	for _, a := range r.opts.Schema.Chain(k) {
		s, ok := strings.CutPrefix(string(a), "sect")
		if !ok {
			continue
		}
		if d, err := strconv.Atoi(s); err == nil && d > 0 {
			return d
		}
	}
	return 1
}

func renderHeading(r *Renderer, n *dom.Node) []string {
	level, err := strconv.Atoi(n.Attr("level"))
	if err != nil || level < 1 {
		r.log.Warn("invalid heading level, using 1", "level", n.Attr("level"))
		level = 1
	}
	return r.Heading(level+r.opts.HeadingOffset, strings.TrimSpace(r.RenderInlineMany(n.Children)), "")
}

func renderTitle(r *Renderer, n *dom.Node) []string {
	return r.Heading(1+r.opts.HeadingOffset, strings.TrimSpace(r.RenderInlineMany(n.Children)), "")
}

func renderTitleString(r *Renderer, n *dom.Node) string {
	return "<b>" + strings.TrimSpace(r.RenderInlineMany(n.Children)) + "</b>"
}
