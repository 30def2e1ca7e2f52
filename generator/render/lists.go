package render

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"znkr.io/doxymd/generator/dom"
)

func registerLists(reg Registerer) {
	reg.Lines(dom.KindList, renderList)
	reg.Lines(dom.KindListItem, renderListItem)
	reg.Lines(dom.KindVariableList, renderVariableList)
	reg.Lines(dom.KindXRefSect, renderXRefSect)
	reg.Lines(dom.KindSimpleSect, renderSimpleSect)
	reg.Lines(dom.KindParameterList, renderParameterList)
}

// container wraps the blocks of each child in open and close. Blocks of different children are
// separated by a blank line. A single paragraph is unwrapped and put on one line with the
// container tags.
func container(open, close string, parts [][]string) []string {
	switch len(parts) {
	case 0:
		return []string{open + close}
	case 1:
		if p := parts[0]; len(p) == 1 && strings.HasPrefix(p[0], "<p>") && strings.HasSuffix(p[0], "</p>") {
			return []string{open + strings.TrimSuffix(strings.TrimPrefix(p[0], "<p>"), "</p>") + close}
		}
	}
	lines := []string{open}
	for i, p := range parts {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, p...)
	}
	return append(lines, close)
}

// blockParts renders every element child of n in block mode, skipping the ones that render
// nothing and the ones in skip.
func (r *Renderer) blockParts(n *dom.Node, skip ...*dom.Node) [][]string {
	if n == nil {
		return nil
	}
	var parts [][]string
	for _, c := range n.Children {
		switch c := c.(type) {
		case dom.Text:
			if s := strings.TrimSpace(string(c)); s != "" {
				parts = append(parts, []string{"<p>" + inlineText(s) + "</p>"})
			}
		case *dom.Node:
			if slices.Contains(skip, c) {
				continue
			}
			if lines := r.RenderBlock(c); len(lines) > 0 {
				parts = append(parts, lines)
			}
		}
	}
	return parts
}

var listTypes = []string{"1", "a", "A", "i", "I"}

func renderList(r *Renderer, n *dom.Node) []string {
	tag := "ul"
	var attrs string
	if slices.Contains(r.opts.Schema.Chain(n.Kind), dom.KindOrderedList) {
		tag = "ol"
		if t := n.Attr("type"); t != "" {
			if slices.Contains(listTypes, t) {
				attrs += fmt.Sprintf(` type="%s"`, t)
			} else {
				r.log.Warn("unknown ordered list type", "type", t)
			}
		}
		if s := n.Attr("start"); s != "" {
			if _, err := strconv.Atoi(s); err == nil {
				attrs += fmt.Sprintf(` start="%s"`, s)
			} else {
				r.log.Warn("invalid ordered list start", "start", s)
			}
		}
	}

	lines := []string{"<" + tag + attrs + ">"}
	for _, item := range n.All(dom.KindListItem) {
		lines = append(lines, r.RenderBlock(item)...)
	}
	return append(lines, "</"+tag+">")
}

func renderListItem(r *Renderer, n *dom.Node) []string {
	open := "<li>"
	if v := n.Attr("value"); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			open = fmt.Sprintf(`<li value="%s">`, v)
		} else {
			r.log.Warn("invalid list item value", "value", v)
		}
	}
	switch o := n.Attr("override"); o {
	case "":
	case "checked":
		open += `<input type="checkbox" checked disabled/> `
	case "unchecked":
		open += `<input type="checkbox" disabled/> `
	default:
		r.log.Warn("unknown list item override", "override", o)
	}
	return container(open, "</li>", r.blockParts(n))
}

// pair is a term and its definition. Either may be nil when the input doesn't alternate.
type pair struct {
	term, def *dom.Node
}

// pairs groups the alternating term and definition children of n in a single pass. A definition
// without a preceding term is logged and paired with a nil term.
func (r *Renderer) pairs(n *dom.Node, termKind, defKind dom.Kind) []pair {
	var ret []pair
	var term *dom.Node
	for _, c := range n.Nodes() {
		switch c.Kind {
		case termKind:
			if term != nil {
				ret = append(ret, pair{term: term})
			}
			term = c
		case defKind:
			if term == nil {
				r.log.Warn("definition without term", "kind", n.Kind)
			}
			ret = append(ret, pair{term: term, def: c})
			term = nil
		default:
			r.log.Warn("unexpected child", "kind", n.Kind, "child", c.Kind)
		}
	}
	if term != nil {
		ret = append(ret, pair{term: term})
	}
	return ret
}

func renderVariableList(r *Renderer, n *dom.Node) []string {
	lines := []string{`<dl class="doxyVariableList">`}
	for _, p := range r.pairs(n, dom.KindVarListEntry, dom.KindListItem) {
		lines = append(lines, "<dt>"+r.RenderInline(p.term)+"</dt>")
		lines = append(lines, container("<dd>", "</dd>", r.blockParts(p.def))...)
	}
	return append(lines, "</dl>")
}

func renderXRefSect(r *Renderer, n *dom.Node) []string {
	lines := []string{`<dl class="doxyXRefSect">`}
	for _, p := range r.pairs(n, dom.KindXRefTitle, dom.KindXRefDescription) {
		title := r.RenderInline(p.term)
		if url, ok := r.resolver.Permalink(n.ID(), "member"); ok && title != "" {
			title = `<a href="` + EscapeAttr(url) + `">` + title + `</a>`
		}
		lines = append(lines, "<dt>"+title+"</dt>")
		lines = append(lines, container("<dd>", "</dd>", r.blockParts(p.def))...)
	}
	return append(lines, "</dl>")
}

// admonitions maps simplesect kinds to admonition types.
var admonitions = map[string]string{
	"note":      "note",
	"warning":   "warning",
	"attention": "danger",
	"important": "info",
	"remark":    "tip",
	"remarks":   "tip",
	"todo":      "info",
}

var simpleSectLabels = map[string]string{
	"see":       "See also",
	"return":    "Returns",
	"author":    "Author",
	"authors":   "Authors",
	"version":   "Version",
	"since":     "Since",
	"date":      "Date",
	"pre":       "Precondition",
	"post":      "Postcondition",
	"copyright": "Copyright",
	"invariant": "Invariant",
	"rcs":       "RCS",
}

func renderSimpleSect(r *Renderer, n *dom.Node) []string {
	kind := n.Attr("kind")
	title := n.First(dom.KindTitle)

	if adm, ok := admonitions[kind]; ok {
		var text string
		if title != nil {
			text = strings.TrimSpace(r.RenderInlineMany(title.Children))
		}
		if r.html {
			// Same markup as the admonition extension of the Markdown renderer.
			if text == "" {
				text = strings.ToUpper(adm[:1]) + adm[1:]
			}
			lines := []string{fmt.Sprintf(`<div class="admonition %s"><p class="admonition-title">%s</p>`, adm, text)}
			for _, p := range r.blockParts(n, title) {
				lines = append(lines, p...)
			}
			return append(lines, "</div>")
		}
		open := ":::" + adm
		if text != "" {
			open += " " + text
		}
		lines := []string{"", open}
		for i, p := range r.blockParts(n, title) {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, p...)
		}
		return append(lines, ":::", "")
	}

	var label string
	switch {
	case kind == "par":
		if title != nil {
			label = strings.TrimSpace(r.RenderInlineMany(title.Children))
		}
	case simpleSectLabels[kind] != "":
		label = simpleSectLabels[kind]
	default:
		r.log.Warn("unknown simplesect kind", "kind", kind)
		label = Escape(kind)
	}

	lines := []string{fmt.Sprintf(`<dl class="doxySimpleSect %s">`, EscapeAttr(kind))}
	if label != "" {
		lines = append(lines, "<dt>"+label+"</dt>")
	}
	lines = append(lines, container("<dd>", "</dd>", r.blockParts(n, title))...)
	return append(lines, "</dl>")
}

var parameterListLabels = map[string]string{
	"param":         "Parameters",
	"retval":        "Return values",
	"exception":     "Exceptions",
	"templateparam": "Template Parameters",
}

var directions = map[string]string{
	"in":    "[in]",
	"out":   "[out]",
	"inout": "[in,out]",
}

func renderParameterList(r *Renderer, n *dom.Node) []string {
	kind := n.Attr("kind")
	label, ok := parameterListLabels[kind]
	if !ok {
		r.log.Warn("unknown parameterlist kind", "kind", kind)
		label = Escape(kind)
	}

	lines := []string{
		fmt.Sprintf(`<dl class="doxyParamList %s">`, EscapeAttr(kind)),
		"<dt>" + label + "</dt>",
		"<dd>",
		`<table class="doxyParamTable">`,
	}
	for _, item := range n.All(dom.KindParameterItem) {
		lines = append(lines, "<tr>"+
			`<td class="doxyParamName">`+r.parameterNames(item)+"</td>"+
			"<td>"+r.RenderInline(item.First(dom.KindParameterDesc))+"</td>"+
			"</tr>")
	}
	return append(lines, "</table>", "</dd>", "</dl>")
}

// parameterNames renders the names of a parameter item. Doxygen puts several names into one item
// when they share a description.
func (r *Renderer) parameterNames(item *dom.Node) string {
	var names []string
	for _, nl := range item.All(dom.KindParameterNameList) {
		var typ string
		for _, c := range nl.Nodes() {
			switch c.Kind {
			case dom.KindParameterType:
				typ = r.RenderInline(c)
			case dom.KindParameterName:
				name := "<code>" + r.RenderInline(c) + "</code>"
				if typ != "" {
					name = typ + " " + name
				}
				if d := c.Attr("direction"); d != "" {
					if dir, ok := directions[d]; ok {
						name = dir + " " + name
					} else {
						r.log.Warn("unknown parameter direction", "direction", d)
					}
				}
				names = append(names, name)
			}
		}
	}
	return strings.Join(names, ", ")
}
