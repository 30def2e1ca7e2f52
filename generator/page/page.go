// Package page assembles the documentation of one compound into an output page.
package page

import (
	"fmt"
	"strings"

	"znkr.io/doxymd/generator/dom"
	"znkr.io/doxymd/generator/doxygen"
	"znkr.io/doxymd/generator/permalink"
	"znkr.io/doxymd/generator/render"
)

// Page is a rendered compound.
type Page struct {
	RefID       string
	Kind        string
	Title       string
	Description string // Plain text of the brief description
	Path        string // Output path without extension
	Permalink   string
	Lines       []string
	Images      []string
}

// Builder builds pages from compound definitions.
type Builder struct {
	r   *render.Renderer
	idx *permalink.Index
}

// NewBuilder returns a builder that renders with r and looks up compounds in idx.
func NewBuilder(r *render.Renderer, idx *permalink.Index) *Builder {
	return &Builder{r: r, idx: idx}
}

// Build renders a compounddef element.
func (b *Builder) Build(def *dom.Node) (*Page, error) {
	if def.Kind != doxygen.KindCompoundDef {
		return nil, fmt.Errorf("unexpected element %q, want %q", def.Kind, doxygen.KindCompoundDef)
	}
	refid := def.ID()
	comp, ok := b.idx.Compound(refid)
	if !ok {
		return nil, fmt.Errorf("compound %q isn't in the index", refid)
	}

	res, err := b.r.Render(func(r *render.Renderer) []string {
		return compoundLines(r, def)
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", refid, err)
	}

	return &Page{
		RefID:       refid,
		Kind:        comp.Kind,
		Title:       title(def),
		Description: plain(def.First(dom.KindBriefDescription)),
		Path:        comp.Path,
		Permalink:   b.idx.URL(comp.Path),
		Lines:       tidy(res.Lines),
		Images:      res.Images,
	}, nil
}

func title(def *dom.Node) string {
	if t := plain(def.First(dom.KindTitle)); t != "" {
		return t
	}
	return plain(def.First(doxygen.KindCompoundName))
}

// plain returns the text content of n on a single line.
func plain(n *dom.Node) string {
	return strings.Join(strings.Fields(n.Text()), " ")
}

// tidy removes leading and trailing blank lines and collapses runs of blank lines.
func tidy(lines []string) []string {
	var ret []string
	for _, l := range lines {
		if l == "" && (len(ret) == 0 || ret[len(ret)-1] == "") {
			continue
		}
		ret = append(ret, l)
	}
	for len(ret) > 0 && ret[len(ret)-1] == "" {
		ret = ret[:len(ret)-1]
	}
	return ret
}

var innerLabels = []struct {
	kind  dom.Kind
	label string
}{
	{doxygen.KindInnerNS, "Namespaces"},
	{doxygen.KindInnerClass, "Classes"},
	{doxygen.KindInnerDir, "Folders"},
	{doxygen.KindInnerFile, "Files"},
	{doxygen.KindInnerGroup, "Groups"},
	{doxygen.KindInnerPage, "Pages"},
}

func compoundLines(r *render.Renderer, def *dom.Node) []string {
	// Only the full source listing of a file gets line anchors, embedded examples would
	// duplicate them.
	dr := r.WithoutLineAnchors()
	level := 1 + r.HeadingOffset()
	kind := def.Attr("kind")

	var lines []string
	lines = append(lines, dr.RenderBlock(def.First(dom.KindBriefDescription))...)
	lines = append(lines, includes(r, def)...)
	lines = append(lines, inheritance(r, def)...)

	if kind == "page" {
		lines = append(lines, "")
		lines = append(lines, dr.RenderBlock(def.First(dom.KindDetailedDescription))...)
	}

	for _, in := range innerLabels {
		refs := def.All(in.kind)
		if len(refs) == 0 {
			continue
		}
		lines = append(lines, r.Heading(level, in.label, "")...)
		lines = append(lines, `<ul class="doxyInnerList">`)
		for _, ref := range refs {
			label := render.Escape(strings.TrimSpace(ref.Text()))
			lines = append(lines, "<li>"+r.Link(ref.Attr("refid"), "compound", label)+"</li>")
		}
		lines = append(lines, "</ul>")
	}

	if kind != "page" {
		if detailed := dr.RenderBlock(def.First(dom.KindDetailedDescription)); len(detailed) > 0 {
			lines = append(lines, r.Heading(level, "Description", "")...)
			lines = append(lines, detailed...)
		}
	}

	for _, sd := range def.All(doxygen.KindSectionDef) {
		lines = append(lines, sectionLines(dr, sd, level)...)
	}

	if loc := def.First(doxygen.KindLocation); loc != nil && kind != "file" && kind != "dir" {
		if f := loc.Attr("file"); f != "" {
			lines = append(lines, "", `<p class="doxyLocation">Defined in <code>`+render.Escape(f)+"</code></p>")
		}
	}

	if pl := def.First(dom.KindProgramListing); pl != nil {
		lines = append(lines, r.Heading(level, "Source", "")...)
		lines = append(lines, r.RenderBlock(pl)...)
	}
	return lines
}

func includes(r *render.Renderer, def *dom.Node) []string {
	var lines []string
	for _, inc := range def.All(doxygen.KindIncludes) {
		name := strings.TrimSpace(inc.Text())
		if inc.Attr("local") == "yes" {
			name = `"` + name + `"`
		} else {
			name = "<" + name + ">"
		}
		text := "#include " + render.Escape(name)
		if url, ok := r.Resolver().PagePermalink(inc.Attr("refid")); ok {
			text = `<a href="` + render.EscapeAttr(url) + `">` + text + "</a>"
		}
		lines = append(lines, `<p class="doxyIncludes"><code>`+text+"</code></p>")
	}
	return lines
}

func inheritance(r *render.Renderer, def *dom.Node) []string {
	var lines []string
	for _, rel := range []struct {
		kind  dom.Kind
		label string
	}{
		{doxygen.KindBaseCompound, "Inherits"},
		{doxygen.KindDerived, "Inherited by"},
	} {
		var refs []string
		for _, ref := range def.All(rel.kind) {
			label := render.Escape(strings.TrimSpace(ref.Text()))
			if refid := ref.Attr("refid"); refid != "" {
				label = r.Link(refid, "compound", label)
			}
			refs = append(refs, label)
		}
		if len(refs) > 0 {
			lines = append(lines, `<p class="doxyInheritance">`+rel.label+" "+strings.Join(refs, ", ")+"</p>")
		}
	}
	return lines
}

var sectionLabels = map[string]string{
	"public-type":             "Public Types",
	"public-func":             "Public Member Functions",
	"public-attrib":           "Public Attributes",
	"public-slot":             "Public Slots",
	"public-static-func":      "Static Public Member Functions",
	"public-static-attrib":    "Static Public Attributes",
	"protected-type":          "Protected Types",
	"protected-func":          "Protected Member Functions",
	"protected-attrib":        "Protected Attributes",
	"protected-slot":          "Protected Slots",
	"protected-static-func":   "Static Protected Member Functions",
	"protected-static-attrib": "Static Protected Attributes",
	"package-type":            "Package Types",
	"package-func":            "Package Functions",
	"package-attrib":          "Package Attributes",
	"package-static-func":     "Static Package Functions",
	"package-static-attrib":   "Static Package Attributes",
	"private-type":            "Private Types",
	"private-func":            "Private Member Functions",
	"private-attrib":          "Private Attributes",
	"private-slot":            "Private Slots",
	"private-static-func":     "Static Private Member Functions",
	"private-static-attrib":   "Static Private Attributes",
	"signal":                  "Signals",
	"dcop-func":               "DCOP Functions",
	"property":                "Properties",
	"event":                   "Events",
	"friend":                  "Friends",
	"related":                 "Related Symbols",
	"define":                  "Macros",
	"typedef":                 "Typedefs",
	"enum":                    "Enumerations",
	"func":                    "Functions",
	"var":                     "Variables",
}

func sectionLines(r *render.Renderer, sd *dom.Node, level int) []string {
	label := plain(sd.First(doxygen.KindHeader))
	if label == "" {
		kind := sd.Attr("kind")
		label = sectionLabels[kind]
		if label == "" {
			r.Logger().Warn("unknown sectiondef kind", "kind", kind)
			label = kind
		}
	}

	lines := r.Heading(level, render.Escape(label), "")
	if desc := sd.First("description"); desc != nil {
		lines = append(lines, r.RenderBlockMany(desc.Children)...)
	}
	for _, md := range sd.All(doxygen.KindMemberDef) {
		lines = append(lines, memberLines(r, md, level+1)...)
	}
	return lines
}

func memberLines(r *render.Renderer, md *dom.Node, level int) []string {
	id := md.ID()
	if id == "" {
		panic(&render.InvariantError{Kind: doxygen.KindMemberDef, Msg: "missing id"})
	}
	name := render.Escape(plain(md.First(doxygen.KindName)))

	lines := r.Heading(level, name, id)
	lines = append(lines, `<div class="doxyMemberProto"><code>`+prototype(r, md, name)+"</code></div>")
	lines = append(lines, r.RenderBlock(md.First(dom.KindBriefDescription))...)
	lines = append(lines, r.RenderBlock(md.First(dom.KindDetailedDescription))...)
	lines = append(lines, r.RenderBlock(md.First(dom.KindInbodyDescription))...)

	if values := md.All(doxygen.KindEnumValue); len(values) > 0 {
		lines = append(lines, `<table class="doxyEnumValues">`)
		for _, v := range values {
			cell := `<a id="` + render.EscapeAttr(r.Resolver().Anchor(v.ID())) + `"></a><code>` + render.Escape(plain(v.First(doxygen.KindName))) + "</code>"
			if init := inline(r, v.First(doxygen.KindInitializer)); init != "" {
				cell += " " + init
			}
			desc := r.RenderCompact(v.First(dom.KindBriefDescription), v.First(dom.KindDetailedDescription))
			lines = append(lines, "<tr><td>"+cell+"</td><td>"+desc+"</td></tr>")
		}
		lines = append(lines, "</table>")
	}
	return lines
}

func prototype(r *render.Renderer, md *dom.Node, name string) string {
	switch md.Attr("kind") {
	case "define":
		var params []string
		for _, p := range md.All("param") {
			params = append(params, render.Escape(plain(p.First("defname"))))
		}
		proto := "#define " + name
		if len(params) > 0 {
			proto += "(" + strings.Join(params, ", ") + ")"
		}
		return proto
	case "enum":
		if md.Attr("strong") == "yes" {
			return "enum class " + name
		}
		return "enum " + name
	}

	typ := inline(r, md.First(doxygen.KindType))
	proto := name + render.Escape(plain(md.First(doxygen.KindArgsString)))
	switch {
	case md.Attr("kind") == "typedef" && strings.HasPrefix(plain(md.First(doxygen.KindDefinition)), "using "):
		proto = "using " + name + " = " + typ
	case typ != "":
		proto = typ + " " + proto
	}
	if init := inline(r, md.First(doxygen.KindInitializer)); init != "" {
		proto += " " + init
	}
	return proto
}

// inline renders the content of a structural element, these have no renderer of their own.
func inline(r *render.Renderer, n *dom.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(r.RenderInlineMany(n.Children))
}
