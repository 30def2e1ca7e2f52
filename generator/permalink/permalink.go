// Package permalink assigns output paths to Doxygen compounds and resolves reference ids to URLs.
//
// Doxygen ids are opaque and change whenever a symbol is renamed, so page paths are derived from
// compound names instead, grouped into one folder per compound kind. Member and section ids map to
// anchors on the page of their compound.
package permalink

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"znkr.io/doxymd/generator/dom"
	"znkr.io/doxymd/generator/doxygen"
)

// folders maps compound kinds to the folder their pages live in. Compounds of other kinds don't
// get a page.
var folders = map[string]string{
	"class":     "classes",
	"struct":    "classes",
	"union":     "classes",
	"interface": "classes",
	"protocol":  "classes",
	"category":  "classes",
	"exception": "classes",
	"namespace": "namespaces",
	"file":      "files",
	"dir":       "folders",
	"group":     "groups",
	"page":      "pages",
	"example":   "examples",
	"concept":   "concepts",
	"module":    "modules",
}

// Compound is an entry of the index that gets its own page.
type Compound struct {
	RefID string
	Kind  string
	Name  string
	Path  string // Slash separated output path without extension, e.g. "classes/foo"
}

// Index resolves ids of one Doxygen run. It is immutable once built.
type Index struct {
	base      string
	compounds map[string]*Compound
	order     []*Compound
	members   map[string]string // member refid -> compound refid
	byLength  []string          // compound refids, longest first
}

// Options configure an [Index].
type Options struct {
	// BaseURL is prepended to all page paths, e.g. "/api".
	BaseURL string

	Logger *slog.Logger
}

// Load builds the index from the index.xml file in dir.
func Load(dir string, opts Options) (*Index, error) {
	root, err := doxygen.ParseFile(filepath.Join(dir, "index.xml"))
	if err != nil {
		return nil, err
	}
	return New(root, opts)
}

// New builds the index from the root element of an index.xml file.
func New(root *dom.Node, opts Options) (*Index, error) {
	if root.Kind != doxygen.KindDoxygenIndex {
		return nil, fmt.Errorf("unexpected root element %q, want %q", root.Kind, doxygen.KindDoxygenIndex)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	idx := &Index{
		base:      strings.TrimSuffix(opts.BaseURL, "/"),
		compounds: make(map[string]*Compound),
		members:   make(map[string]string),
	}
	taken := make(map[string]bool)
	for _, c := range root.All(doxygen.KindCompound) {
		refid, kind := c.Attr("refid"), c.Attr("kind")
		if refid == "" {
			return nil, fmt.Errorf("compound without refid")
		}
		folder, ok := folders[kind]
		if !ok {
			log.Debug("no page for compound kind", "refid", refid, "kind", kind)
			continue
		}
		if _, dup := idx.compounds[refid]; dup {
			return nil, fmt.Errorf("duplicate compound %q", refid)
		}

		name := strings.TrimSpace(c.First(doxygen.KindName).Text())
		path := folder + "/" + Slug(name)
		for i := 2; taken[path]; i++ {
			path = folder + "/" + Slug(name) + "-" + strconv.Itoa(i)
		}
		taken[path] = true

		comp := &Compound{RefID: refid, Kind: kind, Name: name, Path: path}
		idx.compounds[refid] = comp
		idx.order = append(idx.order, comp)

		for _, m := range c.All(doxygen.KindMember) {
			mid := m.Attr("refid")
			if mid == "" {
				continue
			}
			// Members are listed under every compound they appear in. Their page is the one of
			// the compound that defines them, which is the prefix of their id, else the first.
			if _, ok := idx.members[mid]; ok && !strings.HasPrefix(mid, refid+"_1") {
				continue
			}
			idx.members[mid] = refid
		}
	}

	idx.byLength = make([]string, 0, len(idx.compounds))
	for _, c := range idx.order {
		idx.byLength = append(idx.byLength, c.RefID)
	}
	slices.SortStableFunc(idx.byLength, func(a, b string) int { return len(b) - len(a) })

	return idx, nil
}

// Compounds returns all compounds with a page, in index order.
func (idx *Index) Compounds() []*Compound {
	return slices.Clone(idx.order)
}

// Compound returns the compound with the given refid.
func (idx *Index) Compound(refid string) (*Compound, bool) {
	c, ok := idx.compounds[refid]
	return c, ok
}

// URL returns the URL of a page path.
func (idx *Index) URL(path string) string {
	return idx.base + "/" + path
}

// owner returns the compound whose page contains the target of id.
func (idx *Index) owner(id string) (*Compound, bool) {
	if c, ok := idx.compounds[id]; ok {
		return c, true
	}
	if refid, ok := idx.members[id]; ok {
		return idx.compounds[refid], true
	}
	for _, refid := range idx.byLength {
		if strings.HasPrefix(id, refid+"_1") {
			return idx.compounds[refid], true
		}
	}
	return nil, false
}

// Permalink returns the URL for refid: the page of a compound, or an anchor on the page that
// contains a member, section or anchor. A kind hint of "compound" only matches compounds.
func (idx *Index) Permalink(refid, kindHint string) (string, bool) {
	if refid == "" {
		return "", false
	}
	if kindHint == "compound" {
		c, ok := idx.compounds[refid]
		if !ok {
			return "", false
		}
		return idx.URL(c.Path), true
	}

	c, ok := idx.owner(refid)
	if !ok {
		return "", false
	}
	if c.RefID == refid {
		return idx.URL(c.Path), true
	}
	return idx.URL(c.Path) + "#" + idx.Anchor(refid), true
}

// PagePermalink returns the URL of the page that contains refid.
func (idx *Index) PagePermalink(refid string) (string, bool) {
	c, ok := idx.owner(refid)
	if !ok {
		return "", false
	}
	return idx.URL(c.Path), true
}

// Anchor returns the in-page anchor for id. Doxygen forms member and section ids by appending
// "_1" and a local name to the id of the compound; the anchor is that local name.
func (idx *Index) Anchor(id string) string {
	if c, ok := idx.owner(id); ok && c.RefID != id {
		return strings.TrimPrefix(id, c.RefID+"_1")
	}
	if i := strings.LastIndex(id, "_1"); i >= 0 && i+2 < len(id) {
		return id[i+2:]
	}
	return id
}

// Slug turns a compound name into a path element: lower case letters, digits and dashes.
func Slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(c)
		default:
			dash = true
		}
	}
	if sb.Len() == 0 {
		return "index"
	}
	return sb.String()
}
