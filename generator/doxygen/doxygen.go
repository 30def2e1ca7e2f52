// Package doxygen reads Doxygen XML output into [dom] trees.
//
// The parser is schema agnostic: every element becomes a [dom.Node] whose kind is the element name,
// every run of character data becomes a [dom.Text]. Knowledge about the schema lives in the
// renderer.
package doxygen

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"znkr.io/doxymd/generator/dom"
)

// Element names of the compound and index files.
const (
	KindDoxygen      dom.Kind = "doxygen"
	KindDoxygenIndex dom.Kind = "doxygenindex"
	KindCompound     dom.Kind = "compound"
	KindCompoundDef  dom.Kind = "compounddef"
	KindCompoundName dom.Kind = "compoundname"
	KindMember       dom.Kind = "member"
	KindMemberDef    dom.Kind = "memberdef"
	KindSectionDef   dom.Kind = "sectiondef"
	KindName         dom.Kind = "name"
	KindHeader       dom.Kind = "header"
	KindDefinition   dom.Kind = "definition"
	KindArgsString   dom.Kind = "argsstring"
	KindType         dom.Kind = "type"
	KindLocation     dom.Kind = "location"
	KindIncludes     dom.Kind = "includes"
	KindInitializer  dom.Kind = "initializer"
	KindEnumValue    dom.Kind = "enumvalue"
	KindInnerClass   dom.Kind = "innerclass"
	KindInnerNS      dom.Kind = "innernamespace"
	KindInnerFile    dom.Kind = "innerfile"
	KindInnerDir     dom.Kind = "innerdir"
	KindInnerGroup   dom.Kind = "innergroup"
	KindInnerPage    dom.Kind = "innerpage"
	KindBaseCompound dom.Kind = "basecompoundref"
	KindDerived      dom.Kind = "derivedcompoundref"
)

// ErrEmpty is returned when the input doesn't contain a root element.
var ErrEmpty = errors.New("no root element")

// Parse reads a single XML document and returns its root element.
func Parse(r io.Reader) (*dom.Node, error) {
	dec := xml.NewDecoder(r)

	var root *dom.Node
	var stack []*dom.Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %v", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			n := &dom.Node{Kind: dom.Kind(tok.Name.Local)}
			if len(tok.Attr) > 0 {
				n.Attrs = make(map[string]string, len(tok.Attr))
				for _, a := range tok.Attr {
					n.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			// Merge adjacent runs, the decoder splits character data around entities in some
			// cases.
			if k := len(parent.Children); k > 0 {
				if prev, ok := parent.Children[k-1].(dom.Text); ok {
					parent.Children[k-1] = prev + dom.Text(tok)
					continue
				}
			}
			parent.Children = append(parent.Children, dom.Text(tok))
		}
	}

	if root == nil {
		return nil, ErrEmpty
	}
	return root, nil
}

// ParseFile parses the XML file at path.
func ParseFile(path string) (*dom.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %v", filepath.Base(path), err)
	}
	return n, nil
}

// CompoundDef parses the compound file for refid in dir and returns its compounddef element.
func CompoundDef(dir, refid string) (*dom.Node, error) {
	root, err := ParseFile(filepath.Join(dir, refid+".xml"))
	if err != nil {
		return nil, err
	}
	if root.Kind != KindDoxygen {
		return nil, fmt.Errorf("%s.xml: unexpected root element %q", refid, root.Kind)
	}
	def := root.First(KindCompoundDef)
	if def == nil {
		return nil, fmt.Errorf("%s.xml: missing compounddef", refid)
	}
	return def, nil
}
