// Package dom provides the read-only node tree the renderer walks.
//
// A tree is built once by [znkr.io/doxymd/generator/doxygen] and never modified afterwards. Element
// nodes carry a [Kind], their XML attributes and an ordered list of children, where every child is
// either a [Text] run or another [*Node]. This mirrors the mixed content model of the Doxygen XML
// schema: character data may appear between child elements.
package dom

import (
	"fmt"
	"strings"
)

// Content is a single child of a node: either a [Text] run or a [*Node].
type Content interface {
	content()
}

// Text is a run of character data between elements.
type Text string

func (Text) content() {}

// Node is an element of the tree.
type Node struct {
	Kind     Kind
	Attrs    map[string]string
	Children []Content
}

func (*Node) content() {}

// Attr returns the value of the attribute name, or "" if the attribute isn't present.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// HasAttr reports whether the attribute name is present.
func (n *Node) HasAttr(name string) bool {
	if n == nil {
		return false
	}
	_, ok := n.Attrs[name]
	return ok
}

// ID returns the id attribute.
func (n *Node) ID() string { return n.Attr("id") }

// Nodes returns the element children of n, skipping text runs.
func (n *Node) Nodes() []*Node {
	if n == nil {
		return nil
	}
	var ret []*Node
	for _, c := range n.Children {
		if c, ok := c.(*Node); ok {
			ret = append(ret, c)
		}
	}
	return ret
}

// First returns the first element child of the given kind or nil.
func (n *Node) First(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c, ok := c.(*Node); ok && c.Kind == kind {
			return c
		}
	}
	return nil
}

// All returns all element children of the given kind.
func (n *Node) All(kind Kind) []*Node {
	if n == nil {
		return nil
	}
	var ret []*Node
	for _, c := range n.Children {
		if c, ok := c.(*Node); ok && c.Kind == kind {
			ret = append(ret, c)
		}
	}
	return ret
}

// Text returns the concatenated character data of n and all of its descendants.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.Children {
		switch c := c.(type) {
		case Text:
			sb.WriteString(string(c))
		case *Node:
			if c.Kind == KindSp {
				sb.WriteByte(' ')
				continue
			}
			c.writeText(sb)
		}
	}
}

// New is a convenience constructor for building trees by hand, mostly used in tests. Children
// may be strings, [Text] or [*Node] values; anything else panics.
func New(kind Kind, attrs map[string]string, children ...any) *Node {
	n := &Node{Kind: kind, Attrs: attrs}
	for _, c := range children {
		switch c := c.(type) {
		case string:
			n.Children = append(n.Children, Text(c))
		case Text:
			n.Children = append(n.Children, c)
		case *Node:
			n.Children = append(n.Children, c)
		default:
			panic(fmt.Sprintf("dom.New: unsupported child type %T", c))
		}
	}
	return n
}
