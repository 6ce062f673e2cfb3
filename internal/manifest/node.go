// Package manifest answers identity and version queries against a decoded
// AndroidManifest tree.
//
// The tree is generic: nodes are told apart by name at query time, not by
// type. Queries never mutate the tree and hold no state between calls.
package manifest

import "iter"

// RootName is the local name every manifest root must carry.
const RootName = "manifest"

// Attr is a single attribute of a Node.
type Attr struct {
	Space string // Namespace URI, empty for unqualified attributes
	Local string
	Value string
}

// QualifiedName renders the attribute name as "{space}local", or just the
// local name when the attribute has no namespace.
func (a Attr) QualifiedName() string {
	if a.Space == "" {
		return a.Local
	}
	return "{" + a.Space + "}" + a.Local
}

// Node is one element of the decoded manifest.
type Node struct {
	Space    string
	Name     string // Local name, e.g. "activity"
	Attrs    []Attr
	Children []*Node
}

// Attr returns the first unqualified attribute with the given local name.
func (n *Node) Attr(local string) (Attr, bool) {
	for _, a := range n.Attrs {
		if a.Space == "" && a.Local == local {
			return a, true
		}
	}
	return Attr{}, false
}

// Descendants yields every node below n in document order (preorder,
// depth-first). n itself is not yielded.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if !yield(c) || !c.walk(yield) {
			return false
		}
	}
	return true
}
