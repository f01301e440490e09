// Package pathmodel implements the normalized-location chain used to
// report where a JSONPath match was found in a document.
package pathmodel

// Node is one step of a path, forming a persistent singly-linked chain
// from a child back to the root. Nodes are immutable once produced;
// a node references its parent, never the reverse, so a single parent
// can be shared by many children (e.g. every element a wildcard visits).
type Node struct {
	parent  *Node
	name    string
	index   int
	isIndex bool
}

// Root is the sentinel node representing the document root. Every
// Location begins, implicitly, at Root.
var Root = &Node{}

// IsRoot reports whether n is the root sentinel.
func (n *Node) IsRoot() bool {
	return n == nil || n.parent == nil
}

// Parent returns n's parent, or nil if n is the root.
func (n *Node) Parent() *Node {
	if n.IsRoot() {
		return nil
	}
	return n.parent
}

// Ancestor walks back depth parents, returning nil if depth exceeds the
// distance to the root.
func (n *Node) Ancestor(depth int) *Node {
	cur := n
	for i := 0; i < depth; i++ {
		if cur.IsRoot() {
			return nil
		}
		cur = cur.parent
	}
	return cur
}

// Name extends parent with a named (object property) step.
func Name(parent *Node, name string) *Node {
	return &Node{parent: parent, name: name}
}

// Index extends parent with an indexed (array element) step.
func Index(parent *Node, index int) *Node {
	return &Node{parent: parent, index: index, isIndex: true}
}

// IsIndex reports whether n's step is an array index rather than a name.
func (n *Node) IsIndex() bool {
	return n.isIndex
}

// StepName returns n's name step. Only meaningful when !IsIndex().
func (n *Node) StepName() string {
	return n.name
}

// StepIndex returns n's index step. Only meaningful when IsIndex().
func (n *Node) StepIndex() int {
	return n.index
}
