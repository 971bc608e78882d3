package model

// VirtualNode is one level of a virtual path tree: an element that
// exists in the wire format but is never materialized as an object.
// Virtual nodes wrap real binding sites; the tree hangs off the owning
// AnnotatedClass.
type VirtualNode struct {
	// Name is the element name of this level; empty for the tree root,
	// which stands for the owner element itself.
	Name string
	// Children maps child element names to nested virtual levels.
	Children map[string]*VirtualNode
	// Elements maps element names to fields bound as child elements of
	// this level.
	Elements map[string]*Field
	// Attributes maps attribute names to fields hosted on this level.
	Attributes map[string]*Field
}

// NewVirtualNode creates an empty virtual node.
func NewVirtualNode(name string) *VirtualNode {
	return &VirtualNode{
		Name:       name,
		Children:   make(map[string]*VirtualNode),
		Elements:   make(map[string]*Field),
		Attributes: make(map[string]*Field),
	}
}

// Child returns the named child level, if present.
func (n *VirtualNode) Child(name string) (*VirtualNode, bool) {
	c, ok := n.Children[name]
	return c, ok
}

// EnsureChild returns the named child level, creating it on first use.
// Two paths sharing a prefix share the nodes of that prefix.
func (n *VirtualNode) EnsureChild(name string) *VirtualNode {
	if c, ok := n.Children[name]; ok {
		return c
	}

	c := NewVirtualNode(name)
	n.Children[name] = c

	return c
}

// Count returns the number of nodes in the subtree rooted here,
// including the node itself.
func (n *VirtualNode) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}

	return total
}

// IsEmpty reports whether the node hosts no bindings and no children.
func (n *VirtualNode) IsEmpty() bool {
	return len(n.Children) == 0 && len(n.Elements) == 0 && len(n.Attributes) == 0
}
