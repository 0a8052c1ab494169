package ast

import "fmt"

// NodeID addresses a node in a Tree arena. IDs are stable for the lifetime
// of the tree: detaching a node never reuses its slot.
type NodeID int

// NoNode is the parent of the root and of every detached node.
const NoNode NodeID = -1

// RootID is the ID of the root node of every Tree.
const RootID NodeID = 0

// Node is one arena slot.
type Node struct {
	Parent   NodeID
	Children []NodeID
	Payload  Payload
}

// Tree is an arena of nodes with explicit parent indices. Adding a node to a
// parent also records the backlink, and detaching a node clears both sides,
// so the parent/children relation is always consistent.
type Tree struct {
	nodes []*Node
}

// New creates a tree holding only a root node.
func New() *Tree {
	return &Tree{
		nodes: []*Node{{Parent: NoNode, Payload: &Root{}}},
	}
}

func (tree *Tree) node(id NodeID) *Node {
	if id < 0 || int(id) >= len(tree.nodes) {
		panic(fmt.Sprintf("ast: node %d out of range", id))
	}
	return tree.nodes[id]
}

// Payload returns the variant data of a node.
func (tree *Tree) Payload(id NodeID) Payload {
	return tree.node(id).Payload
}

// SetPayload replaces the variant data of a node, changing its kind.
func (tree *Tree) SetPayload(id NodeID, payload Payload) {
	tree.node(id).Payload = payload
}

// Kind returns the discriminant of a node.
func (tree *Tree) Kind(id NodeID) Kind {
	return tree.node(id).Payload.Kind()
}

// Parent returns the parent of a node, NoNode for the root or a detached node.
func (tree *Tree) Parent(id NodeID) NodeID {
	return tree.node(id).Parent
}

// Children returns a copy of the ordered children of a node, safe to range
// over while the tree is being mutated.
func (tree *Tree) Children(id NodeID) []NodeID {
	children := tree.node(id).Children
	result := make([]NodeID, len(children))
	copy(result, children)
	return result
}

// ChildCount returns the number of children of a node.
func (tree *Tree) ChildCount(id NodeID) int {
	return len(tree.node(id).Children)
}

// Child returns the child at index, NoNode when out of range.
func (tree *Tree) Child(id NodeID, index int) NodeID {
	children := tree.node(id).Children
	if index < 0 || index >= len(children) {
		return NoNode
	}
	return children[index]
}

// LastChild returns the last child of a node, NoNode when it has none.
func (tree *Tree) LastChild(id NodeID) NodeID {
	return tree.Child(id, tree.ChildCount(id)-1)
}

// NewNode allocates a detached node.
func (tree *Tree) NewNode(payload Payload) NodeID {
	tree.nodes = append(tree.nodes, &Node{Parent: NoNode, Payload: payload})
	return NodeID(len(tree.nodes) - 1)
}

// Add allocates a node and appends it to parent's children.
func (tree *Tree) Add(parent NodeID, payload Payload) NodeID {
	id := tree.NewNode(payload)
	tree.Append(parent, id)
	return id
}

// Append attaches child as the last child of parent. An attached child is
// detached from its current parent first.
func (tree *Tree) Append(parent, child NodeID) {
	tree.InsertAt(parent, tree.ChildCount(parent), child)
}

// Prepend attaches child as the first child of parent.
func (tree *Tree) Prepend(parent, child NodeID) {
	tree.InsertAt(parent, 0, child)
}

// InsertAt attaches child at index among parent's children. The index is
// clamped to the valid range.
func (tree *Tree) InsertAt(parent NodeID, index int, child NodeID) {
	if tree.IsAncestor(child, parent) {
		panic(fmt.Sprintf("ast: attaching node %d under %d would create a cycle", child, parent))
	}
	tree.Detach(child)

	parentNode := tree.node(parent)
	if index < 0 {
		index = 0
	}
	if index > len(parentNode.Children) {
		index = len(parentNode.Children)
	}
	parentNode.Children = append(parentNode.Children, NoNode)
	copy(parentNode.Children[index+1:], parentNode.Children[index:])
	parentNode.Children[index] = child
	tree.node(child).Parent = parent
}

// Detach removes a node from its parent's children and clears its parent.
// The node keeps its own subtree. Detaching a detached node is a no-op.
func (tree *Tree) Detach(id NodeID) {
	childNode := tree.node(id)
	if childNode.Parent == NoNode {
		return
	}
	parentNode := tree.node(childNode.Parent)
	for childIndex, sibling := range parentNode.Children {
		if sibling == id {
			parentNode.Children = append(parentNode.Children[:childIndex], parentNode.Children[childIndex+1:]...)
			break
		}
	}
	childNode.Parent = NoNode
}

// Index returns the position of a node among its siblings, -1 when detached.
func (tree *Tree) Index(id NodeID) int {
	parent := tree.node(id).Parent
	if parent == NoNode {
		return -1
	}
	for childIndex, sibling := range tree.node(parent).Children {
		if sibling == id {
			return childIndex
		}
	}
	return -1
}

// Copy deep-copies the subtree rooted at id into fresh arena slots and
// returns the detached copy. Payloads are cloned, never aliased.
func (tree *Tree) Copy(id NodeID) NodeID {
	copyID := tree.NewNode(tree.node(id).Payload.Clone())
	for _, child := range tree.node(id).Children {
		childCopy := tree.Copy(child)
		tree.node(copyID).Children = append(tree.node(copyID).Children, childCopy)
		tree.node(childCopy).Parent = copyID
	}
	return copyID
}

// Depth returns the number of ancestors of a node. The root has depth 0.
func (tree *Tree) Depth(id NodeID) int {
	depth := 0
	for parent := tree.node(id).Parent; parent != NoNode; parent = tree.node(parent).Parent {
		depth++
	}
	return depth
}

// RootOf returns the topmost ancestor of a node.
func (tree *Tree) RootOf(id NodeID) NodeID {
	for tree.node(id).Parent != NoNode {
		id = tree.node(id).Parent
	}
	return id
}

// IsAncestor reports whether ancestor is id itself or one of its ancestors.
func (tree *Tree) IsAncestor(ancestor, id NodeID) bool {
	for current := id; current != NoNode; current = tree.node(current).Parent {
		if current == ancestor {
			return true
		}
	}
	return false
}

// Walk visits the subtree rooted at id in pre-order, which is document
// order. Returning false from visit skips the children of that node.
func (tree *Tree) Walk(id NodeID, visit func(NodeID) bool) {
	if !visit(id) {
		return
	}
	for _, child := range tree.Children(id) {
		tree.Walk(child, visit)
	}
}

// Filter returns the nodes of the subtree rooted at id matching keep, in
// document order.
func (tree *Tree) Filter(id NodeID, keep func(NodeID) bool) []NodeID {
	var matches []NodeID
	tree.Walk(id, func(current NodeID) bool {
		if keep(current) {
			matches = append(matches, current)
		}
		return true
	})
	return matches
}

// FilterKind returns the nodes of a given kind in the subtree rooted at id.
func (tree *Tree) FilterKind(id NodeID, kind Kind) []NodeID {
	return tree.Filter(id, func(current NodeID) bool {
		return tree.Kind(current) == kind
	})
}

// Size returns the number of nodes in the subtree rooted at id.
func (tree *Tree) Size(id NodeID) int {
	size := 0
	tree.Walk(id, func(NodeID) bool {
		size++
		return true
	})
	return size
}
