package resolve

import (
	"github.com/coolbeans/amendtree/pkg/ast"
)

// PropagateContext handles the drafting pattern
//
//	L'article 3 du code civil est ainsi modifié :
//	1° Le premier alinéa est supprimé ;
//
// When a non-reference node starts with an edit of kind edit whose children
// are only references, that edit is removed and its references become the
// context of the node's subtree: every chain head below is re-rooted under
// a fresh copy of the context chain. Nested contexts stack.
func PropagateContext(tree *ast.Tree, root ast.NodeID) {
	propagate(tree, root, nil)
}

func propagate(tree *ast.Tree, id ast.NodeID, context []ast.NodeID) {
	switch {
	case !tree.Kind(id).IsReference() && isContextEdit(tree, tree.Child(id, 0)):
		edit := tree.Child(id, 0)
		tree.Detach(edit)
		scoped := append(context[:len(context):len(context)], rankedReferences(tree, edit)...)
		for _, child := range tree.Children(id) {
			propagate(tree, child, scoped)
		}
	case len(context) > 0 && isChainHead(tree, id):
		qualify(tree, id, context)
	default:
		for _, child := range tree.Children(id) {
			propagate(tree, child, context)
		}
	}
}

func isContextEdit(tree *ast.Tree, id ast.NodeID) bool {
	if id == ast.NoNode {
		return false
	}
	edit, isEdit := tree.Payload(id).(*ast.Edit)
	if !isEdit || edit.EditType != ast.EditEdit || tree.ChildCount(id) == 0 {
		return false
	}
	for _, child := range tree.Children(id) {
		if !tree.Kind(child).IsReference() {
			return false
		}
	}
	return true
}

// qualify replaces head by a copy of the context chain ending with head.
// Context nodes are copied without their children.
func qualify(tree *ast.Tree, head ast.NodeID, context []ast.NodeID) {
	parent := tree.Parent(head)
	index := tree.Index(head)
	tree.Detach(head)

	top, tail := ast.NoNode, ast.NoNode
	for _, template := range context {
		link := tree.NewNode(tree.Payload(template).Clone())
		if top == ast.NoNode {
			top = link
		} else {
			tree.Append(tail, link)
		}
		tail = link
	}
	tree.InsertAt(parent, index, top)
	tree.Append(tail, head)
}
