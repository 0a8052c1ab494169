// Package resolve rewrites a parsed amendment tree into its canonical form.
//
// Two passes run after parsing. Context propagation attaches the target of
// an "X est ainsi modifié :" clause to every reference listed below it.
// Sorting then turns each reference chain into a single path ordered from
// the widest target (a code) to the narrowest (quoted words).
package resolve

import (
	"github.com/coolbeans/amendtree/pkg/ast"
)

// Run canonicalizes the subtree rooted at root in place.
func Run(tree *ast.Tree, root ast.NodeID) {
	PropagateContext(tree, root)
	SortReferences(tree, root)
}

// isChainHead reports whether id is a ranked reference whose parent is not a
// reference.
func isChainHead(tree *ast.Tree, id ast.NodeID) bool {
	if !tree.Kind(id).IsRanked() {
		return false
	}
	parent := tree.Parent(id)
	return parent != ast.NoNode && !tree.Kind(parent).IsReference()
}

func rank(tree *ast.Tree, id ast.NodeID) int {
	value, _ := tree.Kind(id).Rank()
	return value
}

func rankedReferences(tree *ast.Tree, id ast.NodeID) []ast.NodeID {
	return tree.Filter(id, func(current ast.NodeID) bool {
		return tree.Kind(current).IsRanked()
	})
}
