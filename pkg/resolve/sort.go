package resolve

import (
	"sort"

	"github.com/coolbeans/amendtree/pkg/ast"
)

// SortReferences rewrites every reference chain below root as a single path
// ordered by rank. When two references share a rank only the first one, in
// document order, is kept; a blank one ("le même article") takes the
// identity of the duplicate it absorbs. Running it twice changes nothing.
func SortReferences(tree *ast.Tree, root ast.NodeID) {
	heads := tree.Filter(root, func(id ast.NodeID) bool {
		return isChainHead(tree, id)
	})
	for _, head := range heads {
		sortChain(tree, head)
	}
}

func sortChain(tree *ast.Tree, head ast.NodeID) {
	parent := tree.Parent(head)
	index := tree.Index(head)

	references := rankedReferences(tree, head)
	sort.SliceStable(references, func(left, right int) bool {
		return rank(tree, references[left]) < rank(tree, references[right])
	})

	kept := make([]ast.NodeID, 0, len(references))
	for _, reference := range references {
		tree.Detach(reference)
		if len(kept) == 0 || rank(tree, kept[len(kept)-1]) != rank(tree, reference) {
			kept = append(kept, reference)
			continue
		}
		last := kept[len(kept)-1]
		tree.SetPayload(last, ast.FillBlank(tree.Payload(last), tree.Payload(reference)))
	}

	tree.InsertAt(parent, index, kept[0])
	for link := 1; link < len(kept); link++ {
		tree.Append(kept[link-1], kept[link])
	}
}
