package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coolbeans/amendtree/pkg/ast"
	"github.com/coolbeans/amendtree/pkg/grammar"
)

func parsed(text string) *ast.Tree {
	tree := ast.New()
	grammar.NewParser(tree).Parse(ast.RootID, text)
	return tree
}

func node(typeName string, fields map[string]any, children ...map[string]any) map[string]any {
	out := map[string]any{"type": typeName}
	for key, value := range fields {
		out[key] = value
	}
	if len(children) > 0 {
		exported := make([]any, 0, len(children))
		for _, child := range children {
			exported = append(exported, child)
		}
		out["children"] = exported
	}
	return out
}

func root(children ...map[string]any) map[string]any {
	exported := make([]any, 0, len(children))
	for _, child := range children {
		exported = append(exported, child)
	}
	return map[string]any{"children": exported}
}

func TestContextIsAttachedToNestedEdits(t *testing.T) {
	tree := parsed("L'article 3 du code civil est ainsi modifié :\n1° Le premier alinéa est supprimé ;")

	Run(tree, ast.RootID)

	want := root(
		node("header-2", map[string]any{"order": 1},
			node("edit", map[string]any{"editType": "delete"},
				node("code-reference", map[string]any{"codeName": "code civil"},
					node("article-reference", map[string]any{"id": "3"},
						node("alinea-reference", map[string]any{"order": 1}),
					),
				),
			),
		),
	)
	require.Equal(t, want, tree.Export(ast.RootID))
}

func TestContextOnSameLineIsAttached(t *testing.T) {
	tree := parsed("L'article 3 du code civil est ainsi modifié : 1° Le premier alinéa est supprimé ;")

	Run(tree, ast.RootID)

	want := root(
		node("header-2", map[string]any{"order": 1},
			node("edit", map[string]any{"editType": "delete"},
				node("code-reference", map[string]any{"codeName": "code civil"},
					node("article-reference", map[string]any{"id": "3"},
						node("alinea-reference", map[string]any{"order": 1}),
					),
				),
			),
		),
	)
	require.Equal(t, want, tree.Export(ast.RootID))
}

func TestSameArticleCollapsesIntoChain(t *testing.T) {
	tree := parsed("L'article 12 est supprimé.\nLe premier alinéa du même article est supprimé.")

	Run(tree, ast.RootID)

	want := root(
		node("edit", map[string]any{"editType": "delete"},
			node("article-reference", map[string]any{"id": "12"}),
		),
		node("edit", map[string]any{"editType": "delete"},
			node("article-reference", map[string]any{"id": "12"},
				node("alinea-reference", map[string]any{"order": 1}),
			),
		),
	)
	require.Equal(t, want, tree.Export(ast.RootID))
}

func TestBackReferenceChainsAreSorted(t *testing.T) {
	tree := parsed("Le deuxième alinéa de l'article 3 est supprimé.\n1° Il est complété par les mots « , notamment ».")

	Run(tree, ast.RootID)

	chain := node("article-reference", map[string]any{"id": "3"},
		node("alinea-reference", map[string]any{"order": 2}),
	)
	want := root(
		node("edit", map[string]any{"editType": "delete"}, chain),
		node("header-2", map[string]any{"order": 1},
			node("edit", map[string]any{"editType": "add"},
				chain,
				node("words", nil,
					node("quote", map[string]any{"words": ", notamment"}),
				),
			),
		),
	)
	require.Equal(t, want, tree.Export(ast.RootID))
}

func TestNestedContextsStackAndUnwind(t *testing.T) {
	tree := ast.New()
	outer := tree.Add(ast.RootID, &ast.Edit{EditType: ast.EditEdit})
	tree.Add(outer, &ast.CodeReference{CodeName: "code civil"})

	first := tree.Add(ast.RootID, &ast.Header1{Order: 1})
	inner := tree.Add(first, &ast.Edit{EditType: ast.EditEdit})
	tree.Add(inner, &ast.ArticleReference{ID: "3"})
	segment := tree.Add(first, &ast.Header2{Order: 1})
	deletion := tree.Add(segment, &ast.Edit{EditType: ast.EditDelete})
	tree.Add(deletion, &ast.AlineaReference{Order: 1})

	second := tree.Add(ast.RootID, &ast.Header1{Order: 2})
	secondDeletion := tree.Add(second, &ast.Edit{EditType: ast.EditDelete})
	tree.Add(secondDeletion, &ast.ArticleReference{ID: "9"})

	Run(tree, ast.RootID)

	want := root(
		node("header-1", map[string]any{"order": 1},
			node("header-2", map[string]any{"order": 1},
				node("edit", map[string]any{"editType": "delete"},
					node("code-reference", map[string]any{"codeName": "code civil"},
						node("article-reference", map[string]any{"id": "3"},
							node("alinea-reference", map[string]any{"order": 1}),
						),
					),
				),
			),
		),
		node("header-1", map[string]any{"order": 2},
			node("edit", map[string]any{"editType": "delete"},
				node("code-reference", map[string]any{"codeName": "code civil"},
					node("article-reference", map[string]any{"id": "9"}),
				),
			),
		),
	)
	require.Equal(t, want, tree.Export(ast.RootID))
}

func TestRewrittenEditIsNotContext(t *testing.T) {
	tree := parsed("L'article 7 est ainsi rédigé :\n« Nouveau texte. »\nLe dernier alinéa est supprimé.")
	before := tree.Export(ast.RootID)

	Run(tree, ast.RootID)

	require.Equal(t, before, tree.Export(ast.RootID))
	require.Len(t, tree.Children(ast.RootID), 2)
}

func TestSortDeduplicatesByRankKeepingFirst(t *testing.T) {
	tree := ast.New()
	edit := tree.Add(ast.RootID, &ast.Edit{EditType: ast.EditDelete})
	words := tree.Add(edit, &ast.WordsReference{})
	tree.Add(words, &ast.Quote{Words: "x"})
	first := tree.Add(words, &ast.AlineaReference{Order: 1})
	tree.Add(first, &ast.AlineaReference{Order: 2})
	tree.Add(first, &ast.ArticleReference{ID: "4"})

	SortReferences(tree, ast.RootID)

	want := root(
		node("edit", map[string]any{"editType": "delete"},
			node("article-reference", map[string]any{"id": "4"},
				node("alinea-reference", map[string]any{"order": 1},
					node("words-reference", nil,
						node("quote", map[string]any{"words": "x"}),
					),
				),
			),
		),
	)
	require.Equal(t, want, tree.Export(ast.RootID))
}

func TestSiblingChainsStayApart(t *testing.T) {
	tree := parsed("À la deuxième et à la troisième phrase du premier alinéa, le mot « et » est supprimé.")
	edit := tree.Child(ast.RootID, 0)
	require.Equal(t, ast.KindEdit, tree.Kind(edit))

	SortReferences(tree, ast.RootID)

	require.Len(t, tree.Children(edit), 2)
	for _, head := range tree.Children(edit) {
		require.Equal(t, ast.KindAlineaReference, tree.Kind(head))
	}
	sentences := tree.FilterKind(edit, ast.KindSentenceReference)
	require.Len(t, sentences, 2)
	require.Equal(t, 2, tree.Payload(sentences[0]).(*ast.SentenceReference).Order)
	require.Equal(t, 3, tree.Payload(sentences[1]).(*ast.SentenceReference).Order)
}

func TestRunIsIdempotent(t *testing.T) {
	texts := []string{
		"L'article 3 du code civil est ainsi modifié :\n1° Le premier alinéa est supprimé ;\n2° Au dernier alinéa, les mots « un » sont remplacés par les mots « deux » ;",
		"Le deuxième alinéa de l'article 3 est supprimé.\n1° Il est complété par les mots « , notamment ».",
		"I. – L'article L. 12 du code rural est abrogé.\nII. – Après le 3°, il est inséré un 3° bis ainsi rédigé :\n« 3° bis Texte ; »",
	}
	for _, text := range texts {
		tree := parsed(text)
		Run(tree, ast.RootID)
		once := tree.Export(ast.RootID)

		Run(tree, ast.RootID)
		require.Equal(t, once, tree.Export(ast.RootID), text)
	}
}

func TestChainsAreStrictlyRanked(t *testing.T) {
	tree := parsed("L'article 3 du code civil est ainsi modifié :\n1° Au dernier alinéa du II, les mots « un » sont remplacés par les mots « deux » ;")
	Run(tree, ast.RootID)

	for _, head := range tree.Filter(ast.RootID, func(id ast.NodeID) bool { return isChainHead(tree, id) }) {
		previous := -1
		for current := head; current != ast.NoNode; {
			currentRank := rank(tree, current)
			require.Greater(t, currentRank, previous)
			previous = currentRank

			next := ast.NoNode
			for _, child := range tree.Children(current) {
				if tree.Kind(child).IsRanked() {
					require.Equal(t, ast.NoNode, next, "a chain link has one reference child")
					next = child
				}
			}
			current = next
		}
	}
}
