package grammar

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/amendtree/pkg/ast"
)

func parseText(t *testing.T, text string) map[string]any {
	t.Helper()
	tree := ast.New()
	NewParser(tree).Parse(ast.RootID, text)
	return tree.Export(ast.RootID)
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
	out := node("", nil, children...)
	delete(out, "type")
	return out
}

func TestDeleteArticle(t *testing.T) {
	got := parseText(t, "L'article 5 est supprimé.")

	want := root(
		node("edit", map[string]any{"editType": "delete"},
			node("article-reference", map[string]any{"id": "5"}),
		),
	)
	require.Equal(t, want, got)
}

func TestReplaceWordsInNumberedSegment(t *testing.T) {
	got := parseText(t, "1° Au premier alinéa, les mots « du département » sont remplacés par les mots « de la région » ;")

	want := root(
		node("header-2", map[string]any{"order": 1},
			node("edit", map[string]any{"editType": "replace"},
				node("alinea-reference", map[string]any{"order": 1},
					node("words-reference", nil,
						node("quote", map[string]any{"words": "du département"}),
					),
				),
				node("words", nil,
					node("quote", map[string]any{"words": "de la région"}),
				),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestBackReferenceCopiesAntecedent(t *testing.T) {
	// TODO: check the pronoun depth rule against a real corpus of amendements.
	got := parseText(t, "Le deuxième alinéa de l'article 3 est supprimé.\n1° Il est complété par les mots « , notamment ».")

	alinea := node("alinea-reference", map[string]any{"order": 2},
		node("article-reference", map[string]any{"id": "3"}),
	)
	want := root(
		node("edit", map[string]any{"editType": "delete"}, alinea),
		node("header-2", map[string]any{"order": 1},
			node("edit", map[string]any{"editType": "add"},
				alinea,
				node("words", nil,
					node("quote", map[string]any{"words": ", notamment"}),
				),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestContextEditAndNestedSegment(t *testing.T) {
	got := parseText(t, "L'article 3 du code civil est ainsi modifié :\n1° Le premier alinéa est supprimé ;")

	want := root(
		node("edit", map[string]any{"editType": "edit"},
			node("article-reference", map[string]any{"id": "3"},
				node("code-reference", map[string]any{"codeName": "code civil"}),
			),
		),
		node("header-2", map[string]any{"order": 1},
			node("edit", map[string]any{"editType": "delete"},
				node("alinea-reference", map[string]any{"order": 1}),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestLawReferenceWithDate(t *testing.T) {
	got := parseText(t, "L'article 2 de la loi n° 2010-123 du 5 juillet 2010 est abrogé.")

	want := root(
		node("edit", map[string]any{"editType": "delete"},
			node("article-reference", map[string]any{"id": "2"},
				node("law-reference", map[string]any{"lawId": "2010-123", "lawDate": "2010-07-05"}),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestCodeArticleIdentifier(t *testing.T) {
	got := parseText(t, "L'article L. 123-4 bis du code de l'éducation est supprimé.")

	want := root(
		node("edit", map[string]any{"editType": "delete"},
			node("article-reference", map[string]any{"id": "L. 123-4", "multiplicativeAdverb": "bis"},
				node("code-reference", map[string]any{"codeName": "code de l'éducation"}),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestInsertHeader2DefinitionOnNextLine(t *testing.T) {
	got := parseText(t, "Après le 3°, il est inséré un 3° bis ainsi rédigé :\n« 3° bis Texte nouveau ; »")

	want := root(
		node("edit", map[string]any{"editType": "add"},
			node("header2-reference", map[string]any{"order": 3, "position": "after"}),
			node("header2", map[string]any{"order": 3, "multiplicativeAdverb": "bis"},
				node("quote", map[string]any{"words": "3° bis Texte nouveau ;"}),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestSegmentsNest(t *testing.T) {
	got := parseText(t, "I. – L'article 4 est supprimé.\nII. – 1° L'article 3 est ainsi modifié :\na) Le premier alinéa est supprimé ;\nb) Le dernier alinéa est supprimé ;")

	want := root(
		node("header-1", map[string]any{"order": 1},
			node("edit", map[string]any{"editType": "delete"},
				node("article-reference", map[string]any{"id": "4"}),
			),
		),
		node("header-1", map[string]any{"order": 2},
			node("header-2", map[string]any{"order": 1},
				node("edit", map[string]any{"editType": "edit"},
					node("article-reference", map[string]any{"id": "3"}),
				),
				node("header-3", map[string]any{"order": 1},
					node("edit", map[string]any{"editType": "delete"},
						node("alinea-reference", map[string]any{"order": 1}),
					),
				),
				node("header-3", map[string]any{"order": 2},
					node("edit", map[string]any{"editType": "delete"},
						node("alinea-reference", map[string]any{"order": -1}),
					),
				),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestUnrecognisedLinesBecomeContent(t *testing.T) {
	got := parseText(t, "Le présent article entre en vigueur le 1er janvier 2025.\n\nL'article 5 du code civil prévoit ceci.")

	want := root(
		node("article-content", map[string]any{"content": "Le présent article entre en vigueur le 1er janvier 2025."}),
		node("article-content", map[string]any{"content": "L'article 5 du code civil prévoit ceci."}),
	)
	require.Equal(t, want, got)
}

func TestQuotedBodyAcrossLines(t *testing.T) {
	got := parseText(t, "L'article 7 est ainsi rédigé :\n« Art. 7. – Premier alinéa.\n« Second alinéa. »")

	want := root(
		node("edit", map[string]any{"editType": "edit"},
			node("article-reference", map[string]any{"id": "7"}),
			node("quote", map[string]any{"words": "Art. 7. – Premier alinéa."}),
			node("quote", map[string]any{"words": "Second alinéa."}),
		),
	)
	require.Equal(t, want, got)
}

func TestEmptyTextProducesNothing(t *testing.T) {
	require.Equal(t, root(), parseText(t, ""))
	require.Equal(t, root(), parseText(t, "\n \n"))
}

func TestFailedRulesLeaveTreeUntouched(t *testing.T) {
	rules := map[string]func(*Parser) rule{
		"law":                 func(parser *Parser) rule { return parser.parseLawReference },
		"code":                func(parser *Parser) rule { return parser.parseCodeReference },
		"title":               func(parser *Parser) rule { return parser.parseTitleReference },
		"article":             func(parser *Parser) rule { return parser.parseArticleReference },
		"alinea":              func(parser *Parser) rule { return parser.parseAlineaReference },
		"sentence":            func(parser *Parser) rule { return parser.parseSentenceReference },
		"book":                func(parser *Parser) rule { return parser.parseBookReference },
		"header1":             func(parser *Parser) rule { return parser.parseHeader1Reference },
		"header2":             func(parser *Parser) rule { return parser.parseHeader2Reference },
		"header3":             func(parser *Parser) rule { return parser.parseHeader3Reference },
		"words":               func(parser *Parser) rule { return parser.parseWordsReference },
		"incomplete":          func(parser *Parser) rule { return parser.parseIncompleteReference },
		"definition":          func(parser *Parser) rule { return parser.parseDefinition },
		"article definition":  func(parser *Parser) rule { return parser.parseArticleDefinition },
		"alinea definition":   func(parser *Parser) rule { return parser.parseAlineaDefinition },
		"mention definition":  func(parser *Parser) rule { return parser.parseMentionDefinition },
		"header1 definition":  func(parser *Parser) rule { return parser.parseHeader1Definition },
		"header2 definition":  func(parser *Parser) rule { return parser.parseHeader2Definition },
		"words definition":    func(parser *Parser) rule { return parser.parseWordsDefinition },
		"title definition":    func(parser *Parser) rule { return parser.parseTitleDefinition },
		"sentence definition": func(parser *Parser) rule { return parser.parseSentenceDefinition },
		"quote":               func(parser *Parser) rule { return parser.parseQuote },
	}
	inputs := []string{
		"la loi du 5 juillet 2010",
		"le même code",
		"à la fin du texte",
		"la loi n° 2010-1 du 45 brumaire 2010",
		"Le présent texte",
	}

	for name, build := range rules {
		for _, input := range inputs {
			tree := ast.New()
			parser := NewParser(tree)
			parser.load(input)
			before := tree.Export(ast.RootID)

			next := build(parser)(0, ast.RootID)

			assert.Equal(t, cursor(0), next, "%s on %q", name, input)
			assert.Equal(t, before, tree.Export(ast.RootID), "%s on %q", name, input)
		}
	}
}

func TestSameArticleCopiesAntecedent(t *testing.T) {
	got := parseText(t, "L'article 12 est supprimé.\nLe premier alinéa du même article est supprimé.")

	want := root(
		node("edit", map[string]any{"editType": "delete"},
			node("article-reference", map[string]any{"id": "12"}),
		),
		node("edit", map[string]any{"editType": "delete"},
			node("alinea-reference", map[string]any{"order": 1},
				node("article-reference", nil,
					node("article-reference", map[string]any{"id": "12"}),
				),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestSameCodeFromEarlierUnit(t *testing.T) {
	tree := ast.New()
	parser := NewParser(tree)
	first := tree.Add(ast.RootID, &ast.Article{Order: 1})
	parser.Parse(first, "L'article 3 du code civil est supprimé.")
	second := tree.Add(ast.RootID, &ast.Article{Order: 2})
	parser.Parse(second, "L'article 4 du même code est supprimé.")

	want := node("article", map[string]any{"order": 2, "isNew": false},
		node("edit", map[string]any{"editType": "delete"},
			node("article-reference", map[string]any{"id": "4"},
				node("code-reference", map[string]any{"codeName": ""},
					node("code-reference", map[string]any{"codeName": "code civil"}),
				),
			),
		),
	)
	require.Equal(t, want, tree.Export(second))
}

func TestBackReferenceOnSameLine(t *testing.T) {
	// TODO: check the pronoun depth rule against a real corpus of amendements.
	got := parseText(t, "Au deuxième alinéa, les mots « a » sont remplacés par les mots « b ». Il est complété par les mots « , notamment ».")

	want := root(
		node("edit", map[string]any{"editType": "replace"},
			node("alinea-reference", map[string]any{"order": 2},
				node("words-reference", nil,
					node("quote", map[string]any{"words": "a"}),
				),
			),
			node("words", nil,
				node("quote", map[string]any{"words": "b"}),
			),
		),
		node("edit", map[string]any{"editType": "add"},
			node("alinea-reference", map[string]any{"order": 2}),
			node("words", nil,
				node("quote", map[string]any{"words": ", notamment"}),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestContextEditWithSegmentOnSameLine(t *testing.T) {
	got := parseText(t, "L'article 3 du code civil est ainsi modifié : 1° Le premier alinéa est supprimé ;")

	want := root(
		node("edit", map[string]any{"editType": "edit"},
			node("article-reference", map[string]any{"id": "3"},
				node("code-reference", map[string]any{"codeName": "code civil"}),
			),
		),
		node("header-2", map[string]any{"order": 1},
			node("edit", map[string]any{"editType": "delete"},
				node("alinea-reference", map[string]any{"order": 1}),
			),
		),
	)
	require.Equal(t, want, got)
}

func TestSentenceAfterEditOnSameLine(t *testing.T) {
	got := parseText(t, "Le premier alinéa est complété par les mots « fin ». Le dernier alinéa est supprimé.")

	want := root(
		node("edit", map[string]any{"editType": "add"},
			node("alinea-reference", map[string]any{"order": 1}),
			node("words", nil,
				node("quote", map[string]any{"words": "fin"}),
			),
		),
		node("edit", map[string]any{"editType": "delete"},
			node("alinea-reference", map[string]any{"order": -1}),
		),
	)
	require.Equal(t, want, got)

	got = parseText(t, "Au premier alinéa, les mots « a » sont remplacés par les mots « b ». Ces dispositions entrent en vigueur en 2025.")

	want = root(
		node("edit", map[string]any{"editType": "replace"},
			node("alinea-reference", map[string]any{"order": 1},
				node("words-reference", nil,
					node("quote", map[string]any{"words": "a"}),
				),
			),
			node("words", nil,
				node("quote", map[string]any{"words": "b"}),
			),
		),
		node("article-content", map[string]any{"content": "Ces dispositions entrent en vigueur en 2025."}),
	)
	require.Equal(t, want, got)
}

func TestIncompleteReferenceIsCompletedBySentence(t *testing.T) {
	tree := ast.New()
	parser := NewParser(tree)
	parser.load("à la deuxième et à la troisième phrase du premier alinéa")

	next := repeatUntilStable(parser.parseReference, 0, ast.RootID)

	require.Equal(t, parser.end(), next)
	children := tree.Children(ast.RootID)
	require.Len(t, children, 2)
	require.Equal(t, ast.KindSentenceReference, tree.Kind(children[0]))
	require.Equal(t, 2, tree.Payload(children[0]).(*ast.SentenceReference).Order)
	require.Equal(t, 3, tree.Payload(children[1]).(*ast.SentenceReference).Order)
	require.Equal(t, tree.Export(tree.Child(children[1], 0)), tree.Export(tree.Child(children[0], 0)))
}

func TestCursorHelpers(t *testing.T) {
	parser := NewParser(ast.New())
	parser.load("a b\nc")

	require.Equal(t, cursor(6), parser.end())
	require.Equal(t, cursor(4), parser.skipToEndOfLine(0))
	require.Equal(t, cursor(6), parser.skipToEndOfLine(4))
	require.True(t, parser.atLineStart(4))
	require.False(t, parser.atLineStart(2))
	require.Equal(t, "", parser.word(4, 5))

	found, ok := parser.skipToWord(0, "b")
	require.True(t, ok)
	require.Equal(t, cursor(2), found)
	_, ok = parser.skipToWord(0, "c")
	require.False(t, ok, "search stops at the end of the line")
}

func TestVocabulary(t *testing.T) {
	for word, want := range map[string]int{"premier": 1, "deuxième": 2, "1er": 1, "3e": 3, "dernier": -1, "avant-dernière": -2} {
		got, ok := ordinal(word)
		require.True(t, ok, word)
		require.Equal(t, want, got, word)
	}
	_, ok := ordinal("présent")
	require.False(t, ok)

	value, ok := roman("XIV")
	require.True(t, ok)
	require.Equal(t, 14, value)
	value, _ = roman("Ier")
	require.Equal(t, 1, value)
	_, ok = romanMarker("M")
	require.False(t, ok)

	date, ok := lawDate("1er", "août", "1905")
	require.True(t, ok)
	require.Equal(t, "1905-08-01", date)
	_, ok = lawDate("5", "brumaire", "2010")
	require.False(t, ok)

	adverb, ok := multiplicativeAdverb("Quater")
	require.True(t, ok)
	require.Equal(t, "quater", adverb)
}

func TestTraceLogsRules(t *testing.T) {
	var buffer bytes.Buffer
	logger := zerolog.New(&buffer).Level(zerolog.DebugLevel)
	NewParser(ast.New(), WithLogger(logger)).Parse(ast.RootID, "L'article 5 est supprimé.")

	require.Contains(t, buffer.String(), "parseArticleReference")
	require.Contains(t, buffer.String(), `"next":`)
}
