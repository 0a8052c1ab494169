package document

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coolbeans/amendtree/pkg/ast"
	"github.com/coolbeans/amendtree/pkg/grammar"
	"github.com/coolbeans/amendtree/pkg/resolve"
)

// Options controls Parse.
type Options struct {
	// Articles restricts parsing to the articles with these orders. Empty
	// means every article. Amendements are not filtered.
	Articles []int
	// Logger receives rule traces and per-unit summaries at debug level,
	// and a warning for every unit where no edit was recognised. Nil
	// disables logging.
	Logger *zerolog.Logger
}

// Parse builds one tree for the whole document: an article node per
// selected article and an amendement node per amendement, each holding its
// canonical edit tree. Every unit is parsed before the tree is resolved, so
// "le même code" and pronouns can refer to an earlier unit.
func Parse(doc *Document, options Options) (*ast.Tree, error) {
	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = *options.Logger
	}

	tree := ast.New()
	parser := grammar.NewParser(tree, grammar.WithLogger(logger))

	selected := make(map[int]bool, len(options.Articles))
	for _, order := range options.Articles {
		selected[order] = true
	}

	var units []parsedUnit
	for _, article := range doc.Articles {
		if len(selected) > 0 && !selected[article.Order] {
			continue
		}
		node := tree.Add(ast.RootID, &ast.Article{Order: article.Order, IsNew: article.IsNew()})
		parser.Parse(node, article.Text())
		units = append(units, parsedUnit{node: node, unit: "article", order: article.Order})
	}

	for index, amendement := range doc.Amendements {
		text, htmlErr := TextFromHTML(amendement.Texte)
		if htmlErr != nil {
			return nil, fmt.Errorf("amendement %d: %w", index+1, htmlErr)
		}
		order := amendement.Order(index + 1)
		node := tree.Add(ast.RootID, &ast.Amendement{Order: order, IsNew: amendement.IsNew()})
		parser.Parse(node, text)
		units = append(units, parsedUnit{node: node, unit: "amendement", order: order})
	}

	resolve.Run(tree, ast.RootID)
	for _, parsed := range units {
		logSummary(logger, tree, parsed)
	}
	return tree, nil
}

type parsedUnit struct {
	node  ast.NodeID
	unit  string
	order int
}

func logSummary(logger zerolog.Logger, tree *ast.Tree, parsed parsedUnit) {
	edits := len(tree.FilterKind(parsed.node, ast.KindEdit))
	unparsed := len(tree.FilterKind(parsed.node, ast.KindArticleContent))
	event := logger.Debug()
	if edits == 0 && unparsed > 0 {
		event = logger.Warn()
	}
	event.Str("unit", parsed.unit).
		Int("order", parsed.order).
		Int("edits", edits).
		Int("unparsed", unparsed).
		Msg("parsed")
}
