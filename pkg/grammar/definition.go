package grammar

import (
	"strings"

	"github.com/coolbeans/amendtree/pkg/ast"
	"github.com/coolbeans/amendtree/pkg/token"
)

// parseDefinition parses the new material introduced by a replace or add
// edit.
func (parser *Parser) parseDefinition(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	return tryOne(position, parent, parser.definitionRules)
}

func (parser *Parser) parseArticleDefinition(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.ArticleDefinition{})
	parser.trace(node, position, "parseArticleDefinition")
	start := position

	if parser.lower(position, 0) != "un" || parser.lower(position, 1) != "article" {
		return parser.rollback(node, start, "parseArticleDefinition")
	}
	articleID, next := parser.parseArticleID(parser.skipWords(position, 2))
	parser.tree.Payload(node).(*ast.ArticleDefinition).ID = articleID
	position = parser.parseMultiplicativeAdverb(next, node)
	return repeatUntilStable(parser.parseQuote, position, node)
}

func (parser *Parser) parseAlineaDefinition(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.AlineaDefinition{})
	parser.trace(node, position, "parseAlineaDefinition")
	start := position

	count, isCount := ordinal(parser.word(position, 0))
	if !isCount || count <= 0 || !isAlineaWord(parser.lower(position, 1)) {
		return parser.rollback(node, start, "parseAlineaDefinition")
	}
	return repeatUntilStable(parser.parseQuote, parser.skipWords(position, 2), node)
}

func (parser *Parser) parseMentionDefinition(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.MentionDefinition{})
	parser.trace(node, position, "parseMentionDefinition")
	start := position

	if parser.lower(position, 0) != "la" || parser.lower(position, 1) != "mention" {
		return parser.rollback(node, start, "parseMentionDefinition")
	}
	position = parser.skipWords(position, 2)
	if parser.word(position, 0) == ":" {
		position = parser.skipWords(position, 1)
	}
	return repeatUntilStable(parser.parseQuote, position, node)
}

func (parser *Parser) parseHeader1Definition(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.Header1Definition{})
	parser.trace(node, position, "parseHeader1Definition")
	start := position

	order, isRoman := roman(parser.word(position, 1))
	if parser.lower(position, 0) != "un" || !isRoman {
		return parser.rollback(node, start, "parseHeader1Definition")
	}
	parser.tree.Payload(node).(*ast.Header1Definition).Order = order
	return parser.parseQuote(parser.skipWords(position, 2), node)
}

func (parser *Parser) parseHeader2Definition(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.Header2Definition{})
	definition := parser.tree.Payload(node).(*ast.Header2Definition)
	parser.trace(node, position, "parseHeader2Definition")
	start := position

	if parser.lower(position, 0) != "un" {
		return parser.rollback(node, start, "parseHeader2Definition")
	}
	if order, isNumbered := header2Number(parser.word(position, 1)); isNumbered {
		definition.Order = order
		position = parser.skipWords(position, 2)
		position = parser.parseMultiplicativeAdverb(position, node)
		position = parser.parseArticlePartReference(position, node)
	} else if parser.isElidedNumber(parser.skipWords(position, 1)) {
		// "un ...°"
		definition.Elided = true
		position = parser.skipWords(position, 5)
	} else {
		return parser.rollback(node, start, "parseHeader2Definition")
	}
	return parser.parseQuote(position, node)
}

// isElidedNumber matches three full stops followed by "°".
func (parser *Parser) isElidedNumber(position cursor) bool {
	for offset := 0; offset < 3; offset++ {
		if parser.word(position, offset) != "" || parser.delim(position, offset) != "." {
			return false
		}
	}
	return strings.HasPrefix(parser.word(position, 3), "°")
}

func (parser *Parser) parseWordsDefinition(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.WordsDefinition{})
	parser.trace(node, position, "parseWordsDefinition")
	start := position
	position = parser.parsePosition(position, node)

	if !isOneOf(parser.lower(position, 0), "le", "les", "des") || !isWordsWord(parser.lower(position, 1)) {
		return parser.rollback(node, start, "parseWordsDefinition")
	}
	if quoteStart, found := parser.skipToQuoteStart(position); found {
		return repeatUntilStable(parser.parseQuote, quoteStart, node)
	}
	return parser.skipWords(position, 2)
}

func (parser *Parser) parseTitleDefinition(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.TitleDefinition{})
	parser.trace(node, position, "parseTitleDefinition")
	start := position

	order, isRoman := roman(parser.word(position, 2))
	if parser.lower(position, 0) != "un" || parser.lower(position, 1) != "titre" || !isRoman {
		return parser.rollback(node, start, "parseTitleDefinition")
	}
	parser.tree.Payload(node).(*ast.TitleDefinition).Order = order
	position = parser.parseMultiplicativeAdverb(parser.skipWords(position, 3), node)
	return repeatUntilStable(parser.parseQuote, position, node)
}

func (parser *Parser) parseSentenceDefinition(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.SentenceDefinition{})
	parser.trace(node, position, "parseSentenceDefinition")
	start := position

	count, isCount := ordinal(parser.word(position, 0))
	countsSentences := parser.lower(position, 0) == "la" || (isCount && count > 0)
	if !countsSentences || !isSentenceWord(parser.lower(position, 1)) {
		return parser.rollback(node, start, "parseSentenceDefinition")
	}
	return repeatUntilStable(parser.parseQuote, parser.skipWords(position, 2), node)
}

// parseQuote captures the text between an opening quotation mark and its
// closing mark, or the end of the line when it is never closed. "ainsi
// rédigé :" announces a quote that may start on the next line.
func (parser *Parser) parseQuote(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	start := position
	position = parser.skipSpaces(position)

	if !parser.quoteOpensAt(position) {
		announced := false
		for offset := 0; offset < 3; offset++ {
			if strings.HasPrefix(parser.lower(position, offset), "rédigé") {
				announced = true
				break
			}
		}
		if !announced {
			return start
		}
		quoteStart, found := parser.quoteStartAfter(position)
		if !found {
			return start
		}
		position = quoteStart
	}

	closing := token.ClosingQuote(parser.delim(position, 0))
	var words strings.Builder
	index := int(position) + 2
	closedByQuote := false
	for ; index < len(parser.tokens); index++ {
		current := parser.tokens[index]
		if current.Kind == token.Delimiter && current.Text == closing {
			closedByQuote = true
			break
		}
		if current.Kind == token.Delimiter && token.IsNewline(current.Text) {
			break
		}
		words.WriteString(current.Text)
	}

	node := parser.tree.Add(parent, &ast.Quote{Words: strings.TrimSpace(words.String())})
	parser.trace(node, position, "parseQuote")

	if index >= len(parser.tokens) {
		return parser.end()
	}
	next := cursor(index + 1)
	if closedByQuote {
		next = parser.skipBlanks(next)
	}
	return next
}
