// Package grammar turns French amendment text into a tree of structural
// segments, edits, references, definitions and quotes.
//
// The parser is a hand-written recursive descent over the alternating token
// stream produced by package token. Every rule takes a cursor and a parent
// node and returns the cursor after what it consumed. A rule that does not
// match returns its input cursor unchanged and leaves the tree as it found
// it: the node it tentatively added is detached again.
package grammar

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/coolbeans/amendtree/pkg/ast"
	"github.com/coolbeans/amendtree/pkg/token"
)

// cursor indexes the token stream. It always points at a content token, so
// it is always even; len(tokens) marks the end.
type cursor int

type rule func(position cursor, parent ast.NodeID) cursor

// Parser holds the tree being built and the tokens of the text currently
// being parsed.
type Parser struct {
	tree   *ast.Tree
	tokens []token.Token
	logger zerolog.Logger

	referenceRules   []rule
	articlePartRules []rule
	definitionRules  []rule
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger routes rule tracing to logger at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(parser *Parser) {
		parser.logger = logger
	}
}

// NewParser creates a parser that adds nodes to tree.
func NewParser(tree *ast.Tree, options ...Option) *Parser {
	parser := &Parser{
		tree:   tree,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(parser)
	}

	parser.referenceRules = []rule{
		parser.parseLawReference,
		parser.parseCodeReference,
		parser.parseTitleReference,
		parser.parseBookReference,
		parser.parseArticleReference,
		parser.parseArticlePartReference,
		parser.parseBackReference,
	}
	parser.articlePartRules = []rule{
		parser.parseAlineaReference,
		parser.parseSentenceReference,
		parser.parseWordsReference,
		parser.parseArticleReference,
		parser.parseHeader1Reference,
		parser.parseHeader2Reference,
		parser.parseHeader3Reference,
	}
	parser.definitionRules = []rule{
		parser.parseArticleDefinition,
		parser.parseAlineaDefinition,
		parser.parseMentionDefinition,
		parser.parseHeader1Definition,
		parser.parseHeader2Definition,
		parser.parseWordsDefinition,
		parser.parseTitleDefinition,
		parser.parseSentenceDefinition,
	}
	return parser
}

// Tree returns the tree the parser writes to.
func (parser *Parser) Tree() *ast.Tree {
	return parser.tree
}

// Parse parses the whole of text as the body of an article or amendement and
// attaches the resulting segments under parent. Parse never fails: text that
// no rule recognises is kept as article-content.
func (parser *Parser) Parse(parent ast.NodeID, text string) {
	parser.load(text)

	position := cursor(0)
	for !parser.atEnd(position) {
		next := repeatUntilStable(parser.parseHeader1, position, parent)
		if next == position {
			next = parser.parseRawContent(position, parent)
			if next == position {
				break
			}
		}
		position = next
	}
}

func (parser *Parser) load(text string) {
	parser.tokens = token.Tokenize(text)
}

// tryOne returns the result of the first rule that consumes input.
func tryOne(position cursor, parent ast.NodeID, rules []rule) cursor {
	for _, candidate := range rules {
		if next := candidate(position, parent); next != position {
			return next
		}
	}
	return position
}

// repeatUntilStable applies apply until it stops consuming input.
func repeatUntilStable(apply rule, position cursor, parent ast.NodeID) cursor {
	for {
		next := apply(position, parent)
		if next == position {
			return position
		}
		position = next
	}
}

// rollback detaches the node a failed rule added and returns its start.
func (parser *Parser) rollback(node ast.NodeID, start cursor, ruleName string) cursor {
	parser.trace(node, start, ruleName+": none")
	parser.tree.Detach(node)
	return start
}

// trace logs a rule attempt indented by the depth of node, with a peek at
// the next tokens.
func (parser *Parser) trace(node ast.NodeID, position cursor, ruleName string) {
	event := parser.logger.Debug()
	if !event.Enabled() {
		return
	}
	event.Strs("next", parser.peek(position, 4)).
		Msg(strings.Repeat("    ", parser.tree.Depth(node)) + ruleName)
}

func (parser *Parser) peek(position cursor, count int) []string {
	var texts []string
	for index := int(position); index < len(parser.tokens) && index < int(position)+count; index++ {
		texts = append(texts, parser.tokens[index].Text)
	}
	return texts
}
