package grammar

import (
	"strings"

	"github.com/coolbeans/amendtree/pkg/ast"
	"github.com/coolbeans/amendtree/pkg/token"
)

// parseEdit parses "<references> est|sont <verb> [<definition or quotes>]".
// When references are found but no known verb follows, the line is kept as
// article-content instead.
func (parser *Parser) parseEdit(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.Edit{})
	edit := parser.tree.Payload(node).(*ast.Edit)
	parser.trace(node, position, "parseEdit")
	start := position

	referencesEnd := repeatUntilStable(parser.parseReference, position, node)
	if parser.tree.ChildCount(node) == 0 {
		return parser.rollback(node, start, "parseEdit")
	}

	verb, found := parser.findVerb(referencesEnd)
	if !found {
		parser.rollback(node, start, "parseEdit")
		return parser.parseRawContent(start, parent)
	}

	participle := parser.lower(verb, 1)
	switch {
	case strings.HasPrefix(participle, "supprimé") || strings.HasPrefix(participle, "abrogé"):
		edit.EditType = ast.EditDelete
		position = parser.skipToEndOfLine(verb)
	case isRedactionVerb(participle) || isRedactionVerb(parser.lower(verb, 2)):
		edit.EditType = ast.EditEdit
		amended := strings.HasPrefix(participle, "modifié") || strings.HasPrefix(parser.lower(verb, 2), "modifié")
		position = parser.parseEditQuotes(verb, node, amended)
	case strings.HasPrefix(participle, "remplacé"):
		edit.EditType = ast.EditReplace
		position = parser.skipWords(verb, 2)
		if parser.lower(position, 0) == "par" {
			position = parser.skipWords(position, 1)
		}
		position = parser.parseDefinition(position, node)
	case strings.HasPrefix(participle, "inséré") || strings.HasPrefix(participle, "ajouté"):
		edit.EditType = ast.EditAdd
		position = parser.parseDefinition(parser.skipWords(verb, 2), node)
	case strings.HasPrefix(participle, "complété"):
		edit.EditType = ast.EditAdd
		position = parser.skipWords(verb, 2)
		if parser.lower(position, 0) == "par" {
			position = parser.skipWords(position, 1)
		}
		position = parser.parseDefinition(position, node)
	default:
		parser.rollback(node, start, "parseEdit")
		return parser.parseRawContent(start, parent)
	}

	parser.trace(node, position, "parseEdit: "+string(edit.EditType))
	return parser.finishClause(position)
}

// findVerb looks for "est" or "sont" on the current line, without crossing
// into the next sentence.
func (parser *Parser) findVerb(position cursor) (cursor, bool) {
	for scan := position; !parser.atEnd(scan); scan += 2 {
		if isOneOf(parser.lower(scan, 0), "est", "sont") {
			return scan, true
		}
		delimiter := parser.delim(scan, 0)
		if token.IsNewline(delimiter) {
			break
		}
		if delimiter == "." && parser.sentenceStartsAfter(scan) {
			break
		}
	}
	return position, false
}

// sentenceStartsAfter reports whether the next word on the line after
// position is capitalised.
func (parser *Parser) sentenceStartsAfter(position cursor) bool {
	for scan := parser.skipWords(position, 1); !parser.atEnd(scan); scan += 2 {
		if word := parser.word(scan, 0); word != "" {
			return startsUppercase(word)
		}
		if token.IsNewline(parser.delim(scan, 0)) {
			break
		}
	}
	return false
}

// parseEditQuotes captures the quotes of "est ainsi rédigé". They either
// follow on the same line or fill the lines after it. "est ainsi modifié :"
// followed by more text on the line stops after the colon: the segments
// amending the target start there.
func (parser *Parser) parseEditQuotes(verb cursor, node ast.NodeID, amended bool) cursor {
	if quoteStart, found := parser.skipToQuoteStart(verb); found {
		return repeatUntilStable(parser.parseQuote, quoteStart, node)
	}
	if amended {
		if next, found := parser.skipPastColon(verb); found && parser.word(next, 0) != "" {
			return next
		}
	}
	return repeatUntilStable(parser.parseQuote, parser.skipToEndOfLine(verb), node)
}

// parseRawContent keeps the rest of the line as article-content.
func (parser *Parser) parseRawContent(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	var content strings.Builder
	scan := position
	for ; !parser.atEnd(scan); scan += 2 {
		content.WriteString(parser.word(scan, 0))
		delimiter := parser.delim(scan, 0)
		if token.IsNewline(delimiter) {
			scan += 2
			break
		}
		content.WriteString(delimiter)
	}
	if scan > parser.end() {
		scan = parser.end()
	}

	if text := strings.TrimSpace(content.String()); text != "" {
		node := parser.tree.Add(parent, &ast.ArticleContent{Content: text})
		parser.trace(node, position, "parseRawContent")
	}
	return scan
}
