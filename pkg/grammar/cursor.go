package grammar

import (
	"strings"

	"github.com/coolbeans/amendtree/pkg/token"
)

func (parser *Parser) end() cursor {
	return cursor(len(parser.tokens))
}

func (parser *Parser) atEnd(position cursor) bool {
	return int(position) >= len(parser.tokens)
}

// word returns the content token offset words after position, "" past the end.
func (parser *Parser) word(position cursor, offset int) string {
	index := int(position) + 2*offset
	if index < 0 || index >= len(parser.tokens) {
		return ""
	}
	return parser.tokens[index].Text
}

func (parser *Parser) lower(position cursor, offset int) string {
	return strings.ToLower(parser.word(position, offset))
}

// delim returns the delimiter following the word offset words after position.
func (parser *Parser) delim(position cursor, offset int) string {
	index := int(position) + 2*offset + 1
	if index < 0 || index >= len(parser.tokens) {
		return ""
	}
	return parser.tokens[index].Text
}

func (parser *Parser) skipWords(position cursor, count int) cursor {
	next := position + cursor(2*count)
	if next > parser.end() {
		return parser.end()
	}
	return next
}

// atLineStart reports whether position is the first word of a line.
func (parser *Parser) atLineStart(position cursor) bool {
	if position == 0 || parser.atEnd(position) {
		return true
	}
	return token.IsNewline(parser.tokens[position-1].Text)
}

// skipSpaces skips empty words followed by whitespace, crossing lines.
func (parser *Parser) skipSpaces(position cursor) cursor {
	for !parser.atEnd(position) && parser.word(position, 0) == "" && token.IsSpace(parser.delim(position, 0)) {
		position += 2
	}
	return position
}

// skipBlanks is skipSpaces without crossing a line break.
func (parser *Parser) skipBlanks(position cursor) cursor {
	for !parser.atEnd(position) && parser.word(position, 0) == "" {
		delimiter := parser.delim(position, 0)
		if !token.IsSpace(delimiter) || token.IsNewline(delimiter) {
			break
		}
		position += 2
	}
	return position
}

// skipToNextWord skips words without letters or digits (dashes, colons,
// empty words) on the current line.
func (parser *Parser) skipToNextWord(position cursor) cursor {
	for !parser.atEnd(position) && !hasWordCharacter(parser.word(position, 0)) {
		if token.IsNewline(parser.delim(position, 0)) {
			break
		}
		position += 2
	}
	return position
}

// skipToWord finds target on the current line.
func (parser *Parser) skipToWord(position cursor, target string) (cursor, bool) {
	for scan := position; !parser.atEnd(scan); scan += 2 {
		if parser.word(scan, 0) == target {
			return scan, true
		}
		if token.IsNewline(parser.delim(scan, 0)) {
			break
		}
	}
	return position, false
}

// skipToEndOfLine returns the first word of the next line, or the end.
func (parser *Parser) skipToEndOfLine(position cursor) cursor {
	for !parser.atEnd(position) {
		newline := token.IsNewline(parser.delim(position, 0))
		position += 2
		if newline {
			return position
		}
	}
	return parser.end()
}

// finishClause skips the punctuation closing a clause (";", ".", ",", blanks)
// up to the next word or past the line break, so that a sentence following
// on the same line is parsed on its own.
func (parser *Parser) finishClause(position cursor) cursor {
	for !parser.atEnd(position) {
		word := parser.word(position, 0)
		if word != "" && word != ";" {
			break
		}
		delimiter := parser.delim(position, 0)
		if delimiter != "" && delimiter != "." && delimiter != "," && !token.IsSpace(delimiter) {
			break
		}
		position += 2
		if token.IsNewline(delimiter) {
			break
		}
	}
	return position
}

// skipPastColon returns the word after the ":" ending "ainsi modifié :",
// when text follows that colon on the current line.
func (parser *Parser) skipPastColon(position cursor) (cursor, bool) {
	colon, found := parser.skipToWord(position, ":")
	if !found || token.IsNewline(parser.delim(colon, 0)) {
		return position, false
	}
	return parser.skipBlanks(parser.skipWords(colon, 1)), true
}

// quoteOpensAt reports whether position is an empty word followed by an
// opening quotation mark.
func (parser *Parser) quoteOpensAt(position cursor) bool {
	return !parser.atEnd(position) &&
		strings.TrimSpace(parser.word(position, 0)) == "" &&
		token.IsOpenQuote(parser.delim(position, 0))
}

// skipToQuoteStart finds the next opening quotation on the current line.
func (parser *Parser) skipToQuoteStart(position cursor) (cursor, bool) {
	for scan := position; !parser.atEnd(scan); scan += 2 {
		if parser.quoteOpensAt(scan) {
			return scan, true
		}
		if token.IsNewline(parser.delim(scan, 0)) {
			break
		}
	}
	return position, false
}

// quoteStartAfter finds an opening quotation on the current line or at the
// start of the next non-blank line, as in "ainsi rédigé :\n« ... »".
func (parser *Parser) quoteStartAfter(position cursor) (cursor, bool) {
	if start, found := parser.skipToQuoteStart(position); found {
		return start, true
	}
	nextLine := parser.skipSpaces(parser.skipToEndOfLine(position))
	if parser.quoteOpensAt(nextLine) {
		return nextLine, true
	}
	return position, false
}

// skipElidedArticle matches "l'", "de l'" or "à l'" and returns the cursor
// on the noun that follows.
func (parser *Parser) skipElidedArticle(position cursor) (cursor, bool) {
	scan := position
	if isOneOf(parser.lower(scan, 0), "de", "à") {
		scan = parser.skipWords(scan, 1)
	}
	if parser.lower(scan, 0) == "l" && token.IsApostrophe(parser.delim(scan, 0)) {
		return parser.skipWords(scan, 1), true
	}
	return position, false
}
