package grammar

import (
	"github.com/coolbeans/amendtree/pkg/ast"
)

// Segment markers:
//
//	I.      header-1
//	3° bis  header-2
//	b)      header-3, also "b (nouveau))"
func (parser *Parser) header1Marker(position cursor) (int, cursor, bool) {
	order, isRoman := romanMarker(parser.word(position, 0))
	if !isRoman || parser.delim(position, 0) != "." {
		return 0, position, false
	}
	return order, parser.skipWords(position, 1), true
}

func (parser *Parser) header2Marker(position cursor) (int, cursor, bool) {
	order, isNumbered := header2Number(parser.word(position, 0))
	if !isNumbered {
		return 0, position, false
	}
	return order, parser.skipWords(position, 1), true
}

func (parser *Parser) header3Marker(position cursor) (int, cursor, bool) {
	order, isLetter := letterOrder(parser.word(position, 0))
	if !isLetter {
		return 0, position, false
	}
	if parser.delim(position, 0) == ")" {
		return order, parser.skipWords(position, 1), true
	}
	newMarker := parser.word(position, 1) == "" && parser.delim(position, 1) == "(" &&
		parser.lower(position, 2) == "nouveau" && parser.delim(position, 2) == ")" &&
		parser.word(position, 3) == "" && parser.delim(position, 3) == ")"
	if newMarker {
		return order, parser.skipWords(position, 4), true
	}
	return 0, position, false
}

// startsSegment reports whether position begins with any segment marker.
func (parser *Parser) startsSegment(position cursor) bool {
	if _, _, matched := parser.header1Marker(position); matched {
		return true
	}
	if _, _, matched := parser.header2Marker(position); matched {
		return true
	}
	_, _, matched := parser.header3Marker(position)
	return matched
}

// closeSegment drops a segment node that ended up without children.
func (parser *Parser) closeSegment(node, parent ast.NodeID) {
	if node != parent && parser.tree.ChildCount(node) == 0 {
		parser.tree.Detach(node)
	}
}

func (parser *Parser) parseHeader1(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	start := position
	position = parser.skipSpaces(position)
	contentStart := position

	node := parent
	if order, next, matched := parser.header1Marker(position); matched {
		node = parser.tree.Add(parent, &ast.Header1{Order: order})
		parser.trace(node, position, "parseHeader1")
		position = parser.skipToNextWord(next)
	}

	position = parser.parseEdit(position, node)
	position = repeatUntilStable(parser.parseHeader2, position, node)
	parser.closeSegment(node, parent)

	if position == contentStart {
		return start
	}
	return position
}

func (parser *Parser) parseHeader2(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	start := position
	position = parser.skipSpaces(position)
	contentStart := position

	node := parent
	if order, next, matched := parser.header2Marker(position); matched {
		node = parser.tree.Add(parent, &ast.Header2{Order: order})
		parser.trace(node, position, "parseHeader2")
		position = parser.parseMultiplicativeAdverb(next, node)
		position = parser.skipToNextWord(position)
	}

	position = parser.parseEdit(position, node)
	position = repeatUntilStable(parser.parseHeader3, position, node)
	parser.closeSegment(node, parent)

	if position == contentStart {
		return start
	}
	return position
}

func (parser *Parser) parseHeader3(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	start := position
	position = parser.skipSpaces(position)
	contentStart := position

	node := parent
	if order, next, matched := parser.header3Marker(position); matched {
		node = parser.tree.Add(parent, &ast.Header3{Order: order})
		parser.trace(node, position, "parseHeader3")
		position = parser.skipToNextWord(next)
	}

	next := parser.parseEdit(position, node)
	if next == position && (node != parent || !parser.startsSegment(position)) {
		next = parser.parseRawContent(position, node)
	}
	position = next
	parser.closeSegment(node, parent)

	if position == contentStart {
		return start
	}
	return position
}
