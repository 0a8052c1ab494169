package grammar

import (
	"strings"

	"github.com/coolbeans/amendtree/pkg/ast"
	"github.com/coolbeans/amendtree/pkg/token"
)

// parseReference parses one reference and the references nested after it.
// "et" between two references is skipped.
func (parser *Parser) parseReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	start := position
	position = parser.skipToNextWord(position)
	if parser.atEnd(position) {
		return start
	}

	if next := tryOne(position, parent, parser.referenceRules); next != position {
		return next
	}

	next := parser.parseIncompleteReference(position, parent)
	if parser.lower(next, 0) == "et" {
		next = parser.skipWords(next, 1)
	}
	if next == position {
		return start
	}
	return next
}

// parsePosition reads "après", "avant", "au début" or "à la fin" and records
// it on node.
func (parser *Parser) parsePosition(position cursor, node ast.NodeID) cursor {
	start := position
	position = parser.skipToNextWord(position)

	var located ast.Position
	switch {
	case parser.lower(position, 0) == "après":
		located, position = ast.PositionAfter, parser.skipWords(position, 1)
	case parser.lower(position, 0) == "avant":
		located, position = ast.PositionBefore, parser.skipWords(position, 1)
	case parser.lower(position, 0) == "au" && parser.lower(position, 1) == "début":
		located, position = ast.PositionBeginning, parser.skipWords(position, 2)
	case parser.lower(position, 0) == "la" && parser.lower(position, 1) == "fin":
		located, position = ast.PositionEnd, parser.skipWords(position, 2)
	case parser.lower(position, 0) == "à" && parser.lower(position, 1) == "la" && parser.lower(position, 2) == "fin":
		located, position = ast.PositionEnd, parser.skipWords(position, 3)
	default:
		return start
	}

	if positioned, accepts := parser.tree.Payload(node).(ast.Positioned); accepts {
		positioned.SetPosition(located)
	}
	return position
}

func (parser *Parser) parseMultiplicativeAdverb(position cursor, node ast.NodeID) cursor {
	adverb, matched := multiplicativeAdverb(parser.word(position, 0))
	if !matched {
		return position
	}
	if multiplied, accepts := parser.tree.Payload(node).(ast.Multiplied); accepts {
		multiplied.SetAdverb(adverb)
	}
	return parser.skipWords(position, 1)
}

// parseArticleID reads "5", "L. 123-4", "LO. 1" or "12 A".
func (parser *Parser) parseArticleID(position cursor) (string, cursor) {
	var articleID strings.Builder

	if codePrefixPattern.MatchString(parser.word(position, 0)) && parser.delim(position, 0) == "." {
		scan := position
		for steps := 0; steps < 4 && !parser.atEnd(scan) && !articleNumberPattern.MatchString(parser.word(scan, 0)); steps++ {
			articleID.WriteString(parser.word(scan, 0))
			articleID.WriteString(parser.delim(scan, 0))
			scan += 2
		}
		if articleNumberPattern.MatchString(parser.word(scan, 0)) {
			position = scan
		} else {
			articleID.Reset()
		}
	}

	if !articleNumberPattern.MatchString(parser.word(position, 0)) {
		return "", position
	}
	articleID.WriteString(parser.word(position, 0))
	position = parser.skipWords(position, 1)

	if capitalLetter.MatchString(parser.word(position, 0)) {
		articleID.WriteString(" ")
		articleID.WriteString(parser.word(position, 0))
		position = parser.skipWords(position, 1)
	}
	return strings.TrimSpace(articleID.String()), position
}

// lastReferenceOfKind returns the last node of kind in the whole tree, in
// document order, ignoring node and its own subtree.
func (parser *Parser) lastReferenceOfKind(kind ast.Kind, node ast.NodeID) ast.NodeID {
	candidates := parser.tree.FilterKind(parser.tree.RootOf(node), kind)
	for candidateIndex := len(candidates) - 1; candidateIndex >= 0; candidateIndex-- {
		if !parser.tree.IsAncestor(node, candidates[candidateIndex]) {
			return candidates[candidateIndex]
		}
	}
	return ast.NoNode
}

// parseSameReference handles the "même" forms shared by several rules.
func (parser *Parser) parseSameReference(position cursor, node ast.NodeID, kind ast.Kind, words int, ruleName string) (cursor, bool) {
	antecedent := parser.lastReferenceOfKind(kind, node)
	if antecedent == ast.NoNode {
		return position, false
	}
	parser.trace(node, position, ruleName+": same")
	parser.tree.Append(node, parser.tree.Copy(antecedent))
	return parser.skipWords(position, words), true
}

func (parser *Parser) parseLawReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.LawReference{})
	law := parser.tree.Payload(node).(*ast.LawReference)
	parser.trace(node, position, "parseLawReference")
	start := position

	switch {
	case parser.lower(position, 0) == "l" && token.IsApostrophe(parser.delim(position, 0)) && parser.lower(position, 1) == "ordonnance":
		law.LawType = "ordonnance"
		position = parser.skipWords(position, 2)
	case parser.lower(position, 0) == "de" && parser.lower(position, 1) == "l" && parser.lower(position, 2) == "ordonnance":
		law.LawType = "ordonnance"
		position = parser.skipWords(position, 3)
	case parser.lower(position, 0) == "la" && parser.lower(position, 1) == "loi":
		position = parser.skipWords(position, 2)
	case parser.lower(position, 0) == "de" && parser.lower(position, 1) == "la" && parser.lower(position, 2) == "loi":
		position = parser.skipWords(position, 3)
	default:
		return parser.rollback(node, start, "parseLawReference")
	}

	if parser.lower(position, 0) == "organique" {
		law.LawType = "organic"
		position = parser.skipWords(position, 1)
	}

	numberSign, found := parser.skipToWord(position, "n°")
	if !found {
		return parser.rollback(node, start, "parseLawReference")
	}
	position = parser.skipWords(numberSign, 1)
	law.LawID = parser.word(position, 0)
	if law.LawID == "" {
		return parser.rollback(node, start, "parseLawReference")
	}
	position = parser.skipWords(position, 1)

	if parser.lower(position, 0) == "du" {
		date, valid := lawDate(parser.word(position, 1), parser.word(position, 2), parser.word(position, 3))
		if !valid {
			return parser.rollback(node, start, "parseLawReference")
		}
		law.LawDate = date
		position = parser.skipWords(position, 4)
	}
	return position
}

func (parser *Parser) parseCodeReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.CodeReference{})
	parser.trace(node, position, "parseCodeReference")
	start := position

	switch {
	case parser.word(position, 0) == "code":
		position = parser.parseCodeName(position, node)
	case isOneOf(parser.lower(position, 0), "le", "du", "au") && parser.word(position, 1) == "code":
		position = parser.parseCodeName(parser.skipWords(position, 1), node)
	case isOneOf(parser.lower(position, 0), "le", "du", "au") && parser.lower(position, 1) == "même" && parser.lower(position, 2) == "code":
		next, adopted := parser.parseSameReference(position, node, ast.KindCodeReference, 3, "parseCodeReference")
		if !adopted {
			return parser.rollback(node, start, "parseCodeReference")
		}
		return next
	default:
		return parser.rollback(node, start, "parseCodeReference")
	}

	if parser.tree.Payload(node).(*ast.CodeReference).CodeName == "" {
		return parser.rollback(node, start, "parseCodeReference")
	}
	return position
}

// parseCodeName accumulates the code name up to a clause boundary: a comma,
// a full stop, the end of the line, or the verb.
func (parser *Parser) parseCodeName(position cursor, node ast.NodeID) cursor {
	var name strings.Builder
	for !parser.atEnd(position) {
		word := parser.word(position, 0)
		if isOneOf(strings.ToLower(word), "est", "sont", "et") || word == ":" || word == ";" {
			break
		}
		name.WriteString(word)
		delimiter := parser.delim(position, 0)
		position += 2
		if delimiter == "," || delimiter == "." || token.IsNewline(delimiter) {
			break
		}
		name.WriteString(delimiter)
	}
	parser.tree.Payload(node).(*ast.CodeReference).CodeName = strings.TrimSpace(name.String())
	return position
}

func (parser *Parser) parseTitleReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.TitleReference{})
	parser.trace(node, position, "parseTitleReference")
	start := position
	position = parser.parsePosition(position, node)

	order, isRoman := roman(parser.word(position, 2))
	if !isOneOf(parser.lower(position, 0), "le", "du", "au") || parser.lower(position, 1) != "titre" || !isRoman {
		return parser.rollback(node, start, "parseTitleReference")
	}
	parser.tree.Payload(node).(*ast.TitleReference).Order = order
	position = parser.skipWords(position, 3)
	position = parser.parseMultiplicativeAdverb(position, node)
	return parser.parseReference(position, node)
}

func (parser *Parser) parseBookReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.BookReference{})
	parser.trace(node, position, "parseBookReference")
	start := position
	position = parser.parsePosition(position, node)

	order, isRoman := roman(parser.word(position, 2))
	if !isOneOf(parser.lower(position, 0), "le", "du", "au") || parser.lower(position, 1) != "livre" || !isRoman {
		return parser.rollback(node, start, "parseBookReference")
	}
	parser.tree.Payload(node).(*ast.BookReference).Order = order
	position = parser.skipWords(position, 3)
	return parser.parseReference(position, node)
}

func (parser *Parser) parseArticleReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.ArticleReference{})
	parser.trace(node, position, "parseArticleReference")
	start := position
	position = parser.parsePosition(position, node)

	if noun, elided := parser.skipElidedArticle(position); elided && parser.lower(noun, 0) == "article" {
		position = parser.skipWords(noun, 1)
	} else if isOneOf(parser.lower(position, 0), "le", "du", "au") && parser.lower(position, 1) == "même" && parser.lower(position, 2) == "article" {
		next, adopted := parser.parseSameReference(position, node, ast.KindArticleReference, 3, "parseArticleReference")
		if !adopted {
			return parser.rollback(node, start, "parseArticleReference")
		}
		return parser.parseReference(next, node)
	} else if strings.HasPrefix(parser.lower(position, 0), "article") {
		position = parser.skipWords(position, 1)
	} else {
		return parser.rollback(node, start, "parseArticleReference")
	}

	articleID, next := parser.parseArticleID(position)
	parser.tree.Payload(node).(*ast.ArticleReference).ID = articleID
	position = parser.parseMultiplicativeAdverb(next, node)
	return parser.parseReference(position, node)
}

// parseArticlePartReference parses the references that address a part of an
// article: alineas, sentences, words and segments.
func (parser *Parser) parseArticlePartReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	start := position
	position = parser.skipToNextWord(position)
	if next := tryOne(position, parent, parser.articlePartRules); next != position {
		return next
	}
	return start
}

func (parser *Parser) parseAlineaReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.AlineaReference{})
	alinea := parser.tree.Payload(node).(*ast.AlineaReference)
	parser.trace(node, position, "parseAlineaReference")
	start := position
	position = parser.parsePosition(position, node)

	if noun, elided := parser.skipElidedArticle(position); elided {
		switch {
		case isOrdinal(parser.word(noun, 0)) && isAlineaWord(parser.lower(noun, 1)):
			// l'avant-dernier alinéa
			alinea.Order, _ = ordinal(parser.word(noun, 0))
			position = parser.skipWords(noun, 2)
		case isAlineaWord(parser.lower(noun, 0)):
			// l'alinéa 3
			position = parser.skipWords(noun, 1)
			if order, isNumber := number(parser.word(position, 0)); isNumber {
				alinea.Order = order
				position = parser.skipWords(position, 1)
			}
		default:
			return parser.rollback(node, start, "parseAlineaReference")
		}
	} else {
		switch {
		case isOneOf(parser.lower(position, 0), "du", "le", "un", "au") && isOrdinal(parser.word(position, 1)) && isAlineaWord(parser.lower(position, 2)):
			alinea.Order, _ = ordinal(parser.word(position, 1))
			position = parser.skipWords(position, 3)
		case isOrdinal(parser.word(position, 0)) && isAlineaWord(parser.lower(position, 1)):
			alinea.Order, _ = ordinal(parser.word(position, 0))
			position = parser.skipWords(position, 2)
		case isOneOf(parser.lower(position, 0), "le", "du", "au") && parser.lower(position, 1) == "même" && isAlineaWord(parser.lower(position, 2)):
			next, adopted := parser.parseSameReference(position, node, ast.KindAlineaReference, 3, "parseAlineaReference")
			if !adopted {
				return parser.rollback(node, start, "parseAlineaReference")
			}
			return parser.parseArticlePartReference(next, node)
		default:
			return parser.rollback(node, start, "parseAlineaReference")
		}
	}
	return parser.parseArticlePartReference(position, node)
}

func (parser *Parser) parseSentenceReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.SentenceReference{})
	sentence := parser.tree.Payload(node).(*ast.SentenceReference)
	parser.trace(node, position, "parseSentenceReference")
	start := position
	position = parser.parsePosition(position, node)

	article := parser.lower(position, 0)
	switch {
	case isOneOf(article, "la", "une") && isSentenceWord(parser.lower(position, 1)):
		position = parser.skipWords(position, 2)
	case article == "la" && isOrdinal(parser.word(position, 1)) && isSentenceWord(parser.lower(position, 2)):
		sentence.Order, _ = ordinal(parser.word(position, 1))
		position = parser.skipWords(position, 3)
	case isOneOf(article, "de", "à") && parser.lower(position, 1) == "la" && isOrdinal(parser.word(position, 2)) && isSentenceWord(parser.lower(position, 3)):
		sentence.Order, _ = ordinal(parser.word(position, 2))
		position = parser.skipWords(position, 4)
	case article == "la" && parser.lower(position, 1) == "même" && isSentenceWord(parser.lower(position, 2)):
		next, adopted := parser.parseSameReference(position, node, ast.KindSentenceReference, 3, "parseSentenceReference")
		if !adopted {
			return parser.rollback(node, start, "parseSentenceReference")
		}
		position = next
	case isOneOf(article, "de", "à") && parser.lower(position, 1) == "la" && parser.lower(position, 2) == "même" && isSentenceWord(parser.lower(position, 3)):
		next, adopted := parser.parseSameReference(position, node, ast.KindSentenceReference, 4, "parseSentenceReference")
		if !adopted {
			return parser.rollback(node, start, "parseSentenceReference")
		}
		position = next
	default:
		return parser.rollback(node, start, "parseSentenceReference")
	}

	position = parser.parseArticlePartReference(position, node)
	parser.fixIncompleteReferences(parent, node)
	return position
}

// fixIncompleteReferences completes "à la deuxième" in "à la deuxième et à
// la troisième phrase": an incomplete sibling right before node becomes a
// sentence reference sharing node's children.
func (parser *Parser) fixIncompleteReferences(parent, node ast.NodeID) {
	index := parser.tree.Index(node)
	if index <= 0 {
		return
	}
	previous := parser.tree.Child(parent, index-1)
	incomplete, isIncomplete := parser.tree.Payload(previous).(*ast.IncompleteReference)
	if !isIncomplete {
		return
	}

	parser.tree.SetPayload(previous, &ast.SentenceReference{Locator: incomplete.Locator, Order: incomplete.Order})
	for _, child := range parser.tree.Children(previous) {
		parser.tree.Detach(child)
	}
	for _, child := range parser.tree.Children(node) {
		parser.tree.Append(previous, parser.tree.Copy(child))
	}
}

func (parser *Parser) parseWordsReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.WordsReference{})
	parser.trace(node, position, "parseWordsReference")
	start := position
	position = parser.parsePosition(position, node)

	if !isOneOf(parser.lower(position, 0), "le", "les", "des", "du", "au", "aux") || !isWordsWord(parser.lower(position, 1)) {
		return parser.rollback(node, start, "parseWordsReference")
	}
	if quoteStart, found := parser.skipToQuoteStart(position); found {
		return repeatUntilStable(parser.parseQuote, quoteStart, node)
	}
	return parser.skipWords(position, 2)
}

func (parser *Parser) parseHeader1Reference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.Header1Reference{})
	parser.trace(node, position, "parseHeader1Reference")
	start := position
	position = parser.parsePosition(position, node)

	order, isRoman := roman(parser.word(position, 1))
	if !isOneOf(parser.lower(position, 0), "le", "du", "au") || !isRoman {
		return parser.rollback(node, start, "parseHeader1Reference")
	}
	parser.tree.Payload(node).(*ast.Header1Reference).Order = order
	position = parser.skipWords(position, 2)
	return parser.parseArticlePartReference(position, node)
}

func (parser *Parser) parseHeader2Reference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.Header2Reference{})
	parser.trace(node, position, "parseHeader2Reference")
	start := position
	position = parser.parsePosition(position, node)

	order, isNumbered := header2Number(parser.word(position, 1))
	if !isOneOf(parser.lower(position, 0), "le", "du", "au") || !isNumbered {
		return parser.rollback(node, start, "parseHeader2Reference")
	}
	parser.tree.Payload(node).(*ast.Header2Reference).Order = order
	position = parser.skipWords(position, 2)
	position = parser.parseMultiplicativeAdverb(position, node)
	return parser.parseArticlePartReference(position, node)
}

func (parser *Parser) parseHeader3Reference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.Header3Reference{})
	parser.trace(node, position, "parseHeader3Reference")
	start := position
	position = parser.parsePosition(position, node)

	letter := parser.word(position, 1)
	order, isLetter := letterOrder(letter)
	closedByParenthesis := parser.delim(position, 1) == ")"
	// "le a du 1°"
	_, followedBySegment := header2Number(parser.word(position, 3))
	followedBySegment = followedBySegment && isOneOf(parser.lower(position, 2), "du", "de")
	if !isOneOf(parser.lower(position, 0), "le", "du", "au") || !isLetter || len(letter) != 1 || !(closedByParenthesis || followedBySegment) {
		return parser.rollback(node, start, "parseHeader3Reference")
	}
	parser.tree.Payload(node).(*ast.Header3Reference).Order = order
	position = parser.skipWords(position, 2)
	return parser.parseArticlePartReference(position, node)
}

// parseBackReference resolves a pronoun opening a clause ("Il est complété
// ...") to the nearest earlier chain head owned by a clause nested no deeper
// than the current one.
func (parser *Parser) parseBackReference(position cursor, parent ast.NodeID) cursor {
	if !isOneOf(parser.word(position, 0), "Il", "Elle", "Ils", "Elles") {
		return position
	}
	parser.trace(parent, position, "parseBackReference")

	depth := parser.tree.Depth(parent)
	heads := parser.tree.Filter(parser.tree.RootOf(parent), func(id ast.NodeID) bool {
		owner := parser.tree.Parent(id)
		return parser.tree.Kind(id).IsRanked() && owner != ast.NoNode && !parser.tree.Kind(owner).IsReference()
	})
	for headIndex := len(heads) - 1; headIndex >= 0; headIndex-- {
		head := heads[headIndex]
		if parser.tree.IsAncestor(parent, head) || parser.tree.Depth(head) > depth+1 {
			continue
		}
		parser.tree.Append(parent, parser.copyAntecedent(head))
		return parser.skipWords(position, 1)
	}
	return position
}

// copyAntecedent copies the target of a pronoun with the wider references
// nested in it. Narrower references and quotes are left out.
func (parser *Parser) copyAntecedent(antecedent ast.NodeID) ast.NodeID {
	copied := parser.tree.Copy(antecedent)
	headRank, _ := parser.tree.Kind(copied).Rank()
	descendants := parser.tree.Filter(copied, func(id ast.NodeID) bool {
		return id != copied
	})
	for _, descendant := range descendants {
		if rank, ranked := parser.tree.Kind(descendant).Rank(); !ranked || rank > headRank {
			parser.tree.Detach(descendant)
		}
	}
	return copied
}

func (parser *Parser) parseIncompleteReference(position cursor, parent ast.NodeID) cursor {
	if parser.atEnd(position) {
		return position
	}
	node := parser.tree.Add(parent, &ast.IncompleteReference{})
	incomplete := parser.tree.Payload(node).(*ast.IncompleteReference)
	parser.trace(node, position, "parseIncompleteReference")
	start := position
	position = parser.parsePosition(position, node)

	switch {
	case parser.lower(position, 0) == "à" && isOneOf(parser.lower(position, 1), "le", "la") && isOrdinal(parser.word(position, 2)):
		incomplete.Order, _ = ordinal(parser.word(position, 2))
		position = parser.skipWords(position, 3)
	case isOneOf(parser.lower(position, 0), "le", "la") && isOrdinal(parser.word(position, 1)):
		incomplete.Order, _ = ordinal(parser.word(position, 1))
		position = parser.skipWords(position, 2)
	default:
		return parser.rollback(node, start, "parseIncompleteReference")
	}
	return position
}
