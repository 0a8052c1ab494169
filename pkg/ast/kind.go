// Package ast holds the mutable tree built while parsing amendment text. The
// tree is an arena of nodes addressed by NodeID; each node records its parent
// index explicitly and carries one Payload variant describing what it is.
package ast

// Kind is the discriminant of a node. Two kinds may share the same external
// type name (the "article" definition and the "article" container) while
// staying distinct internally.
type Kind uint8

const (
	KindRoot Kind = iota

	// Reference kinds locate existing text.
	KindLawReference
	KindCodeReference
	KindTitleReference
	KindBookReference
	KindArticleReference
	KindHeader1Reference
	KindHeader2Reference
	KindHeader3Reference
	KindAlineaReference
	KindSentenceReference
	KindWordsReference
	KindIncompleteReference

	// Definition kinds describe text being introduced.
	KindArticleDefinition
	KindAlineaDefinition
	KindMentionDefinition
	KindHeader1Definition
	KindHeader2Definition
	KindTitleDefinition
	KindWordsDefinition
	KindSentenceDefinition

	KindQuote
	KindEdit

	// Structural kinds segment an article or amendement body.
	KindHeader1
	KindHeader2
	KindHeader3
	KindArticleContent
	KindArticle
	KindAmendement
)

var kindTypeNames = [...]string{
	KindRoot:                "",
	KindLawReference:        "law-reference",
	KindCodeReference:       "code-reference",
	KindTitleReference:      "title-reference",
	KindBookReference:       "book-reference",
	KindArticleReference:    "article-reference",
	KindHeader1Reference:    "header1-reference",
	KindHeader2Reference:    "header2-reference",
	KindHeader3Reference:    "header3-reference",
	KindAlineaReference:     "alinea-reference",
	KindSentenceReference:   "sentence-reference",
	KindWordsReference:      "words-reference",
	KindIncompleteReference: "incomplete-reference",
	KindArticleDefinition:   "article",
	KindAlineaDefinition:    "alinea",
	KindMentionDefinition:   "mention",
	KindHeader1Definition:   "header1",
	KindHeader2Definition:   "header2",
	KindTitleDefinition:     "title",
	KindWordsDefinition:     "words",
	KindSentenceDefinition:  "sentence",
	KindQuote:               "quote",
	KindEdit:                "edit",
	KindHeader1:             "header-1",
	KindHeader2:             "header-2",
	KindHeader3:             "header-3",
	KindArticleContent:      "article-content",
	KindArticle:             "article",
	KindAmendement:          "amendement",
}

// TypeName returns the serialized "type" discriminator of the kind. The root
// kind has no type name.
func (kind Kind) TypeName() string {
	if int(kind) < len(kindTypeNames) {
		return kindTypeNames[kind]
	}
	return ""
}

// String returns the type name, or "root" for the root kind.
func (kind Kind) String() string {
	if kind == KindRoot {
		return "root"
	}
	return kind.TypeName()
}

// IsReference reports whether the kind is one of the reference variants,
// including the incomplete placeholder.
func (kind Kind) IsReference() bool {
	return kind >= KindLawReference && kind <= KindIncompleteReference
}

// IsDefinition reports whether the kind is one of the definition variants.
func (kind Kind) IsDefinition() bool {
	return kind >= KindArticleDefinition && kind <= KindSentenceDefinition
}

// IsStructural reports whether the kind segments a document body.
func (kind Kind) IsStructural() bool {
	return kind >= KindHeader1 && kind <= KindAmendement
}

// referenceRanks orders reference kinds from the widest to the narrowest
// target. A canonical chain never holds two nodes of the same rank.
var referenceRanks = map[Kind]int{
	KindCodeReference:     0,
	KindBookReference:     1,
	KindLawReference:      2,
	KindTitleReference:    3,
	KindArticleReference:  4,
	KindHeader1Reference:  5,
	KindHeader2Reference:  6,
	KindHeader3Reference:  7,
	KindAlineaReference:   8,
	KindSentenceReference: 9,
	KindWordsReference:    10,
}

// Rank returns the canonical chain rank of a reference kind. Kinds outside
// the ranked set (the incomplete placeholder and every non-reference) report
// false.
func (kind Kind) Rank() (int, bool) {
	rank, ranked := referenceRanks[kind]
	return rank, ranked
}

// IsRanked reports whether the kind takes part in canonical reference chains.
func (kind Kind) IsRanked() bool {
	_, ranked := referenceRanks[kind]
	return ranked
}
