package ast

// Payload is the variant-specific part of a node. The set of variants is
// closed: every implementation lives in this package, and each one carries
// only the fields meaningful to it.
type Payload interface {
	Kind() Kind
	// Clone returns an independent copy of the payload.
	Clone() Payload
	fields(out map[string]any)
}

// Position locates an edit relative to its target.
type Position string

const (
	PositionNone      Position = ""
	PositionBefore    Position = "before"
	PositionAfter     Position = "after"
	PositionBeginning Position = "beginning"
	PositionEnd       Position = "end"
)

// Positioned is implemented by every payload that accepts a position tag.
type Positioned interface {
	SetPosition(position Position)
	GetPosition() Position
}

// Multiplied is implemented by every payload that accepts a multiplicative
// adverb ("bis", "ter", ...).
type Multiplied interface {
	SetAdverb(adverb string)
}

// Ordered is implemented by every payload carrying a numeric order.
type Ordered interface {
	GetOrder() int
}

// Blank is implemented by reference payloads that "le même ..." leaves
// without their identifying field.
type Blank interface {
	IsBlank() bool
}

// FillBlank returns the payload of the link kept when two references of the
// same kind collapse into one: kept itself, or, when kept is blank, a clone
// of dropped carrying kept's position.
func FillBlank(kept, dropped Payload) Payload {
	blank, canBeBlank := kept.(Blank)
	if !canBeBlank || !blank.IsBlank() || kept.Kind() != dropped.Kind() {
		return kept
	}
	filled := dropped.Clone()
	if located := kept.(Positioned).GetPosition(); located != PositionNone {
		filled.(Positioned).SetPosition(located)
	}
	return filled
}

// Locator holds the optional position shared by reference variants.
type Locator struct {
	Position Position
}

// SetPosition records where the edit applies relative to the target.
func (locator *Locator) SetPosition(position Position) {
	locator.Position = position
}

// GetPosition returns the recorded position, PositionNone when unset.
func (locator *Locator) GetPosition() Position {
	return locator.Position
}

func (locator Locator) putPosition(out map[string]any) {
	if locator.Position != PositionNone {
		out["position"] = string(locator.Position)
	}
}

// Multiplier holds an optional multiplicative adverb such as "bis".
type Multiplier struct {
	Adverb string
}

// SetAdverb records the multiplicative adverb.
func (multiplier *Multiplier) SetAdverb(adverb string) {
	multiplier.Adverb = adverb
}

func (multiplier Multiplier) putAdverb(out map[string]any) {
	if multiplier.Adverb != "" {
		out["multiplicativeAdverb"] = multiplier.Adverb
	}
}

// putOptionalOrder writes order when the grammar branch that sets it matched.
// Zero never occurs as a parsed order, so it marks absence.
func putOptionalOrder(out map[string]any, order int) {
	if order != 0 {
		out["order"] = order
	}
}

// Root is the payload of the tree root. It has no type name.
type Root struct{}

func (payload *Root) Kind() Kind              { return KindRoot }
func (payload *Root) Clone() Payload          { clone := *payload; return &clone }
func (payload *Root) fields(out map[string]any) {}

// LawReference targets a law or an ordinance, e.g. "la loi n° 2010-123 du
// 5 juillet 2010".
type LawReference struct {
	Locator
	LawID   string
	LawType string // "organic" or "ordonnance" when stated
	LawDate string // YYYY-MM-DD when stated
}

func (payload *LawReference) Kind() Kind     { return KindLawReference }
func (payload *LawReference) Clone() Payload { clone := *payload; return &clone }
func (payload *LawReference) fields(out map[string]any) {
	payload.putPosition(out)
	out["lawId"] = payload.LawID
	if payload.LawType != "" {
		out["lawType"] = payload.LawType
	}
	if payload.LawDate != "" {
		out["lawDate"] = payload.LawDate
	}
}

// CodeReference targets a code, e.g. "du code civil".
type CodeReference struct {
	Locator
	CodeName string
}

func (payload *CodeReference) Kind() Kind     { return KindCodeReference }
func (payload *CodeReference) Clone() Payload { clone := *payload; return &clone }
func (payload *CodeReference) IsBlank() bool  { return payload.CodeName == "" }
func (payload *CodeReference) fields(out map[string]any) {
	payload.putPosition(out)
	out["codeName"] = payload.CodeName
}

// TitleReference targets a title, e.g. "le titre IV bis".
type TitleReference struct {
	Locator
	Multiplier
	Order int
}

func (payload *TitleReference) Kind() Kind     { return KindTitleReference }
func (payload *TitleReference) Clone() Payload { clone := *payload; return &clone }
func (payload *TitleReference) GetOrder() int  { return payload.Order }
func (payload *TitleReference) fields(out map[string]any) {
	payload.putPosition(out)
	payload.putAdverb(out)
	out["order"] = payload.Order
}

// BookReference targets a book, e.g. "du livre II".
type BookReference struct {
	Locator
	Order int
}

func (payload *BookReference) Kind() Kind     { return KindBookReference }
func (payload *BookReference) Clone() Payload { clone := *payload; return &clone }
func (payload *BookReference) GetOrder() int  { return payload.Order }
func (payload *BookReference) fields(out map[string]any) {
	payload.putPosition(out)
	out["order"] = payload.Order
}

// ArticleReference targets an article, e.g. "l'article L. 123-4 bis".
type ArticleReference struct {
	Locator
	Multiplier
	ID string
}

func (payload *ArticleReference) Kind() Kind     { return KindArticleReference }
func (payload *ArticleReference) Clone() Payload { clone := *payload; return &clone }
func (payload *ArticleReference) IsBlank() bool  { return payload.ID == "" }
func (payload *ArticleReference) fields(out map[string]any) {
	payload.putPosition(out)
	payload.putAdverb(out)
	if payload.ID != "" {
		out["id"] = payload.ID
	}
}

// Header1Reference targets a roman-numeral segment, e.g. "du II".
type Header1Reference struct {
	Locator
	Order int
}

func (payload *Header1Reference) Kind() Kind     { return KindHeader1Reference }
func (payload *Header1Reference) Clone() Payload { clone := *payload; return &clone }
func (payload *Header1Reference) GetOrder() int  { return payload.Order }
func (payload *Header1Reference) fields(out map[string]any) {
	payload.putPosition(out)
	out["order"] = payload.Order
}

// Header2Reference targets a "N°" segment, e.g. "au 3° bis".
type Header2Reference struct {
	Locator
	Multiplier
	Order int
}

func (payload *Header2Reference) Kind() Kind     { return KindHeader2Reference }
func (payload *Header2Reference) Clone() Payload { clone := *payload; return &clone }
func (payload *Header2Reference) GetOrder() int  { return payload.Order }
func (payload *Header2Reference) fields(out map[string]any) {
	payload.putPosition(out)
	payload.putAdverb(out)
	out["order"] = payload.Order
}

// Header3Reference targets a lettered segment, e.g. "le b)".
type Header3Reference struct {
	Locator
	Order int
}

func (payload *Header3Reference) Kind() Kind     { return KindHeader3Reference }
func (payload *Header3Reference) Clone() Payload { clone := *payload; return &clone }
func (payload *Header3Reference) GetOrder() int  { return payload.Order }
func (payload *Header3Reference) fields(out map[string]any) {
	payload.putPosition(out)
	out["order"] = payload.Order
}

// AlineaReference targets an alinea. Order is 1-based, negative values count
// from the end (-1 is "le dernier alinéa"), zero when unspecified.
type AlineaReference struct {
	Locator
	Order int
}

func (payload *AlineaReference) Kind() Kind     { return KindAlineaReference }
func (payload *AlineaReference) Clone() Payload { clone := *payload; return &clone }
func (payload *AlineaReference) IsBlank() bool  { return payload.Order == 0 }
func (payload *AlineaReference) GetOrder() int  { return payload.Order }
func (payload *AlineaReference) fields(out map[string]any) {
	payload.putPosition(out)
	putOptionalOrder(out, payload.Order)
}

// SentenceReference targets a sentence within an alinea.
type SentenceReference struct {
	Locator
	Order int
}

func (payload *SentenceReference) Kind() Kind     { return KindSentenceReference }
func (payload *SentenceReference) Clone() Payload { clone := *payload; return &clone }
func (payload *SentenceReference) IsBlank() bool  { return payload.Order == 0 }
func (payload *SentenceReference) GetOrder() int  { return payload.Order }
func (payload *SentenceReference) fields(out map[string]any) {
	payload.putPosition(out)
	putOptionalOrder(out, payload.Order)
}

// WordsReference targets quoted words; the words are its quote children.
type WordsReference struct {
	Locator
}

func (payload *WordsReference) Kind() Kind     { return KindWordsReference }
func (payload *WordsReference) Clone() Payload { clone := *payload; return &clone }
func (payload *WordsReference) fields(out map[string]any) {
	payload.putPosition(out)
}

// IncompleteReference is a reference missing its head noun ("à la
// deuxième"), completed later by a following sibling in the same clause.
type IncompleteReference struct {
	Locator
	Order int
}

func (payload *IncompleteReference) Kind() Kind     { return KindIncompleteReference }
func (payload *IncompleteReference) Clone() Payload { clone := *payload; return &clone }
func (payload *IncompleteReference) GetOrder() int  { return payload.Order }
func (payload *IncompleteReference) fields(out map[string]any) {
	payload.putPosition(out)
	putOptionalOrder(out, payload.Order)
}

// ArticleDefinition introduces a new article.
type ArticleDefinition struct {
	Multiplier
	ID string
}

func (payload *ArticleDefinition) Kind() Kind     { return KindArticleDefinition }
func (payload *ArticleDefinition) Clone() Payload { clone := *payload; return &clone }
func (payload *ArticleDefinition) fields(out map[string]any) {
	payload.putAdverb(out)
	if payload.ID != "" {
		out["id"] = payload.ID
	}
}

// AlineaDefinition introduces one or more alineas, given as quote children.
type AlineaDefinition struct{}

func (payload *AlineaDefinition) Kind() Kind                { return KindAlineaDefinition }
func (payload *AlineaDefinition) Clone() Payload            { clone := *payload; return &clone }
func (payload *AlineaDefinition) fields(out map[string]any) {}

// MentionDefinition introduces a mention.
type MentionDefinition struct{}

func (payload *MentionDefinition) Kind() Kind                { return KindMentionDefinition }
func (payload *MentionDefinition) Clone() Payload            { clone := *payload; return &clone }
func (payload *MentionDefinition) fields(out map[string]any) {}

// Header1Definition introduces a roman-numeral segment.
type Header1Definition struct {
	Order int
}

func (payload *Header1Definition) Kind() Kind     { return KindHeader1Definition }
func (payload *Header1Definition) Clone() Payload { clone := *payload; return &clone }
func (payload *Header1Definition) GetOrder() int  { return payload.Order }
func (payload *Header1Definition) fields(out map[string]any) {
	out["order"] = payload.Order
}

// Header2Definition introduces a "N°" segment. Elided is set for the
// placeholder "un ...°" where the number is left to the editor.
type Header2Definition struct {
	Multiplier
	Order  int
	Elided bool
}

func (payload *Header2Definition) Kind() Kind     { return KindHeader2Definition }
func (payload *Header2Definition) Clone() Payload { clone := *payload; return &clone }
func (payload *Header2Definition) GetOrder() int  { return payload.Order }
func (payload *Header2Definition) fields(out map[string]any) {
	payload.putAdverb(out)
	if payload.Elided {
		out["order"] = "..."
		return
	}
	out["order"] = payload.Order
}

// TitleDefinition introduces a new title.
type TitleDefinition struct {
	Multiplier
	Order int
}

func (payload *TitleDefinition) Kind() Kind     { return KindTitleDefinition }
func (payload *TitleDefinition) Clone() Payload { clone := *payload; return &clone }
func (payload *TitleDefinition) GetOrder() int  { return payload.Order }
func (payload *TitleDefinition) fields(out map[string]any) {
	payload.putAdverb(out)
	out["order"] = payload.Order
}

// WordsDefinition introduces quoted words.
type WordsDefinition struct {
	Locator
}

func (payload *WordsDefinition) Kind() Kind     { return KindWordsDefinition }
func (payload *WordsDefinition) Clone() Payload { clone := *payload; return &clone }
func (payload *WordsDefinition) fields(out map[string]any) {
	payload.putPosition(out)
}

// SentenceDefinition introduces one or more sentences.
type SentenceDefinition struct{}

func (payload *SentenceDefinition) Kind() Kind                { return KindSentenceDefinition }
func (payload *SentenceDefinition) Clone() Payload            { clone := *payload; return &clone }
func (payload *SentenceDefinition) fields(out map[string]any) {}

// Quote holds literal text captured between quotation marks.
type Quote struct {
	Words string
}

func (payload *Quote) Kind() Kind     { return KindQuote }
func (payload *Quote) Clone() Payload { clone := *payload; return &clone }
func (payload *Quote) fields(out map[string]any) {
	out["words"] = payload.Words
}

// EditType classifies the change an edit applies to its target.
type EditType string

const (
	EditDelete  EditType = "delete"
	EditEdit    EditType = "edit"
	EditReplace EditType = "replace"
	EditAdd     EditType = "add"
)

// Edit is an amendment instruction. Its children are the target reference
// chain followed by nothing (delete), quotes (edit) or a definition
// (replace, add).
type Edit struct {
	EditType EditType
}

func (payload *Edit) Kind() Kind     { return KindEdit }
func (payload *Edit) Clone() Payload { clone := *payload; return &clone }
func (payload *Edit) fields(out map[string]any) {
	if payload.EditType != "" {
		out["editType"] = string(payload.EditType)
	}
}

// Header1 is a roman-numeral segment ("II.").
type Header1 struct {
	Order int
}

func (payload *Header1) Kind() Kind     { return KindHeader1 }
func (payload *Header1) Clone() Payload { clone := *payload; return &clone }
func (payload *Header1) GetOrder() int  { return payload.Order }
func (payload *Header1) fields(out map[string]any) {
	out["order"] = payload.Order
}

// Header2 is a numbered segment ("3°", "3° bis").
type Header2 struct {
	Multiplier
	Order int
}

func (payload *Header2) Kind() Kind     { return KindHeader2 }
func (payload *Header2) Clone() Payload { clone := *payload; return &clone }
func (payload *Header2) GetOrder() int  { return payload.Order }
func (payload *Header2) fields(out map[string]any) {
	payload.putAdverb(out)
	out["order"] = payload.Order
}

// Header3 is a lettered segment ("b)").
type Header3 struct {
	Order int
}

func (payload *Header3) Kind() Kind     { return KindHeader3 }
func (payload *Header3) Clone() Payload { clone := *payload; return &clone }
func (payload *Header3) GetOrder() int  { return payload.Order }
func (payload *Header3) fields(out map[string]any) {
	out["order"] = payload.Order
}

// ArticleContent is a raw line no edit rule recognised.
type ArticleContent struct {
	Content string
}

func (payload *ArticleContent) Kind() Kind     { return KindArticleContent }
func (payload *ArticleContent) Clone() Payload { clone := *payload; return &clone }
func (payload *ArticleContent) fields(out map[string]any) {
	out["content"] = payload.Content
}

// Article is the container of one parsed article.
type Article struct {
	Order int
	IsNew bool
}

func (payload *Article) Kind() Kind     { return KindArticle }
func (payload *Article) Clone() Payload { clone := *payload; return &clone }
func (payload *Article) GetOrder() int  { return payload.Order }
func (payload *Article) fields(out map[string]any) {
	out["order"] = payload.Order
	out["isNew"] = payload.IsNew
}

// Amendement is the container of one parsed amendement.
type Amendement struct {
	Order int
	IsNew bool
}

func (payload *Amendement) Kind() Kind     { return KindAmendement }
func (payload *Amendement) Clone() Payload { clone := *payload; return &clone }
func (payload *Amendement) GetOrder() int  { return payload.Order }
func (payload *Amendement) fields(out map[string]any) {
	out["order"] = payload.Order
	out["isNew"] = payload.IsNew
}
