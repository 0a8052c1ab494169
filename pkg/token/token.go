// Package token splits French statutory text into an alternating sequence of
// content and delimiter tokens. Every grammar rule in the parser relies on
// that alternation: content tokens sit at even indices and each one is
// followed by exactly one delimiter, so "skip a word" is always a stride of
// two tokens.
package token

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Kind tells content tokens apart from delimiter tokens.
type Kind uint8

const (
	// Content is a run of non-delimiter characters. It may be empty when two
	// delimiters are adjacent.
	Content Kind = iota
	// Delimiter is a single delimiter character, or the empty synthetic
	// delimiter terminating the stream.
	Delimiter
)

// Token is an immutable slice of the input text tagged with its kind.
type Token struct {
	Text string
	Kind Kind
}

// String returns the token text.
func (tok Token) String() string {
	return tok.Text
}

// Tokenize splits text into tokens. The result always has an even length:
// content, delimiter, content, delimiter, ... ending with an empty synthetic
// delimiter. Non-breaking spaces are normalised to plain spaces and the text
// is NFC-normalised so that decomposed accents match the grammar keywords.
// Tokenize never fails.
func Tokenize(text string) []Token {
	normalizedText := strings.ReplaceAll(norm.NFC.String(text), "\u00a0", " ")

	tokens := make([]Token, 0, len(normalizedText)/3+2)
	var content strings.Builder
	for _, character := range normalizedText {
		if !isDelimiterRune(character) {
			content.WriteRune(character)
			continue
		}
		tokens = append(tokens,
			Token{Text: content.String(), Kind: Content},
			Token{Text: string(character), Kind: Delimiter},
		)
		content.Reset()
	}
	tokens = append(tokens,
		Token{Text: content.String(), Kind: Content},
		Token{Text: "", Kind: Delimiter},
	)
	return tokens
}

// Join concatenates the text of the given tokens.
func Join(tokens []Token) string {
	var builder strings.Builder
	for _, tok := range tokens {
		builder.WriteString(tok.Text)
	}
	return builder.String()
}

func isDelimiterRune(character rune) bool {
	if unicode.IsSpace(character) {
		return true
	}
	switch character {
	case '(', ')', '.', '!', '\'', ',', '"', '’', '«', '»', '“', '”':
		return true
	}
	return false
}

// IsSpace reports whether a delimiter is whitespace (newlines included).
func IsSpace(text string) bool {
	return text != "" && strings.TrimSpace(text) == ""
}

// IsNewline reports whether a delimiter ends a line.
func IsNewline(text string) bool {
	return text == "\n"
}

// IsApostrophe reports whether a delimiter is a straight or typographic
// apostrophe, as in "l'article" or "l’alinéa".
func IsApostrophe(text string) bool {
	return text == "'" || text == "’"
}

// IsOpenQuote reports whether a delimiter opens a quotation.
func IsOpenQuote(text string) bool {
	return text == "\"" || text == "«" || text == "“"
}

// ClosingQuote returns the delimiter that closes a quotation opened by open.
func ClosingQuote(open string) string {
	switch open {
	case "«":
		return "»"
	case "“":
		return "”"
	}
	return "\""
}
