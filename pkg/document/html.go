package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// TextFromHTML flattens an amendement's HTML into plain text with one line
// per paragraph. Entities are decoded; inline tags become spaces.
func TextFromHTML(fragment string) (string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var text strings.Builder

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenErr := tokenizer.Err(); !errors.Is(tokenErr, io.EOF) {
				return "", fmt.Errorf("tokenizing html: %w", tokenErr)
			}
			return joinLines(text.String()), nil
		case html.TextToken:
			text.Write(tokenizer.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tagName, _ := tokenizer.TagName()
			if isBlockTag(string(tagName)) {
				text.WriteString("\n")
			} else {
				text.WriteString(" ")
			}
		}
	}
}

func isBlockTag(tagName string) bool {
	switch tagName {
	case "p", "br", "div", "li", "ul", "ol", "table", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
		return true
	}
	return false
}

// joinLines trims every line and drops the empty ones.
func joinLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
