// Package document reads the bill and amendement exports produced by the
// data collection scripts, runs the grammar over every article and
// amendement, and encodes the resulting trees.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the input holds neither articles nor
// amendements.
var ErrEmptyDocument = errors.New("document has no articles and no amendements")

// Article is one article of a bill text. Alineas are keyed by their number.
type Article struct {
	Order   int               `json:"order" yaml:"order"`
	Alineas map[string]string `json:"alineas" yaml:"alineas"`
	Statut  string            `json:"statut,omitempty" yaml:"statut,omitempty"`
	Titre   string            `json:"titre,omitempty" yaml:"titre,omitempty"`
}

// Amendement is one amendement as published by the Assemblée nationale or
// the Sénat. Texte is an HTML fragment.
type Amendement struct {
	Numero string `json:"numero,omitempty" yaml:"numero,omitempty"`
	Sujet  string `json:"sujet" yaml:"sujet"`
	Texte  string `json:"texte" yaml:"texte"`
}

// Document is the decoded input. The single-article form, an object with
// "alineas" at the top level, is normalised into Articles.
type Document struct {
	Articles    []Article    `json:"articles,omitempty" yaml:"articles,omitempty"`
	Amendements []Amendement `json:"amendements,omitempty" yaml:"amendements,omitempty"`

	Order   int               `json:"order,omitempty" yaml:"order,omitempty"`
	Alineas map[string]string `json:"alineas,omitempty" yaml:"alineas,omitempty"`
	Statut  string            `json:"statut,omitempty" yaml:"statut,omitempty"`
}

// Decode reads a JSON document.
func Decode(reader io.Reader) (*Document, error) {
	var doc Document
	if decodeErr := json.NewDecoder(reader).Decode(&doc); decodeErr != nil {
		return nil, fmt.Errorf("decoding document: %w", decodeErr)
	}
	return doc.normalize()
}

// DecodeYAML reads the same document shape written as YAML.
func DecodeYAML(reader io.Reader) (*Document, error) {
	var doc Document
	if decodeErr := yaml.NewDecoder(reader).Decode(&doc); decodeErr != nil {
		return nil, fmt.Errorf("decoding yaml document: %w", decodeErr)
	}
	return doc.normalize()
}

func (doc *Document) normalize() (*Document, error) {
	if len(doc.Articles) == 0 && len(doc.Alineas) > 0 {
		doc.Articles = []Article{{Order: doc.Order, Alineas: doc.Alineas, Statut: doc.Statut}}
		doc.Order, doc.Alineas, doc.Statut = 0, nil, ""
	}
	if len(doc.Articles) == 0 && len(doc.Amendements) == 0 {
		return nil, ErrEmptyDocument
	}
	return doc, nil
}

// Text joins the alineas of an article, one per line, in alinea order.
func (article Article) Text() string {
	keys := make([]string, 0, len(article.Alineas))
	for key := range article.Alineas {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(left, right int) bool {
		leftNumber, leftErr := strconv.Atoi(keys[left])
		rightNumber, rightErr := strconv.Atoi(keys[right])
		if leftErr == nil && rightErr == nil {
			return leftNumber < rightNumber
		}
		return keys[left] < keys[right]
	})

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, article.Alineas[key])
	}
	return strings.Join(lines, "\n")
}

// IsNew reports whether the article is inserted by the bill.
func (article Article) IsNew() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(article.Statut)), "nouveau")
}

// IsNew reports whether the amendement introduces an additional article.
func (amendement Amendement) IsNew() bool {
	return strings.Contains(strings.ToLower(amendement.Sujet), "additionnel")
}

// Order returns the leading number of Numero ("123 rect." gives 123), or
// fallback when Numero carries none.
func (amendement Amendement) Order(fallback int) int {
	digits := strings.TrimSpace(amendement.Numero)
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	number, convErr := strconv.Atoi(digits[:end])
	if convErr != nil {
		return fallback
	}
	return number
}
