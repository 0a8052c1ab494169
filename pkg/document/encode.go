package document

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/amendtree/pkg/ast"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected json or yaml)", name)
}

// Encode writes the tree with sorted keys. JSON is indented by two spaces
// and leaves non-ASCII characters and "<>&" unescaped.
func Encode(writer io.Writer, tree *ast.Tree, format Format) error {
	exported := tree.Export(ast.RootID)

	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if encodeErr := encoder.Encode(exported); encodeErr != nil {
			return fmt.Errorf("encoding yaml: %w", encodeErr)
		}
		return encoder.Close()
	case FormatJSON, "":
		encoder := json.NewEncoder(writer)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		if encodeErr := encoder.Encode(exported); encodeErr != nil {
			return fmt.Errorf("encoding json: %w", encodeErr)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
