package provider

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
	"go.uber.org/zap"

	"github.com/deckgym/deckaudit/internal/identifier"
)

// Syntax parses Rust implementation files and collects Prefix::Token paths.
// Unlike Source it does not see tokens inside comments or string literals.
type Syntax struct {
	sources map[identifier.Category]string
	logger  *zap.Logger
}

// NewSyntax creates a provider backed by the tree-sitter Rust grammar
func NewSyntax(sources map[identifier.Category]string, logger *zap.Logger) *Syntax {
	return &Syntax{
		sources: sources,
		logger:  nopIfNil(logger),
	}
}

// Identifiers parses the category's artifact and returns the declared tokens
func (s *Syntax) Identifiers(category identifier.Category) (Set, error) {
	path, err := sourcePath(s.sources, category)
	if err != nil {
		return Set{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("error reading %s implementation: %w", category, err)
	}

	tokens, err := s.extract(category, content)
	if err != nil {
		return Set{}, fmt.Errorf("error parsing %s: %w", path, err)
	}

	set := NewSet(tokens...)
	s.logger.Debug("parsed declared identifiers",
		zap.String("category", category.String()),
		zap.String("path", path),
		zap.Int("count", set.Len()))

	return set, nil
}

// ExtractSyntax parses Rust source and returns the tokens referenced under the category prefix
func ExtractSyntax(category identifier.Category, content []byte) (Set, error) {
	tokens, err := NewSyntax(nil, nil).extract(category, content)
	if err != nil {
		return Set{}, err
	}
	return NewSet(tokens...), nil
}

func (s *Syntax) extract(category identifier.Category, content []byte) ([]string, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		// Error recovery still yields usable paths around the broken region
		s.logger.Warn("source contains syntax errors",
			zap.String("category", category.String()))
	}

	var tokens []string
	walk(root, category.Prefix(), content, &tokens)
	return tokens, nil
}

// walk collects the name of every scoped path qualified by prefix
func walk(node *sitter.Node, prefix string, content []byte, tokens *[]string) {
	switch node.Type() {
	case "scoped_identifier", "scoped_type_identifier":
		path := node.ChildByFieldName("path")
		name := node.ChildByFieldName("name")
		if path != nil && name != nil && lastSegment(path, content) == prefix {
			*tokens = append(*tokens, name.Content(content))
		}
	case "token_tree":
		// Macro bodies are not parsed into paths, only into flat tokens
		scanTokenTree(node, prefix, content, tokens)
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), prefix, content, tokens)
	}
}

// lastSegment returns the final segment of a path node
func lastSegment(path *sitter.Node, content []byte) string {
	switch path.Type() {
	case "scoped_identifier", "scoped_type_identifier":
		if name := path.ChildByFieldName("name"); name != nil {
			return name.Content(content)
		}
	}
	return path.Content(content)
}

// scanTokenTree matches the identifier, "::", identifier sequence inside a macro body
func scanTokenTree(node *sitter.Node, prefix string, content []byte, tokens *[]string) {
	count := int(node.ChildCount())
	for i := 0; i+2 < count; i++ {
		head, sep, tail := node.Child(i), node.Child(i+1), node.Child(i+2)
		if head.Type() != "identifier" || head.Content(content) != prefix {
			continue
		}
		if sep.Type() != "::" || tail.Type() != "identifier" {
			continue
		}
		*tokens = append(*tokens, tail.Content(content))
	}
}
