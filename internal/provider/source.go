package provider

import (
	"fmt"
	"os"
	"regexp"

	"go.uber.org/zap"

	"github.com/deckgym/deckaudit/internal/identifier"
)

// Source scans implementation source text for Prefix::Token references
type Source struct {
	sources map[identifier.Category]string
	logger  *zap.Logger
}

// NewSource creates a text-scanning provider over one artifact per category
func NewSource(sources map[identifier.Category]string, logger *zap.Logger) *Source {
	return &Source{
		sources: sources,
		logger:  nopIfNil(logger),
	}
}

// Identifiers reads the category's artifact and extracts its declared tokens
func (s *Source) Identifiers(category identifier.Category) (Set, error) {
	path, err := sourcePath(s.sources, category)
	if err != nil {
		return Set{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("error reading %s implementation: %w", category, err)
	}

	set := ExtractText(category, string(data))
	s.logger.Debug("extracted declared identifiers",
		zap.String("category", category.String()),
		zap.String("path", path),
		zap.Int("count", set.Len()))

	return set, nil
}

// ExtractText returns every token written as <Prefix>::<Token> in text.
// Tokens may contain non-ASCII letters and digits.
func ExtractText(category identifier.Category, text string) Set {
	pattern := regexp.MustCompile(regexp.QuoteMeta(category.Prefix()) + `::([\p{L}\p{N}_]+)`)

	matches := pattern.FindAllStringSubmatch(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}

	return NewSet(tokens...)
}
