// Package provider supplies the identifiers an engine declares as implemented,
// one set per effect category.
package provider

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/deckgym/deckaudit/internal/identifier"
)

// Provider kinds accepted in configuration
const (
	KindSource   = "source"
	KindSyntax   = "syntax"
	KindManifest = "manifest"
)

// Kinds lists the provider kinds in the order they are documented
var Kinds = []string{KindSource, KindSyntax, KindManifest}

var ErrUnknownKind = errors.New("unknown identifier provider")

// Provider lists the identifiers implemented for a category
type Provider interface {
	Identifiers(category identifier.Category) (Set, error)
}

// Options configures the provider built by New
type Options struct {
	Sources  map[identifier.Category]string // Implementation artifact per category
	Manifest string                         // Manifest file, manifest provider only
	Logger   *zap.Logger
}

// New builds the provider of the given kind
func New(kind string, opts Options) (Provider, error) {
	switch kind {
	case KindSource, "":
		return NewSource(opts.Sources, opts.Logger), nil
	case KindSyntax:
		return NewSyntax(opts.Sources, opts.Logger), nil
	case KindManifest:
		return LoadManifest(opts.Manifest, opts.Logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Set is an immutable set of declared identifier tokens
type Set struct {
	tokens map[string]struct{}
}

// NewSet builds a set from tokens; duplicates collapse
func NewSet(tokens ...string) Set {
	s := Set{tokens: make(map[string]struct{}, len(tokens))}
	for _, t := range tokens {
		s.tokens[t] = struct{}{}
	}
	return s
}

// Has reports whether token was declared
func (s Set) Has(token string) bool {
	_, ok := s.tokens[token]
	return ok
}

// Len returns the number of distinct tokens
func (s Set) Len() int {
	return len(s.tokens)
}

// Sorted returns the tokens in lexicographic order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s.tokens))
	for t := range s.tokens {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func sourcePath(sources map[identifier.Category]string, category identifier.Category) (string, error) {
	path, ok := sources[category]
	if !ok || path == "" {
		return "", fmt.Errorf("no implementation source configured for %s", category.Plural())
	}
	return path, nil
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
