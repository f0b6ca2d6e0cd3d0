package provider

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/deckgym/deckaudit/internal/identifier"
)

var ErrMalformedManifest = errors.New("malformed identifier manifest")

// manifestFile is the on-disk shape of a generated manifest
type manifestFile struct {
	Attacks   []string `yaml:"attacks"`
	Abilities []string `yaml:"abilities"`
}

// Manifest serves identifiers from a build-time generated YAML manifest
type Manifest struct {
	sets map[identifier.Category]Set
}

// LoadManifest reads and validates the manifest at path
func LoadManifest(path string, logger *zap.Logger) (*Manifest, error) {
	if path == "" {
		return nil, errors.New("manifest provider requires a manifest path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	m, err := DecodeManifest(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	logger = nopIfNil(logger)
	for _, category := range identifier.Categories {
		logger.Debug("loaded manifest identifiers",
			zap.String("category", category.String()),
			zap.String("path", path),
			zap.Int("count", m.sets[category].Len()))
	}

	return m, nil
}

// DecodeManifest parses a manifest document
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var file manifestFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}

	m := &Manifest{sets: make(map[identifier.Category]Set)}
	entries := map[identifier.Category][]string{
		identifier.Attack:  file.Attacks,
		identifier.Ability: file.Abilities,
	}
	for category, list := range entries {
		tokens := make([]string, 0, len(list))
		for _, entry := range list {
			token, err := manifestToken(category, entry)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		}
		m.sets[category] = NewSet(tokens...)
	}

	return m, nil
}

// Identifiers returns the manifest's entries for category
func (m *Manifest) Identifiers(category identifier.Category) (Set, error) {
	set, ok := m.sets[category]
	if !ok {
		return Set{}, fmt.Errorf("manifest has no section for %s", category.Plural())
	}
	return set, nil
}

// manifestToken accepts "Token" or "Prefix::Token" for the category's own prefix
func manifestToken(category identifier.Category, entry string) (string, error) {
	entry = strings.TrimSpace(entry)
	prefix, token, qualified := strings.Cut(entry, "::")
	if !qualified {
		token = entry
	} else if prefix != category.Prefix() {
		return "", fmt.Errorf("%w: %q listed under %s", ErrMalformedManifest, entry, strings.ToLower(category.Plural()))
	}

	if token == "" {
		return "", fmt.Errorf("%w: empty entry under %s", ErrMalformedManifest, strings.ToLower(category.Plural()))
	}
	return token, nil
}
