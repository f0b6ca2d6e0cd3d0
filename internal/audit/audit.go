// Package audit reports card effects that have no implementation.
package audit

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/deckgym/deckaudit/internal/card"
	"github.com/deckgym/deckaudit/internal/identifier"
	"github.com/deckgym/deckaudit/internal/provider"
)

// Filter selects which cards and which effect categories an audit covers
type Filter struct {
	Name       string // Heading suffix, e.g. "for Basic Pokémon"
	Include    func(*card.Pokemon) bool
	Categories []identifier.Category
}

// Full audits attacks and abilities of every Pokemon
func Full() Filter {
	return Filter{
		Include:    func(*card.Pokemon) bool { return true },
		Categories: []identifier.Category{identifier.Attack, identifier.Ability},
	}
}

// BasicOnly audits the attacks of unevolved Pokemon
func BasicOnly() Filter {
	return Filter{
		Name:       "for Basic Pokémon",
		Include:    (*card.Pokemon).IsBasic,
		Categories: []identifier.Category{identifier.Attack},
	}
}

// Gap is an effect whose expected identifier is not declared
type Gap struct {
	Category identifier.Category
	CardID   string
	CardName string
	Index    int // Position in the card's attack list; 0 for abilities
	Title    string
	Expected string
}

// Label is the human-readable form reported to the user
func (g Gap) Label() string {
	return fmt.Sprintf("%s: %s", g.CardName, g.Title)
}

// Section holds the sorted, deduplicated gaps of one category
type Section struct {
	Category identifier.Category
	Heading  string
	Lines    []string
	Gaps     []Gap // Every miss in database order, before deduplication
}

// Report is the outcome of one audit run
type Report struct {
	Sections []Section
}

// Reporter matches derived identifiers against a provider
type Reporter struct {
	provider provider.Provider
	logger   *zap.Logger
}

// NewReporter creates a reporter; a nil logger discards output
func NewReporter(p provider.Provider, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		provider: p,
		logger:   logger,
	}
}

// Run audits cards under filter. Only the filter's categories are requested
// from the provider, and any provider error aborts the run.
func (r *Reporter) Run(cards []card.Card, filter Filter) (*Report, error) {
	declared := make(map[identifier.Category]provider.Set, len(filter.Categories))
	for _, category := range filter.Categories {
		set, err := r.provider.Identifiers(category)
		if err != nil {
			return nil, fmt.Errorf("error loading implemented %s: %w", category.Plural(), err)
		}
		declared[category] = set
	}

	gaps := make(map[identifier.Category][]Gap, len(filter.Categories))
	audited, skipped := 0, 0
	for _, c := range cards {
		if !c.IsPokemon() {
			skipped++
			continue
		}
		p := c.Pokemon
		if filter.Include != nil && !filter.Include(p) {
			continue
		}
		audited++

		for _, category := range filter.Categories {
			gaps[category] = append(gaps[category], r.check(p, category, declared[category])...)
		}
	}

	r.logger.Debug("audit complete",
		zap.Int("records", len(cards)),
		zap.Int("audited", audited),
		zap.Int("non_pokemon", skipped))

	report := &Report{}
	for _, category := range filter.Categories {
		report.Sections = append(report.Sections, Section{
			Category: category,
			Heading:  heading(category, filter.Name),
			Lines:    labels(gaps[category]),
			Gaps:     gaps[category],
		})
	}

	return report, nil
}

// check derives the identifiers of one card's effects in category and returns the misses
func (r *Reporter) check(p *card.Pokemon, category identifier.Category, declared provider.Set) []Gap {
	var gaps []Gap

	switch category {
	case identifier.Attack:
		for i, attack := range p.Attacks {
			expected := identifier.ForAttack(p, attack)
			if declared.Has(expected) {
				continue
			}
			gaps = append(gaps, r.miss(Gap{
				Category: category,
				CardID:   p.ID,
				CardName: p.Name,
				Index:    i,
				Title:    attack.Title,
				Expected: expected,
			}))
		}
	case identifier.Ability:
		if p.Ability == nil || *p.Ability == (card.Ability{}) {
			return nil
		}
		expected := identifier.ForAbility(p)
		if !declared.Has(expected) {
			gaps = append(gaps, r.miss(Gap{
				Category: category,
				CardID:   p.ID,
				CardName: p.Name,
				Title:    p.Ability.Title,
				Expected: expected,
			}))
		}
	}

	return gaps
}

func (r *Reporter) miss(g Gap) Gap {
	r.logger.Debug("unimplemented effect",
		zap.String("category", g.Category.String()),
		zap.String("card", g.CardID),
		zap.Int("index", g.Index),
		zap.String("expected", g.Expected))
	return g
}

// labels deduplicates gap labels and sorts them
func labels(gaps []Gap) []string {
	seen := make(map[string]struct{}, len(gaps))
	lines := make([]string, 0, len(gaps))
	for _, g := range gaps {
		label := g.Label()
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		lines = append(lines, label)
	}
	sort.Strings(lines)
	return lines
}

func heading(category identifier.Category, name string) string {
	if name == "" {
		return fmt.Sprintf("--- Unimplemented %s ---", category.Plural())
	}
	return fmt.Sprintf("--- Unimplemented %s %s ---", category.Plural(), name)
}
