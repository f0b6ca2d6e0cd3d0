package audit

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckgym/deckaudit/internal/card"
	"github.com/deckgym/deckaudit/internal/identifier"
	"github.com/deckgym/deckaudit/internal/provider"
)

// stubProvider serves fixed sets and records which categories were requested
type stubProvider struct {
	sets      map[identifier.Category]provider.Set
	requested []identifier.Category
}

func (s *stubProvider) Identifiers(category identifier.Category) (provider.Set, error) {
	s.requested = append(s.requested, category)
	set, ok := s.sets[category]
	if !ok {
		return provider.Set{}, errors.New("no artifact")
	}
	return set, nil
}

func pokemon(p card.Pokemon) card.Card {
	return card.Card{Kind: card.KindPokemon, Pokemon: &p}
}

func pikachu() card.Card {
	return pokemon(card.Pokemon{
		ID:      "Pika 01",
		Name:    "Pikachu",
		Stage:   0,
		Attacks: []card.Attack{{Title: "Thunder Shock!"}},
		Ability: &card.Ability{Title: "Static"},
	})
}

func sections(r *Report) map[string][]string {
	out := make(map[string][]string)
	for _, s := range r.Sections {
		out[s.Heading] = s.Lines
	}
	return out
}

func TestImplementedAttackIsNotReported(t *testing.T) {
	p := &stubProvider{sets: map[identifier.Category]provider.Set{
		identifier.Attack:  provider.NewSet("Pika01ThunderShock"),
		identifier.Ability: provider.NewSet("Pika01Pikachu"),
	}}

	report, err := NewReporter(p, nil).Run([]card.Card{pikachu()}, Full())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Total())
	assert.Equal(t, []string{
		"--- Unimplemented Attacks ---",
		"--- Unimplemented Abilities ---",
	}, []string{report.Sections[0].Heading, report.Sections[1].Heading})
}

func TestMissingAttackIsReported(t *testing.T) {
	p := &stubProvider{sets: map[identifier.Category]provider.Set{
		identifier.Attack:  provider.NewSet("Pika01Tackle"),
		identifier.Ability: provider.NewSet("Pika01Pikachu"),
	}}

	report, err := NewReporter(p, nil).Run([]card.Card{pikachu()}, Full())
	require.NoError(t, err)

	got := sections(report)
	assert.Equal(t, []string{"Pikachu: Thunder Shock!"}, got["--- Unimplemented Attacks ---"])
	assert.Empty(t, got["--- Unimplemented Abilities ---"])

	gap := report.Sections[0].Gaps[0]
	assert.Equal(t, "Pika01ThunderShock", gap.Expected)
	assert.Equal(t, 0, gap.Index)
}

func TestAbilityKeyedByPokemonName(t *testing.T) {
	p := &stubProvider{sets: map[identifier.Category]provider.Set{
		identifier.Attack:  provider.NewSet(),
		identifier.Ability: provider.NewSet("Pika01Static"),
	}}

	report, err := NewReporter(p, nil).Run([]card.Card{pikachu()}, Full())
	require.NoError(t, err)

	assert.Equal(t, []string{"Pikachu: Static"}, sections(report)["--- Unimplemented Abilities ---"])
}

func TestEmptyAbilityIsSkipped(t *testing.T) {
	c := pokemon(card.Pokemon{
		ID:      "A1 094",
		Name:    "Pidgey",
		Ability: &card.Ability{},
	})
	p := &stubProvider{sets: map[identifier.Category]provider.Set{
		identifier.Attack:  provider.NewSet(),
		identifier.Ability: provider.NewSet(),
	}}

	report, err := NewReporter(p, nil).Run([]card.Card{c}, Full())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Total())
}

func TestDuplicateLabelsCollapse(t *testing.T) {
	twice := pokemon(card.Pokemon{
		ID:   "A1 050",
		Name: "Magikarp",
		Attacks: []card.Attack{
			{Title: "Splash"},
			{Title: "Splash"},
		},
	})
	p := &stubProvider{sets: map[identifier.Category]provider.Set{
		identifier.Attack:  provider.NewSet(),
		identifier.Ability: provider.NewSet(),
	}}

	report, err := NewReporter(p, nil).Run([]card.Card{twice, twice}, Full())
	require.NoError(t, err)

	assert.Equal(t, []string{"Magikarp: Splash"}, report.Sections[0].Lines)
	assert.Len(t, report.Sections[0].Gaps, 4)
}

func TestLinesAreSorted(t *testing.T) {
	cards := []card.Card{
		pokemon(card.Pokemon{ID: "A1 003", Name: "Venusaur", Attacks: []card.Attack{{Title: "Mega Drain"}}}),
		{Kind: card.KindTrainer},
		pokemon(card.Pokemon{ID: "A1 001", Name: "Bulbasaur", Attacks: []card.Attack{{Title: "Vine Whip"}}}),
		pokemon(card.Pokemon{ID: "A1 033", Name: "Charmander", Attacks: []card.Attack{{Title: "Ember"}}}),
	}
	p := &stubProvider{sets: map[identifier.Category]provider.Set{
		identifier.Attack:  provider.NewSet("A1033Ember"),
		identifier.Ability: provider.NewSet(),
	}}

	report, err := NewReporter(p, nil).Run(cards, Full())
	require.NoError(t, err)

	want := []string{"Bulbasaur: Vine Whip", "Venusaur: Mega Drain"}
	if diff := cmp.Diff(want, report.Sections[0].Lines); diff != "" {
		t.Errorf("attack lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBasicOnly(t *testing.T) {
	cards := []card.Card{
		pikachu(),
		pokemon(card.Pokemon{
			ID:      "Rai 02",
			Name:    "Raichu",
			Stage:   1,
			Attacks: []card.Attack{{Title: "Thunder"}},
			Ability: &card.Ability{Title: "Surge"},
		}),
	}
	// No ability artifact: basic mode must not ask for one
	p := &stubProvider{sets: map[identifier.Category]provider.Set{
		identifier.Attack: provider.NewSet(),
	}}

	report, err := NewReporter(p, nil).Run(cards, BasicOnly())
	require.NoError(t, err)

	assert.Equal(t, []identifier.Category{identifier.Attack}, p.requested)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "--- Unimplemented Attacks for Basic Pokémon ---", report.Sections[0].Heading)
	assert.Equal(t, []string{"Pikachu: Thunder Shock!"}, report.Sections[0].Lines)
}

func TestProviderErrorAbortsRun(t *testing.T) {
	p := &stubProvider{sets: map[identifier.Category]provider.Set{
		identifier.Attack: provider.NewSet(),
	}}

	report, err := NewReporter(p, nil).Run([]card.Card{pikachu()}, Full())
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestWriteTo(t *testing.T) {
	report := &Report{Sections: []Section{
		{Heading: "--- Unimplemented Attacks ---", Lines: []string{"Bulbasaur: Vine Whip", "Pikachu: Thunder Shock!"}},
		{Heading: "--- Unimplemented Abilities ---", Lines: []string{"Butterfree: Powder Heal"}},
	}}

	var buf bytes.Buffer
	n, err := report.WriteTo(&buf)
	require.NoError(t, err)

	want := `--- Unimplemented Attacks ---
Bulbasaur: Vine Whip
Pikachu: Thunder Shock!

--- Unimplemented Abilities ---
Butterfree: Powder Heal
`
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)
}

func TestWriteColoredWithoutColorIsPlain(t *testing.T) {
	report := &Report{Sections: []Section{
		{Heading: "--- Unimplemented Attacks ---"},
		{Heading: "--- Unimplemented Abilities ---"},
	}}
	c := color.New(color.FgCyan)
	c.DisableColor()

	var plain, colored bytes.Buffer
	_, err := report.WriteTo(&plain)
	require.NoError(t, err)
	_, err = report.WriteColored(&colored, c)
	require.NoError(t, err)

	assert.Equal(t, plain.String(), colored.String())
	assert.Equal(t, "--- Unimplemented Attacks ---\n\n--- Unimplemented Abilities ---\n", plain.String())
}
