package card

// Record kinds as they appear in the database
const (
	KindPokemon = "Pokemon"
	KindTrainer = "Trainer"
)

// BasicStage is the stage of an unevolved Pokemon
const BasicStage = 0

// Card represents a single database record
type Card struct {
	Kind    string   // Record tag (Pokemon, Trainer, ...)
	Pokemon *Pokemon // Set only when Kind is KindPokemon
}

// Pokemon represents the data of a creature card
type Pokemon struct {
	ID          string   `json:"id"`    // Card identifier (e.g., "A1 003")
	Name        string   `json:"name"`  // Display name
	Stage       int      `json:"stage"` // 0 for Basic, 1 for Stage 1, 2 for Stage 2
	EvolvesFrom string   `json:"evolves_from,omitempty"`
	HP          int      `json:"hp,omitempty"`
	Ability     *Ability `json:"ability,omitempty"`
	Attacks     []Attack `json:"attacks,omitempty"`
	Rarity      string   `json:"rarity,omitempty"`
	BoosterPack string   `json:"booster_pack,omitempty"`
}

// Attack is a move printed on a Pokemon card
type Attack struct {
	Title  string  `json:"title"`
	Effect *string `json:"effect,omitempty"`
}

// Ability is the single ability a Pokemon card may carry
type Ability struct {
	Title  string `json:"title"`
	Effect string `json:"effect,omitempty"`
}

// IsPokemon reports whether the record is a creature card
func (c Card) IsPokemon() bool {
	return c.Kind == KindPokemon && c.Pokemon != nil
}

// IsBasic reports whether the Pokemon is unevolved
func (p *Pokemon) IsBasic() bool {
	return p.Stage == BasicStage
}
