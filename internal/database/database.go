package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/deckgym/deckaudit/internal/card"
)

// ErrMalformed is returned when the document does not have the expected shape
var ErrMalformed = errors.New("malformed card database")

// Load reads the card database at path and returns its records in document order
func Load(path string) ([]card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading card database: %w", err)
	}

	cards, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	return cards, nil
}

// Decode parses a card database document. The document is a JSON array of
// externally tagged records, e.g. [{"Pokemon": {...}}, {"Trainer": {...}}].
func Decode(r io.Reader) ([]card.Card, error) {
	var records []map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cards := make([]card.Card, 0, len(records))
	for i, record := range records {
		c, err := decodeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		cards = append(cards, c)
	}

	return cards, nil
}

// decodeRecord decodes one tagged record
func decodeRecord(record map[string]json.RawMessage) (card.Card, error) {
	if len(record) != 1 {
		return card.Card{}, fmt.Errorf("%w: expected exactly one kind tag, found %d", ErrMalformed, len(record))
	}

	for kind, body := range record {
		c := card.Card{Kind: kind}
		if kind != card.KindPokemon {
			// Other kinds are kept for their tag only
			return c, nil
		}

		p, err := decodePokemon(body)
		if err != nil {
			return card.Card{}, fmt.Errorf("%w: %s: %v", ErrMalformed, kind, err)
		}
		c.Pokemon = p
		return c, nil
	}

	return card.Card{}, ErrMalformed
}

// pokemonRecord shadows the required fields so absent or null values can be told apart
type pokemonRecord struct {
	card.Pokemon
	ID    *string `json:"id"`
	Name  *string `json:"name"`
	Stage *int    `json:"stage"`
}

// decodePokemon decodes a creature body; id, name and stage are required
func decodePokemon(body json.RawMessage) (*card.Pokemon, error) {
	var rec pokemonRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, err
	}

	switch {
	case rec.ID == nil:
		return nil, errors.New("missing id")
	case rec.Name == nil:
		return nil, fmt.Errorf("%s: missing name", *rec.ID)
	case rec.Stage == nil:
		return nil, fmt.Errorf("%s: missing stage", *rec.ID)
	}

	p := rec.Pokemon
	p.ID = *rec.ID
	p.Name = *rec.Name
	p.Stage = *rec.Stage
	return &p, nil
}
