// Package identifier derives the engine identifier expected for each card effect.
//
// Attacks are keyed by the card identifier followed by the attack title.
// Abilities are keyed by the card identifier followed by the card's display
// name, since a card carries at most one ability.
package identifier

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/deckgym/deckaudit/internal/card"
)

// Category is a kind of effect implemented by the engine
type Category int

const (
	Attack Category = iota
	Ability
)

// Categories lists every category in report order
var Categories = []Category{Attack, Ability}

// Prefix returns the enum name the engine declares the category's variants under
func (c Category) Prefix() string {
	switch c {
	case Attack:
		return "AttackId"
	case Ability:
		return "AbilityId"
	default:
		return ""
	}
}

func (c Category) String() string {
	switch c {
	case Attack:
		return "attack"
	case Ability:
		return "ability"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Plural returns the heading form of the category name
func (c Category) Plural() string {
	switch c {
	case Attack:
		return "Attacks"
	case Ability:
		return "Abilities"
	default:
		return c.String()
	}
}

// Normalize keeps only ASCII letters and digits, in their original order and case
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// StripSpaces removes whitespace and leaves everything else untouched
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ForAttack returns the identifier expected for an attack of p.
// No guard is applied to titles that normalize to the empty string.
func ForAttack(p *card.Pokemon, a card.Attack) string {
	return StripSpaces(p.ID) + Normalize(a.Title)
}

// ForAbility returns the identifier expected for the ability of p
func ForAbility(p *card.Pokemon) string {
	return StripSpaces(p.ID) + Normalize(p.Name)
}
