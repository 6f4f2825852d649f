// Package game holds the data model shared by the evaluator, the compositor
// and the live battle feed.
package game

// BaseStats are the six base stat slots of a species.
type BaseStats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// Total returns the base stat total.
func (s BaseStats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpecialAttack + s.SpecialDefense + s.Speed
}

// IsZero reports whether no stat has been filled in.
func (s BaseStats) IsZero() bool {
	return s == BaseStats{}
}

// DefaultStats is used when a species lookup cannot fill in stats.
func DefaultStats() BaseStats {
	return BaseStats{HP: 50, Attack: 50, Defense: 50, SpecialAttack: 50, SpecialDefense: 50, Speed: 50}
}

// PokemonRecord is a species as returned by the data provider. Types holds one
// or two lowercase type names.
type PokemonRecord struct {
	Name      string    `json:"name"`
	BaseStats BaseStats `json:"base_stats"`
	Types     []string  `json:"types"`
}

// BattleVerdict is the evaluator's decision.
type BattleVerdict struct {
	Winner    string `json:"winner"`
	Reasoning string `json:"reasoning"`
}

// Variant selects which sprite asset to display.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantFemale      Variant = "female"
	VariantShiny       Variant = "shiny"
	VariantShinyFemale Variant = "shiny_female"
)

// SelectVariant combines the shiny and female flags.
func SelectVariant(shiny, female bool) Variant {
	switch {
	case shiny && female:
		return VariantShinyFemale
	case shiny:
		return VariantShiny
	case female:
		return VariantFemale
	default:
		return VariantDefault
	}
}

// Side identifies a combatant. SideA is drawn from behind on the left,
// SideB from the front on the right.
type Side int

const (
	SideNone Side = iota
	SideA
	SideB
)
