// Package battle decides the likely winner of a one-on-one matchup from base
// stats and types.
package battle

import (
	"fmt"
	"math"
	"strings"

	"pokebattle/game"
)

// superEffective maps an attacking type to the types it hits for double damage.
var superEffective = map[string][]string{
	"normal":   {},
	"fire":     {"grass", "ice", "bug", "steel"},
	"water":    {"fire", "ground", "rock"},
	"electric": {"water", "flying"},
	"grass":    {"water", "ground", "rock"},
	"ice":      {"grass", "ground", "flying", "dragon"},
	"fighting": {"normal", "ice", "rock", "dark", "steel"},
	"poison":   {"grass", "fairy"},
	"ground":   {"fire", "electric", "poison", "rock", "steel"},
	"flying":   {"grass", "fighting", "bug"},
	"psychic":  {"fighting", "poison"},
	"bug":      {"grass", "psychic", "dark"},
	"rock":     {"fire", "ice", "flying", "bug"},
	"ghost":    {"psychic", "ghost"},
	"dragon":   {"dragon"},
	"dark":     {"psychic", "ghost"},
	"steel":    {"ice", "rock", "fairy"},
	"fairy":    {"fighting", "dragon", "dark"},
}

// immunities maps an attacking type to the types that take no damage from it.
var immunities = map[string][]string{
	"normal":   {"ghost"},
	"electric": {"ground"},
	"fighting": {"ghost"},
	"poison":   {"steel"},
	"ground":   {"flying"},
	"psychic":  {"dark"},
	"ghost":    {"normal"},
	"dragon":   {"fairy"},
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Effectiveness returns the damage multiplier of attacker's types against
// defender's types. Any immunity returns 0 regardless of other matches;
// otherwise every super-effective attacker/defender pair doubles the result.
func Effectiveness(attacker, defender []string) float64 {
	eff := 1.0
	for _, at := range attacker {
		at = strings.ToLower(at)
		for _, dt := range defender {
			if contains(immunities[at], strings.ToLower(dt)) {
				return 0
			}
		}
		for _, dt := range defender {
			if contains(superEffective[at], strings.ToLower(dt)) {
				eff *= 2
			}
		}
	}
	return eff
}

// attackPower is the better of the two attacking stats scaled by type.
func attackPower(s game.BaseStats, eff float64) float64 {
	return math.Max(float64(s.Attack), float64(s.SpecialAttack)) * eff
}

// effectiveBulk combines HP with the mean of both defensive stats.
func effectiveBulk(s game.BaseStats) float64 {
	return float64(s.HP) * (float64(s.Defense+s.SpecialDefense) / 2) / 100
}

// Evaluate predicts the winner between a and b. Both records must carry
// stats and at least one type.
//
// The winner needs fewer turns to knock out the opponent, where turns is the
// opponent's effective bulk divided by attack power (floored at 1). Equal
// turns fall back to higher speed, then higher HP, then b.
//
// The reasoning lists type, speed and attack-power comparisons on their own
// terms; it is not derived from the turn count and may favour the loser.
func Evaluate(a, b game.PokemonRecord) game.BattleVerdict {
	effA := Effectiveness(a.Types, b.Types)
	effB := Effectiveness(b.Types, a.Types)

	powerA := attackPower(a.BaseStats, effA)
	powerB := attackPower(b.BaseStats, effB)

	turnsA := effectiveBulk(b.BaseStats) / math.Max(powerA, 1)
	turnsB := effectiveBulk(a.BaseStats) / math.Max(powerB, 1)

	nameA := game.Capitalize(a.Name)
	nameB := game.Capitalize(b.Name)

	var factors []string
	switch {
	case effA > effB:
		factors = append(factors, fmt.Sprintf("%s has a type advantage over %s", nameA, nameB))
	case effB > effA:
		factors = append(factors, fmt.Sprintf("%s has a type advantage over %s", nameB, nameA))
	default:
		factors = append(factors, "Neither Pokémon has a significant type advantage")
	}

	switch {
	case a.BaseStats.Speed > b.BaseStats.Speed:
		factors = append(factors, fmt.Sprintf("%s is faster and would attack first", nameA))
	case b.BaseStats.Speed > a.BaseStats.Speed:
		factors = append(factors, fmt.Sprintf("%s is faster and would attack first", nameB))
	}

	switch {
	case powerA > powerB:
		factors = append(factors, fmt.Sprintf("%s has stronger attacking moves", nameA))
	case powerB > powerA:
		factors = append(factors, fmt.Sprintf("%s has stronger attacking moves", nameB))
	}

	var winner string
	switch {
	case turnsA < turnsB:
		winner = a.Name
	case turnsB < turnsA:
		winner = b.Name
	case a.BaseStats.Speed > b.BaseStats.Speed:
		winner = a.Name
	case b.BaseStats.Speed > a.BaseStats.Speed:
		winner = b.Name
	case a.BaseStats.HP > b.BaseStats.HP:
		winner = a.Name
	default:
		winner = b.Name
	}

	return game.BattleVerdict{
		Winner:    winner,
		Reasoning: strings.Join(factors, ". ") + ".",
	}
}
