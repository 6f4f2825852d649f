package parser

import (
	"fmt"
	"sort"
	"strings"

	"pokebattle/game"
)

func describe(poke *game.Pokemon) string {
	hp := "?/?"
	if poke.MaxHP > 0 {
		hp = fmt.Sprintf("%d/%d", poke.HP, poke.MaxHP)
	}
	s := poke.Name
	if len(poke.Type) > 0 {
		s += " [" + strings.Join(poke.Type, "/") + "]"
	}
	s += " " + hp
	if poke.Fainted {
		s += " (fainted)"
	}
	return s
}

func effectivenessNote(eff float64) string {
	switch {
	case eff == 0:
		return "has no effect on"
	case eff > 1:
		return fmt.Sprintf("is super effective (x%g) against", eff)
	case eff < 1:
		return fmt.Sprintf("is not very effective (x%g) against", eff)
	}
	return "is neutral against"
}

// RenderBattleState prints a plain-text summary of the battle so far, with
// a type matchup hint once both sides have a Pokémon out.
func RenderBattleState(state *game.BattleState) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Turn %d\n", state.Turn)

	ids := make([]string, 0, len(state.Players))
	for id := range state.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		player := state.Players[id]
		if player.Active == nil {
			fmt.Fprintf(&sb, "%s: (no Pokémon out)\n", player.Name)
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", player.Name, describe(player.Active))
	}

	if msg := state.LastMessage(); msg != "" {
		fmt.Fprintf(&sb, "> %s\n", msg)
	}

	p1 := state.Players["p1"]
	p2 := state.Players["p2"]
	if state.Winner == "" && p1 != nil && p2 != nil && p1.Active != nil && p2.Active != nil &&
		len(p1.Active.Type) > 0 && len(p2.Active.Type) > 0 {
		eff := game.Matchup(p1.Active.Type, p2.Active.Type)
		fmt.Fprintf(&sb, "Hint: %s's typing %s %s.\n", p1.Active.Name, effectivenessNote(eff), p2.Active.Name)
	}

	if state.Winner != "" {
		fmt.Fprintf(&sb, "Winner: %s\n", state.Winner)
	}
	return sb.String()
}
