package battle

import (
	"fmt"

	"pokebattle/game"
)

// MockVerdict picks the side with the higher base stat total, b on ties.
// It backs the mock visualization endpoint and CLI.
func MockVerdict(a, b game.PokemonRecord) game.BattleVerdict {
	totalA := a.BaseStats.Total()
	totalB := b.BaseStats.Total()
	if totalA > totalB {
		return game.BattleVerdict{
			Winner:    a.Name,
			Reasoning: fmt.Sprintf("%s has higher total stats (%d vs %d).", game.Capitalize(a.Name), totalA, totalB),
		}
	}
	return game.BattleVerdict{
		Winner:    b.Name,
		Reasoning: fmt.Sprintf("%s has higher total stats (%d vs %d).", game.Capitalize(b.Name), totalB, totalA),
	}
}
