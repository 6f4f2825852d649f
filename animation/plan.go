package animation

import (
	"fmt"
	"math/rand"
	"strings"

	"pokebattle/game"
)

const (
	minTicks       = 12
	maxTicks       = 15
	winnerEndHP    = 0.2
	reasoningLimit = 100
)

// Tick is one battle step: both health values and the message shown.
type Tick struct {
	HealthA float64
	HealthB float64
	Message string
}

// Script is the full course of an animated battle, independent of how it is
// displayed. The compositor rasterizes it; the live feed streams it.
type Script struct {
	A, B   game.PokemonRecord
	Winner string
	Intro  string
	Ticks  []Tick
	FinalA float64
	FinalB float64
	Outro  string
}

// endHealth returns the final health of both sides. The winner stops at
// 0.2, the loser at 0; a verdict naming neither side knocks both out.
// In a mirror match the name fits both sides and b is taken as the winner.
func endHealth(a, b game.PokemonRecord, v game.BattleVerdict) (float64, float64) {
	switch {
	case game.SameName(v.Winner, b.Name):
		return 0, winnerEndHP
	case game.SameName(v.Winner, a.Name):
		return winnerEndHP, 0
	}
	return 0, 0
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Plan lays out a battle between a and b that ends as v says.
func Plan(rng *rand.Rand, a, b game.PokemonRecord, v game.BattleVerdict) Script {
	effAB := game.Matchup(a.Types, b.Types)
	effBA := game.Matchup(b.Types, a.Types)

	n := minTicks + rng.Intn(maxTicks-minTicks+1)
	finalA, finalB := endHealth(a, b, v)

	// Each side loses health at the rate the opponent's attacks connect.
	curveA := healthCurve(rng, n, finalA, damageRate(effBA))
	curveB := healthCurve(rng, n, finalB, damageRate(effAB))

	pool := buildMessages(rng, a, b, effAB, effBA)

	ticks := make([]Tick, n)
	for i := range ticks {
		ticks[i] = Tick{
			HealthA: curveA[i],
			HealthB: curveB[i],
			Message: pickMessage(pool, i, curveA[i], curveB[i], a.Name, b.Name),
		}
	}

	winner := game.Capitalize(strings.TrimSpace(v.Winner))
	reasoning := v.Reasoning
	if reasoning == "" {
		reasoning = "Battle concluded!"
	}

	return Script{
		A:      a,
		B:      b,
		Winner: winner,
		Intro:  fmt.Sprintf("Battle begins! %s vs %s", game.Capitalize(a.Name), game.Capitalize(b.Name)),
		Ticks:  ticks,
		FinalA: finalA,
		FinalB: finalB,
		Outro:  fmt.Sprintf("%s wins the battle! %s", winner, truncate(reasoning, reasoningLimit)),
	}
}

// FrameCount is the number of animation frames the script renders to:
// one intro frame, every tick twice and the result three times.
func (s Script) FrameCount() int {
	return 1 + 2*len(s.Ticks) + 3
}
