package animation

import (
	"math"
	"math/rand"
	"sort"
)

const (
	maxDamageEvents = 4
	minRate         = 0.5
	maxRate         = 2.0
)

// damageRate clamps a chart multiplier into the pacing range.
func damageRate(eff float64) float64 {
	return math.Min(maxRate, math.Max(minRate, eff))
}

// healthCurve returns the displayed health for each of n ticks. Health starts
// from 1, drops only on up to four random ticks and lands exactly on target
// by the last tick. rate weights the drops: above 1 the early hits are
// heavier, below 1 the late ones are.
func healthCurve(rng *rand.Rand, n int, target, rate float64) []float64 {
	if n <= 0 {
		return nil
	}
	events := rng.Perm(n)[:min(maxDamageEvents, n)]
	sort.Ints(events)

	weights := make([]float64, len(events))
	total := 0.0
	for i := range events {
		weights[i] = math.Pow(rate, float64(len(events)-1-i))
		total += weights[i]
	}

	drop := 1 - target
	curve := make([]float64, n)
	applied := 0.0
	next := 0
	for tick := range curve {
		for next < len(events) && events[next] == tick {
			applied += weights[next]
			next++
		}
		if next == len(events) {
			curve[tick] = target
			continue
		}
		h := 1 - drop*applied/total
		curve[tick] = math.Min(1, math.Max(target, h))
	}
	return curve
}
