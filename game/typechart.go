package game

import "strings"

// allTypes is the row/column order of chart.
var allTypes = [18]string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// chart[attacker][defender] is the damage multiplier of a single-type hit.
var chart = [18][18]float64{
	//         nor  fir  wat  ele  gra  ice  fig  poi  gro  fly  psy  bug  roc  gho  dra  dar  ste  fai
	/* nor */ {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, .5, 0, 1, 1, .5, 1},
	/* fir */ {1, .5, .5, 1, 2, 2, 1, 1, 1, 1, 1, 2, .5, 1, .5, 1, 2, 1},
	/* wat */ {1, 2, .5, 1, .5, 1, 1, 1, 2, 1, 1, 1, 2, 1, .5, 1, 1, 1},
	/* ele */ {1, 1, 2, .5, .5, 1, 1, 1, 0, 2, 1, 1, 1, 1, .5, 1, 1, 1},
	/* gra */ {1, .5, 2, 1, .5, 1, 1, .5, 2, .5, 1, .5, 2, 1, .5, 1, .5, 1},
	/* ice */ {1, .5, .5, 1, 2, .5, 1, 1, 2, 2, 1, 1, 1, 1, 2, 1, .5, 1},
	/* fig */ {2, 1, 1, 1, 1, 2, 1, .5, 1, .5, .5, .5, 2, 0, 1, 2, 2, .5},
	/* poi */ {1, 1, 1, 1, 2, 1, 1, .5, .5, 1, 1, 1, .5, .5, 1, 1, 0, 2},
	/* gro */ {1, 2, 1, 2, .5, 1, 1, 2, 1, 0, 1, .5, 2, 1, 1, 1, 2, 1},
	/* fly */ {1, 1, 1, .5, 2, 1, 2, 1, 1, 1, 1, 2, .5, 1, 1, 1, .5, 1},
	/* psy */ {1, 1, 1, 1, 1, 1, 2, 2, 1, 1, .5, 1, 1, 1, 1, 0, .5, 1},
	/* bug */ {1, .5, 1, 1, 2, 1, .5, .5, 1, .5, 2, 1, 1, .5, 1, 2, .5, .5},
	/* roc */ {1, 2, 1, 1, 1, 2, .5, 1, .5, 2, 1, 2, 1, 1, 1, 1, .5, 1},
	/* gho */ {0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 2, 1, .5, 1, 1},
	/* dra */ {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, .5, 0},
	/* dar */ {1, 1, 1, 1, 1, 1, .5, 1, 1, 1, 2, 1, 1, 2, 1, .5, 1, .5},
	/* ste */ {1, .5, .5, .5, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, .5, 2},
	/* fai */ {1, .5, 1, 1, 1, 1, 2, .5, 1, 1, 1, 1, 1, 1, 2, 2, .5, 1},
}

var typeIndex = func() map[string]int {
	m := make(map[string]int, len(allTypes))
	for i, t := range allTypes {
		m[t] = i
	}
	return m
}()

// Types returns the 18 type names in chart order.
func Types() []string {
	out := make([]string, len(allTypes))
	copy(out, allTypes[:])
	return out
}

// IsType reports whether name is one of the 18 types.
func IsType(name string) bool {
	_, ok := typeIndex[strings.ToLower(name)]
	return ok
}

// TypeMultiplier returns the multiplier of one attacking type against one
// defending type. Unknown names are neutral.
func TypeMultiplier(attacker, defender string) float64 {
	a, ok := typeIndex[strings.ToLower(attacker)]
	if !ok {
		return 1
	}
	d, ok := typeIndex[strings.ToLower(defender)]
	if !ok {
		return 1
	}
	return chart[a][d]
}

// Matchup multiplies the chart entry of every attacker/defender type pair.
func Matchup(attacker, defender []string) float64 {
	eff := 1.0
	for _, a := range attacker {
		for _, d := range defender {
			eff *= TypeMultiplier(a, d)
		}
	}
	return eff
}
