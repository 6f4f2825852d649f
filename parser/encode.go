package parser

import (
	"fmt"
	"math"
	"strings"

	"pokebattle/animation"
	"pokebattle/game"
)

const maxHP = 100

func percent(h float64) int {
	return int(math.Round(h * maxHP))
}

type side struct {
	name    string
	ident   string
	hp      int
	fainted bool
}

func newSide(id string, rec game.PokemonRecord) *side {
	name := game.Capitalize(rec.Name)
	return &side{name: name, ident: id + "a: " + name, hp: maxHP}
}

// update emits damage and faint lines when health changes.
func (s *side) update(lines []string, health float64) []string {
	hp := percent(health)
	if hp != s.hp {
		s.hp = hp
		lines = append(lines, fmt.Sprintf("|damage|%s|%d/%d", s.ident, hp, maxHP))
	}
	if hp <= 0 && !s.fainted {
		s.fainted = true
		lines = append(lines, "|faint|"+s.ident)
	}
	return lines
}

// Encode writes a planned battle as feed lines, from the player
// announcements through the final |win|.
func Encode(script animation.Script) []string {
	a := newSide("p1", script.A)
	b := newSide("p2", script.B)

	lines := []string{
		fmt.Sprintf("|player|p1|%s", a.name),
		fmt.Sprintf("|player|p2|%s", b.name),
		fmt.Sprintf("|switch|%s|%d/%d|%s", a.ident, maxHP, maxHP, strings.Join(script.A.Types, ",")),
		fmt.Sprintf("|switch|%s|%d/%d|%s", b.ident, maxHP, maxHP, strings.Join(script.B.Types, ",")),
		"|-message|" + script.Intro,
	}
	for i, t := range script.Ticks {
		lines = append(lines, fmt.Sprintf("|turn|%d", i+1))
		if t.Message != "" {
			lines = append(lines, "|-message|"+t.Message)
		}
		lines = a.update(lines, t.HealthA)
		lines = b.update(lines, t.HealthB)
	}
	lines = a.update(lines, script.FinalA)
	lines = b.update(lines, script.FinalB)
	lines = append(lines, "|-message|"+script.Outro, "|win|"+script.Winner)
	return lines
}
