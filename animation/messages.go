package animation

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"

	"pokebattle/game"
)

//go:embed phrases.yaml
var phrasesYAML []byte

type phraseCatalog struct {
	Types            map[string][]string `yaml:"types"`
	Fallback         string              `yaml:"fallback"`
	SuperEffective   []string            `yaml:"super_effective"`
	NotVeryEffective []string            `yaml:"not_very_effective"`
	Speed            []string            `yaml:"speed"`
	Attack           []string            `yaml:"attack"`
	Defense          []string            `yaml:"defense"`
	Generic          []string            `yaml:"generic"`
}

var phrases = mustLoadPhrases(phrasesYAML)

func mustLoadPhrases(doc []byte) phraseCatalog {
	var c phraseCatalog
	if err := yaml.Unmarshal(doc, &c); err != nil {
		panic(fmt.Sprintf("animation: parse phrases: %v", err))
	}
	return c
}

// line is one battle message and the side it shows acting, if any.
type line struct {
	text  string
	actor game.Side
}

func other(s game.Side) game.Side {
	if s == game.SideA {
		return game.SideB
	}
	return game.SideA
}

// render fills a template for actor. Lines opening with {actor} or {target}
// are attributed to that side.
func render(tmpl string, actor game.Side, names map[game.Side]string, typeName string) line {
	r := strings.NewReplacer(
		"{actor}", names[actor],
		"{target}", names[other(actor)],
		"{type}", game.Capitalize(typeName),
	)
	l := line{text: r.Replace(tmpl)}
	switch {
	case strings.HasPrefix(tmpl, "{actor}"):
		l.actor = actor
	case strings.HasPrefix(tmpl, "{target}"):
		l.actor = other(actor)
	}
	return l
}

func renderAll(tmpls []string, actor game.Side, names map[game.Side]string) []line {
	out := make([]line, 0, len(tmpls))
	for _, t := range tmpls {
		out = append(out, render(t, actor, names, ""))
	}
	return out
}

// stronger returns SideA when a beats b, SideB otherwise.
func stronger(a, b int) game.Side {
	if a > b {
		return game.SideA
	}
	return game.SideB
}

// buildMessages assembles and shuffles the message pool for a battle.
// effAB and effBA are the chart multipliers of each side's attacks.
func buildMessages(rng *rand.Rand, a, b game.PokemonRecord, effAB, effBA float64) []line {
	names := map[game.Side]string{
		game.SideA: game.Capitalize(a.Name),
		game.SideB: game.Capitalize(b.Name),
	}

	sides := []struct {
		side game.Side
		rec  game.PokemonRecord
		eff  float64
	}{
		{game.SideA, a, effAB},
		{game.SideB, b, effBA},
	}

	var pool []line
	for _, s := range sides {
		for _, t := range s.rec.Types {
			tmpls, ok := phrases.Types[strings.ToLower(t)]
			if !ok {
				tmpls = []string{phrases.Fallback}
			}
			for _, tmpl := range tmpls {
				pool = append(pool, render(tmpl, s.side, names, t))
			}
		}
	}

	for _, s := range sides {
		switch {
		case s.eff > 1:
			pool = append(pool, renderAll(phrases.SuperEffective, s.side, names)...)
		case s.eff < 1:
			pool = append(pool, renderAll(phrases.NotVeryEffective, s.side, names)...)
		}
	}

	pool = append(pool, renderAll(phrases.Speed, stronger(a.BaseStats.Speed, b.BaseStats.Speed), names)...)
	pool = append(pool, renderAll(phrases.Attack, stronger(a.BaseStats.Attack, b.BaseStats.Attack), names)...)
	pool = append(pool, renderAll(phrases.Defense, stronger(a.BaseStats.Defense, b.BaseStats.Defense), names)...)
	pool = append(pool, renderAll(phrases.Generic, game.SideA, names)...)

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool
}

// pickMessage cycles through pool by tick index, skipping lines whose actor
// has fainted. If every line is blocked it announces the faint instead.
func pickMessage(pool []line, tick int, healthA, healthB float64, nameA, nameB string) string {
	fainted := func(s game.Side) bool {
		switch s {
		case game.SideA:
			return healthA <= 0
		case game.SideB:
			return healthB <= 0
		}
		return false
	}
	if len(pool) > 0 {
		start := tick % len(pool)
		for k := 0; k < len(pool); k++ {
			l := pool[(start+k)%len(pool)]
			if !fainted(l.actor) {
				return l.text
			}
		}
	}
	switch {
	case healthA <= 0:
		return fmt.Sprintf("%s has fainted!", game.Capitalize(nameA))
	case healthB <= 0:
		return fmt.Sprintf("%s has fainted!", game.Capitalize(nameB))
	}
	return ""
}
