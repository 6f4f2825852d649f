package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"pokebattle/game"
)

// Pokedex is an in-memory set of records keyed by normalized name.
type Pokedex map[string]game.PokemonRecord

type rawPokedexEntry struct {
	Name      string         `json:"name"`
	Types     []string       `json:"types"`
	BaseStats game.BaseStats `json:"base_stats"`
}

// LoadPokedex reads a JSON object of records, as written by the species
// provider, from path.
func LoadPokedex(path string) (Pokedex, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rawData map[string]rawPokedexEntry
	if err := json.NewDecoder(file).Decode(&rawData); err != nil {
		return nil, fmt.Errorf("decode pokedex %s: %w", path, err)
	}

	dex := make(Pokedex, len(rawData))
	for key, p := range rawData {
		name := p.Name
		if name == "" {
			name = key
		}
		types := make([]string, 0, len(p.Types))
		for _, t := range p.Types {
			types = append(types, strings.ToLower(t))
		}
		dex[NormalizeName(name)] = game.PokemonRecord{
			Name:      NormalizeName(name),
			BaseStats: p.BaseStats,
			Types:     types,
		}
	}
	return dex, nil
}

func (d Pokedex) Pokemon(_ context.Context, name string) (game.PokemonRecord, error) {
	if p, ok := d[NormalizeName(name)]; ok {
		p.Types = append([]string(nil), p.Types...)
		return p, nil
	}
	return game.PokemonRecord{}, fmt.Errorf("%s: %w", name, ErrNotFound)
}
