// Package data provides species records and sprites.
package data

import (
	"context"
	"errors"
	"log"

	"pokebattle/game"
)

var (
	// ErrNotFound is returned when a species is unknown to a source.
	ErrNotFound = errors.New("pokemon not found")
	// ErrNoSprite is returned when no sprite URL exists for a request.
	ErrNoSprite = errors.New("no sprite available")
	// ErrNameRequired is returned by EnsureComplete for a record without a name.
	ErrNameRequired = errors.New("pokemon data must include a name")
)

// Source looks up species records by name.
type Source interface {
	Pokemon(ctx context.Context, name string) (game.PokemonRecord, error)
}

// MultiSource asks each source in order and returns the first record found.
// A source answering ErrNotFound is skipped; any other error is remembered
// and returned if no later source succeeds.
type MultiSource []Source

func (m MultiSource) Pokemon(ctx context.Context, name string) (game.PokemonRecord, error) {
	lastErr := ErrNotFound
	for _, src := range m {
		rec, err := src.Pokemon(ctx, name)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[data] source error for %s: %v", name, err)
			lastErr = err
		}
	}
	return game.PokemonRecord{}, lastErr
}

// EnsureComplete fills in missing stats or types of rec from src. When the
// lookup fails, stats default to 50 across the board and types to normal.
func EnsureComplete(ctx context.Context, src Source, rec game.PokemonRecord) (game.PokemonRecord, error) {
	if rec.Name == "" {
		return rec, ErrNameRequired
	}
	if rec.BaseStats.IsZero() || len(rec.Types) == 0 {
		fetched, err := src.Pokemon(ctx, rec.Name)
		if err != nil {
			log.Printf("[data] completing %s: %v", rec.Name, err)
		} else {
			if rec.BaseStats.IsZero() {
				rec.BaseStats = fetched.BaseStats
			}
			if len(rec.Types) == 0 {
				rec.Types = append([]string(nil), fetched.Types...)
			}
		}
	}
	if rec.BaseStats.IsZero() {
		rec.BaseStats = game.DefaultStats()
	}
	if len(rec.Types) == 0 {
		rec.Types = []string{"normal"}
	}
	return rec, nil
}
