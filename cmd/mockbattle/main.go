// Command mockbattle renders a battle decided by base stat totals and prints
// where the animation was written.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pokebattle/animation"
	"pokebattle/battle"
	"pokebattle/cache"
	"pokebattle/config"
	"pokebattle/data"
	"pokebattle/game"
	"pokebattle/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	fs := flag.NewFlagSet("mockbattle", flag.ExitOnError)
	p1 := fs.String("pokemon1", "pikachu", "first Pokémon, drawn from behind")
	p2 := fs.String("pokemon2", "charizard", "second Pokémon, drawn facing the viewer")
	fs.StringVar(p1, "p1", "pikachu", "shorthand for -pokemon1")
	fs.StringVar(p2, "p2", "charizard", "shorthand for -pokemon2")
	shiny := fs.Bool("shiny", false, "use shiny sprites")
	outDir := fs.String("out", cfg.TempDir, "directory for the GIF")
	_ = fs.Parse(os.Args[1:])

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "pokebattle-mock", cfg.OTelEndpoint)
	if err != nil {
		config.Exitf("telemetry: %v", err)
	}
	defer shutdown(ctx)

	store := cache.New(cfg.CacheDir)
	client := data.NewClient(cfg.PokeAPIURL, cfg.HTTPTimeout, store)

	a, err := data.EnsureComplete(ctx, client, game.PokemonRecord{Name: *p1})
	if err != nil {
		config.Exitf("%s: %v", *p1, err)
	}
	b, err := data.EnsureComplete(ctx, client, game.PokemonRecord{Name: *p2})
	if err != nil {
		config.Exitf("%s: %v", *p2, err)
	}

	v := battle.MockVerdict(a, b)
	fmt.Printf("Battle: %s vs %s\n", game.Capitalize(a.Name), game.Capitalize(b.Name))
	fmt.Printf("Winner: %s\n%s\n", game.Capitalize(v.Winner), v.Reasoning)

	path, err := animation.NewRenderer(client, store, *outDir).Render(ctx, a, b, v, *shiny)
	if err != nil {
		config.Exitf("render: %v", err)
	}
	fmt.Printf("Animation saved to %s\n", path)
}
