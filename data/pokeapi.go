package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"pokebattle/cache"
	"pokebattle/game"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

var tracer = otel.Tracer("pokebattle/data")

// SpriteSet mirrors the sprite URLs PokéAPI returns for a species or form.
// Missing sprites are null in the payload and empty here.
type SpriteSet struct {
	FrontDefault     string `json:"front_default"`
	FrontFemale      string `json:"front_female"`
	FrontShiny       string `json:"front_shiny"`
	FrontShinyFemale string `json:"front_shiny_female"`
	BackDefault      string `json:"back_default"`
	BackFemale       string `json:"back_female"`
	BackShiny        string `json:"back_shiny"`
	BackShinyFemale  string `json:"back_shiny_female"`
	Other            struct {
		OfficialArtwork struct {
			FrontDefault string `json:"front_default"`
		} `json:"official-artwork"`
		Home struct {
			FrontDefault string `json:"front_default"`
		} `json:"home"`
	} `json:"other"`
}

// RawPokemon is the subset of /pokemon/{name} this service reads.
type RawPokemon struct {
	Name  string `json:"name"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Sprites SpriteSet `json:"sprites"`
}

// RawForm is the subset of /pokemon-form/{name} this service reads.
type RawForm struct {
	Name    string    `json:"name"`
	Sprites SpriteSet `json:"sprites"`
}

// Client talks to PokéAPI and memoizes raw responses in a file cache.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   *cache.Store
}

func NewClient(baseURL string, timeout time.Duration, store *cache.Store) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Cache:   store,
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("GET %s: status %d: %s", url, res.StatusCode, strings.TrimSpace(string(b)))
	}
	return io.ReadAll(res.Body)
}

// getJSON serves key from the cache or fetches url, caching the raw body on
// success.
func (c *Client) getJSON(ctx context.Context, url, key string, v any) error {
	if doc, ok := c.Cache.GetRaw(key); ok {
		if err := json.Unmarshal(doc, v); err == nil {
			return nil
		}
	}
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	c.Cache.PutRaw(key, body)
	return nil
}

// RawPokemon returns the species document for name.
func (c *Client) RawPokemon(ctx context.Context, name string) (*RawPokemon, error) {
	name = NormalizeName(name)
	var raw RawPokemon
	if err := c.getJSON(ctx, c.BaseURL+"/pokemon/"+name, "pokemon_"+name, &raw); err != nil {
		return nil, fmt.Errorf("pokemon %q: %w", name, err)
	}
	return &raw, nil
}

// RawForm returns the form document for name.
func (c *Client) RawForm(ctx context.Context, name string) (*RawForm, error) {
	name = NormalizeName(name)
	var raw RawForm
	if err := c.getJSON(ctx, c.BaseURL+"/pokemon-form/"+name, "pokemon_form_"+name, &raw); err != nil {
		return nil, fmt.Errorf("pokemon form %q: %w", name, err)
	}
	return &raw, nil
}

// Pokemon returns the record for name, or an error wrapping ErrNotFound.
func (c *Client) Pokemon(ctx context.Context, name string) (game.PokemonRecord, error) {
	ctx, span := tracer.Start(ctx, "data.Pokemon")
	defer span.End()
	span.SetAttributes(attribute.String("pokemon.name", name))

	raw, err := c.RawPokemon(ctx, name)
	if err != nil {
		span.RecordError(err)
		return game.PokemonRecord{}, err
	}
	return raw.Record(), nil
}

// Record maps the six named stat slots and the ordered type list.
func (r *RawPokemon) Record() game.PokemonRecord {
	rec := game.PokemonRecord{Name: r.Name}
	for _, s := range r.Stats {
		switch s.Stat.Name {
		case "hp":
			rec.BaseStats.HP = s.BaseStat
		case "attack":
			rec.BaseStats.Attack = s.BaseStat
		case "defense":
			rec.BaseStats.Defense = s.BaseStat
		case "special-attack":
			rec.BaseStats.SpecialAttack = s.BaseStat
		case "special-defense":
			rec.BaseStats.SpecialDefense = s.BaseStat
		case "speed":
			rec.BaseStats.Speed = s.BaseStat
		}
	}
	for _, t := range r.Types {
		rec.Types = append(rec.Types, t.Type.Name)
	}
	return rec
}

// SpriteURL picks the sprite for name. Back sprites come from the species
// document and fall back to the default front sprite. Front sprites prefer
// the form document, then official artwork, then the home render.
func (c *Client) SpriteURL(ctx context.Context, name string, variant game.Variant, back bool) (string, error) {
	data, err := c.RawPokemon(ctx, name)
	if err != nil {
		return "", err
	}

	var url string
	if back {
		url = pickVariant(variant, data.Sprites.BackDefault, data.Sprites.BackFemale, data.Sprites.BackShiny, data.Sprites.BackShinyFemale)
		if url == "" {
			url = data.Sprites.FrontDefault
		}
	} else {
		form, err := c.RawForm(ctx, name)
		if err != nil {
			log.Printf("[pokeapi] form lookup for %s: %v", name, err)
		} else {
			url = pickVariant(variant, form.Sprites.FrontDefault, form.Sprites.FrontFemale, form.Sprites.FrontShiny, form.Sprites.FrontShinyFemale)
		}
		for _, candidate := range []string{
			data.Sprites.Other.OfficialArtwork.FrontDefault,
			data.Sprites.Other.Home.FrontDefault,
			data.Sprites.FrontDefault,
		} {
			if url != "" {
				break
			}
			url = candidate
		}
	}
	if url == "" {
		return "", fmt.Errorf("%s %s: %w", name, variant, ErrNoSprite)
	}
	return url, nil
}

func pickVariant(variant game.Variant, def, female, shiny, shinyFemale string) string {
	switch {
	case variant == game.VariantFemale && female != "":
		return female
	case variant == game.VariantShiny && shiny != "":
		return shiny
	case variant == game.VariantShinyFemale && shinyFemale != "":
		return shinyFemale
	default:
		return def
	}
}

// Download fetches a sprite image.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	b, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download sprite: %w", err)
	}
	return b, nil
}
