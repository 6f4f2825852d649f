package data

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pokebattle/cache"
	"pokebattle/game"
)

const pikachuJSON = `{
  "name": "pikachu",
  "stats": [
    {"base_stat": 35, "stat": {"name": "hp"}},
    {"base_stat": 55, "stat": {"name": "attack"}},
    {"base_stat": 40, "stat": {"name": "defense"}},
    {"base_stat": 50, "stat": {"name": "special-attack"}},
    {"base_stat": 50, "stat": {"name": "special-defense"}},
    {"base_stat": 90, "stat": {"name": "speed"}}
  ],
  "types": [{"slot": 1, "type": {"name": "electric"}}],
  "sprites": {
    "front_default": "FRONT",
    "back_default": "BACK",
    "back_female": "BACK_F",
    "back_shiny": null,
    "other": {
      "official-artwork": {"front_default": "ART"},
      "home": {"front_default": "HOME"}
    }
  }
}`

const pikachuFormJSON = `{
  "name": "pikachu",
  "sprites": {
    "front_default": "FORM_FRONT",
    "front_shiny": "FORM_SHINY",
    "front_female": null
  }
}`

type fakeAPI struct {
	hits   atomic.Int32
	server *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/pikachu", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		w.Write([]byte(pikachuJSON))
	})
	mux.HandleFunc("/pokemon-form/pikachu", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		w.Write([]byte(pikachuFormJSON))
	})
	mux.HandleFunc("/pokemon/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/sprite.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("PNGDATA"))
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func TestClientPokemon(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.server.URL, 5*time.Second, cache.New(t.TempDir()))

	rec, err := c.Pokemon(context.Background(), "Pikachu")
	if err != nil {
		t.Fatalf("Pokemon: %v", err)
	}
	want := game.BaseStats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90}
	if rec.Name != "pikachu" || rec.BaseStats != want {
		t.Fatalf("record = %+v", rec)
	}
	if len(rec.Types) != 1 || rec.Types[0] != "electric" {
		t.Fatalf("types = %v", rec.Types)
	}
}

func TestClientNotFound(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.server.URL, 5*time.Second, nil)

	_, err := c.Pokemon(context.Background(), "notapokemon")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClientServerError(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.server.URL, 5*time.Second, nil)

	_, err := c.Pokemon(context.Background(), "broken")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want non not-found error", err)
	}
}

func TestClientCachesRawDocuments(t *testing.T) {
	api := newFakeAPI(t)
	dir := t.TempDir()
	c := NewClient(api.server.URL, 5*time.Second, cache.New(dir))

	for i := 0; i < 3; i++ {
		if _, err := c.Pokemon(context.Background(), "pikachu"); err != nil {
			t.Fatalf("Pokemon: %v", err)
		}
	}
	if got := api.hits.Load(); got != 1 {
		t.Fatalf("upstream hits = %d, want 1", got)
	}

	// A fresh client on the same directory is served from disk.
	again := NewClient(api.server.URL, 5*time.Second, cache.New(dir))
	if _, err := again.Pokemon(context.Background(), "pikachu"); err != nil {
		t.Fatalf("Pokemon: %v", err)
	}
	if got := api.hits.Load(); got != 1 {
		t.Fatalf("upstream hits after reopen = %d, want 1", got)
	}
}

func TestSpriteURL(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.server.URL, 5*time.Second, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		variant game.Variant
		back    bool
		want    string
	}{
		{"back default", game.VariantDefault, true, "BACK"},
		{"back female", game.VariantFemale, true, "BACK_F"},
		{"back shiny missing falls back", game.VariantShiny, true, "BACK"},
		{"front from form", game.VariantDefault, false, "FORM_FRONT"},
		{"front shiny from form", game.VariantShiny, false, "FORM_SHINY"},
		{"front female missing falls back", game.VariantFemale, false, "FORM_FRONT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.SpriteURL(ctx, "pikachu", tt.variant, tt.back)
			if err != nil {
				t.Fatalf("SpriteURL: %v", err)
			}
			if got != tt.want {
				t.Fatalf("SpriteURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpriteURLUnknown(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.server.URL, 5*time.Second, nil)
	if _, err := c.SpriteURL(context.Background(), "missingno", game.VariantDefault, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDownload(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.server.URL, 5*time.Second, nil)
	b, err := c.Download(context.Background(), api.server.URL+"/sprite.png")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(b) != "PNGDATA" {
		t.Fatalf("body = %q", b)
	}
	if _, err := c.Download(context.Background(), api.server.URL+"/nope.png"); err == nil {
		t.Fatal("expected error for missing sprite")
	}
}
