package cache

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "cache"))

	var missing map[string]int
	if s.GetJSON("pokemon_pikachu", &missing) {
		t.Fatal("expected miss on empty store")
	}

	s.PutJSON("pokemon_pikachu", map[string]int{"hp": 35})

	var got map[string]int
	if !s.GetJSON("pokemon_pikachu", &got) {
		t.Fatal("expected hit after put")
	}
	if got["hp"] != 35 {
		t.Fatalf("hp = %d, want 35", got["hp"])
	}
	if _, err := os.Stat(filepath.Join(s.Dir, "pokemon_pikachu.json")); err != nil {
		t.Fatalf("expected one json file per key: %v", err)
	}
}

func TestRawRejectsInvalidJSON(t *testing.T) {
	s := New(t.TempDir())
	s.PutRaw("bad", []byte("{not json"))
	if _, ok := s.GetRaw("bad"); ok {
		t.Fatal("invalid document should not be stored")
	}

	s.PutRaw("good", []byte(`{"name":"eevee"}`))
	b, ok := s.GetRaw("good")
	if !ok || string(b) != `{"name":"eevee"}` {
		t.Fatalf("GetRaw = %q, %v", b, ok)
	}
}

func TestCorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("]["), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(dir)
	var v any
	if s.GetJSON("broken", &v) {
		t.Fatal("corrupt json should be a miss")
	}
	if _, ok := s.GetImage("broken"); ok {
		t.Fatal("corrupt png should be a miss")
	}
}

func TestImageRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 10, B: 20, A: 255})

	s.PutImage("sprite_pikachu_back_default", img)
	got, ok := s.GetImage("sprite_pikachu_back_default")
	if !ok {
		t.Fatal("expected image hit")
	}
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	r, g, b, a := got.At(1, 1).RGBA()
	if r>>8 != 200 || g>>8 != 10 || b>>8 != 20 || a>>8 != 255 {
		t.Fatalf("pixel = %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestUnwritableDirIsSilent(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	// A regular file where the directory should be: every write fails quietly.
	s := New(filepath.Join(file, "cache"))
	s.PutJSON("k", 1)
	s.PutImage("k", image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	var v int
	if s.GetJSON("k", &v) {
		t.Fatal("expected miss")
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	s.PutJSON("k", 1)
	var v int
	if s.GetJSON("k", &v) {
		t.Fatal("nil store should always miss")
	}
}

func TestKeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	s.PutJSON("../escape", 1)
	matches, _ := filepath.Glob(filepath.Join(dir, "*.json"))
	if len(matches) != 1 {
		t.Fatalf("expected entry inside cache dir, got %v", matches)
	}
}
