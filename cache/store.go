// Package cache memoizes species lookups and processed sprites on disk.
//
// The store is best effort: every read or write failure is swallowed and
// reported as a miss, so callers always recover by fetching again. Entries
// never expire. Writes go through a temp file and a rename so a concurrent
// reader never observes a partial file; two processes filling the same key
// both fetch and the last rename wins.
package cache

import (
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	Dir string
}

// New returns a store rooted at dir. The directory is created lazily.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) path(key, ext string) string {
	key = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.Dir, key+ext)
}

// GetJSON decodes the entry for key into v.
func (s *Store) GetJSON(key string, v any) bool {
	if s == nil {
		return false
	}
	b, err := os.ReadFile(s.path(key, ".json"))
	if err != nil {
		return false
	}
	return json.Unmarshal(b, v) == nil
}

// GetRaw returns the stored JSON document for key.
func (s *Store) GetRaw(key string) ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	b, err := os.ReadFile(s.path(key, ".json"))
	if err != nil || !json.Valid(b) {
		return nil, false
	}
	return b, true
}

// PutJSON stores v as JSON under key.
func (s *Store) PutJSON(key string, v any) {
	if s == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.write(s.path(key, ".json"), func(f *os.File) error {
		_, err := f.Write(b)
		return err
	})
}

// PutRaw stores an already encoded JSON document under key.
func (s *Store) PutRaw(key string, doc []byte) {
	if s == nil || !json.Valid(doc) {
		return
	}
	s.write(s.path(key, ".json"), func(f *os.File) error {
		_, err := f.Write(doc)
		return err
	})
}

// GetImage decodes the PNG stored under key.
func (s *Store) GetImage(key string) (image.Image, bool) {
	if s == nil {
		return nil, false
	}
	f, err := os.Open(s.path(key, ".png"))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, false
	}
	return img, true
}

// PutImage stores img as PNG under key.
func (s *Store) PutImage(key string, img image.Image) {
	if s == nil || img == nil {
		return
	}
	s.write(s.path(key, ".png"), func(f *os.File) error {
		return png.Encode(f, img)
	})
}

func (s *Store) write(dst string, fill func(*os.File) error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return
	}
	tmp, err := os.CreateTemp(s.Dir, ".tmp-*")
	if err != nil {
		return
	}
	name := tmp.Name()
	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(name)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return
	}
	if err := os.Rename(name, dst); err != nil {
		os.Remove(name)
	}
}
