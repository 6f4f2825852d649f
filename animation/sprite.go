package animation

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pokebattle/cache"
	"pokebattle/data"
	"pokebattle/game"
)

const (
	maxSpriteSize    = 400
	nearBlack        = 10
	edgeBlackPercent = 70
)

// SpriteSource resolves and fetches sprite artwork. *data.Client satisfies it.
type SpriteSource interface {
	SpriteURL(ctx context.Context, name string, variant game.Variant, back bool) (string, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// SpriteLoader returns display-ready sprites, going through the cache first.
type SpriteLoader struct {
	Source SpriteSource
	Cache  *cache.Store
}

func spriteKey(name string, variant game.Variant, back bool) string {
	side := "front"
	if back {
		side = "back"
	}
	return fmt.Sprintf("sprite_%s_%s_%s", data.NormalizeName(name), side, variant)
}

// Load never fails: when the sprite cannot be had it logs the reason and
// returns a placeholder, which is not cached.
func (l *SpriteLoader) Load(ctx context.Context, name string, variant game.Variant, back bool) image.Image {
	key := spriteKey(name, variant, back)
	if img, ok := l.Cache.GetImage(key); ok {
		return img
	}
	img, err := l.fetch(ctx, name, variant, back)
	if err != nil {
		log.Printf("[render] sprite for %s: %v", name, err)
		return Placeholder(name)
	}
	l.Cache.PutImage(key, img)
	return img
}

func (l *SpriteLoader) fetch(ctx context.Context, name string, variant game.Variant, back bool) (image.Image, error) {
	if l.Source == nil {
		return nil, data.ErrNoSprite
	}
	url, err := l.Source.SpriteURL(ctx, name, variant, back)
	if err != nil {
		return nil, err
	}
	raw, err := l.Source.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode sprite: %w", err)
	}
	return prepareSprite(img), nil
}

// prepareSprite converts to NRGBA, keys out a solid black backdrop and
// shrinks the result to fit 400x400.
func prepareSprite(src image.Image) *image.NRGBA {
	img := imaging.Clone(src)
	keyBlackBackground(img)
	return imaging.Fit(img, maxSpriteSize, maxSpriteSize, imaging.Lanczos)
}

func isNearBlack(img *image.NRGBA, x, y int) bool {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3 : i+3]
	return p[0] < nearBlack && p[1] < nearBlack && p[2] < nearBlack
}

// keyBlackBackground makes near-black pixels transparent, but only for fully
// opaque images whose border is mostly near-black.
func keyBlackBackground(img *image.NRGBA) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 0xff {
			return
		}
	}

	edges, black := 0, 0
	sample := func(x, y int) {
		edges++
		if isNearBlack(img, x, y) {
			black++
		}
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		sample(x, b.Min.Y)
		sample(x, b.Max.Y-1)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		sample(b.Min.X, y)
		sample(b.Max.X-1, y)
	}
	if black*100 < edges*edgeBlackPercent {
		return
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isNearBlack(img, x, y) {
				img.SetNRGBA(x, y, color.NRGBA{})
			}
		}
	}
}

// Placeholder is a transparent 200x200 image reading "No sprite for <name>".
func Placeholder(name string) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
	}
	ascent := basicfont.Face7x13.Metrics().Ascent
	for i, text := range []string{"No sprite for", name} {
		d.Dot = fixed.Point26_6{
			X: fixed.I(30),
			Y: fixed.I(90+i*basicfont.Face7x13.Height) + ascent,
		}
		d.DrawString(text)
	}
	return img
}
