package animation

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pokebattle/cache"
	"pokebattle/game"
)

const (
	femaleChance = 0.3
	frameDelay   = 100 // hundredths of a second
)

var tracer = otel.Tracer("pokebattle/animation")

// Renderer turns a verdict into an animated GIF on disk.
type Renderer struct {
	Sprites *SpriteLoader
	OutDir  string
	// NewRand supplies the generator for one render. Defaults to NewRand.
	NewRand func() *rand.Rand

	now func() time.Time
}

func NewRenderer(src SpriteSource, store *cache.Store, outDir string) *Renderer {
	return &Renderer{
		Sprites: &SpriteLoader{Source: src, Cache: store},
		OutDir:  outDir,
		NewRand: NewRand,
		now:     time.Now,
	}
}

func (r *Renderer) rng() *rand.Rand {
	if r.NewRand == nil {
		return NewRand()
	}
	return r.NewRand()
}

func (r *Renderer) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

// Render animates a battle between a and b that ends as v says, and returns
// the path of the written GIF. a is drawn from behind on the left, b from
// the front on the right. Safe for concurrent use.
func (r *Renderer) Render(ctx context.Context, a, b game.PokemonRecord, v game.BattleVerdict, shiny bool) (string, error) {
	ctx, span := tracer.Start(ctx, "animation.Render")
	defer span.End()
	span.SetAttributes(
		attribute.String("pokemon.a", a.Name),
		attribute.String("pokemon.b", b.Name),
		attribute.Bool("shiny", shiny),
	)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		err = fmt.Errorf("create output dir: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	rng := r.rng()
	variantA := game.SelectVariant(shiny, rng.Float64() < femaleChance)
	variantB := game.SelectVariant(shiny, rng.Float64() < femaleChance)

	spriteA := r.Sprites.Load(ctx, a.Name, variantA, true)
	spriteB := r.Sprites.Load(ctx, b.Name, variantB, false)

	script := Plan(rng, a, b, v)
	st := newStage(rng, newFighter(a.Name, spriteA, platformA), newFighter(b.Name, spriteB, platformB))

	anim := &gif.GIF{LoopCount: 0}
	add := func(img image.Image, times int) {
		p := toPaletted(img)
		for i := 0; i < times; i++ {
			anim.Image = append(anim.Image, p)
			anim.Delay = append(anim.Delay, frameDelay)
		}
	}

	add(st.frame(1, 1, script.Intro), 1)
	for _, t := range script.Ticks {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		add(st.frame(t.HealthA, t.HealthB, t.Message), 2)
	}
	add(st.frame(script.FinalA, script.FinalB, script.Outro), 3)

	path, err := r.write(anim)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("frames", len(anim.Image)))
	log.Printf("[render] %s vs %s: %d frames -> %s", a.Name, b.Name, len(anim.Image), path)
	return path, nil
}

func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

func (r *Renderer) write(anim *gif.GIF) (string, error) {
	name := fmt.Sprintf("battle_%d_%s.gif", r.clock().Unix(), uuid.NewString()[:8])
	path := filepath.Join(r.OutDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create gif: %w", err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode gif: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close gif: %w", err)
	}
	return path, nil
}
