package animation

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"pokebattle/game"
)

const (
	frameWidth  = 800
	frameHeight = 500
	groundY     = 380

	barWidth  = 160
	barHeight = 10
)

var (
	skyTop      = color.NRGBA{176, 224, 230, 255}
	skyBottom   = color.NRGBA{240, 255, 255, 255}
	groundColor = color.NRGBA{76, 187, 23, 255}
	lineColor   = color.NRGBA{50, 50, 50, 255}

	barGreen  = color.NRGBA{0, 255, 0, 255}
	barYellow = color.NRGBA{255, 255, 0, 255}
	barRed    = color.NRGBA{255, 0, 0, 255}
)

// platform is where a sprite stands: its shadow is centred on it and the
// sprite's feet rest just above.
type platform struct{ x, y int }

var (
	platformA = platform{200, 340}
	platformB = platform{600, 290}
	panelA    = image.Pt(50, 50)
	panelB    = image.Pt(550, 50)
	msgOrigin = image.Pt(10, 400)
)

// fighter is a sprite placed on the stage with its shadow and display name.
type fighter struct {
	name   string
	sprite image.Image
	shadow image.Image
	at     platform
}

func newFighter(name string, sprite image.Image, at platform) fighter {
	return fighter{
		name:   game.Capitalize(name),
		sprite: sprite,
		shadow: shadow(sprite),
		at:     at,
	}
}

func (f fighter) draw(dc *gg.Context) {
	w := f.sprite.Bounds().Dx()
	h := f.sprite.Bounds().Dy()
	if f.shadow != nil {
		sw := f.shadow.Bounds().Dx()
		dc.DrawImage(f.shadow, f.at.x-sw/2, f.at.y-5)
	}
	offset := int(float64(h) / 2.5)
	dc.DrawImage(f.sprite, f.at.x-w/2, f.at.y-h+offset)
}

// stage holds everything that stays fixed for the length of one animation.
// Only health values and the message change between frames.
type stage struct {
	backdrop image.Image
	a, b     fighter
	faces    faces
}

func newStage(rng *rand.Rand, a, b fighter) *stage {
	return &stage{
		backdrop: backdrop(rng),
		a:        a,
		b:        b,
		faces:    newFaces(),
	}
}

func backdrop(rng *rand.Rand) image.Image {
	dc := gg.NewContext(frameWidth, frameHeight)

	sky := gg.NewLinearGradient(0, 0, 0, frameHeight)
	sky.AddColorStop(0, skyTop)
	sky.AddColorStop(1, skyBottom)
	dc.SetFillStyle(sky)
	dc.DrawRectangle(0, 0, frameWidth, frameHeight)
	dc.Fill()

	dc.SetColor(groundColor)
	dc.DrawRectangle(0, groundY, frameWidth, frameHeight-groundY)
	dc.Fill()

	dc.SetColor(lineColor)
	dc.SetLineWidth(2)
	dc.DrawLine(0, groundY, frameWidth, groundY)
	dc.Stroke()

	for i := 0; i < 10; i++ {
		x := 50 + rng.Intn(701)
		y := 400 + rng.Intn(81)
		size := 5 + rng.Intn(11)
		dc.SetRGB255(50+rng.Intn(51), 160+rng.Intn(41), 20+rng.Intn(31))
		dc.DrawCircle(float64(x), float64(y), float64(size))
		dc.Fill()
	}
	return dc.Image()
}

// frame composes one picture of the battle.
func (s *stage) frame(healthA, healthB float64, message string) image.Image {
	dc := gg.NewContext(frameWidth, frameHeight)
	dc.DrawImage(s.backdrop, 0, 0)

	s.a.draw(dc)
	s.b.draw(dc)

	dc.DrawImage(s.namePanel(s.a.name, healthA), panelA.X, panelA.Y)
	dc.DrawImage(s.namePanel(s.b.name, healthB), panelB.X, panelB.Y)
	dc.DrawImage(s.messageBox(message), msgOrigin.X, msgOrigin.Y)
	return dc.Image()
}

func (s *stage) namePanel(name string, health float64) image.Image {
	dc := gg.NewContext(180, 70)
	dc.SetRGBA255(255, 255, 255, 180)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, 179, 69)
	dc.Stroke()

	dc.SetFontFace(s.faces.title)
	dc.DrawStringAnchored(name, 10, 10, 0, 1)
	dc.DrawImage(healthBar(health, barWidth, barHeight), 10, 40)
	return dc.Image()
}

func (s *stage) messageBox(message string) image.Image {
	const w, h = 780, 90
	dc := gg.NewContext(w, h)
	dc.SetRGBA255(255, 255, 255, 220)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, w-2, h-2)
	dc.Stroke()

	dc.SetFontFace(s.faces.body)
	for i, ln := range dc.WordWrap(message, w-40) {
		dc.DrawStringAnchored(ln, 20, float64(10+24*i), 0, 1)
	}
	return dc.Image()
}

func healthColor(health float64) color.NRGBA {
	switch {
	case health > 0.5:
		return barGreen
	case health > 0.2:
		return barYellow
	default:
		return barRed
	}
}

// healthBar draws a bordered bar. Any health above zero fills at least one
// pixel so a nearly fainted side never looks empty.
func healthBar(health float64, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, float64(width-1), float64(height-1))
	dc.Stroke()

	if health > 0 {
		inner := width - 2
		fill := max(1, int(float64(inner)*min(health, 1)))
		dc.SetColor(healthColor(health))
		dc.DrawRectangle(1, 1, float64(fill), float64(height-2))
		dc.Fill()
	}
	return dc.Image()
}

// shadow is a soft translucent ellipse as wide as 90% of the sprite.
func shadow(sprite image.Image) image.Image {
	w := sprite.Bounds().Dx()
	h := int(float64(sprite.Bounds().Dy()) * 0.3)
	if w == 0 || h == 0 {
		return nil
	}
	sw := float64(int(float64(w) * 0.9))
	sh := float64(int(sw * 0.4))

	dc := gg.NewContext(w, h)
	dc.SetRGBA255(0, 0, 0, 80)
	dc.DrawEllipse(float64(w)/2, float64(h)/2, sw/2, sh/2)
	dc.Fill()
	return imaging.Blur(dc.Image(), 1.5)
}
