package animation

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontOnce sync.Once
	regular  *opentype.Font
	fontErr  error
)

// faces holds the two text sizes of a frame. Faces keep glyph caches and are
// not safe for concurrent use, so every render builds its own.
type faces struct {
	title font.Face
	body  font.Face
}

func newFaces() faces {
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	fallback := faces{title: basicfont.Face7x13, body: basicfont.Face7x13}
	if fontErr != nil {
		return fallback
	}
	title, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: 22, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fallback
	}
	body, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: 18, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fallback
	}
	return faces{title: title, body: body}
}
