package animation

import (
	"image"
	"image/color"
	"testing"
)

func TestHealthColor(t *testing.T) {
	tests := []struct {
		health float64
		want   color.NRGBA
	}{
		{1, barGreen},
		{0.51, barGreen},
		{0.5, barYellow},
		{0.21, barYellow},
		{0.2, barRed},
		{0.01, barRed},
		{0, barRed},
	}
	for _, tt := range tests {
		if got := healthColor(tt.health); got != tt.want {
			t.Errorf("healthColor(%v) = %v, want %v", tt.health, got, tt.want)
		}
	}
}

func rgba(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestHealthBarFill(t *testing.T) {
	const mid = barHeight / 2

	full := healthBar(1, barWidth, barHeight)
	if got := rgba(full, barWidth/2, mid); got != barGreen {
		t.Fatalf("full bar middle = %v, want green", got)
	}

	sliver := healthBar(0.001, barWidth, barHeight)
	if got := rgba(sliver, 1, mid); got != barRed {
		t.Fatalf("near-empty bar first pixel = %v, want red", got)
	}
	if got := rgba(sliver, 3, mid); got.A != 0 {
		t.Fatalf("near-empty bar should fill a single pixel, got %v at x=3", got)
	}

	empty := healthBar(0, barWidth, barHeight)
	if got := rgba(empty, 1, mid); got.A != 0 {
		t.Fatalf("empty bar first pixel = %v, want transparent", got)
	}
	if got := rgba(empty, 0, 0); got.A == 0 {
		t.Fatal("border should always be drawn")
	}
}

func TestShadow(t *testing.T) {
	if s := shadow(image.NewNRGBA(image.Rect(0, 0, 100, 2))); s != nil {
		t.Fatal("sprite too flat for a shadow should get none")
	}
	s := shadow(image.NewNRGBA(image.Rect(0, 0, 100, 100)))
	if b := s.Bounds(); b.Dx() != 100 || b.Dy() != 30 {
		t.Fatalf("shadow bounds = %v, want 100x30", b)
	}
	if c := rgba(s, 50, 15); c.A == 0 {
		t.Fatal("shadow centre should be translucent, not clear")
	}
}

func TestFrameSize(t *testing.T) {
	rng := SeededRand(1)()
	a := newFighter("pikachu", Placeholder("pikachu"), platformA)
	b := newFighter("charizard", image.NewNRGBA(image.Rect(0, 0, 400, 400)), platformB)
	st := newStage(rng, a, b)

	img := st.frame(0.7, 0.1, "A very long battle message that has to wrap across more than one line of the panel at the bottom of the frame.")
	if b := img.Bounds(); b.Dx() != frameWidth || b.Dy() != frameHeight {
		t.Fatalf("frame bounds = %v", b)
	}
	// Ground strip below the message box.
	if c := rgba(img, 5, 495); c.G < 150 {
		t.Fatalf("ground pixel = %v, want green", c)
	}
}
