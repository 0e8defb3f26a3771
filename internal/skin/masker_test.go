package skin

import (
	"image"
	"image/color"
	"testing"

	"github.com/skintint/skintint/internal/colour"
)

var (
	skinColor = color.RGBA{R: 200, G: 150, B: 120, A: 255}
	blueColor = color.RGBA{B: 255, A: 255}
)

func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestDefaultBandContains(t *testing.T) {
	band := DefaultBand()

	tests := []struct {
		name    string
		r, g, b uint8
		want    bool
	}{
		{name: "skin tone", r: 200, g: 150, b: 120, want: true},
		{name: "pure red sits inside the hue band", r: 255, g: 0, b: 0, want: true},
		{name: "black fails the value bound", r: 0, g: 0, b: 0, want: false},
		{name: "white fails the saturation bound", r: 255, g: 255, b: 255, want: false},
		{name: "blue fails the hue bound", r: 0, g: 0, b: 255, want: false},
		{name: "dim skin fails the value bound", r: 60, g: 45, b: 36, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := band.Contains(colour.RGBToHSV(tt.r, tt.g, tt.b))
			if got != tt.want {
				t.Errorf("Contains(rgb(%d, %d, %d)) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestExtractSkinDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 17, 9))
	fillRect(img, img.Bounds(), skinColor)

	out := NewMasker().ExtractSkin(img)
	if out.Bounds() != img.Bounds() {
		t.Errorf("output bounds %v differ from input bounds %v", out.Bounds(), img.Bounds())
	}
}

func TestExtractSkinPreservesPalette(t *testing.T) {
	// Every output pixel must be either the untouched input colour or
	// exact zero, never a fabricated colour.
	img := image.NewRGBA(image.Rect(0, 0, 24, 24))
	fillRect(img, img.Bounds(), blueColor)
	fillRect(img, image.Rect(4, 4, 20, 20), skinColor)

	out := NewMasker().ExtractSkin(img)

	zero := color.RGBA{A: 255}
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			got := out.RGBAAt(x, y)
			in := img.RGBAAt(x, y)
			if got != in && got != zero {
				t.Fatalf("pixel at (%d,%d) = %v, want %v or zero", x, y, got, in)
			}
		}
	}
}

func TestExtractSkinAllSkin(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	fillRect(img, img.Bounds(), skinColor)

	out := NewMasker().ExtractSkin(img)
	for _, pt := range []image.Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 19, Y: 19}} {
		if got := out.RGBAAt(pt.X, pt.Y); got != skinColor {
			t.Errorf("pixel at %v = %v, want the original skin colour", pt, got)
		}
	}
}

func TestExtractSkinNoSkin(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	fillRect(img, img.Bounds(), blueColor)

	out := NewMasker().ExtractSkin(img)

	zero := color.RGBA{A: 255}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := out.RGBAAt(x, y); got != zero {
				t.Fatalf("pixel at (%d,%d) = %v, want zero", x, y, got)
			}
		}
	}
}

func TestExtractSkinCentreSurvivesCleanup(t *testing.T) {
	// A solid skin block large enough to outlive two erosion passes must
	// keep its centre; isolated single-pixel speckle must not.
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	fillRect(img, img.Bounds(), blueColor)
	fillRect(img, image.Rect(8, 8, 32, 32), skinColor)
	img.SetRGBA(38, 2, skinColor) // lone speckle

	out := NewMasker().ExtractSkin(img)

	if got := out.RGBAAt(20, 20); got != skinColor {
		t.Errorf("block centre = %v, want the original skin colour", got)
	}
	if got := out.RGBAAt(38, 2); got != (color.RGBA{A: 255}) {
		t.Errorf("speckle survived cleanup: %v", got)
	}
}

func TestMaskBinaryAfterCleanup(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	fillRect(img, img.Bounds(), blueColor)
	fillRect(img, image.Rect(5, 5, 15, 15), skinColor)

	mask := NewMasker().Mask(img)
	if mask.Bounds() != img.Bounds() {
		t.Errorf("mask bounds %v differ from input bounds %v", mask.Bounds(), img.Bounds())
	}
}
