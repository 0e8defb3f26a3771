// Sample image generator for exercising the analysis pipeline by hand.
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	// A skin-coloured block on a dark background, roughly the shape the
	// masking stage expects from a cropped face region.
	width := 320
	height := 320
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	background := color.RGBA{R: 24, G: 24, B: 28, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, background)
		}
	}

	// Two adjacent skin shades so clustering has more than one
	// population to separate.
	shades := []color.RGBA{
		{R: 200, G: 150, B: 120, A: 255},
		{R: 172, G: 124, B: 96, A: 255},
	}
	for y := 60; y < 260; y++ {
		for x := 60; x < 260; x++ {
			shade := shades[0]
			if y >= 180 {
				shade = shades[1]
			}
			img.Set(x, y, shade)
		}
	}

	file, err := os.Create("testdata/sample.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}
}
