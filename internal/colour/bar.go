package colour

import (
	"image"
	"image/draw"
)

// Default colour-bar canvas dimensions.
const (
	BarWidth  = 500
	BarHeight = 100
)

// RenderBar draws a proportional colour strip from ranked records: the
// canvas width is partitioned left to right according to each record's
// percentage, in record order. Segments falling past the right edge are
// clipped at the canvas boundary; there is no error path.
func RenderBar(records []Record, width, height int) *image.RGBA {
	if width <= 0 {
		width = BarWidth
	}
	if height <= 0 {
		height = BarHeight
	}

	bar := image.NewRGBA(image.Rect(0, 0, width, height))

	startX := 0.0
	for _, record := range records {
		endX := startX + record.Percentage*float64(width)
		seg := image.Rect(int(startX), 0, int(endX), height).Intersect(bar.Bounds())
		draw.Draw(bar, seg, image.NewUniform(record.Color.Color()), image.Point{}, draw.Src)
		startX = endX
	}

	return bar
}
