package colour

import "math"

// HSV holds a colour in hue-saturation-value form using OpenCV's 8-bit
// conventions: H in [0,180) (half-degrees), S and V in [0,255].
type HSV struct {
	H, S, V float64
}

// RGBToHSV converts 8-bit RGB channels to HSV in OpenCV convention.
func RGBToHSV(r, g, b uint8) HSV {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	diff := maxC - minC

	v := maxC * 255.0

	var s float64
	if maxC > 0 {
		s = (diff / maxC) * 255.0
	}

	var h float64
	switch {
	case diff == 0:
		h = 0
	case maxC == rf:
		h = 60 * math.Mod((gf-bf)/diff, 6)
	case maxC == gf:
		h = 60 * ((bf-rf)/diff + 2)
	default:
		h = 60 * ((rf-gf)/diff + 4)
	}
	if h < 0 {
		h += 360
	}

	// Halve the hue to fit OpenCV's 0-180 range.
	return HSV{H: h / 2, S: s, V: v}
}
