// Package skin isolates skin-coloured regions of an image: an HSV band
// threshold produces a binary mask, morphological cleanup strips speckle and
// fills small holes, and the mask is applied so that every rejected pixel is
// exactly zero in all channels.
package skin

import (
	"image"

	"github.com/skintint/skintint/internal/colour"
)

// Band is an inclusive HSV threshold band in OpenCV channel conventions
// (H 0-180, S and V 0-255).
type Band struct {
	HMin, HMax float64
	SMin, SMax float64
	VMin, VMax float64
}

// DefaultBand returns the skin-colour band: hue [0,20], saturation [48,255],
// value [80,255].
func DefaultBand() Band {
	return Band{
		HMin: 0, HMax: 20,
		SMin: 48, SMax: 255,
		VMin: 80, VMax: 255,
	}
}

// Contains reports whether the colour falls inside the band, bounds inclusive.
func (b Band) Contains(hsv colour.HSV) bool {
	return hsv.H >= b.HMin && hsv.H <= b.HMax &&
		hsv.S >= b.SMin && hsv.S <= b.SMax &&
		hsv.V >= b.VMin && hsv.V <= b.VMax
}

// ellipse5 is a 5x5 elliptical structuring element, matching OpenCV's
// MORPH_ELLIPSE shape.
var ellipse5 = [5][5]bool{
	{false, false, true, false, false},
	{true, true, true, true, true},
	{true, true, true, true, true},
	{true, true, true, true, true},
	{false, false, true, false, false},
}

// Masker produces skin masks and masked images.
type Masker struct {
	band Band
}

// NewMasker creates a Masker with the default skin-colour band.
func NewMasker() *Masker {
	return &Masker{band: DefaultBand()}
}

// NewMaskerWithBand creates a Masker with a custom threshold band.
func NewMaskerWithBand(band Band) *Masker {
	return &Masker{band: band}
}

// ExtractSkin returns a copy of the image, same bounds, where every pixel
// classified as non-skin is zeroed in all colour channels. Pixels inside the
// mask keep their original colour untouched; an image with no skin-coloured
// pixels comes back all zero.
func (m *Masker) ExtractSkin(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	mask := m.Mask(img)

	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := out.PixOffset(x, y)
			if mask.GrayAt(x, y).Y > 0 {
				rgb := colour.ToRGB(img.At(x, y))
				out.Pix[i+0] = rgb.R
				out.Pix[i+1] = rgb.G
				out.Pix[i+2] = rgb.B
			}
			out.Pix[i+3] = 255
		}
	}
	return out
}

// Mask computes the cleaned skin mask for the image: band threshold, a 3x3
// smoothing blur, two rounds of erosion then dilation with a 5x5 elliptical
// element to strip small false-positive blobs, then an opening and a closing
// with the same element to fill small holes and smooth boundaries. Nonzero
// means skin.
func (m *Masker) Mask(img image.Image) *image.Gray {
	mask := m.threshold(img)

	mask = boxBlur3(mask)

	mask = erode(mask, 2)
	mask = dilate(mask, 2)

	// Opening then closing.
	mask = dilate(erode(mask, 1), 1)
	mask = erode(dilate(mask, 1), 1)

	return mask
}

// threshold builds the raw binary mask from the HSV band.
func (m *Masker) threshold(img image.Image) *image.Gray {
	bounds := img.Bounds()
	mask := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgb := colour.ToRGB(img.At(x, y))
			if m.band.Contains(colour.RGBToHSV(rgb.R, rgb.G, rgb.B)) {
				mask.Pix[mask.PixOffset(x, y)] = 255
			}
		}
	}
	return mask
}

// boxBlur3 applies a 3x3 box blur with replicated borders.
func boxBlur3(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sum += int(grayAtClamped(src, x+dx, y+dy))
				}
			}
			dst.Pix[dst.PixOffset(x, y)] = uint8(sum / 9)
		}
	}
	return dst
}

// erode applies grayscale erosion (minimum filter) over the elliptical
// element for the given number of iterations.
func erode(src *image.Gray, iterations int) *image.Gray {
	return morph(src, iterations, func(a, b uint8) bool { return a < b })
}

// dilate applies grayscale dilation (maximum filter) over the elliptical
// element for the given number of iterations.
func dilate(src *image.Gray, iterations int) *image.Gray {
	return morph(src, iterations, func(a, b uint8) bool { return a > b })
}

func morph(src *image.Gray, iterations int, better func(a, b uint8) bool) *image.Gray {
	bounds := src.Bounds()
	for i := 0; i < iterations; i++ {
		dst := image.NewGray(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				picked := grayAtClamped(src, x, y)
				for dy := -2; dy <= 2; dy++ {
					for dx := -2; dx <= 2; dx++ {
						if !ellipse5[dy+2][dx+2] {
							continue
						}
						if v := grayAtClamped(src, x+dx, y+dy); better(v, picked) {
							picked = v
						}
					}
				}
				dst.Pix[dst.PixOffset(x, y)] = picked
			}
		}
		src = dst
	}
	return src
}

// grayAtClamped reads a pixel with coordinates clamped to the image bounds,
// replicating the border.
func grayAtClamped(img *image.Gray, x, y int) uint8 {
	bounds := img.Bounds()
	if x < bounds.Min.X {
		x = bounds.Min.X
	}
	if x >= bounds.Max.X {
		x = bounds.Max.X - 1
	}
	if y < bounds.Min.Y {
		y = bounds.Min.Y
	}
	if y >= bounds.Max.Y {
		y = bounds.Max.Y - 1
	}
	return img.Pix[img.PixOffset(x, y)]
}
