// Package face provides the face-region collaborator: a pretrained cascade
// classifier that yields zero or more face rectangles for an image. The
// pipeline treats it as a black box; analysis works with or without it.
package face

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
)

// Detector wraps a pigo cascade classifier.
type Detector struct {
	classifier *pigo.Pigo
	minSize    int
	quality    float32
}

// NewDetector builds a Detector from unpacked cascade bytes.
func NewDetector(cascade []byte) (*Detector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack cascade file: %w", err)
	}
	return &Detector{
		classifier: classifier,
		minSize:    60,
		quality:    5.0,
	}, nil
}

// NewDetectorFromFile loads and unpacks a binary cascade file.
func NewDetectorFromFile(path string) (*Detector, error) {
	cascade, err := os.ReadFile(path) // #nosec G304 -- user-specified cascade path
	if err != nil {
		return nil, fmt.Errorf("failed to read cascade file: %w", err)
	}
	return NewDetector(cascade)
}

// Detect runs the cascade over the image and returns the detected face
// regions, clustered by intersection over union.
func (d *Detector) Detect(img image.Image) []image.Rectangle {
	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()

	params := pigo.CascadeParams{
		MinSize:     d.minSize,
		MaxSize:     max(cols, rows),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: grayscalePixels(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	detections := d.classifier.RunCascade(params, 0.0)
	detections = d.classifier.ClusterDetections(detections, 0.2)

	var regions []image.Rectangle
	for _, det := range detections {
		if det.Q < d.quality {
			continue
		}
		half := det.Scale / 2
		region := image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half).
			Add(bounds.Min).
			Intersect(bounds)
		if !region.Empty() {
			regions = append(regions, region)
		}
	}
	return regions
}

// LargestFace returns the biggest detected face region by area.
func (d *Detector) LargestFace(img image.Image) (image.Rectangle, bool) {
	var best image.Rectangle
	for _, region := range d.Detect(img) {
		if area(region) > area(best) {
			best = region
		}
	}
	return best, !best.Empty()
}

// Crop extracts the given region from the image.
func Crop(img image.Image, region image.Rectangle) image.Image {
	return imaging.Crop(img, region)
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}

// grayscalePixels flattens the image into the row-major grayscale plane the
// cascade classifier operates on.
func grayscalePixels(img image.Image) []uint8 {
	bounds := img.Bounds()
	pixels := make([]uint8, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			pixels = append(pixels, uint8(lum))
		}
	}
	return pixels
}
