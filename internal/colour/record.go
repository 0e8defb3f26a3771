// Package colour implements the dominant skin-colour extraction core:
// deterministic k-means clustering over image pixels, background-cluster
// removal, population-ranked colour records and skin-tone matching.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
)

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Color converts an RGB value to a color.Color with full opacity.
func (rgb RGB) Color() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Center is a cluster centroid in RGB space. Centroids are kept as
// floating-point averages; conversion to 8-bit RGB happens only at the
// reporting boundary.
type Center struct {
	R, G, B float64
}

// RGB returns the centroid rounded to the nearest 8-bit RGB colour.
func (c Center) RGB() RGB {
	return RGB{
		R: uint8(math.Round(clampChannel(c.R))),
		G: uint8(math.Round(clampChannel(c.G))),
		B: uint8(math.Round(clampChannel(c.B))),
	}
}

// IsBlack reports whether the centroid is exactly (0,0,0) under integer
// truncation. The masker zeroes rejected pixels, so the background cluster
// centre sits at or fractionally above zero; truncation catches it without
// pulling in genuinely dark skin clusters.
func (c Center) IsBlack() bool {
	return int(c.R) == 0 && int(c.G) == 0 && int(c.B) == 0
}

func clampChannel(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

// distance calculates the Euclidean distance between two centroids in RGB space.
func (c Center) distance(other Center) float64 {
	dr := c.R - other.R
	dg := c.G - other.G
	db := c.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Record describes one ranked colour cluster: its index into the (filtered)
// centre list, its centre colour, and its share of the counted pixel
// population. Records are immutable once built; a run's records are ordered
// by descending percentage and their percentages sum to 1.0 over the
// population they were computed from.
type Record struct {
	ClusterIndex int     `json:"cluster_index"`
	Color        RGB     `json:"color"`
	Percentage   float64 `json:"color_percentage"`
}

// String returns a human-readable description of the record.
func (r Record) String() string {
	return fmt.Sprintf("cluster %d: %s (%.1f%%)", r.ClusterIndex, r.Color.Hex(), r.Percentage*100)
}

// RecordsJSON is the JSON envelope for a set of ranked records.
type RecordsJSON struct {
	Count   int      `json:"count"`
	Records []Record `json:"records"`
}

// MarshalRecords converts ranked records to indented JSON.
func MarshalRecords(records []Record) ([]byte, error) {
	return json.MarshalIndent(RecordsJSON{Count: len(records), Records: records}, "", "  ")
}
