package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// ToneEntry is one named point on the skin-tone scale.
type ToneEntry struct {
	Name  string `json:"name"`
	Color RGB    `json:"color"`
}

// Scale is an ordered skin-tone reference scale, darkest entry first. Each
// entry's Lab coordinates are computed once at construction; the scale is
// read-only afterwards and safe to share across concurrent analyses.
type Scale struct {
	entries []ToneEntry
	labs    [][]float64
}

// NewScale builds a scale from the given entries. The entries' order is
// significant: nearest-tone ties resolve to the earliest entry.
func NewScale(entries []ToneEntry) (*Scale, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("skin-tone scale cannot be empty")
	}
	s := &Scale{
		entries: make([]ToneEntry, len(entries)),
		labs:    make([][]float64, len(entries)),
	}
	copy(s.entries, entries)
	for i, e := range entries {
		s.labs[i] = labCoords(e.Color)
	}
	return s, nil
}

// DefaultScale returns the canonical seven-entry scale spanning Very Dark to
// Very Fair.
func DefaultScale() *Scale {
	s, err := NewScale([]ToneEntry{
		{Name: "Very Dark", Color: RGB{R: 45, G: 34, B: 30}},
		{Name: "Dark", Color: RGB{R: 60, G: 46, B: 40}},
		{Name: "Tan", Color: RGB{R: 75, G: 57, B: 50}},
		{Name: "Medium", Color: RGB{R: 90, G: 69, B: 60}},
		{Name: "Fair", Color: RGB{R: 105, G: 80, B: 70}},
		{Name: "Light", Color: RGB{R: 120, G: 92, B: 80}},
		{Name: "Very Fair", Color: RGB{R: 135, G: 103, B: 90}},
	})
	if err != nil {
		// The canonical scale is a compile-time constant; failing to build
		// it is a programming error.
		panic(err)
	}
	return s
}

// Len returns the number of entries in the scale.
func (s *Scale) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the scale's entries in definition order.
func (s *Scale) Entries() []ToneEntry {
	out := make([]ToneEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Closest returns the name of the scale entry nearest to the given colour,
// measured by Euclidean distance in CIE-Lab space. Ties resolve to the
// earliest entry in the scale.
func (s *Scale) Closest(c RGB) (string, error) {
	if len(s.entries) == 0 {
		return "", fmt.Errorf("skin-tone scale cannot be empty")
	}

	query := labCoords(c)
	best := 0
	bestDist := math.MaxFloat64
	for i, lab := range s.labs {
		if dist := floats.Distance(query, lab, 2); dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return s.entries[best].Name, nil
}

// LabDistance returns the CIE-Lab Euclidean distance between two colours.
func LabDistance(a, b RGB) float64 {
	return floats.Distance(labCoords(a), labCoords(b), 2)
}

// labCoords converts an 8-bit RGB colour to CIE-Lab coordinates.
func labCoords(c RGB) []float64 {
	col := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	l, a, b := col.Lab()
	return []float64{l, a, b}
}
