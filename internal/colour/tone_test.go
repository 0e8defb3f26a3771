package colour

import (
	"math"
	"testing"
)

func TestDefaultScale(t *testing.T) {
	scale := DefaultScale()
	if scale.Len() != 7 {
		t.Fatalf("expected 7 scale entries, got %d", scale.Len())
	}

	entries := scale.Entries()
	if entries[0].Name != "Very Dark" {
		t.Errorf("first entry = %q, want \"Very Dark\"", entries[0].Name)
	}
	if entries[len(entries)-1].Name != "Very Fair" {
		t.Errorf("last entry = %q, want \"Very Fair\"", entries[len(entries)-1].Name)
	}
}

func TestNewScaleEmpty(t *testing.T) {
	if _, err := NewScale(nil); err == nil {
		t.Error("expected an error for an empty scale")
	}
	if _, err := NewScale([]ToneEntry{}); err == nil {
		t.Error("expected an error for an empty scale")
	}
}

func TestClosestEmptyScale(t *testing.T) {
	var scale Scale
	if _, err := scale.Closest(RGB{R: 100, G: 80, B: 70}); err == nil {
		t.Error("expected an error from a scale with no entries")
	}
}

func TestClosestSelfMatch(t *testing.T) {
	scale := DefaultScale()
	for _, entry := range scale.Entries() {
		t.Run(entry.Name, func(t *testing.T) {
			name, err := scale.Closest(entry.Color)
			if err != nil {
				t.Fatalf("Closest failed: %v", err)
			}
			if name != entry.Name {
				t.Errorf("Closest(%v) = %q, want %q", entry.Color, name, entry.Name)
			}
		})
	}
}

func TestClosestTieFirstWins(t *testing.T) {
	shared := RGB{R: 90, G: 70, B: 60}
	scale, err := NewScale([]ToneEntry{
		{Name: "first", Color: shared},
		{Name: "second", Color: shared},
	})
	if err != nil {
		t.Fatalf("NewScale failed: %v", err)
	}

	name, err := scale.Closest(shared)
	if err != nil {
		t.Fatalf("Closest failed: %v", err)
	}
	if name != "first" {
		t.Errorf("tie resolved to %q, want the earlier entry", name)
	}
}

// lerpTowards moves a colour 10% of the way towards a target in RGB space.
func lerpTowards(c, target RGB) RGB {
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + 0.1*(float64(b)-float64(a))))
	}
	return RGB{R: lerp(c.R, target.R), G: lerp(c.G, target.G), B: lerp(c.B, target.B)}
}

func TestLabDistanceInterpolationMonotonic(t *testing.T) {
	// Moving a colour 10% towards a scale entry in RGB space must not move
	// it farther from that entry in Lab space. A directional sanity check
	// on the perceptual-space matching, not an exact equality.
	queries := []RGB{
		{R: 200, G: 150, B: 120},
		{R: 128, G: 128, B: 128},
		{R: 30, G: 30, B: 30},
		{R: 180, G: 120, B: 100},
	}

	for _, entry := range DefaultScale().Entries() {
		for _, query := range queries {
			before := LabDistance(query, entry.Color)
			after := LabDistance(lerpTowards(query, entry.Color), entry.Color)
			if after > before+1e-9 {
				t.Errorf("distance to %q grew from %.4f to %.4f for query %v",
					entry.Name, before, after, query)
			}
		}
	}
}

func TestClosestOrdering(t *testing.T) {
	scale := DefaultScale()

	tests := []struct {
		name  string
		query RGB
		want  string
	}{
		{name: "near darkest", query: RGB{R: 40, G: 30, B: 28}, want: "Very Dark"},
		{name: "near lightest", query: RGB{R: 150, G: 115, B: 100}, want: "Very Fair"},
		{name: "light skin tone", query: RGB{R: 200, G: 150, B: 120}, want: "Very Fair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := scale.Closest(tt.query)
			if err != nil {
				t.Fatalf("Closest failed: %v", err)
			}
			if name != tt.want {
				t.Errorf("Closest(%v) = %q, want %q", tt.query, name, tt.want)
			}
		})
	}
}
