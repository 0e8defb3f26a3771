package pipeline

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"time"
)

// SeedMode determines how the clustering seed is derived. Clustering is
// deterministic given a seed, so the mode decides what "same input" means
// for reproducibility.
type SeedMode string

const (
	// SeedContent derives the seed from the image content (default):
	// the same pixels always cluster identically.
	SeedContent SeedMode = "content"
	// SeedManual uses a caller-provided seed value.
	SeedManual SeedMode = "manual"
	// SeedRandom uses a non-deterministic seed that varies each run.
	SeedRandom SeedMode = "random"
)

// ValidSeedModes returns the accepted seed modes.
func ValidSeedModes() []SeedMode {
	return []SeedMode{SeedContent, SeedManual, SeedRandom}
}

// ParseSeedMode converts a string to a SeedMode.
func ParseSeedMode(s string) (SeedMode, error) {
	for _, m := range ValidSeedModes() {
		if s == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown seed mode: %q (valid modes: %v)", s, ValidSeedModes())
}

// ContentSeed derives a deterministic seed from the image's pixel data, so
// the same image content reproduces the same clustering regardless of file
// name or location. Pixels are hashed on a sparse grid; that is enough to
// tell images apart without touching every pixel of a large photograph.
func ContentSeed(img image.Image) (int64, error) {
	if img == nil {
		return 0, fmt.Errorf("image cannot be nil")
	}

	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions
	hasher.Write(dimBytes)

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, _ := img.At(x, y).RGBA()
			pixelBytes[0] = byte(r >> 8)
			pixelBytes[1] = byte(g >> 8)
			pixelBytes[2] = byte(b >> 8)
			hasher.Write(pixelBytes)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])), nil // #nosec G115 -- hash conversion
}

// RandomSeed returns a non-deterministic seed.
func RandomSeed() int64 {
	return time.Now().UnixNano()
}

// ResolveSeed produces the clustering seed for an image according to the
// given mode. The manual value is only consulted in SeedManual mode.
func ResolveSeed(img image.Image, mode SeedMode, manual int64) (int64, error) {
	switch mode {
	case SeedContent:
		return ContentSeed(img)
	case SeedManual:
		return manual, nil
	case SeedRandom:
		return RandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %q", mode)
	}
}
