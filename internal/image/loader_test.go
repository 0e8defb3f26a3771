package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestPNG writes a small PNG to dir and returns its path.
func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 150, B: 120, A: 255})
		}
	}
	path := filepath.Join(dir, "test.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	path := writeTestPNG(t, t.TempDir())

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("image size = %dx%d, want 4x4", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatalf("failed to write garbage file: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		wantPart string
	}{
		{name: "empty path", path: "", wantPart: "cannot be empty"},
		{name: "missing file", path: filepath.Join(dir, "nope.png"), wantPart: "not found"},
		{name: "directory", path: dir, wantPart: "directory"},
		{name: "undecodable file", path: garbage, wantPart: "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(tt.path)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not mention %q", err, tt.wantPart)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir)

	if err := ValidateImagePath(path); err != nil {
		t.Errorf("ValidateImagePath(%q) = %v, want nil", path, err)
	}
	if err := ValidateImagePath(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if err := ValidateImagePath(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}
