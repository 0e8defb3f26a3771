// Package pipeline wires the skin-tone extraction stages together: optional
// face cropping, skin masking, deterministic colour clustering, ranked
// record generation and nearest-tone matching.
package pipeline

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/skintint/skintint/internal/colour"
	"github.com/skintint/skintint/internal/face"
	"github.com/skintint/skintint/internal/skin"
)

// Options configures a single analysis run.
type Options struct {
	// Clusters is the number of meaningful colour clusters requested.
	Clusters int
	// RemoveBlack enables background-cluster removal. One extra cluster is
	// requested internally to absorb the masked-out black pixels.
	RemoveBlack bool
	// SeedMode selects how the clustering seed is derived.
	SeedMode SeedMode
	// Seed is the manual seed value, used only with SeedManual.
	Seed int64
	// FaceOnly restricts analysis to the largest detected face region.
	// Requires a detector on the analyzer; ignored otherwise.
	FaceOnly bool
}

// DefaultOptions returns the default analysis options: five clusters,
// background removal on, content-derived seed.
func DefaultOptions() Options {
	return Options{
		Clusters:    5,
		RemoveBlack: true,
		SeedMode:    SeedContent,
	}
}

// Validate checks the options for configuration errors.
func (o Options) Validate() error {
	if o.Clusters < 1 {
		return fmt.Errorf("cluster count must be at least 1, got %d", o.Clusters)
	}
	if _, err := ParseSeedMode(string(o.SeedMode)); err != nil {
		return err
	}
	return nil
}

// Result is the outcome of one analysis run.
type Result struct {
	// Records are the ranked colour records, descending by population share.
	// May hold fewer than the requested cluster count when the image had
	// little or no skin.
	Records []colour.Record
	// Tone is the name of the nearest skin-tone scale entry for the
	// dominant record, or empty when no records survived.
	Tone string
	// Masked is the skin-masked image the clustering ran over.
	Masked *image.RGBA
	// Seed is the seed the clustering actually used.
	Seed int64
	// FaceRegion is the analysed sub-image region when face cropping was
	// active, zero otherwise.
	FaceRegion image.Rectangle
}

// Analyzer runs the extraction pipeline. It is stateless across invocations
// apart from the read-only tone scale, so a single Analyzer is safe to use
// from concurrent goroutines.
type Analyzer struct {
	masker    *skin.Masker
	clusterer *colour.Clusterer
	scale     *colour.Scale
	detector  *face.Detector
	log       hclog.Logger
}

// New creates an Analyzer with the default masker, clusterer and tone scale.
func New(log hclog.Logger) *Analyzer {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Analyzer{
		masker:    skin.NewMasker(),
		clusterer: colour.NewClusterer(),
		scale:     colour.DefaultScale(),
		log:       log.Named("pipeline"),
	}
}

// WithScale replaces the skin-tone reference scale.
func (a *Analyzer) WithScale(scale *colour.Scale) *Analyzer {
	a.scale = scale
	return a
}

// WithDetector attaches a face-region detector, enabling the FaceOnly option.
func (a *Analyzer) WithDetector(d *face.Detector) *Analyzer {
	a.detector = d
	return a
}

// Analyze runs the full pipeline over one image and returns the ranked
// records, the matched tone name and the intermediate masked image.
func (a *Analyzer) Analyze(img image.Image, opts Options) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	if opts.FaceOnly && a.detector != nil {
		if region, ok := a.detector.LargestFace(img); ok {
			a.log.Debug("restricting analysis to face region", "region", region.String())
			img = face.Crop(img, region)
			result.FaceRegion = region
		} else {
			a.log.Debug("no face detected, analysing full image")
		}
	}

	seed, err := ResolveSeed(img, opts.SeedMode, opts.Seed)
	if err != nil {
		return nil, err
	}
	result.Seed = seed

	result.Masked = a.masker.ExtractSkin(img)

	records, err := a.clusterer.DominantColors(result.Masked, opts.Clusters, opts.RemoveBlack, seed)
	if err != nil {
		return nil, err
	}
	result.Records = records

	if len(records) == 0 {
		a.log.Debug("no skin clusters survived", "seed", seed)
		return result, nil
	}

	tone, err := a.scale.Closest(records[0].Color)
	if err != nil {
		return nil, fmt.Errorf("tone matching failed: %w", err)
	}
	result.Tone = tone

	a.log.Debug("analysis complete",
		"seed", seed,
		"records", len(records),
		"dominant", records[0].Color.Hex(),
		"tone", tone)

	return result, nil
}
