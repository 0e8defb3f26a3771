package cli

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/skintint/skintint/internal/colour"
	"github.com/skintint/skintint/internal/face"
	imageutil "github.com/skintint/skintint/internal/image"
	"github.com/skintint/skintint/internal/pipeline"
)

// newAnalyzeCmd builds the analyze command.
func newAnalyzeCmd() *cobra.Command {
	var (
		clusters    int
		noThreshold bool
		seed        int64
		seedMode    string
		format      string
		barOutput   string
		maskOutput  string
		cascade     string
		showPreview bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Extract the dominant skin tone from a photograph",
		Long: `Analyze a photograph and report its dominant skin colours and the nearest
named skin tone.

The image is skin-masked, the surviving colours are clustered with a
deterministic seed, the black background cluster is removed, and the
remaining clusters are ranked by their share of the skin pixels.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Analyse a portrait with the default five clusters
  skintint analyze portrait.jpg

  # Restrict the analysis to the largest detected face
  skintint analyze --cascade facefinder portrait.jpg

  # Emit the ranked records as JSON
  skintint analyze --format json portrait.jpg

  # Keep the background cluster (no black removal)
  skintint analyze --no-threshold portrait.jpg

  # Fix the clustering seed explicitly
  skintint analyze --seed 42 portrait.jpg

  # Save the proportional colour bar and the masked image
  skintint analyze --bar bar.png --mask mask.png portrait.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], analyzeConfig{
				clusters:    clusters,
				noThreshold: noThreshold,
				seed:        seed,
				seedMode:    seedMode,
				format:      format,
				barOutput:   barOutput,
				maskOutput:  maskOutput,
				cascade:     cascade,
				showPreview: showPreview,
			})
		},
	}

	cmd.Flags().IntVarP(&clusters, "clusters", "c", 5, "number of colour clusters to report")
	cmd.Flags().BoolVar(&noThreshold, "no-threshold", false, "keep the black background cluster")
	cmd.Flags().Int64Var(&seed, "seed", 0, "manual clustering seed (implies --seed-mode manual)")
	cmd.Flags().StringVar(&seedMode, "seed-mode", "content", "seed derivation mode (content, manual, random)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVar(&barOutput, "bar", "", "write the proportional colour bar to this PNG file")
	cmd.Flags().StringVar(&maskOutput, "mask", "", "write the skin-masked image to this PNG file")
	cmd.Flags().StringVar(&cascade, "cascade", "", "face cascade file; restricts analysis to the largest face")
	cmd.Flags().BoolVar(&showPreview, "preview", false, "show colour previews in the terminal")

	return cmd
}

type analyzeConfig struct {
	clusters    int
	noThreshold bool
	seed        int64
	seedMode    string
	format      string
	barOutput   string
	maskOutput  string
	cascade     string
	showPreview bool
}

func runAnalyze(cmd *cobra.Command, imagePath string, cfg analyzeConfig) error {
	log := newLogger(cmd)

	if err := imageutil.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	opts := pipeline.DefaultOptions()
	opts.Clusters = cfg.clusters
	opts.RemoveBlack = !cfg.noThreshold

	mode, err := pipeline.ParseSeedMode(cfg.seedMode)
	if err != nil {
		return err
	}
	opts.SeedMode = mode
	if cmd.Flags().Changed("seed") {
		opts.SeedMode = pipeline.SeedManual
		opts.Seed = cfg.seed
	}

	loader := imageutil.NewFileLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	log.Debug("image loaded", "path", imagePath, "size", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()))

	analyzer := pipeline.New(log)
	if cfg.cascade != "" {
		detector, err := face.NewDetectorFromFile(cfg.cascade)
		if err != nil {
			return fmt.Errorf("failed to load cascade: %w", err)
		}
		analyzer = analyzer.WithDetector(detector)
		opts.FaceOnly = true
	}

	result, err := analyzer.Analyze(img, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if cfg.maskOutput != "" {
		if err := writePNG(cfg.maskOutput, result.Masked); err != nil {
			return fmt.Errorf("failed to write mask image: %w", err)
		}
	}
	if cfg.barOutput != "" {
		bar := colour.RenderBar(result.Records, colour.BarWidth, colour.BarHeight)
		if err := writePNG(cfg.barOutput, bar); err != nil {
			return fmt.Errorf("failed to write colour bar: %w", err)
		}
	}

	switch cfg.format {
	case "json":
		out, err := json.MarshalIndent(struct {
			Tone    string          `json:"tone"`
			Seed    int64           `json:"seed"`
			Records []colour.Record `json:"records"`
		}{result.Tone, result.Seed, result.Records}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", out)
	case "text":
		printRecords(result, cfg.showPreview && isTerminal())
	default:
		return fmt.Errorf("unknown output format: %q (valid formats: text, json)", cfg.format)
	}

	return nil
}

// printRecords renders the analysis result as a table, with optional ANSI
// colour previews when stdout is a terminal.
func printRecords(result *pipeline.Result, preview bool) {
	if len(result.Records) == 0 {
		fmt.Println("No skin detected.")
		return
	}

	headers := []string{"CLUSTER", "COLOR", "SHARE"}
	if preview {
		headers = append(headers, "PREVIEW")
	}
	table := NewTable(headers)
	for _, record := range result.Records {
		row := []string{
			fmt.Sprintf("%d", record.ClusterIndex),
			record.Color.Hex(),
			fmt.Sprintf("%.1f%%", record.Percentage*100),
		}
		if preview {
			row = append(row, colour.ColourPreview(record.Color, 8))
		}
		table.AddRow(row)
	}
	fmt.Print(table.Render())

	if preview {
		fmt.Println()
		fmt.Println(colour.BarPreview(result.Records, 64))
	}

	fmt.Printf("\nDominant tone: %s\n", result.Tone)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path) // #nosec G304 - user-specified output path
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
