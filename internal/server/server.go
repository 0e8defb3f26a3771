// Package server exposes the extraction pipeline over HTTP: upload a
// photograph, get ranked colour records and the matched skin tone back as
// JSON.
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/skintint/skintint/internal/colour"
	imageutil "github.com/skintint/skintint/internal/image"
	"github.com/skintint/skintint/internal/pipeline"
)

// Config holds server tuning knobs.
type Config struct {
	// MaxUploadBytes caps the multipart request body size.
	MaxUploadBytes int64
	// MaxDimension is the longest allowed image edge; larger uploads are
	// downscaled before analysis so clustering stays bounded.
	MaxDimension int
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		MaxUploadBytes: 16 << 20,
		MaxDimension:   1024,
	}
}

// AnalyzeResponse is the JSON body returned by the analyze endpoint.
type AnalyzeResponse struct {
	Tone    string          `json:"tone"`
	Records []colour.Record `json:"records"`
	Seed    int64           `json:"seed"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
}

// ErrorResponse is the JSON body returned on failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the HTTP handler around an analyzer.
func NewHandler(analyzer *pipeline.Analyzer, cfg Config, log hclog.Logger) http.Handler {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	log = log.Named("http")

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/healthz", healthCheck)
	r.POST("/v1/analyze", analyzeImage(analyzer, cfg, log))

	return r
}

// requestLogger emits one structured log line per request.
func requestLogger(log hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"ip", c.ClientIP())
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func analyzeImage(analyzer *pipeline.Analyzer, cfg Config, log hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadBytes)

		opts, err := parseOptions(c)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid parameters", err)
			return
		}

		file, _, err := c.Request.FormFile("image")
		if err != nil {
			respondError(c, http.StatusBadRequest, "missing image upload", err)
			return
		}
		defer file.Close()

		img, err := imageutil.Decode(file)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "undecodable image", err)
			return
		}

		// Bound the clustering population for large uploads.
		bounds := img.Bounds()
		if cfg.MaxDimension > 0 && (bounds.Dx() > cfg.MaxDimension || bounds.Dy() > cfg.MaxDimension) {
			img = imaging.Fit(img, cfg.MaxDimension, cfg.MaxDimension, imaging.Lanczos)
			log.Debug("downscaled upload",
				"from", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
				"to", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
		}

		result, err := analyzer.Analyze(img, opts)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "analysis failed", err)
			return
		}

		c.JSON(http.StatusOK, AnalyzeResponse{
			Tone:    result.Tone,
			Records: result.Records,
			Seed:    result.Seed,
			Width:   img.Bounds().Dx(),
			Height:  img.Bounds().Dy(),
		})
	}
}

// parseOptions reads analysis options from query parameters.
func parseOptions(c *gin.Context) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	if v := c.Query("clusters"); v != "" {
		clusters, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid clusters value %q: %w", v, err)
		}
		opts.Clusters = clusters
	}
	if v := c.Query("threshold"); v != "" {
		threshold, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid threshold value %q: %w", v, err)
		}
		opts.RemoveBlack = threshold
	}
	if v := c.Query("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid seed value %q: %w", v, err)
		}
		opts.Seed = seed
		opts.SeedMode = pipeline.SeedManual
	}

	return opts, opts.Validate()
}

func respondError(c *gin.Context, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Message = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}
