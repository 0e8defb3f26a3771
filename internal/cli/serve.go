package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/skintint/skintint/internal/face"
	"github.com/skintint/skintint/internal/pipeline"
	"github.com/skintint/skintint/internal/server"
)

// newServeCmd builds the serve command.
func newServeCmd() *cobra.Command {
	var (
		listen       string
		cascade      string
		maxUploadMB  int64
		maxDimension int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the skin-tone analysis HTTP service",
		Long: `Start an HTTP server exposing the extraction pipeline.

Endpoints:
  GET  /healthz      liveness probe
  POST /v1/analyze   multipart image upload; query parameters: clusters,
                     seed, threshold

Examples:
  # Serve on the default port
  skintint serve

  # Serve on a custom address with face detection enabled
  skintint serve --listen :9090 --cascade facefinder`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)

			analyzer := pipeline.New(log)
			if cascade != "" {
				detector, err := face.NewDetectorFromFile(cascade)
				if err != nil {
					return fmt.Errorf("failed to load cascade: %w", err)
				}
				analyzer = analyzer.WithDetector(detector)
			}

			cfg := server.DefaultConfig()
			if maxUploadMB > 0 {
				cfg.MaxUploadBytes = maxUploadMB << 20
			}
			if maxDimension > 0 {
				cfg.MaxDimension = maxDimension
			}

			srv := &http.Server{
				Addr:         listen,
				Handler:      server.NewHandler(analyzer, cfg, log),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("starting HTTP server", "address", listen)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case sig := <-quit:
				log.Info("shutting down", "signal", sig.String())
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("forced shutdown: %w", err)
			}
			log.Info("server exited")
			return nil
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", ":8080", "listen address")
	cmd.Flags().StringVar(&cascade, "cascade", "", "face cascade file; restricts analysis to the largest face")
	cmd.Flags().Int64Var(&maxUploadMB, "max-upload", 16, "maximum upload size in MiB")
	cmd.Flags().IntVar(&maxDimension, "max-dimension", 1024, "downscale uploads whose longest edge exceeds this")

	return cmd
}
