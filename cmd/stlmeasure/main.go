package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/config"
	"github.com/philipparndt/stlmeasure/internal/logging"
	"github.com/philipparndt/stlmeasure/pkg/source"
	"github.com/philipparndt/stlmeasure/version"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "stlmeasure",
	Short: "Measure volume, weight and watertightness of STL meshes",
	Long: `stlmeasure reads ASCII and binary STL files and reports the enclosed volume,
weight for a given material density, bounding box, surface area, center of mass
and whether the mesh is a closed, consistently oriented surface.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// setup loads the configuration and builds the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}

	l, err := logging.New(loaded.Log.Level, loaded.Log.Development)
	if err != nil {
		return err
	}

	cfg = loaded
	logger = l
	return nil
}

// newLoader builds an input loader from the fetch configuration
func newLoader() *source.Loader {
	return source.NewLoader(
		source.WithHTTPClient(&http.Client{Timeout: cfg.Fetch.Timeout}),
		source.WithLogger(logger),
		source.WithMaxBytes(cfg.Fetch.MaxBytes),
		source.WithRetries(cfg.Fetch.MaxRetries, 500*time.Millisecond, cfg.Fetch.MaxElapsedTime),
	)
}

// exitError carries a process exit code other than 1
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}
