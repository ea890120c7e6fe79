package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/batch"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
)

var (
	measureDensity float64
	measureOutput  string
	measureJobs    int
	measureStrict  bool
)

var measureCmd = &cobra.Command{
	Use:   "measure <file|url|->...",
	Short: "Measure volume, weight and watertightness of STL files",
	Long: `Measure one or more STL meshes. Inputs may be local paths, http(s) URLs or
"-" for standard input. Volume is reported in cm³ assuming millimetre units,
weight in grams for the given density in g/cm³.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64VarP(&measureDensity, "density", "d", analysis.DefaultDensity, "material density in g/cm³")
	measureCmd.Flags().StringVarP(&measureOutput, "output", "o", "text", "output format (text, json, yaml)")
	measureCmd.Flags().IntVarP(&measureJobs, "jobs", "j", 4, "number of inputs measured concurrently")
	measureCmd.Flags().BoolVar(&measureStrict, "strict", false, "fail on malformed ASCII facets instead of skipping them")
}

// applyMeasureFlags lets explicitly set flags override the configuration
func applyMeasureFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("density") {
		cfg.Density = measureDensity
	}
	if flags.Changed("output") {
		cfg.Output = measureOutput
	}
	if flags.Changed("jobs") {
		cfg.Jobs = measureJobs
	}
	if flags.Changed("strict") {
		cfg.Strict = measureStrict
	}
	return cfg.Validate()
}

func runMeasure(cmd *cobra.Command, args []string) error {
	if err := applyMeasureFlags(cmd); err != nil {
		return err
	}

	loader := newLoader()
	items, err := batch.Run(cmd.Context(), args, cfg.Jobs, func(ctx context.Context, input string) (*analysis.Result, error) {
		return measureInput(ctx, loader, input)
	})
	if err != nil {
		return err
	}

	if err := writeReports(cmd.OutOrStdout(), cfg.Output, items); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	var failed []error
	for _, item := range items {
		if item.Err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", item.Input, item.Err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d inputs failed: %w", len(failed), len(items), errors.Join(failed...))
	}
	return nil
}

type dataLoader interface {
	Load(ctx context.Context, location string) ([]byte, error)
}

func measureInput(ctx context.Context, loader dataLoader, input string) (*analysis.Result, error) {
	start := time.Now()
	data, err := loader.Load(ctx, input)
	if err != nil {
		return nil, err
	}

	result, err := analysis.Measure(data,
		analysis.WithDensity(cfg.Density),
		analysis.WithStrict(cfg.Strict),
		analysis.WithLogger(logger.With(zap.String("input", input))),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("Measured input",
		zap.String("input", input),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}
