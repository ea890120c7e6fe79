package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/batch"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>...",
	Short: "Re-measure STL files whenever they change",
	Long: `Measure the given files once, then watch them and print a fresh report each
time one is saved. Stop with Ctrl+C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	report := newReporter(cmd.Context(), newLoader(), cmd.OutOrStdout())

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch(args, report); err != nil {
		return err
	}
	fw.Start()

	for _, path := range args {
		report(path)
	}

	logger.Info("Watching for changes", zap.Strings("files", args))
	<-cmd.Context().Done()
	return nil
}

// newReporter returns a callback that measures path and prints one report.
// Calls are serialized because debounce timers fire on their own goroutines.
func newReporter(ctx context.Context, loader dataLoader, out io.Writer) func(string) {
	var mu sync.Mutex
	return func(path string) {
		mu.Lock()
		defer mu.Unlock()

		result, err := measureInput(ctx, loader, path)
		if err != nil {
			logger.Warn("Measurement failed", zap.String("path", path), zap.Error(err))
		}
		item := batch.Item[*analysis.Result]{Input: path, Value: result, Err: err}
		if err := writeReports(out, cfg.Output, []batch.Item[*analysis.Result]{item}); err != nil {
			logger.Error("Failed to write report", zap.Error(err))
		}
		fmt.Fprintln(out)
	}
}
