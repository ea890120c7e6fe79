package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// exitNotWatertight is returned by check for meshes with holes or
// inconsistent winding
const exitNotWatertight = 2

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <file|url|->",
	Short: "Check whether an STL mesh is watertight",
	Long: `Check that every directed edge of the mesh appears exactly once and is matched
by its reverse. Exits with status 2 and names the offending edge otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "fail on malformed ASCII facets instead of skipping them")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input := args[0]
	data, err := newLoader().Load(cmd.Context(), input)
	if err != nil {
		return err
	}

	var opts []stl.Option
	if checkStrict || cfg.Strict {
		opts = append(opts, stl.WithStrict())
	}
	reader, err := stl.NewReader(data, opts...)
	if err != nil {
		return err
	}

	edges := analysis.NewEdgeSet(0)
	triangles := 0
	for reader.Next() {
		edges.AddTriangle(reader.Triangle())
		triangles++
	}
	if err := reader.Err(); err != nil {
		return err
	}

	report := analysis.CheckWatertight(edges)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Watertightness Check")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "File: %s\n", input)
	fmt.Fprintf(out, "Format: %s\n", reader.Format())
	if counter, ok := reader.(stl.Counter); ok {
		fmt.Fprintf(out, "Declared triangles: %d\n", counter.Count())
	}
	fmt.Fprintf(out, "Triangles: %d\n", triangles)
	if skipped := reader.Skipped(); skipped > 0 {
		fmt.Fprintf(out, "Skipped facets: %d\n", skipped)
	}
	fmt.Fprintf(out, "Edges: %d\n\n", edges.Len())
	fmt.Fprintf(out, "Watertight: %t\n", report.Watertight)
	fmt.Fprintf(out, "Reason: %s\n", report.Reason)
	if report.EdgeIndex >= 0 {
		fmt.Fprintf(out, "Edge #%d: %s\n", report.EdgeIndex, report.Edge)
	}

	if !report.Watertight {
		return &exitError{
			code: exitNotWatertight,
			err:  fmt.Errorf("%s is not watertight: %s", input, report.Reason),
		}
	}
	return nil
}
