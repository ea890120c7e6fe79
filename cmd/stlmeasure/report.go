package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/stlmeasure/internal/batch"
	"github.com/philipparndt/stlmeasure/internal/config"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
)

// report is the serialized form of one measured input
type report struct {
	Input  string           `json:"input" yaml:"input"`
	Result *analysis.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`
}

func writeReports(w io.Writer, output string, items []batch.Item[*analysis.Result]) error {
	reports := make([]report, len(items))
	for i, item := range items {
		reports[i] = report{Input: item.Input, Result: item.Value}
		if item.Err != nil {
			reports[i].Error = item.Err.Error()
		}
	}

	switch output {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, r)
		}
		return nil
	}
}

func writeText(w io.Writer, r report) {
	fmt.Fprintln(w, "STL Measurement")
	fmt.Fprintln(w, "===============")
	fmt.Fprintf(w, "File: %s\n", r.Input)
	if r.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", r.Error)
		return
	}

	res := r.Result
	if res.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", res.Name)
	}
	fmt.Fprintf(w, "Format: %s\n\n", res.Format)

	fmt.Fprintln(w, "Model Statistics:")
	fmt.Fprintf(w, "  Triangles: %d\n", res.Triangles)
	if res.SkippedFacets > 0 {
		fmt.Fprintf(w, "  Skipped facets: %d\n", res.SkippedFacets)
	}
	fmt.Fprintf(w, "  Edges: %d\n", res.Edges.Count)
	fmt.Fprintf(w, "  Watertight: %t\n\n", res.IsWatertight)

	fmt.Fprintln(w, "Measurements:")
	fmt.Fprintf(w, "  Volume: %s\n", analysis.FormatMeasurement(res.Volume, "cm³"))
	fmt.Fprintf(w, "  Weight: %s\n", analysis.FormatMeasurement(res.Weight, "g"))
	fmt.Fprintf(w, "  Surface Area: %s\n", analysis.FormatMeasurement(res.Area, "mm²"))
	fmt.Fprintf(w, "  Bounding Box: %s\n", analysis.FormatTriple(res.BoundingBox))
	fmt.Fprintf(w, "  Center of Mass: %s\n", analysis.FormatTriple(res.CenterOfMass))
}
