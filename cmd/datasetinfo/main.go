// datasetinfo prints a fabric defect dataset next to its O(N log N) reference
// curve without rendering any charts.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/iafilius/FabricDefectReport/src/analysis"
	"github.com/iafilius/FabricDefectReport/src/dataset"
)

func main() {
	var file string
	flag.StringVar(&file, "file", dataset.DefaultInputFile, "Path to the dataset CSV")
	flag.Parse()
	if err := printInfo(os.Stdout, file); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printInfo(w io.Writer, file string) error {
	ds, err := dataset.Load(file)
	if err != nil {
		return err
	}
	ref, err := analysis.ReferenceCurve(ds)
	if err != nil {
		return err
	}
	sum, err := analysis.Summarize(ds, ref)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Records: %d\n", sum.Records)
	fmt.Fprintf(w, "Dimensions: %.0f..%.0f (increasing: %v)\n", sum.MinN, sum.MaxN, sum.IncreasingN)
	fmt.Fprintf(w, "Total defect regions: %d\n", sum.TotalDefects)
	fmt.Fprintf(w, "Max measured/reference: %.3f\n\n", sum.MaxRatio)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "n\truntime_ms\treference_ms\tratio\tdefect_regions\tdensity\t")
	for _, p := range sum.Points {
		fmt.Fprintf(tw, "%.0f\t%.3f\t%.3f\t%.3f\t%d\t%.3g\t\n", p.N, p.RuntimeMs, p.ReferenceMs, p.Ratio, p.DefectRegions, p.DefectDensity)
	}
	return tw.Flush()
}
