// Fabric defect report entrypoint.
//
// Reads fabric_defect_detection.csv (n, runtime_ms, defect_regions), derives an
// O(N log N) reference curve anchored at the first record and writes two charts:
//  1. runtime_scaling_defect_detection.png: measured runtime vs. the reference
//  2. defects_vs_resolution.png: detected defect regions vs. image dimension
//
// Both charts are rendered before either file is written. After saving, the
// charts are shown in a window when a display is available (see -display).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iafilius/FabricDefectReport/src/config"
	"github.com/iafilius/FabricDefectReport/src/logging"
	"github.com/iafilius/FabricDefectReport/src/report"
	"github.com/iafilius/FabricDefectReport/src/viewer"
)

const windowTitle = "Fabric Defect Report"

// Swapped out in tests.
var (
	displayAvailable = viewer.Available
	showCharts       = func(title string, paths report.Paths) error {
		items, err := viewer.LoadItems(paths.Runtime, paths.Defects)
		if err != nil {
			return err
		}
		return viewer.Show(title, items)
	}
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := execute(args, stdout, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func execute(args []string, stdout, stderr io.Writer) error {
	def := config.Default()
	fs := flag.NewFlagSet("fabricreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Optional YAML config file; flags given explicitly override it")
	input := fs.String("input", def.Input, "Input CSV with columns n,runtime_ms,defect_regions")
	outDir := fs.String("out-dir", def.OutputDir, "Directory the chart PNGs are written to")
	backend := fs.String("backend", def.Backend, "Chart backend (gochart|gonum)")
	display := fs.String("display", def.Display, "Show charts after saving (auto|always|never)")
	footnote := fs.Bool("footnote", def.Footnote, "Stamp the source file and record count onto each chart")
	logLevel := fs.String("log-level", def.LogLevel, "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "out-dir":
			cfg.OutputDir = *outDir
		case "backend":
			cfg.Backend = *backend
		case "display":
			cfg.Display = *display
		case "footnote":
			cfg.Footnote = *footnote
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logging.Debugf("config: input=%s out=%s backend=%s display=%s layout=%vx%vin@%ddpi",
		cfg.Input, cfg.OutputDir, cfg.Backend, cfg.Display, cfg.Layout.WidthIn, cfg.Layout.HeightIn, cfg.Layout.DPI)

	paths, err := report.Generate(cfg.Input, cfg.OutputDir, report.Options{Config: cfg})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Plots saved as '%s' and '%s'\n", paths.Runtime, paths.Defects)
	return displayCharts(cfg.Display, paths)
}

// displayCharts runs after the files exist, so a display failure never loses output.
func displayCharts(mode string, paths report.Paths) error {
	switch mode {
	case config.DisplayNever:
		return nil
	case config.DisplayAuto:
		if !displayAvailable() {
			logging.Warnf("no display available; charts saved but not shown")
			return nil
		}
	case config.DisplayAlways:
		if !displayAvailable() {
			return fmt.Errorf("show charts: %w", viewer.ErrNoDisplay)
		}
	}
	if err := showCharts(windowTitle, paths); err != nil {
		return fmt.Errorf("show charts: %w", err)
	}
	return nil
}
