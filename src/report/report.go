// Package report runs one report: load the dataset, derive the reference curve,
// build both figures, render them in memory and hand the images to a Sink.
//
// Nothing is written until both charts rendered successfully, so a bad input
// or a render failure never leaves a half-finished set of files behind.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/iafilius/FabricDefectReport/src/analysis"
	"github.com/iafilius/FabricDefectReport/src/charts"
	"github.com/iafilius/FabricDefectReport/src/config"
	"github.com/iafilius/FabricDefectReport/src/dataset"
	"github.com/iafilius/FabricDefectReport/src/logging"
)

// Paths are the files written by Generate.
type Paths struct {
	Runtime string
	Defects string
}

// Artifact is one rendered chart.
type Artifact struct {
	Name  string // output file name, e.g. runtime_scaling_defect_detection.png
	Title string
	PNG   []byte
}

// Result is everything one run produced.
type Result struct {
	Dataset   *dataset.Dataset
	Reference []float64
	Summary   analysis.Summary
	Artifacts []Artifact
	Written   []string // sink locations in artifact order
}

// Sink stores rendered artifacts and returns where each one went.
type Sink interface {
	Put(name string, data []byte) (string, error)
}

// WriteError reports an artifact that could not be stored.
type WriteError struct {
	Name string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Name, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// DirSink writes artifacts into a directory, replacing existing files.
type DirSink struct {
	Dir string
}

func (s DirSink) Put(name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", err
	}
	return p, nil
}

// MemorySink keeps artifacts in memory, keyed by name.
type MemorySink map[string][]byte

func (s MemorySink) Put(name string, data []byte) (string, error) {
	s[name] = append([]byte(nil), data...)
	return name, nil
}

// Options control one run. A nil Renderer selects the backend named in
// Config.Backend.
type Options struct {
	Config   config.Config
	Renderer charts.Renderer
}

// DefaultOptions renders with the built-in defaults.
func DefaultOptions() Options { return Options{Config: config.Default()} }

// Generate reads inputPath and writes both charts into outputDir.
func Generate(inputPath, outputDir string, opts Options) (Paths, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return Paths{}, &dataset.LoadError{Source: inputPath, Err: err}
	}
	defer f.Close()
	res, err := Run(f, inputPath, DirSink{Dir: outputDir}, opts)
	if err != nil {
		return Paths{}, err
	}
	return Paths{Runtime: res.Written[0], Defects: res.Written[1]}, nil
}

// Run executes the report over an input stream and stores the charts in sink.
// sourceName identifies the input in errors and in the optional footnote.
func Run(src io.Reader, sourceName string, sink Sink, opts Options) (*Result, error) {
	defer logging.TimeTrack(time.Now(), "report")
	cfg := opts.Config
	renderer := opts.Renderer
	if renderer == nil {
		var err error
		if renderer, err = charts.NewRenderer(cfg.Backend); err != nil {
			return nil, err
		}
	}

	ds, err := dataset.Read(src, sourceName)
	if err != nil {
		return nil, err
	}
	logging.Debugf("loaded %d records from %s", ds.Len(), sourceName)
	res := &Result{Dataset: ds}

	ref, err := analysis.ReferenceCurve(ds)
	if err != nil {
		return res, err
	}
	res.Reference = ref
	if res.Summary, err = analysis.Summarize(ds, ref); err != nil {
		return res, err
	}
	logSummary(res.Summary)

	rt, err := charts.RuntimeFigure(ds, ref, cfg.Runtime, cfg.Layout)
	if err != nil {
		return res, err
	}
	figs := []charts.Figure{rt, charts.DefectsFigure(ds, cfg.Defects, cfg.Layout)}
	for i := range figs {
		if cfg.Footnote {
			figs[i].Footnote = fmt.Sprintf("%d records from %s", ds.Len(), filepath.Base(sourceName))
		}
		start := time.Now()
		data, err := charts.RenderPNG(renderer, figs[i])
		if err != nil {
			return res, err
		}
		logging.Debugf("rendered %s with %s (%d bytes) in %s", figs[i].File, renderer.Name(), len(data), time.Since(start))
		res.Artifacts = append(res.Artifacts, Artifact{Name: figs[i].File, Title: figs[i].Title, PNG: data})
	}

	for _, a := range res.Artifacts {
		loc, err := sink.Put(a.Name, a.PNG)
		if err != nil {
			return res, &WriteError{Name: a.Name, Err: err}
		}
		logging.Debugf("wrote %s", loc)
		res.Written = append(res.Written, loc)
	}
	return res, nil
}

func logSummary(s analysis.Summary) {
	logging.Infof("dataset: records=%d n=[%.0f..%.0f] max_runtime=%.3fms total_defects=%d max_measured/reference=%.2f", s.Records, s.MinN, s.MaxN, s.MaxRuntimeMs, s.TotalDefects, s.MaxRatio)
	if !s.IncreasingN {
		logging.Warnf("image dimensions are not strictly increasing; lines will double back")
	}
	for _, p := range s.Points {
		logging.Debugf("n=%.0f runtime=%.3fms reference=%.3fms ratio=%.3f defects=%d density=%.3g", p.N, p.RuntimeMs, p.ReferenceMs, p.Ratio, p.DefectRegions, p.DefectDensity)
	}
}
