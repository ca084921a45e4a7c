// Package analysis derives the O(N log N) reference curve and per-record scaling figures
// from a loaded dataset. The reference is a single-point normalisation, not a fit: it is
// anchored to the first measured runtime and only shows the expected growth shape.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/iafilius/FabricDefectReport/src/dataset"
)

// ComputeError reports a record whose image dimension cannot take part in the
// logarithmic reference computation.
type ComputeError struct {
	Index int // 0-based record index
	N     float64
	Err   error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("reference curve: record %d (n=%v): %v", e.Index, e.N, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }

// ErrDimensionTooSmall is wrapped when some n <= 1. log2(1) = 0 would zero the
// normalising denominator and log2 is undefined for n <= 0.
var ErrDimensionTooSmall = fmt.Errorf("image dimension must be greater than 1")

// NLogN returns n*log2(n).
func NLogN(n float64) float64 { return n * math.Log2(n) }

// ReferenceCurve returns n_i*log2(n_i) for every record, rescaled so that the first
// element equals the first measured runtime. Every n must be greater than 1.
func ReferenceCurve(ds *dataset.Dataset) ([]float64, error) {
	if ds.Len() == 0 {
		return nil, &ComputeError{Index: 0, Err: fmt.Errorf("empty dataset")}
	}
	ns := ds.Ns()
	for i, n := range ns {
		if !(n > 1) {
			return nil, &ComputeError{Index: i, N: n, Err: ErrDimensionTooSmall}
		}
	}
	raw := make([]float64, len(ns))
	for i, n := range ns {
		raw[i] = NLogN(n)
	}
	base := raw[0]
	first := ds.Records[0].RuntimeMs
	ref := make([]float64, len(raw))
	for i, v := range raw {
		ref[i] = v / base * first
	}
	return ref, nil
}

// Point summarises one record against the reference curve.
type Point struct {
	N             float64 `json:"n"`
	RuntimeMs     float64 `json:"runtime_ms"`
	ReferenceMs   float64 `json:"reference_ms"`
	Ratio         float64 `json:"measured_over_reference"` // NaN when the reference is 0
	DefectRegions int     `json:"defect_regions"`
	DefectDensity float64 `json:"defect_density"` // defect regions per pixel (n²)
}

// Summary collects descriptive figures for a report run.
type Summary struct {
	Records           int     `json:"records"`
	MinN              float64 `json:"min_n"`
	MaxN              float64 `json:"max_n"`
	MaxRuntimeMs      float64 `json:"max_runtime_ms"`
	TotalDefects      int     `json:"total_defects"`
	MaxRatio          float64 `json:"max_ratio"`
	IncreasingN       bool    `json:"increasing_n"`
	ReferenceMonotone bool    `json:"reference_monotone"`
	Points            []Point `json:"points"`
}

// Summarize pairs each record with its reference value. ref must come from
// ReferenceCurve for the same dataset.
func Summarize(ds *dataset.Dataset, ref []float64) (Summary, error) {
	if len(ref) != ds.Len() {
		return Summary{}, fmt.Errorf("summarize: reference has %d values for %d records", len(ref), ds.Len())
	}
	s := Summary{Records: ds.Len()}
	if s.Records == 0 {
		return s, nil
	}
	ns := ds.Ns()
	s.MinN = floats.Min(ns)
	s.MaxN = floats.Max(ns)
	s.MaxRuntimeMs = floats.Max(ds.Runtimes())
	s.IncreasingN = strictlyIncreasing(ns)
	s.ReferenceMonotone = nonDecreasing(ref)
	s.MaxRatio = math.NaN()
	s.Points = make([]Point, s.Records)
	for i, r := range ds.Records {
		p := Point{N: r.N, RuntimeMs: r.RuntimeMs, ReferenceMs: ref[i], DefectRegions: r.DefectRegions, Ratio: math.NaN()}
		if ref[i] != 0 {
			p.Ratio = r.RuntimeMs / ref[i]
			if math.IsNaN(s.MaxRatio) || p.Ratio > s.MaxRatio {
				s.MaxRatio = p.Ratio
			}
		}
		if r.N != 0 {
			p.DefectDensity = float64(r.DefectRegions) / (r.N * r.N)
		}
		s.TotalDefects += r.DefectRegions
		s.Points[i] = p
	}
	return s, nil
}

func strictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}
	return true
}

func nonDecreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}
