// Package dataset loads the measurement table produced by the defect detection runs.
//
// The input is a CSV file with a header row naming at least the columns
// n, runtime_ms and defect_regions (in any order). Loading is all or nothing:
// any missing column, ragged row or unparsable cell fails the whole load.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultInputFile is the file the detector runs append their measurements to.
const DefaultInputFile = "fabric_defect_detection.csv"

// Column names expected in the header row.
const (
	ColN             = "n"
	ColRuntimeMs     = "runtime_ms"
	ColDefectRegions = "defect_regions"
)

// RequiredColumns lists the header names every input must carry.
var RequiredColumns = []string{ColN, ColRuntimeMs, ColDefectRegions}

// Record is one measurement: a single detector run over an n×n image.
type Record struct {
	N             float64 `json:"n"`
	RuntimeMs     float64 `json:"runtime_ms"`
	DefectRegions int     `json:"defect_regions"`
}

// Dataset is the ordered set of records loaded for one report run.
type Dataset struct {
	Source  string
	Records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Ns returns the image dimensions in record order.
func (d *Dataset) Ns() []float64 {
	out := make([]float64, d.Len())
	for i, r := range d.Records {
		out[i] = r.N
	}
	return out
}

// Runtimes returns runtime_ms in record order.
func (d *Dataset) Runtimes() []float64 {
	out := make([]float64, d.Len())
	for i, r := range d.Records {
		out[i] = r.RuntimeMs
	}
	return out
}

// Defects returns defect_regions in record order as float64 for plotting.
func (d *Dataset) Defects() []float64 {
	out := make([]float64, d.Len())
	for i, r := range d.Records {
		out[i] = float64(r.DefectRegions)
	}
	return out
}

// LoadError reports why a dataset could not be loaded. Line is the 1-based CSV
// line when the failure is tied to a row, 0 otherwise.
type LoadError struct {
	Source string
	Line   int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset ")
	b.WriteString(e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

var (
	// ErrMissingColumn is wrapped when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrNoRecords is wrapped when the file has a header but no data rows.
	ErrNoRecords = errors.New("no records")
	// ErrInvalidValue is wrapped when a cell parses but is outside its domain.
	ErrInvalidValue = errors.New("invalid value")
)

// Load reads and parses the CSV file at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses CSV content from r. source names the input in errors.
func Read(r io.Reader, source string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Source: source, Err: errors.New("empty file, expected header n,runtime_ms,defect_regions")}
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, &LoadError{Source: source, Line: 1, Err: err}
	}

	ds := &Dataset{Source: source}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &LoadError{Source: source, Line: pe.Line, Err: pe.Err}
			}
			return nil, &LoadError{Source: source, Err: err}
		}
		line, _ := cr.FieldPos(0)
		rec, col, err := parseRecord(row, idx)
		if err != nil {
			return nil, &LoadError{Source: source, Line: line, Column: col, Err: err}
		}
		ds.Records = append(ds.Records, rec)
	}
	if len(ds.Records) == 0 {
		return nil, &LoadError{Source: source, Err: ErrNoRecords}
	}
	return ds, nil
}

type columns struct {
	n, runtime, defects int
}

func columnIndex(header []string) (columns, error) {
	pos := map[string]int{}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		if _, dup := pos[name]; dup {
			return columns{}, fmt.Errorf("duplicate column %q", name)
		}
		pos[name] = i
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := pos[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return columns{n: pos[ColN], runtime: pos[ColRuntimeMs], defects: pos[ColDefectRegions]}, nil
}

// parseRecord converts one CSV row. The returned column name identifies the failing cell.
func parseRecord(row []string, idx columns) (Record, string, error) {
	var rec Record
	n, err := parseFinite(row[idx.n])
	if err != nil {
		return rec, ColN, err
	}
	rt, err := parseFinite(row[idx.runtime])
	if err != nil {
		return rec, ColRuntimeMs, err
	}
	if rt < 0 {
		return rec, ColRuntimeMs, fmt.Errorf("%w: runtime %v is negative", ErrInvalidValue, rt)
	}
	d, err := parseFinite(row[idx.defects])
	if err != nil {
		return rec, ColDefectRegions, err
	}
	if d < 0 || d != math.Trunc(d) || d > math.MaxInt32 {
		return rec, ColDefectRegions, fmt.Errorf("%w: defect count %v is not a non-negative integer", ErrInvalidValue, d)
	}
	rec.N = n
	rec.RuntimeMs = rt
	rec.DefectRegions = int(d)
	return rec, "", nil
}

func parseFinite(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty cell", ErrInvalidValue)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidValue, s)
	}
	return v, nil
}
