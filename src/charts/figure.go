// Package charts turns a dataset into chart descriptions (Figure) and renders them
// to PNG. Building a Figure is pure; rendering goes through a Renderer so the same
// figure can be drawn by go-chart or gonum/plot, written to disk or shown on screen.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/iafilius/FabricDefectReport/src/dataset"
)

// Legend labels of the runtime chart.
const (
	MeasuredRuntimeLabel = "Measured Runtime"
	ReferenceLabel       = "O(N log N) reference"
)

// Point sizes for text, matching the 11pt title / 10pt label report style.
const (
	TitleFontPt = 11
	LabelFontPt = 10
	TickFontPt  = 9
)

var (
	measuredColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	referenceColor = color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	defectsColor   = color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}
	gridColor      = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0x99}
	axisColor      = color.RGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xff}
)

// Marker is the glyph drawn at each data point.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerCircle
	MarkerSquare
)

// Series is one plotted line.
type Series struct {
	Name        string
	X, Y        []float64
	Color       color.RGBA
	LineWidthPt float64
	Dashed      bool
	Marker      Marker
}

// Layout is the physical figure size. Pixel size is inches × DPI.
type Layout struct {
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
	DPI      int     `yaml:"dpi"`
}

// DefaultLayout is an 8×5 inch figure at 300 DPI.
var DefaultLayout = Layout{WidthIn: 8, HeightIn: 5, DPI: 300}

// PixelSize returns the rendered image size.
func (l Layout) PixelSize() (int, int) {
	return int(math.Round(l.WidthIn * float64(l.DPI))), int(math.Round(l.HeightIn * float64(l.DPI)))
}

// px converts typographic points to pixels at the layout's DPI.
func (l Layout) px(pt float64) float64 { return pt * float64(l.DPI) / 72 }

// Validate rejects layouts that no backend can draw.
func (l Layout) Validate() error {
	if !(l.WidthIn > 0) || !(l.HeightIn > 0) {
		return fmt.Errorf("figure size must be positive, got %vx%v in", l.WidthIn, l.HeightIn)
	}
	if l.DPI <= 0 || l.DPI > 1200 {
		return fmt.Errorf("dpi must be in 1..1200, got %d", l.DPI)
	}
	w, h := l.PixelSize()
	if w < 64 || h < 64 || w*h > 64_000_000 {
		return fmt.Errorf("figure of %dx%d px is outside the supported range", w, h)
	}
	return nil
}

// Text holds the output file name and the labels of one chart.
type Text struct {
	File   string `yaml:"file"`
	Title  string `yaml:"title"`
	XLabel string `yaml:"x_label"`
	YLabel string `yaml:"y_label"`
}

// Default chart texts.
var (
	DefaultRuntimeText = Text{
		File:   "runtime_scaling_defect_detection.png",
		Title:  "Runtime Analysis of Divide-and-Conquer Fabric Defect Detection",
		XLabel: "Image Dimension (n × n)",
		YLabel: "Execution Time (ms)",
	}
	DefaultDefectsText = Text{
		File:   "defects_vs_resolution.png",
		Title:  "Detected Defects vs Image Resolution",
		XLabel: "Image Dimension (n × n)",
		YLabel: "Number of Defective Regions",
	}
)

// Figure is a complete, backend independent chart description.
type Figure struct {
	Text
	Layout
	Series   []Series
	Legend   bool
	Grid     bool
	Footnote string // optional caption stamped bottom-left after rendering
}

// ErrEmptyFigure is returned when a figure has nothing to draw.
var ErrEmptyFigure = errors.New("figure has no data points")

// Validate checks the figure can be drawn.
func (f Figure) Validate() error {
	if err := f.Layout.Validate(); err != nil {
		return err
	}
	if len(f.Series) == 0 {
		return ErrEmptyFigure
	}
	for _, s := range f.Series {
		if len(s.X) == 0 {
			return ErrEmptyFigure
		}
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: %d x values for %d y values", s.Name, len(s.X), len(s.Y))
		}
		for i := range s.X {
			if !isFinite(s.X[i]) || !isFinite(s.Y[i]) {
				return fmt.Errorf("series %q: non-finite point %d (%v, %v)", s.Name, i, s.X[i], s.Y[i])
			}
		}
	}
	return nil
}

// RuntimeFigure plots measured runtime against the reference curve.
func RuntimeFigure(ds *dataset.Dataset, ref []float64, text Text, layout Layout) (Figure, error) {
	if len(ref) != ds.Len() {
		return Figure{}, fmt.Errorf("runtime figure: reference has %d values for %d records", len(ref), ds.Len())
	}
	ns := ds.Ns()
	return Figure{
		Text:   text,
		Layout: layout,
		Legend: true,
		Grid:   true,
		Series: []Series{
			{Name: MeasuredRuntimeLabel, X: ns, Y: ds.Runtimes(), Color: measuredColor, LineWidthPt: 2, Marker: MarkerCircle},
			{Name: ReferenceLabel, X: ns, Y: append([]float64(nil), ref...), Color: referenceColor, LineWidthPt: 1.5, Dashed: true},
		},
	}, nil
}

// DefectsFigure plots detected defect regions per image dimension.
func DefectsFigure(ds *dataset.Dataset, text Text, layout Layout) Figure {
	return Figure{
		Text:   text,
		Layout: layout,
		Grid:   true,
		Series: []Series{
			{Name: "Defective Regions", X: ds.Ns(), Y: ds.Defects(), Color: defectsColor, LineWidthPt: 2, Marker: MarkerSquare},
		},
	}
}

// ticks returns the axis ticks shared by every backend. The y axis always includes 0
// so runtimes and counts are read against a zero baseline.
func (f Figure) ticks() (xTicks, yTicks []Tick) {
	var xs, ys []float64
	for _, s := range f.Series {
		xs = append(xs, s.X...)
		ys = append(ys, s.Y...)
	}
	x0, x1 := paddedRange(floats.Min(xs), floats.Max(xs))
	y0, y1 := paddedRange(math.Min(0, floats.Min(ys)), floats.Max(ys))
	return niceTicks(x0, x1, 6), niceTicks(y0, y1, 6)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
