package charts

import (
	"image/color"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GoChart renders figures with github.com/wcharczuk/go-chart. It is the default backend.
type GoChart struct{}

func (GoChart) Name() string { return BackendGoChart }

// Render draws f as PNG. Stroke widths in go-chart are pixels while font sizes are
// points scaled by the chart DPI, so line widths are converted here.
func (GoChart) Render(w io.Writer, f Figure) error {
	if err := f.Validate(); err != nil {
		return err
	}
	pw, ph := f.PixelSize()
	xt, yt := f.ticks()

	series := make([]chart.Series, 0, len(f.Series))
	for _, s := range f.Series {
		st := chart.Style{
			StrokeColor: toDrawingColor(s.Color),
			StrokeWidth: f.px(s.LineWidthPt),
		}
		if s.Dashed {
			st.StrokeDashArray = []float64{f.px(3.7 * s.LineWidthPt), f.px(1.6 * s.LineWidthPt)}
		}
		if s.Marker != MarkerNone {
			// go-chart only draws round dots; squares are approximated.
			st.DotColor = st.StrokeColor
			st.DotWidth = f.px(3)
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: s.X, YValues: s.Y, Style: st})
	}

	axisStyle := chart.Style{
		StrokeColor: toDrawingColor(axisColor),
		StrokeWidth: f.px(0.8),
		FontSize:    TickFontPt,
		FontColor:   toDrawingColor(axisColor),
	}
	nameStyle := chart.Style{FontSize: LabelFontPt, FontColor: toDrawingColor(axisColor)}
	xAxis := chart.XAxis{Name: f.XLabel, NameStyle: nameStyle, Style: axisStyle, Ticks: toChartTicks(xt)}
	yAxis := chart.YAxis{Name: f.YLabel, NameStyle: nameStyle, Style: axisStyle, Ticks: toChartTicks(yt)}
	if f.Grid {
		grid := chart.Style{
			StrokeColor:     toDrawingColor(gridColor),
			StrokeWidth:     f.px(0.8),
			StrokeDashArray: []float64{f.px(2.96), f.px(1.28)},
		}
		xAxis.GridMajorStyle = grid
		xAxis.GridLines = gridLines(xt, grid)
		yAxis.GridMajorStyle = grid
		yAxis.GridLines = gridLines(yt, grid)
	}

	pad := int(f.px(12))
	ch := chart.Chart{
		Title:      f.Title,
		TitleStyle: chart.Style{FontSize: TitleFontPt, FontColor: toDrawingColor(axisColor)},
		Width:      pw,
		Height:     ph,
		DPI:        float64(f.DPI),
		Background: chart.Style{Padding: chart.Box{Top: int(f.px(30)), Left: pad, Right: pad + int(f.px(6)), Bottom: pad}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
	}
	if f.Legend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch, chart.Style{FontSize: TickFontPt})}
	}
	return ch.Render(chart.PNG, w)
}

// gridLines returns one major grid line per interior tick; the outer ticks sit on the canvas edge.
func gridLines(ticks []Tick, st chart.Style) []chart.GridLine {
	if len(ticks) < 3 {
		return nil
	}
	out := make([]chart.GridLine, 0, len(ticks)-2)
	for _, t := range ticks[1 : len(ticks)-1] {
		out = append(out, chart.GridLine{Value: t.Value, Style: st})
	}
	return out
}

func toChartTicks(ticks []Tick) []chart.Tick {
	out := make([]chart.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

func toDrawingColor(c color.Color) drawing.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
