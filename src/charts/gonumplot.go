package charts

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// GonumPlot renders figures with gonum.org/v1/plot. Unlike go-chart it lays text and
// lines out in physical units, so the output is a true 300 DPI rendering with square markers.
type GonumPlot struct{}

func (GonumPlot) Name() string { return BackendGonum }

func (GonumPlot) Render(w io.Writer, f Figure) error {
	if err := f.Validate(); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = f.Title
	p.Title.TextStyle.Font.Size = vg.Points(TitleFontPt)
	p.Title.Padding = vg.Points(6)
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = vg.Points(LabelFontPt)
		ax.Tick.Label.Font.Size = vg.Points(TickFontPt)
		ax.Color = axisColor
		ax.Tick.Color = axisColor
	}

	xt, yt := f.ticks()
	p.X.Min, p.X.Max = xt[0].Value, xt[len(xt)-1].Value
	p.Y.Min, p.Y.Max = yt[0].Value, yt[len(yt)-1].Value
	p.X.Tick.Marker = toPlotTicks(xt)
	p.Y.Tick.Marker = toPlotTicks(yt)

	if f.Grid {
		g := plotter.NewGrid()
		gs := draw.LineStyle{Color: gridColor, Width: vg.Points(0.8), Dashes: []vg.Length{vg.Points(2.96), vg.Points(1.28)}}
		g.Vertical, g.Horizontal = gs, gs
		p.Add(g)
	}

	for _, s := range f.Series {
		xys := make(plotter.XYs, len(s.X))
		for i := range s.X {
			xys[i].X, xys[i].Y = s.X[i], s.Y[i]
		}
		ls := draw.LineStyle{Color: s.Color, Width: vg.Points(s.LineWidthPt)}
		if s.Dashed {
			ls.Dashes = []vg.Length{vg.Points(3.7 * s.LineWidthPt), vg.Points(1.6 * s.LineWidthPt)}
		}
		var thumbs []plot.Thumbnailer
		if s.Marker == MarkerNone {
			line, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("series %q: %w", s.Name, err)
			}
			line.LineStyle = ls
			p.Add(line)
			thumbs = append(thumbs, line)
		} else {
			line, pts, err := plotter.NewLinePoints(xys)
			if err != nil {
				return fmt.Errorf("series %q: %w", s.Name, err)
			}
			line.LineStyle = ls
			pts.GlyphStyle = draw.GlyphStyle{Color: s.Color, Radius: vg.Points(3), Shape: glyphFor(s.Marker)}
			p.Add(line, pts)
			thumbs = append(thumbs, line, pts)
		}
		if f.Legend && s.Name != "" {
			p.Legend.Add(s.Name, thumbs...)
		}
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Font.Size = vg.Points(TickFontPt)

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(f.WidthIn)*vg.Inch, vg.Length(f.HeightIn)*vg.Inch),
		vgimg.UseDPI(f.DPI),
	)
	p.Draw(draw.New(c))
	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

func glyphFor(m Marker) draw.GlyphDrawer {
	if m == MarkerSquare {
		return draw.BoxGlyph{}
	}
	return draw.CircleGlyph{}
}

func toPlotTicks(ticks []Tick) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(ticks))
	for i, t := range ticks {
		out[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}
