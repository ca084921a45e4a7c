package charts

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Backend names accepted by NewRenderer.
const (
	BackendGoChart = "gochart"
	BackendGonum   = "gonum"
)

// Renderer draws a figure as a PNG image.
type Renderer interface {
	Name() string
	Render(w io.Writer, f Figure) error
}

var renderers = map[string]Renderer{
	BackendGoChart: GoChart{},
	BackendGonum:   GonumPlot{},
}

// Backends lists the registered backend names.
func Backends() []string {
	out := make([]string, 0, len(renderers))
	for k := range renderers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NewRenderer returns the renderer registered under name. Empty selects go-chart.
func NewRenderer(name string) (Renderer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = BackendGoChart
	}
	r, ok := renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown chart backend %q (want %s)", name, strings.Join(Backends(), "|"))
	}
	return r, nil
}

// RenderError reports a chart that could not be drawn.
type RenderError struct {
	File    string
	Backend string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s (%s): %v", e.File, e.Backend, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// RenderPNG validates f, renders it in memory and stamps the footnote if one is set.
func RenderPNG(r Renderer, f Figure) ([]byte, error) {
	wrap := func(err error) error { return &RenderError{File: f.File, Backend: r.Name(), Err: err} }
	if err := f.Validate(); err != nil {
		return nil, wrap(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, f); err != nil {
		return nil, wrap(err)
	}
	if strings.TrimSpace(f.Footnote) == "" {
		return buf.Bytes(), nil
	}
	out, err := AnnotatePNG(buf.Bytes(), f.Footnote, f.DPI)
	if err != nil {
		return nil, wrap(fmt.Errorf("footnote: %w", err))
	}
	return out, nil
}
