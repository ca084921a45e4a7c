// Package config holds the report settings. Defaults reproduce the fixed file names,
// titles and 8x5 inch / 300 DPI figures; a YAML file and command-line flags may override them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iafilius/FabricDefectReport/src/charts"
	"github.com/iafilius/FabricDefectReport/src/dataset"
)

// Display modes.
const (
	DisplayAuto   = "auto"   // show charts when a display is available, otherwise skip
	DisplayAlways = "always" // showing charts is required; no display is an error
	DisplayNever  = "never"
)

// Config is the full set of report settings.
type Config struct {
	Input     string        `yaml:"input"`
	OutputDir string        `yaml:"output_dir"`
	Backend   string        `yaml:"backend"`
	Display   string        `yaml:"display"`
	Footnote  bool          `yaml:"footnote"`
	LogLevel  string        `yaml:"log_level"`
	Layout    charts.Layout `yaml:"layout"`
	Runtime   charts.Text   `yaml:"runtime_chart"`
	Defects   charts.Text   `yaml:"defects_chart"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Input:     dataset.DefaultInputFile,
		OutputDir: ".",
		Backend:   charts.BackendGoChart,
		Display:   DisplayAuto,
		LogLevel:  "info",
		Layout:    charts.DefaultLayout,
		Runtime:   charts.DefaultRuntimeText,
		Defects:   charts.DefaultDefectsText,
	}
}

// Load reads a YAML file on top of the defaults. Keys not present keep their default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML from r on top of the defaults. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	b, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that flags or files may have set.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Input) == "" {
		errs = append(errs, errors.New("input file is empty"))
	}
	if _, err := charts.NewRenderer(c.Backend); err != nil {
		errs = append(errs, err)
	}
	switch c.Display {
	case DisplayAuto, DisplayAlways, DisplayNever:
	default:
		errs = append(errs, fmt.Errorf("display mode %q (want auto|always|never)", c.Display))
	}
	if err := c.Layout.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, t := range []charts.Text{c.Runtime, c.Defects} {
		if t.File == "" || filepath.Base(t.File) != t.File {
			errs = append(errs, fmt.Errorf("chart file %q must be a plain file name", t.File))
		}
	}
	if c.Runtime.File == c.Defects.File {
		errs = append(errs, fmt.Errorf("both charts write to %q", c.Runtime.File))
	}
	return errors.Join(errs...)
}
