package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/FabricDefectReport/src/charts"
)

func TestDefault_MatchesFixedOutputs(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if c.Input != "fabric_defect_detection.csv" {
		t.Fatalf("input: %q", c.Input)
	}
	if c.Runtime.File != "runtime_scaling_defect_detection.png" || c.Defects.File != "defects_vs_resolution.png" {
		t.Fatalf("outputs: %q %q", c.Runtime.File, c.Defects.File)
	}
	if c.Layout != (charts.Layout{WidthIn: 8, HeightIn: 5, DPI: 300}) {
		t.Fatalf("layout: %+v", c.Layout)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	content := `
backend: gonum
display: never
layout:
  dpi: 150
defects_chart:
  title: Defects per resolution
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Backend != "gonum" || c.Display != DisplayNever {
		t.Fatalf("backend/display not applied: %+v", c)
	}
	if c.Layout.DPI != 150 || c.Layout.WidthIn != 8 || c.Layout.HeightIn != 5 {
		t.Fatalf("layout overlay: %+v", c.Layout)
	}
	if c.Defects.Title != "Defects per resolution" || c.Defects.File != "defects_vs_resolution.png" {
		t.Fatalf("defects text overlay: %+v", c.Defects)
	}
	if c.Runtime != charts.DefaultRuntimeText {
		t.Fatalf("runtime text changed: %+v", c.Runtime)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDecode_Empty(t *testing.T) {
	c, err := Decode(strings.NewReader("  \n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c != Default() {
		t.Fatalf("empty file should yield defaults")
	}
}

func TestDecode_UnknownKey(t *testing.T) {
	if _, err := Decode(strings.NewReader("backnd: gonum\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"backend", func(c *Config) { c.Backend = "svg" }, "unknown chart backend"},
		{"display", func(c *Config) { c.Display = "sometimes" }, "display mode"},
		{"dpi", func(c *Config) { c.Layout.DPI = -1 }, "dpi"},
		{"path in file", func(c *Config) { c.Runtime.File = "../x.png" }, "plain file name"},
		{"same file", func(c *Config) { c.Defects.File = c.Runtime.File }, "both charts"},
		{"input", func(c *Config) { c.Input = " " }, "input file"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
