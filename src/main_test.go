package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/FabricDefectReport/src/report"
	"github.com/iafilius/FabricDefectReport/src/viewer"
)

const sampleCSV = "n,runtime_ms,defect_regions\n2,10,1\n4,35,3\n8,100,6\n"

func writeInput(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "fabric_defect_detection.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return p
}

// smallConfig keeps the end-to-end runs quick.
func smallConfig(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "report.yaml")
	cfg := "layout:\n  width_in: 4\n  height_in: 2.5\n  dpi: 100\n"
	if err := os.WriteFile(p, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func stubDisplay(t *testing.T, available bool) *int {
	t.Helper()
	calls := 0
	prevAvail, prevShow := displayAvailable, showCharts
	displayAvailable = func() bool { return available }
	showCharts = func(string, report.Paths) error { calls++; return nil }
	t.Cleanup(func() { displayAvailable, showCharts = prevAvail, prevShow })
	return &calls
}

func TestRun_Success(t *testing.T) {
	stubDisplay(t, false)
	in := writeInput(t, sampleCSV)
	out := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", smallConfig(t), "-input", in, "-out-dir", out, "-display", "never"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d stderr=%s", code, stderr.String())
	}
	rt := filepath.Join(out, "runtime_scaling_defect_detection.png")
	df := filepath.Join(out, "defects_vs_resolution.png")
	want := "Plots saved as '" + rt + "' and '" + df + "'\n"
	if stdout.String() != want {
		t.Fatalf("stdout=%q want %q", stdout.String(), want)
	}
	for _, p := range []string{rt, df} {
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Fatalf("%s missing or empty: %v", p, err)
		}
	}
}

func TestRun_LoadErrorExitsOne(t *testing.T) {
	stubDisplay(t, false)
	in := writeInput(t, "n,runtime_ms\n2,10\n")
	out := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-input", in, "-out-dir", out, "-display", "never"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit %d want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "error: ") || !strings.Contains(stderr.String(), "defect_regions") {
		t.Fatalf("stderr=%q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("no success line expected, got %q", stdout.String())
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Fatalf("no files expected, got %d", len(entries))
	}
}

func TestRun_DisplayModes(t *testing.T) {
	cfg := smallConfig(t)
	in := writeInput(t, sampleCSV)

	calls := stubDisplay(t, true)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", cfg, "-input", in, "-out-dir", t.TempDir()}, &stdout, &stderr); code != 0 {
		t.Fatalf("auto with display: exit %d %s", code, stderr.String())
	}
	if *calls != 1 {
		t.Fatalf("viewer calls=%d want 1", *calls)
	}

	calls = stubDisplay(t, false)
	stdout.Reset()
	if code := run([]string{"-config", cfg, "-input", in, "-out-dir", t.TempDir(), "-display", "auto"}, &stdout, &stderr); code != 0 {
		t.Fatalf("auto without display: exit %d", code)
	}
	if *calls != 0 {
		t.Fatalf("viewer should not be called without a display")
	}

	stubDisplay(t, false)
	stdout.Reset()
	stderr.Reset()
	out := t.TempDir()
	code := run([]string{"-config", cfg, "-input", in, "-out-dir", out, "-display", "always"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("always without display: exit %d want 1", code)
	}
	if !strings.Contains(stdout.String(), "Plots saved as") {
		t.Fatalf("files should be reported before the display failure: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), viewer.ErrNoDisplay.Error()) {
		t.Fatalf("stderr=%q", stderr.String())
	}
	if entries, _ := os.ReadDir(out); len(entries) != 2 {
		t.Fatalf("want 2 files saved, got %d", len(entries))
	}
}

func TestDisplayCharts_ViewerError(t *testing.T) {
	prevAvail, prevShow := displayAvailable, showCharts
	t.Cleanup(func() { displayAvailable, showCharts = prevAvail, prevShow })
	displayAvailable = func() bool { return true }
	boom := errors.New("boom")
	showCharts = func(string, report.Paths) error { return boom }
	if err := displayCharts("auto", report.Paths{}); !errors.Is(err, boom) {
		t.Fatalf("want wrapped viewer error, got %v", err)
	}
}

func TestRun_BadFlags(t *testing.T) {
	stubDisplay(t, false)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-backend", "svg", "-display", "never"}, &stdout, &stderr); code != 1 {
		t.Fatalf("unknown backend: exit %d", code)
	}
	if code := run([]string{"-display", "sometimes"}, &stdout, &stderr); code != 1 {
		t.Fatalf("unknown display: exit %d", code)
	}
	if code := run([]string{"-log-level", "loud"}, &stdout, &stderr); code != 1 {
		t.Fatalf("unknown log level: exit %d", code)
	}
	if code := run([]string{"extra"}, &stdout, &stderr); code != 1 {
		t.Fatalf("positional args: exit %d", code)
	}
	if code := run([]string{"-h"}, &stdout, &stderr); code != 0 {
		t.Fatalf("-h: exit %d", code)
	}
}
