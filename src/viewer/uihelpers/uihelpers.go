// Package uihelpers holds the viewer's pure helpers so they can be tested
// without a display or the fyne driver.
package uihelpers

import (
	"path/filepath"
	"strings"
)

// DisplayAvailable reports whether a window can be opened. On Linux and the
// BSDs this needs an X11 or Wayland display; macOS and Windows always have one.
func DisplayAvailable(goos string, getenv func(string) string) bool {
	switch goos {
	case "darwin", "windows", "ios", "android":
		return true
	case "js", "wasip1", "plan9":
		return false
	}
	return strings.TrimSpace(getenv("DISPLAY")) != "" || strings.TrimSpace(getenv("WAYLAND_DISPLAY")) != ""
}

// ComputeWindowSize scales an image of imgW x imgH pixels down to fit a window
// no larger than maxW x maxH, keeping the aspect ratio. The result is never
// smaller than 480x300 so the tab bar and menu stay usable.
func ComputeWindowSize(imgW, imgH int, maxW, maxH float32) (float32, float32) {
	const minW, minH = 480, 300
	if imgW <= 0 || imgH <= 0 {
		return clamp(maxW, minW, maxW), clamp(maxH, minH, maxH)
	}
	w, h := float32(imgW), float32(imgH)
	if s := maxW / w; s < 1 {
		w, h = w*s, h*s
	}
	if s := maxH / h; s < 1 {
		w, h = w*s, h*s
	}
	if w < minW {
		w = minW
	}
	if h < minH {
		h = minH
	}
	return w, h
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		v = lo
	}
	if hi >= lo && v > hi {
		v = hi
	}
	return v
}

// TabTitle derives a short tab label from a chart file path.
// "out/defects_vs_resolution.png" becomes "defects vs resolution".
func TabTitle(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	if base == "" || base == "." {
		return "chart"
	}
	return base
}

// ExportName suggests a file name for saving a chart shown under title.
func ExportName(title string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		name = "chart"
	}
	return name + ".png"
}
