// Package viewer shows rendered charts in a desktop window, one tab per chart.
package viewer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/iafilius/FabricDefectReport/src/logging"
	"github.com/iafilius/FabricDefectReport/src/viewer/uihelpers"
)

// ErrNoDisplay is returned by Show when no display server is reachable.
var ErrNoDisplay = errors.New("no display available")

// Item is one chart to show.
type Item struct {
	Title string
	Image image.Image
}

// Available reports whether Show can open a window in this environment.
func Available() bool {
	return uihelpers.DisplayAvailable(runtime.GOOS, os.Getenv)
}

// DecodeItem builds an Item from PNG bytes.
func DecodeItem(title string, data []byte) (Item, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return Item{}, fmt.Errorf("decode %s: %w", title, err)
	}
	return Item{Title: title, Image: img}, nil
}

// LoadItems reads chart PNGs from disk, titling each tab after its file name.
func LoadItems(paths ...string) ([]Item, error) {
	items := make([]Item, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		it, err := DecodeItem(uihelpers.TabTitle(p), data)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// Show opens a window with one tab per item and blocks until it is closed.
func Show(title string, items []Item) error {
	if len(items) == 0 {
		return errors.New("viewer: nothing to show")
	}
	if !Available() {
		return ErrNoDisplay
	}
	a := app.NewWithID("com.fabricdefect.report")
	w := a.NewWindow(title)

	tabs := container.NewAppTabs()
	images := make([]*canvas.Image, len(items))
	for i, it := range items {
		img := canvas.NewImageFromImage(it.Image)
		img.FillMode = canvas.ImageFillContain
		img.ScaleMode = canvas.ImageScaleSmooth
		images[i] = img
		tabs.Append(container.NewTabItem(it.Title, img))
	}
	w.SetContent(tabs)

	b := items[0].Image.Bounds()
	ww, wh := uihelpers.ComputeWindowSize(b.Dx(), b.Dy(), 1100, 800)
	w.Resize(fyne.NewSize(ww, wh))

	exportCurrent := func() {
		i := tabs.SelectedIndex()
		if i < 0 || i >= len(items) {
			dialog.ShowInformation("Export", "No chart to export.", w)
			return
		}
		exportPNG(w, images[i], uihelpers.ExportName(items[i].Title))
	}
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Chart…", exportCurrent),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Close", func() { w.Close() }),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu))
	if canv := w.Canvas(); canv != nil {
		for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { w.Close() })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: mod}, func(fyne.Shortcut) { exportCurrent() })
		}
	}
	logging.Debugf("viewer: showing %d charts", len(items))
	w.ShowAndRun()
	return nil
}

func exportPNG(w fyne.Window, img *canvas.Image, defaultName string) {
	if img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", w)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img.Image); err != nil {
			dialog.ShowError(err, w)
		}
	}, w)
	fs.SetFileName(defaultName)
	fs.Show()
}
