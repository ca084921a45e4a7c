package charts

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotate draws a small caption near the bottom-left corner of img. The bitmap
// font is 7x13 px, so the caption is drawn at 1x and scaled up to stay legible
// at print resolutions (scale 3 at 300 DPI).
func Annotate(img image.Image, text string, scale int) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	if scale < 1 {
		scale = 1
	}
	face := basicfont.Face7x13
	pad := 3
	tw := font.MeasureString(face, text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()

	// Caption at 1x: translucent white plate with dark text.
	label := image.NewRGBA(image.Rect(0, 0, tw+2*pad, ascent+descent+2*pad))
	draw.Draw(label, label.Bounds(), image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 220}), image.Point{}, draw.Src)
	dr := &font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(color.RGBA{R: 60, G: 60, B: 60, A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad + ascent)},
	}
	dr.DrawString(text)

	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	lw, lh := label.Bounds().Dx()*scale, label.Bounds().Dy()*scale
	margin := 4 * scale
	dst := image.Rect(b.Min.X+margin, b.Max.Y-margin-lh, b.Min.X+margin+lw, b.Max.Y-margin)
	draw.NearestNeighbor.Scale(out, dst, label, label.Bounds(), draw.Over, nil)
	return out
}

// AnnotatePNG decodes a PNG, stamps the caption and re-encodes it.
func AnnotatePNG(data []byte, text string, dpi int) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	scale := dpi / 100
	var buf bytes.Buffer
	if err := png.Encode(&buf, Annotate(img, text, scale)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
