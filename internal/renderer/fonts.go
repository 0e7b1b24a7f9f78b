package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"
)

// LoadFont parses the bundled Go Bold font at the given size
func LoadFont(size float64) (font.Face, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return face, nil
}

// measureText returns the width and bounds of rendered text
// Bounds.Min.Y is negative (ascent), Bounds.Max.Y is positive (descent)
func measureText(face font.Face, text string) (int, fixed.Rectangle26_6) {
	d := &font.Drawer{Face: face}
	bounds, _ := d.BoundString(text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	return width, bounds
}

// drawCenteredText draws text centered horizontally and vertically inside rect
func drawCenteredText(img *image.RGBA, face font.Face, text string, rect image.Rectangle, c color.RGBA) {
	if text == "" {
		return
	}

	width, bounds := measureText(face, text)
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x := rect.Min.X + (rect.Dx()-width)/2
	// Visual top = baseline + Min.Y, so baseline = top - Min.Y
	top := rect.Min.Y + (rect.Dy()-height)/2
	baseline := top - bounds.Min.Y.Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  freetype.Pt(x, baseline),
	}
	d.DrawString(text)
}
