package debug

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Padding around rasterised text, in pixels.
const Padding = 6

var (
	Background = color.RGBA{0x1a, 0x1a, 0x1a, 0xd0}
	Foreground = color.RGBA{0xeb, 0xeb, 0xeb, 0xff}
)

// Rasterize draws lines in the 7x13 fixed font onto a translucent box.
// Row 0 of the image is the top line.
func Rasterize(lines []string) *image.RGBA {
	face := basicfont.Face7x13
	cols := 0
	for _, l := range lines {
		cols = max(cols, len(l))
	}
	w := cols*face.Advance + 2*Padding
	h := len(lines)*face.Height + 2*Padding
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(Foreground), Face: face}
	for i, l := range lines {
		d.Dot = fixed.P(Padding, Padding+i*face.Height+face.Ascent)
		d.DrawString(l)
	}
	return img
}
