package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Canvas is the drawing surface a frame is painted on.
type Canvas struct {
	dc    *gg.Context
	fonts *FontCache
}

func NewCanvas(width, height int, bg color.Color, fonts *FontCache) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc, fonts: fonts}
}

// Text draws s with its top-left corner at (x, y).
func (c *Canvas) Text(x, y int, size float64, col color.Color, s string) {
	c.fonts.Use(size, func(face font.Face) {
		c.dc.SetFontFace(face)
		c.dc.SetColor(col)
		ascent := face.Metrics().Ascent.Ceil()
		c.dc.DrawString(s, float64(x), float64(y+ascent))
	})
}

// RoundedRect fills r and strokes its outline. The outline is skipped when
// width is zero.
func (c *Canvas) RoundedRect(r image.Rectangle, radius float64, fill, outline color.Color, width float64) {
	x, y := float64(r.Min.X)+0.5, float64(r.Min.Y)+0.5
	w, h := float64(r.Dx()), float64(r.Dy())

	c.dc.DrawRoundedRectangle(x, y, w, h, radius)
	c.dc.SetColor(fill)
	if width <= 0 {
		c.dc.Fill()
		return
	}
	c.dc.FillPreserve()
	c.dc.SetColor(outline)
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}
