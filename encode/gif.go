package encode

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"os"
)

// GIF encodes frames as an animated GIF. Truecolor frames are mapped to the
// nearest Palette entry without dithering; a nil Palette means Plan9.
type GIF struct {
	Palette color.Palette
}

func (g GIF) Save(path string, frames []image.Image) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	return writeAtomic(path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		if err := g.Encode(f, frames); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}

func (g GIF) Encode(w io.Writer, frames []image.Image) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	p := g.Palette
	if len(p) == 0 {
		p = palette.Plan9
	}
	if len(p) > 256 {
		p = p[:256]
	}

	anim := &gif.GIF{LoopCount: 0}
	q := newQuantizer(p)
	for _, frame := range frames {
		anim.Image = append(anim.Image, q.paletted(frame))
		anim.Delay = append(anim.Delay, delayCentis)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

type quantizer struct {
	palette color.Palette
	index   map[color.RGBA]uint8
}

func newQuantizer(p color.Palette) *quantizer {
	return &quantizer{palette: p, index: map[color.RGBA]uint8{}}
}

func (q *quantizer) paletted(src image.Image) *image.Paletted {
	if p, ok := src.(*image.Paletted); ok {
		return p
	}
	b := src.Bounds()
	dst := image.NewPaletted(b, q.palette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
			i, ok := q.index[c]
			if !ok {
				i = uint8(q.palette.Index(c))
				q.index[c] = i
			}
			dst.SetColorIndex(x, y, i)
		}
	}
	return dst
}
