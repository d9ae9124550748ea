package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"scrollgraph/calgrid"
	"scrollgraph/render"
)

const (
	size    = 256
	cells   = 7
	margin  = 16
	padding = 4
)

// pattern is a diagonal wave of levels, brightest along the middle.
func pattern(row, col int) calgrid.Level {
	d := row - col
	if d < 0 {
		d = -d
	}
	return calgrid.Level(max(int(calgrid.LevelMax)-d, 0))
}

func logo() image.Image {
	theme, _ := render.ThemeByName("light")
	c := render.NewCanvas(size, size, theme.Background, render.NewFontCache(render.DefaultFontPaths...))

	step := (size - 2*margin) / cells
	for row := 0; row < cells; row++ {
		for col := 0; col < cells; col++ {
			r := image.Rect(
				margin+col*step+padding,
				margin+row*step+padding,
				margin+(col+1)*step-padding,
				margin+(row+1)*step-padding,
			)
			c.RoundedRect(r, float64(step)/5, theme.Ramp[pattern(row, col)], render.OutlineColor, 1)
		}
	}
	return c.Image()
}

func main() {
	if err := os.MkdirAll("assets", 0o755); err != nil {
		panic(err)
	}

	f, err := os.Create(filepath.Join("assets", "logo.png"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	if err := png.Encode(f, logo()); err != nil {
		panic(err)
	}
}
