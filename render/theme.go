package render

import (
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"scrollgraph/calgrid"
)

// Theme fixes the colors of a frame. Ramp is indexed by calgrid.Level.
type Theme struct {
	Name       string
	Background color.RGBA
	Text       color.RGBA
	Ramp       [calgrid.Levels]color.RGBA
}

const DefaultTheme = "light"

var themes = map[string]Theme{
	"light": {
		Name:       "light",
		Background: hex("#ffffff"),
		Text:       color.RGBA{R: 36, G: 41, B: 47, A: 255},
		Ramp:       ramp("#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"),
	},
	"dark": {
		Name:       "dark",
		Background: hex("#0d1117"),
		Text:       color.RGBA{R: 201, G: 209, B: 217, A: 255},
		Ramp:       ramp("#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"),
	},
}

// ThemeByName looks up a theme. Unknown names get the light theme and false.
func ThemeByName(name string) (Theme, bool) {
	if t, ok := themes[name]; ok {
		return t, true
	}
	return themes[DefaultTheme], false
}

// ThemeNames lists the known themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palette lists every color a frame of this theme can contain once
// anti-aliased edges are snapped to a few blend steps. It is meant for
// paletted encoders.
func (t Theme) Palette() color.Palette {
	bg := toColorful(t.Background)
	text := toColorful(t.Text)
	outline := toColorful(OutlineColor)

	seen := map[color.RGBA]bool{}
	var p color.Palette
	add := func(c colorful.Color) {
		r, g, b := c.Clamped().RGB255()
		rgba := color.RGBA{R: r, G: g, B: b, A: 255}
		if !seen[rgba] {
			seen[rgba] = true
			p = append(p, rgba)
		}
	}

	add(bg)
	add(text)
	for _, c := range t.Ramp {
		add(toColorful(c))
	}

	alpha := float64(OutlineColor.A) / 255
	for _, c := range t.Ramp {
		cell := toColorful(c)
		edge := cell.BlendRgb(outline, alpha)
		add(edge)
		for _, step := range blendSteps(8) {
			add(bg.BlendRgb(cell, step))
			add(bg.BlendRgb(edge, step))
		}
	}
	for _, step := range blendSteps(16) {
		add(bg.BlendRgb(text, step))
	}
	return p
}

func blendSteps(n int) []float64 {
	steps := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		steps = append(steps, float64(i)/float64(n))
	}
	return steps
}

func toColorful(c color.Color) colorful.Color {
	cf, _ := colorful.MakeColor(c)
	return cf
}

func hex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func ramp(levels ...string) (out [calgrid.Levels]color.RGBA) {
	for i, s := range levels {
		out[i] = hex(s)
	}
	return out
}
