// Package render draws the sliding 26-week window of a contribution grid.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"scrollgraph/calgrid"
)

const (
	VisibleWeeks = 26
	MaxStartWeek = calgrid.Weeks - VisibleWeeks

	FontSize   = 16
	CellRadius = 8
)

// OutlineColor strokes every cell regardless of theme.
var OutlineColor = color.NRGBA{R: 150, G: 150, B: 150, A: 25}

var ErrStartWeekOutOfRange = errors.New("start week out of range")

// Layout holds the pixel metrics of a frame.
type Layout struct {
	CellSize     int
	CellPadding  int
	LegendWidth  int
	HeaderHeight int
	LabelWidth   int
	LabelGap     int
}

var DefaultLayout = Layout{
	CellSize:     40,
	CellPadding:  2,
	LegendWidth:  80,
	HeaderHeight: 40,
	LabelWidth:   30,
	LabelGap:     4,
}

// Size is the frame size for VisibleWeeks columns.
func (l Layout) Size() image.Point {
	return image.Pt(
		VisibleWeeks*l.CellSize+l.LegendWidth,
		calgrid.DaysPerWeek*l.CellSize+l.HeaderHeight,
	)
}

// Cell is the rectangle of a cell inside its grid slot.
func (l Layout) Cell(col, day int) image.Rectangle {
	x0 := col*l.CellSize + l.LegendWidth + l.CellPadding
	y0 := day*l.CellSize + l.HeaderHeight + l.CellPadding
	side := l.CellSize - 2*l.CellPadding
	return image.Rect(x0, y0, x0+side, y0+side)
}

// Label is a month name placed at horizontal offset X.
type Label struct {
	Week int
	X    int
	Text string
}

// MonthLabels places the month labels of the visible weeks left to right.
// A label closer than LabelWidth+LabelGap to the previous drawn label is
// dropped; the earlier one always stays.
func (l Layout) MonthLabels(months *calgrid.MonthIndex, startWeek int) []Label {
	var labels []Label
	minGap := l.LabelWidth + l.LabelGap
	for col := 0; col < VisibleWeeks; col++ {
		w := startWeek + col
		if w < 0 || w >= calgrid.Weeks || months[w] == "" {
			continue
		}
		x := col*l.CellSize + l.LegendWidth
		if n := len(labels); n > 0 && x < labels[n-1].X+minGap {
			continue
		}
		labels = append(labels, Label{Week: w, X: x, Text: months[w]})
	}
	return labels
}

// labeledDays are the weekday rows that get a legend.
var labeledDays = []calgrid.Weekday{calgrid.Monday, calgrid.Wednesday, calgrid.Friday}

type Renderer struct {
	Layout Layout
	Fonts  *FontCache
}

func NewRenderer(fonts *FontCache) *Renderer {
	if fonts == nil {
		fonts = NewFontCache()
	}
	return &Renderer{Layout: DefaultLayout, Fonts: fonts}
}

// Render draws the window of VisibleWeeks weeks starting at startWeek.
func (r *Renderer) Render(grid *calgrid.Grid, months *calgrid.MonthIndex, startWeek int, theme Theme) (image.Image, error) {
	if startWeek < 0 || startWeek > MaxStartWeek {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrStartWeekOutOfRange, startWeek, MaxStartWeek)
	}

	l := r.Layout
	size := l.Size()
	c := NewCanvas(size.X, size.Y, theme.Background, r.Fonts)

	for _, d := range labeledDays {
		c.Text(10, int(d)*l.CellSize+l.HeaderHeight+10, FontSize, theme.Text, d.String())
	}

	for _, label := range l.MonthLabels(months, startWeek) {
		c.Text(label.X, 10, FontSize, theme.Text, label.Text)
	}

	for col := 0; col < VisibleWeeks; col++ {
		for day := 0; day < calgrid.DaysPerWeek; day++ {
			level := grid.At(startWeek+col, day)
			c.RoundedRect(l.Cell(col, day), CellRadius, theme.Ramp[level], OutlineColor, 1)
		}
	}
	return c.Image(), nil
}
