package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollgraph/calgrid"
)

func testRenderer() *Renderer {
	// A path that never resolves keeps text on the builtin face.
	return NewRenderer(NewFontCache("/nonexistent/font.ttf"))
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestLayoutSize(t *testing.T) {
	assert.Equal(t, image.Pt(1120, 320), DefaultLayout.Size())
	assert.Equal(t, image.Rect(82, 42, 118, 78), DefaultLayout.Cell(0, 0))
	assert.Equal(t, 27, MaxStartWeek)
}

func TestRenderRejectsOutOfRangeStart(t *testing.T) {
	var (
		grid   calgrid.Grid
		months calgrid.MonthIndex
	)
	theme, _ := ThemeByName("light")
	r := testRenderer()

	for _, start := range []int{-1, MaxStartWeek + 1, 53} {
		_, err := r.Render(&grid, &months, start, theme)
		assert.ErrorIs(t, err, ErrStartWeekOutOfRange, "start %d", start)
	}
}

func TestRenderCellColors(t *testing.T) {
	var (
		grid   calgrid.Grid
		months calgrid.MonthIndex
	)
	grid[10][3] = calgrid.LevelMax
	grid[30][6] = calgrid.LevelLow

	for _, name := range ThemeNames() {
		t.Run(name, func(t *testing.T) {
			theme, ok := ThemeByName(name)
			require.True(t, ok)
			r := testRenderer()

			img, err := r.Render(&grid, &months, 0, theme)
			require.NoError(t, err)
			assert.Equal(t, DefaultLayout.Size(), img.Bounds().Size())

			assert.Equal(t, theme.Ramp[calgrid.LevelMax], rgbaAt(img, 500, 180))
			assert.Equal(t, theme.Ramp[calgrid.LevelNone], rgbaAt(img, 100, 60))
			assert.Equal(t, theme.Background, rgbaAt(img, 1119, 0))

			img, err = r.Render(&grid, &months, 5, theme)
			require.NoError(t, err)
			assert.Equal(t, theme.Ramp[calgrid.LevelMax], rgbaAt(img, 300, 180))

			// Week 30 only enters the window once the start passes week 4.
			img, err = r.Render(&grid, &months, MaxStartWeek, theme)
			require.NoError(t, err)
			col := 30 - MaxStartWeek
			assert.Equal(t, theme.Ramp[calgrid.LevelLow], rgbaAt(img, col*40+100, 6*40+60))
		})
	}
}

func TestMonthLabelsVisibleWeeksOnly(t *testing.T) {
	var months calgrid.MonthIndex
	months[3] = "Feb"
	months[40] = "Oct"

	assert.Empty(t, DefaultLayout.MonthLabels(&months, 5))

	labels := DefaultLayout.MonthLabels(&months, 20)
	require.Len(t, labels, 1)
	assert.Equal(t, Label{Week: 40, X: 20*40 + 80, Text: "Oct"}, labels[0])

	labels = DefaultLayout.MonthLabels(&months, 0)
	require.Len(t, labels, 1)
	assert.Equal(t, "Feb", labels[0].Text)
}

func TestMonthLabelsOverlapKeepsFirst(t *testing.T) {
	narrow := Layout{CellSize: 10, LabelWidth: 30, LabelGap: 4}

	var months calgrid.MonthIndex
	months[0] = "Jan"
	months[2] = "Feb"
	months[4] = "Mar"
	months[5] = "Apr"

	labels := narrow.MonthLabels(&months, 0)
	var got []string
	for _, l := range labels {
		got = append(got, l.Text)
	}
	assert.Equal(t, []string{"Jan", "Mar"}, got)

	// Scrolled so Feb is the first visible label: it now wins over Mar.
	labels = narrow.MonthLabels(&months, 2)
	require.NotEmpty(t, labels)
	assert.Equal(t, "Feb", labels[0].Text)
	assert.Equal(t, 0, labels[0].X)
}

func TestMonthLabelsAdjacentWeeksAtDefaultLayout(t *testing.T) {
	var months calgrid.MonthIndex
	months[0] = "Jan"
	months[1] = "Feb"

	labels := DefaultLayout.MonthLabels(&months, 0)
	assert.Len(t, labels, 2)
}

func TestRenderDrawsLabelsInHeader(t *testing.T) {
	var (
		grid   calgrid.Grid
		months calgrid.MonthIndex
	)
	theme, _ := ThemeByName("light")
	r := testRenderer()

	blank, err := r.Render(&grid, &months, 0, theme)
	require.NoError(t, err)

	months[0] = "Jan"
	labeled, err := r.Render(&grid, &months, 0, theme)
	require.NoError(t, err)

	assert.False(t, sameRegion(blank, labeled, image.Rect(80, 0, 120, 40)))
	assert.True(t, sameRegion(blank, labeled, image.Rect(0, 40, 1120, 320)))
}

func sameRegion(a, b image.Image, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if rgbaAt(a, x, y) != rgbaAt(b, x, y) {
				return false
			}
		}
	}
	return true
}
