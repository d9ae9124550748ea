package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollgraph/calgrid"
)

type recordingRenderer struct {
	mu    sync.Mutex
	calls []int
	fail  int
	empty bool
}

func (r *recordingRenderer) Render(_ *calgrid.Grid, _ *calgrid.MonthIndex, startWeek int, _ Theme) (image.Image, error) {
	r.mu.Lock()
	r.calls = append(r.calls, startWeek)
	r.mu.Unlock()

	if r.fail > 0 && startWeek == r.fail {
		return nil, errors.New("boom")
	}
	if r.empty {
		return nil, nil
	}
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: uint8(startWeek)})
	return img, nil
}

func TestStartWeeks(t *testing.T) {
	weeks := StartWeeks()
	require.Len(t, weeks, 28)
	for i, w := range weeks {
		assert.Equal(t, i, w)
	}
}

func TestDriverFrameOrder(t *testing.T) {
	var (
		grid   calgrid.Grid
		months calgrid.MonthIndex
	)
	theme, _ := ThemeByName("light")

	for _, workers := range []int{0, 1, 4, 32} {
		rec := &recordingRenderer{}
		d := &Driver{Renderer: rec, Workers: workers}

		frames, err := d.Generate(context.Background(), &grid, &months, theme)
		require.NoError(t, err)
		require.Len(t, frames, 28)
		for i, f := range frames {
			assert.Equal(t, uint8(i), f.(*image.Gray).GrayAt(0, 0).Y, "workers %d frame %d", workers, i)
		}
		assert.ElementsMatch(t, StartWeeks(), rec.calls)
		if workers <= 1 {
			assert.Equal(t, StartWeeks(), rec.calls)
		}
	}
}

func TestDriverProgress(t *testing.T) {
	var (
		grid   calgrid.Grid
		months calgrid.MonthIndex
		seen   []int
	)
	d := &Driver{
		Renderer: &recordingRenderer{},
		Progress: func(w int) { seen = append(seen, w) },
	}
	_, err := d.Generate(context.Background(), &grid, &months, Theme{})
	require.NoError(t, err)
	assert.Equal(t, StartWeeks(), seen)
}

func TestDriverPropagatesRenderError(t *testing.T) {
	var (
		grid   calgrid.Grid
		months calgrid.MonthIndex
	)
	d := &Driver{Renderer: &recordingRenderer{fail: 7}}
	frames, err := d.Generate(context.Background(), &grid, &months, Theme{})
	assert.EqualError(t, err, "boom")
	assert.Nil(t, frames)
}

func TestDriverNoFrames(t *testing.T) {
	var (
		grid   calgrid.Grid
		months calgrid.MonthIndex
	)
	d := &Driver{Renderer: &recordingRenderer{empty: true}}
	_, err := d.Generate(context.Background(), &grid, &months, Theme{})
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestDriverCancelled(t *testing.T) {
	var (
		grid   calgrid.Grid
		months calgrid.MonthIndex
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recordingRenderer{}
	d := &Driver{Renderer: rec}
	_, err := d.Generate(ctx, &grid, &months, Theme{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.calls)
}

func TestDriverAllZeroFramesIdentical(t *testing.T) {
	var (
		grid   calgrid.Grid
		months calgrid.MonthIndex
	)
	theme, _ := ThemeByName("dark")
	d := &Driver{Renderer: testRenderer(), Workers: 4}

	frames, err := d.Generate(context.Background(), &grid, &months, theme)
	require.NoError(t, err)
	require.Len(t, frames, 28)

	first := frames[0].(*image.RGBA)
	for i, f := range frames[1:] {
		assert.True(t, bytes.Equal(first.Pix, f.(*image.RGBA).Pix), "frame %d differs", i+1)
	}
}
