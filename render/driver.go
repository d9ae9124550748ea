package render

import (
	"context"
	"errors"
	"image"

	"golang.org/x/sync/errgroup"

	"scrollgraph/calgrid"
)

var ErrNoFrames = errors.New("no frames rendered")

// WindowRenderer draws one frame of the sliding window.
type WindowRenderer interface {
	Render(grid *calgrid.Grid, months *calgrid.MonthIndex, startWeek int, theme Theme) (image.Image, error)
}

// Driver renders one frame per start week, oldest window first.
type Driver struct {
	Renderer WindowRenderer

	// Workers bounds concurrent renders. Values below 2 render sequentially.
	Workers int

	// Progress, if set, is called after each frame. With Workers > 1 it may
	// be called from several goroutines and out of order.
	Progress func(startWeek int)
}

// StartWeeks lists the window offsets in playback order.
func StartWeeks() []int {
	weeks := make([]int, 0, MaxStartWeek+1)
	for w := 0; w <= MaxStartWeek; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}

func (d *Driver) Generate(ctx context.Context, grid *calgrid.Grid, months *calgrid.MonthIndex, theme Theme) ([]image.Image, error) {
	weeks := StartWeeks()
	frames := make([]image.Image, len(weeks))

	g, gctx := errgroup.WithContext(ctx)
	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, w := range weeks {
		i, w := i, w
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := d.Renderer.Render(grid, months, w, theme)
			if err != nil {
				return err
			}
			frames[i] = img
			if d.Progress != nil {
				d.Progress(w)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := frames[:0]
	for _, f := range frames {
		if f != nil {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoFrames
	}
	return out, nil
}
