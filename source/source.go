// Package source fetches daily contribution counts from remote services.
package source

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"scrollgraph/calgrid"
)

var ErrFetch = errors.New("fetch failed")

// FetchError describes a failed request against a data source. Status is
// the HTTP status when one was received, 0 otherwise.
type FetchError struct {
	Source string
	Year   int
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: fetch %d", e.Source, e.Year)
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Source returns the daily samples of one calendar year for an identifier
// (a username, or a calendar ID).
type Source interface {
	Name() string
	Fetch(ctx context.Context, identifier string, year int) ([]calgrid.Sample, error)
}

// FetchYears fetches year-1 and year concurrently and returns the earlier
// year's samples followed by the later year's.
func FetchYears(ctx context.Context, src Source, identifier string, year int) ([]calgrid.Sample, error) {
	var results [2][]calgrid.Sample

	g, gctx := errgroup.WithContext(ctx)
	for i, y := range [2]int{year - 1, year} {
		i, y := i, y
		g.Go(func() error {
			samples, err := src.Fetch(gctx, identifier, y)
			if err != nil {
				return err
			}
			results[i] = samples
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := append(results[0], results[1]...)
	if len(merged) == 0 {
		return nil, fmt.Errorf("%s: %s: %w", src.Name(), identifier, calgrid.ErrEmptyInput)
	}
	return merged, nil
}
