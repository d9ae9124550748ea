package source

import (
	"context"
	"time"

	"google.golang.org/api/calendar/v3"

	"scrollgraph/calgrid"
	"scrollgraph/gcal"
)

// GoogleCalendar treats the number of events on a day as its activity.
type GoogleCalendar struct {
	Service     *calendar.Service
	CalendarIDs []string
}

func (c *GoogleCalendar) Name() string { return "gcal" }

// Fetch returns one sample for every day of year. When CalendarIDs is empty
// the identifier is used as the calendar ID.
func (c *GoogleCalendar) Fetch(ctx context.Context, identifier string, year int) ([]calgrid.Sample, error) {
	ids := c.CalendarIDs
	if len(ids) == 0 {
		ids = []string{identifier}
	}

	counts, err := gcal.DailyCounts(ctx, c.Service, ids, year)
	if err != nil {
		return nil, &FetchError{Source: c.Name(), Year: year, Err: err}
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	samples := make([]calgrid.Sample, 0, 366)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(calgrid.DateLayout)
		samples = append(samples, calgrid.Sample{Date: date, Count: counts[date]})
	}
	return samples, nil
}
