package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

type CalendarInfo struct {
	ID      string
	Summary string
	Primary bool
}

func ListCalendars(ctx context.Context, srv *calendar.Service) ([]CalendarInfo, error) {
	var out []CalendarInfo
	err := srv.CalendarList.List().Context(ctx).Pages(ctx, func(page *calendar.CalendarList) error {
		for _, item := range page.Items {
			out = append(out, CalendarInfo{ID: item.Id, Summary: item.Summary, Primary: item.Primary})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	return out, nil
}

// DailyCounts counts events per start date across calendarIDs for one
// calendar year. Keys are YYYY-MM-DD. If any calendar fails to load the
// counts would be incomplete, so the joined errors are returned.
func DailyCounts(ctx context.Context, srv *calendar.Service, calendarIDs []string, year int) (map[string]int, error) {
	counts := make(map[string]int)

	if srv == nil {
		return counts, errors.New("calendar service is nil")
	}
	if len(calendarIDs) == 0 {
		return counts, nil
	}

	startOfYear := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	endOfYear := startOfYear.AddDate(1, 0, 0)

	timeMin := startOfYear.Format(time.RFC3339)
	timeMax := endOfYear.Format(time.RFC3339)

	var errs []error
	for _, calID := range calendarIDs {
		err := srv.Events.List(calID).
			Context(ctx).
			ShowDeleted(false).
			SingleEvents(true).
			TimeMin(timeMin).
			TimeMax(timeMax).
			OrderBy("startTime").
			MaxResults(2500).
			Pages(ctx, func(page *calendar.Events) error {
				for _, item := range page.Items {
					date, ok := eventDate(item)
					if !ok || date[:4] != fmt.Sprintf("%04d", year) {
						continue
					}
					counts[date]++
				}
				return nil
			})
		if err != nil {
			errs = append(errs, fmt.Errorf("calendar %s: %w", calID, err))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return counts, nil
}

// eventDate is the civil start date of an event in the event's own zone.
func eventDate(item *calendar.Event) (string, bool) {
	if item == nil || item.Start == nil || item.Status == "cancelled" {
		return "", false
	}
	if item.Start.DateTime != "" {
		t, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return "", false
		}
		return t.Format(dateLayout), true
	}
	if item.Start.Date != "" {
		if _, err := time.Parse(dateLayout, item.Start.Date); err != nil {
			return "", false
		}
		return item.Start.Date, true
	}
	return "", false
}
