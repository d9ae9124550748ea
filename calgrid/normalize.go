package calgrid

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrEmptyInput     = errors.New("no contribution samples")
	ErrNoUsableWindow = errors.New("no usable calendar window")
)

// RollingDays is how far before today the rolling window reaches.
const RollingDays = Days - 1

// Normalize aligns samples to a Sequence ending on the Saturday that closes
// the most recent week. Samples are sorted by date; for equal dates the last
// occurrence wins. Samples dated within RollingDays of today (and not after
// it) form the window; when that leaves fewer than Days samples the last Days
// samples of the whole history are used instead.
func Normalize(samples []Sample, today time.Time) (Sequence, error) {
	var seq Sequence

	days, err := sortedDays(samples)
	if err != nil {
		return seq, err
	}
	if len(days) == 0 {
		return seq, ErrEmptyInput
	}

	window := fillGaps(rollingWindow(days, today))

	last := window[len(window)-1]
	for i := WeekdayOf(last.t).DaysUntilSaturday(); i > 0; i-- {
		window = append(window, day{})
	}

	first := window[0]
	if shift := WeekdayOf(first.t).DaysSinceSunday(); shift > 0 {
		window = append(make([]day, shift), window...)
	}

	if len(window) > Days {
		window = window[len(window)-Days:]
	}
	if pad := Days - len(window); pad > 0 {
		window = append(make([]day, pad), window...)
	}

	for i, d := range window {
		if d.IsPadding() {
			continue
		}
		if WeekdayOf(d.t) != WeekdayAt(i) {
			return seq, fmt.Errorf("%w: %s lands on %s column", ErrNoUsableWindow, d.Date, WeekdayAt(i))
		}
		seq[i] = d.Sample
	}
	return seq, nil
}

// sortedDays parses, sorts and de-duplicates the dated samples.
func sortedDays(samples []Sample) ([]day, error) {
	sorted := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if !s.IsPadding() {
			sorted = append(sorted, s)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	days := make([]day, 0, len(sorted))
	for _, s := range sorted {
		t, err := parseDate(s.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrNoUsableWindow, s.Date)
		}
		if s.Count < 0 {
			s.Count = 0
		}
		if n := len(days); n > 0 && days[n-1].Date == s.Date {
			days[n-1] = day{t: t, Sample: s}
			continue
		}
		days = append(days, day{t: t, Sample: s})
	}
	return days, nil
}

func rollingWindow(days []day, today time.Time) []day {
	end := civil(today)
	start := end.AddDate(0, 0, -RollingDays)

	var window []day
	for _, d := range days {
		if !d.t.Before(start) && !d.t.After(end) {
			window = append(window, d)
		}
	}
	if len(window) < Days {
		n := len(days)
		if n > Days {
			n = Days
		}
		window = append([]day(nil), days[len(days)-n:]...)
	}
	return window
}

// fillGaps inserts zero-count days between non-consecutive dates so that
// position and weekday stay in step.
func fillGaps(days []day) []day {
	if len(days) == 0 {
		return days
	}
	filled := make([]day, 0, len(days))
	filled = append(filled, days[0])
	for _, d := range days[1:] {
		for next := filled[len(filled)-1].t.AddDate(0, 0, 1); next.Before(d.t); next = next.AddDate(0, 0, 1) {
			filled = append(filled, day{t: next, Sample: Sample{Date: next.Format(DateLayout)}})
		}
		filled = append(filled, d)
	}
	return filled
}
