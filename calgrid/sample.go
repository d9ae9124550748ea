// Package calgrid turns daily activity samples into a calendar-aligned
// 53-week grid of intensity levels.
package calgrid

import "time"

// DateLayout is the wire format of Sample.Date.
const DateLayout = "2006-01-02"

// Grid dimensions: Weeks columns of DaysPerWeek days, Days in total.
const (
	DaysPerWeek = 7
	Weeks       = 53
	Days        = Weeks * DaysPerWeek
)

// Sample is one day of activity. An empty Date marks a padding day whose
// Count is always zero.
type Sample struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// IsPadding reports whether s has no date.
func (s Sample) IsPadding() bool {
	return s.Date == ""
}

// Sequence is a normalized run of Days samples. Index 0 is a Sunday and
// index i falls on weekday i mod 7.
type Sequence [Days]Sample

// day is a Sample with its parsed date. Padding days have a zero t.
type day struct {
	t time.Time
	Sample
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
