package calgrid

import "time"

// Weekday indexes days of the week starting at Sunday, matching the row
// order of the grid.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayShort = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// WeekdayAt is the weekday of position i in a Sequence.
func WeekdayAt(i int) Weekday {
	return Weekday(mod7(i))
}

// DaysUntilSaturday is the number of days to append after d so the week
// closes on a Saturday. Saturday itself needs none.
func (d Weekday) DaysUntilSaturday() int {
	return mod7(int(Saturday) - int(d))
}

// DaysSinceSunday is the number of days to prepend before d so the week
// opens on a Sunday. Sunday itself needs none.
func (d Weekday) DaysSinceSunday() int {
	return mod7(int(d) - int(Sunday))
}

func (d Weekday) String() string {
	return weekdayShort[mod7(int(d))]
}

func mod7(n int) int {
	return ((n % DaysPerWeek) + DaysPerWeek) % DaysPerWeek
}
