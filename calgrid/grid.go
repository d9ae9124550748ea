package calgrid

// Level is the intensity bucket a daily count is drawn with.
type Level uint8

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelMax
)

// Levels is the size of a color ramp indexed by Level.
const Levels = int(LevelMax) + 1

// LevelFor buckets a count: 0, 1-3, 4-6, 7-9, 10 and up.
func LevelFor(count int) Level {
	switch {
	case count <= 0:
		return LevelNone
	case count <= 3:
		return LevelLow
	case count <= 6:
		return LevelMedium
	case count <= 9:
		return LevelHigh
	default:
		return LevelMax
	}
}

// Grid holds one Level per day, indexed [week][weekday]. Week 0 is the oldest.
type Grid [Weeks][DaysPerWeek]Level

// At returns the level of a cell, or LevelNone outside the grid.
func (g *Grid) At(week, day int) Level {
	if week < 0 || week >= Weeks || day < 0 || day >= DaysPerWeek {
		return LevelNone
	}
	return g[week][day]
}

// MonthIndex holds a short month name on weeks where a new month is first
// seen, and "" elsewhere.
type MonthIndex [Weeks]string

// Build derives the grid and month labels from a normalized sequence.
//
// Weeks are scanned oldest first while remembering the last labeled month.
// Inside a week the first dated day whose month differs from it labels the
// week; any later change within the same week is left for the next week.
func Build(seq Sequence) (Grid, MonthIndex) {
	var (
		grid   Grid
		months MonthIndex
	)
	lastMonth := 0
	for week := 0; week < Weeks; week++ {
		labeled := false
		for d := 0; d < DaysPerWeek; d++ {
			s := seq[week*DaysPerWeek+d]
			if s.IsPadding() {
				continue
			}
			grid[week][d] = LevelFor(s.Count)
			if labeled {
				continue
			}
			t, err := parseDate(s.Date)
			if err != nil {
				continue
			}
			if m := int(t.Month()); m != lastMonth {
				months[week] = t.Month().String()[:3]
				lastMonth = m
				labeled = true
			}
		}
	}
	return grid, months
}
