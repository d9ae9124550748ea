package calgrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daily returns one sample per day from start to end inclusive.
func daily(start, end time.Time, count func(time.Time) int) []Sample {
	var out []Sample
	for t := start; !t.After(end); t = t.AddDate(0, 0, 1) {
		c := 0
		if count != nil {
			c = count(t)
		}
		out = append(out, Sample{Date: t.Format(DateLayout), Count: c})
	}
	return out
}

func assertAligned(t *testing.T, seq Sequence) {
	t.Helper()
	for i, s := range seq {
		if s.IsPadding() {
			assert.Zero(t, s.Count, "padding at %d carries a count", i)
			continue
		}
		d, err := parseDate(s.Date)
		require.NoError(t, err)
		assert.Equal(t, WeekdayAt(i), WeekdayOf(d), "index %d (%s)", i, s.Date)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	_, err := Normalize(nil, date(2025, 1, 1))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Normalize([]Sample{{}, {}}, date(2025, 1, 1))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestNormalizeMalformedDate(t *testing.T) {
	samples := daily(date(2024, 1, 1), date(2024, 12, 31), nil)
	samples = append(samples, Sample{Date: "2024-13-45", Count: 3})

	_, err := Normalize(samples, date(2024, 12, 31))
	assert.ErrorIs(t, err, ErrNoUsableWindow)
}

func TestNormalizeFullYearFallback(t *testing.T) {
	samples := daily(date(2023, 1, 1), date(2024, 1, 6), nil)
	require.Len(t, samples, Days)

	seq, err := Normalize(samples, date(2026, 10, 18))
	require.NoError(t, err)

	assert.Equal(t, "2023-01-01", seq[0].Date)
	assert.Equal(t, "2024-01-06", seq[Days-1].Date)
	assertAligned(t, seq)
}

func TestNormalizeRollingWindowEndsToday(t *testing.T) {
	// Two full calendar years, including days after "today" that a yearly
	// API reports with zero counts.
	samples := daily(date(2024, 1, 1), date(2025, 12, 31), func(d time.Time) int { return d.Day() % 11 })
	base := date(2025, 10, 12)

	for offset := 0; offset < 14; offset++ {
		today := base.AddDate(0, 0, offset)
		t.Run(today.Format(DateLayout), func(t *testing.T) {
			seq, err := Normalize(samples, today)
			require.NoError(t, err)
			assertAligned(t, seq)

			todayIdx := (Weeks-1)*DaysPerWeek + int(WeekdayOf(today))
			assert.Equal(t, today.Format(DateLayout), seq[todayIdx].Date)
			for i := todayIdx + 1; i < Days; i++ {
				assert.True(t, seq[i].IsPadding(), "index %d should be padding", i)
			}
			assert.False(t, seq[0].IsPadding())
			assert.Equal(t, Sunday, WeekdayAt(0))
		})
	}
}

func TestNormalizeShuffledInput(t *testing.T) {
	ordered := daily(date(2024, 3, 3), date(2025, 3, 8), func(d time.Time) int { return int(d.Month()) })
	shuffled := make([]Sample, 0, len(ordered))
	for i := len(ordered) - 1; i >= 0; i -= 2 {
		shuffled = append(shuffled, ordered[i])
	}
	for i := len(ordered) - 2; i >= 0; i -= 2 {
		shuffled = append(shuffled, ordered[i])
	}

	want, err := Normalize(ordered, date(2025, 3, 8))
	require.NoError(t, err)
	got, err := Normalize(shuffled, date(2025, 3, 8))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNormalizeDuplicateLastWins(t *testing.T) {
	samples := daily(date(2024, 1, 7), date(2025, 1, 11), nil)
	samples = append(samples,
		Sample{Date: "2024-06-05", Count: 2},
		Sample{Date: "2024-06-05", Count: 9},
	)

	seq, err := Normalize(samples, date(2025, 1, 11))
	require.NoError(t, err)

	var found []int
	for _, s := range seq {
		if s.Date == "2024-06-05" {
			found = append(found, s.Count)
		}
	}
	assert.Equal(t, []int{9}, found)
}

func TestNormalizeSparseInputFillsGaps(t *testing.T) {
	samples := []Sample{
		{Date: "2025-06-04", Count: 4},
		{Date: "2025-05-01", Count: 1},
		{Date: "2025-06-14", Count: 12},
	}

	seq, err := Normalize(samples, date(2025, 6, 14))
	require.NoError(t, err)
	assertAligned(t, seq)

	assert.Equal(t, "2025-06-14", seq[Days-1].Date)
	assert.Equal(t, 12, seq[Days-1].Count)
	assert.Equal(t, "2025-06-04", seq[Days-11].Date)
	assert.Equal(t, 4, seq[Days-11].Count)

	dated := 0
	for _, s := range seq {
		if !s.IsPadding() {
			dated++
		}
	}
	// 2025-05-01 is a Thursday: four leading padding days close its week.
	assert.Equal(t, 45, dated)
	assert.True(t, seq[Days-46-3].IsPadding())
	assert.Equal(t, "2025-05-01", seq[Days-45].Date)
}

func TestNormalizeShortHistoryPadsStart(t *testing.T) {
	samples := daily(date(2025, 3, 1), date(2025, 3, 31), func(time.Time) int { return 1 })

	seq, err := Normalize(samples, date(2026, 10, 18))
	require.NoError(t, err)
	assertAligned(t, seq)

	// 2025-03-31 is a Monday, so five padding days close the final week.
	assert.Equal(t, "2025-03-31", seq[Days-6].Date)
	assert.True(t, seq[0].IsPadding())
}
