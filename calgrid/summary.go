package calgrid

// Summary describes the real days of a Sequence.
type Summary struct {
	First      string
	Last       string
	Total      int
	ActiveDays int
	Busiest    Sample
}

func Summarize(seq Sequence) Summary {
	var s Summary
	for _, d := range seq {
		if d.IsPadding() {
			continue
		}
		if s.First == "" {
			s.First = d.Date
		}
		s.Last = d.Date
		s.Total += d.Count
		if d.Count > 0 {
			s.ActiveDays++
		}
		if d.Count > s.Busiest.Count {
			s.Busiest = d
		}
	}
	return s
}
