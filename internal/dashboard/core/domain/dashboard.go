package domain

import (
	"sort"
	"time"
)

// Window is the trailing span of days considered for one render.
type Window struct {
	Period int       `json:"period"`
	Start  time.Time `json:"start"` // inclusive lower bound, midnight
	End    time.Time `json:"end"`
}

// NewWindow starts at midnight of now-(period-1) days, so the current day
// counts as the first day of the period.
func NewWindow(period int, now time.Time) Window {
	start := DayOf(now.AddDate(0, 0, -(period - 1)), now.Location())
	return Window{Period: period, Start: start, End: now}
}

type Dashboard struct {
	Window      Window           `json:"window"`
	TotalRuns   int              `json:"total_runs"`
	Averages    Means            `json:"averages"`
	Series      []ParsedRecord   `json:"series"` // ascending by date
	Daily       []DailyAggregate `json:"daily"`  // first-seen order of the fetch
	GeneratedAt time.Time        `json:"generated_at"`
}

// BuildDashboard runs parse and aggregate over records as fetched (newest
// first). The chart series is re-sorted oldest first; the daily grid keeps
// the fetch order.
func BuildDashboard(w Window, records []Record, loc *time.Location) *Dashboard {
	parsed := make([]ParsedRecord, 0, len(records))
	for _, r := range records {
		parsed = append(parsed, ParsedRecord{
			Date:   r.Date,
			Counts: ParseReason(r.Reason),
		})
	}

	daily := DailyMeans(parsed, loc)

	series := make([]ParsedRecord, len(parsed))
	copy(series, parsed)
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return &Dashboard{
		Window:      w,
		TotalRuns:   len(records),
		Averages:    GlobalMeans(parsed),
		Series:      series,
		Daily:       daily,
		GeneratedAt: w.End,
	}
}
