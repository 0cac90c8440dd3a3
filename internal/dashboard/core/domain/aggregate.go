package domain

import (
	"time"
)

const DayLayout = "2006-01-02"

// GoodThreshold is the inclusive lower bound of a healthy daily mean.
const GoodThreshold = 100.0

type Status string

const (
	StatusNoData         Status = "grey"
	StatusNeedsAttention Status = "red"
	StatusGood           Status = "green"
)

func Classify(c Count) Status {
	if !c.Valid {
		return StatusNoData
	}
	if c.Value < GoodThreshold {
		return StatusNeedsAttention
	}
	return StatusGood
}

// Means holds one optional mean per field.
type Means struct {
	ClientsDevice Count `json:"clients_device"`
	TagDevice     Count `json:"tag_device"`
	BLETags       Count `json:"ble_tags"`
}

func (m Means) Get(f Field) Count {
	return ParsedCounts(m).Get(f)
}

// ParsedRecord is a record after its reason has been decoded.
type ParsedRecord struct {
	Date   time.Time    `json:"date"`
	Counts ParsedCounts `json:"counts"`
}

// DailyAggregate is the per-field mean over every record of one calendar day.
type DailyAggregate struct {
	Day   time.Time `json:"day"` // midnight, in the grouping location
	Means Means     `json:"means"`
}

func (d DailyAggregate) Label() string {
	return d.Day.Format(DayLayout)
}

// meanAcc keeps a running mean so finite inputs never overflow to Inf.
type meanAcc struct {
	avg float64
	n   int
}

func (a *meanAcc) add(c Count) {
	if !c.Valid {
		return
	}
	a.n++
	a.avg += (c.Value - a.avg) / float64(a.n)
}

func (a meanAcc) mean() Count {
	if a.n == 0 {
		return Absent()
	}
	return Present(a.avg)
}

type fieldAccs [3]meanAcc

func (fa *fieldAccs) add(p ParsedCounts) {
	for i, f := range Fields {
		fa[i].add(p.Get(f))
	}
}

func (fa fieldAccs) means() Means {
	var out ParsedCounts
	for i, f := range Fields {
		out.set(f, fa[i].mean())
	}
	return Means(out)
}

// GlobalMeans averages every present value per field. An empty input or a
// field with no present values yields an absent mean.
func GlobalMeans(records []ParsedRecord) Means {
	var accs fieldAccs
	for _, r := range records {
		accs.add(r.Counts)
	}
	return accs.means()
}

// DayOf truncates t to midnight of its calendar date in loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DailyMeans groups records by calendar date in loc. Days appear in the order
// they are first seen in records; only days with at least one record exist.
func DailyMeans(records []ParsedRecord, loc *time.Location) []DailyAggregate {
	index := make(map[string]int)
	days := make([]time.Time, 0)
	accs := make([]fieldAccs, 0)

	for _, r := range records {
		day := DayOf(r.Date, loc)
		key := day.Format(DayLayout)

		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, day)
			accs = append(accs, fieldAccs{})
		}
		accs[i].add(r.Counts)
	}

	out := make([]DailyAggregate, 0, len(days))
	for i, day := range days {
		out = append(out, DailyAggregate{Day: day, Means: accs[i].means()})
	}
	return out
}
