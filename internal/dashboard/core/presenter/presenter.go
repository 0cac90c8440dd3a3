// Package presenter turns a built dashboard into a fixed sequence of render
// primitives. Surfaces (HTML page, spreadsheet) decide how each primitive is
// drawn.
package presenter

import (
	"fmt"
	"strconv"
	"time"

	"firehose-dashboard/internal/dashboard/core/domain"
)

const NotAvailable = "N/A"

type Metric struct {
	Label string
	Value string
}

type Point struct {
	At    time.Time
	Value domain.Count
}

type Series struct {
	Name   string
	Points []Point
}

type Chart struct {
	Series []Series
}

type Cell struct {
	Text   string
	Status domain.Status
}

type Row struct {
	Label string
	Cells []Cell
}

type Table struct {
	Columns []string // first column is the row label
	Rows    []Row
}

type LegendItem struct {
	Status  domain.Status
	Label   string
	Meaning string
}

type TextBlock struct {
	Heading string
	Items   []LegendItem
}

// Surface is the set of primitives a presentation target must support.
type Surface interface {
	Title(title, caption string)
	Metric(m Metric)
	MetricRow(ms []Metric)
	Header(text string)
	Subheader(text string)
	LineChart(c Chart)
	StyledTable(t Table)
	TextBlock(b TextBlock)
}

// Legend is the static explanation of the grid colors.
var Legend = TextBlock{
	Heading: "Legend:",
	Items: []LegendItem{
		{Status: domain.StatusGood, Label: "Green", Meaning: "Value >= 100 (Good)"},
		{Status: domain.StatusNeedsAttention, Label: "Red", Meaning: "Value < 100 (Needs Attention)"},
		{Status: domain.StatusNoData, Label: "Grey", Meaning: "No Data"},
	},
}

func FormatMean(c domain.Count) string {
	if !c.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(c.Value, 'f', 2, 64)
}

func TitleText(w domain.Window) (string, string) {
	title := fmt.Sprintf("Firehose Data Pipeline (%d days)", w.Period)
	caption := fmt.Sprintf("Period: %s to %s", w.Start.Format(domain.DayLayout), w.End.Format(domain.DayLayout))
	return title, caption
}

// Present draws d onto s in the dashboard's fixed order.
func Present(d *domain.Dashboard, s Surface) {
	s.Title(TitleText(d.Window))

	s.Metric(Metric{Label: "Number of times script executed", Value: strconv.Itoa(d.TotalRuns)})

	avgs := make([]Metric, 0, len(domain.Fields))
	for _, f := range domain.Fields {
		avgs = append(avgs, Metric{
			Label: fmt.Sprintf("Avg %s received", f),
			Value: FormatMean(d.Averages.Get(f)),
		})
	}
	s.MetricRow(avgs)

	s.LineChart(Chart{Series: SeriesOf(d, domain.Fields...)})

	s.Header("Individual Data Trends")
	for _, f := range domain.Fields {
		s.Subheader(string(f))
		s.LineChart(Chart{Series: SeriesOf(d, f)})
	}

	s.Header("Expanded Daily Breakup")
	s.StyledTable(DailyTable(d))

	s.TextBlock(Legend)
}

// SeriesOf builds one chart series per field at record granularity.
func SeriesOf(d *domain.Dashboard, fields ...domain.Field) []Series {
	out := make([]Series, 0, len(fields))
	for _, f := range fields {
		pts := make([]Point, 0, len(d.Series))
		for _, r := range d.Series {
			pts = append(pts, Point{At: r.Date, Value: r.Counts.Get(f)})
		}
		out = append(out, Series{Name: string(f), Points: pts})
	}
	return out
}

// DailyTable builds the grid: one row per aggregated day, one column per field.
func DailyTable(d *domain.Dashboard) Table {
	cols := []string{"Date"}
	for _, f := range domain.Fields {
		cols = append(cols, string(f))
	}

	rows := make([]Row, 0, len(d.Daily))
	for _, day := range d.Daily {
		cells := make([]Cell, 0, len(domain.Fields))
		for _, f := range domain.Fields {
			m := day.Means.Get(f)
			cells = append(cells, Cell{Text: FormatMean(m), Status: domain.Classify(m)})
		}
		rows = append(rows, Row{Label: day.Label(), Cells: cells})
	}

	return Table{Columns: cols, Rows: rows}
}
