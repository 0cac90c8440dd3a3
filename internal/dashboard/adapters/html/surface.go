package html

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"firehose-dashboard/internal/dashboard/core/domain"
	"firehose-dashboard/internal/dashboard/core/presenter"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

const pointLayout = "2006-01-02 15:04:05"

var seriesColors = map[string]string{
	string(domain.FieldClientsDevice): "#1f77b4",
	string(domain.FieldTagDevice):     "#ff7f0e",
	string(domain.FieldBLETags):       "#2ca02c",
}

type block struct {
	Kind    string
	Text    string
	Caption string
	Metrics []presenter.Metric
	Chart   chartData
	Table   presenter.Table
	Legend  presenter.TextBlock
}

type chartData struct {
	ID       string
	Labels   []string
	Datasets []dataset
}

type dataset struct {
	Label       string     `json:"label"`
	Data        []*float64 `json:"data"`
	BorderColor string     `json:"borderColor"`
	SpanGaps    bool       `json:"spanGaps"`
}

type page struct {
	Title     string
	Blocks    []block
	Generated string
}

// Surface collects presenter primitives and renders them as one HTML page.
type Surface struct {
	title  string
	blocks []block
	charts int
}

var _ presenter.Surface = (*Surface)(nil)

func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) Title(title, caption string) {
	if s.title == "" {
		s.title = title
	}
	s.blocks = append(s.blocks, block{Kind: "title", Text: title, Caption: caption})
}

func (s *Surface) Metric(m presenter.Metric) {
	s.blocks = append(s.blocks, block{Kind: "metrics", Metrics: []presenter.Metric{m}})
}

func (s *Surface) MetricRow(ms []presenter.Metric) {
	s.blocks = append(s.blocks, block{Kind: "metrics", Metrics: ms})
}

func (s *Surface) Header(text string) {
	s.blocks = append(s.blocks, block{Kind: "header", Text: text})
}

func (s *Surface) Subheader(text string) {
	s.blocks = append(s.blocks, block{Kind: "subheader", Text: text})
}

func (s *Surface) LineChart(c presenter.Chart) {
	s.charts++
	s.blocks = append(s.blocks, block{Kind: "chart", Chart: toChartData(fmt.Sprintf("chart-%d", s.charts), c)})
}

func (s *Surface) StyledTable(t presenter.Table) {
	s.blocks = append(s.blocks, block{Kind: "table", Table: t})
}

func (s *Surface) TextBlock(b presenter.TextBlock) {
	s.blocks = append(s.blocks, block{Kind: "legend", Legend: b})
}

// Error appends a visible error state.
func (s *Surface) Error(message string) {
	s.blocks = append(s.blocks, block{Kind: "error", Text: message})
}

func (s *Surface) Render(w io.Writer, generated time.Time) error {
	p := page{Title: s.title, Blocks: s.blocks}
	if p.Title == "" {
		p.Title = "Firehose Data Pipeline"
	}
	if !generated.IsZero() {
		p.Generated = generated.Format(time.RFC3339)
	}
	return pageTemplate.Execute(w, p)
}

// RenderDashboard presents d onto a fresh surface and returns the page.
func RenderDashboard(d *domain.Dashboard) ([]byte, error) {
	s := NewSurface()
	presenter.Present(d, s)

	var buf bytes.Buffer
	if err := s.Render(&buf, d.GeneratedAt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RenderError(message string) ([]byte, error) {
	s := NewSurface()
	s.Title("Firehose Data Pipeline", "")
	s.Error(message)

	var buf bytes.Buffer
	if err := s.Render(&buf, time.Time{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toChartData(id string, c presenter.Chart) chartData {
	cd := chartData{ID: id, Labels: []string{}, Datasets: []dataset{}}
	if len(c.Series) == 0 {
		return cd
	}

	// all series share the record timestamps
	for _, p := range c.Series[0].Points {
		cd.Labels = append(cd.Labels, p.At.Format(pointLayout))
	}

	for _, series := range c.Series {
		ds := dataset{
			Label:       series.Name,
			Data:        make([]*float64, 0, len(series.Points)),
			BorderColor: seriesColors[series.Name],
			SpanGaps:    true,
		}
		for _, p := range series.Points {
			if !p.Value.Valid {
				ds.Data = append(ds.Data, nil)
				continue
			}
			v := p.Value.Value
			ds.Data = append(ds.Data, &v)
		}
		cd.Datasets = append(cd.Datasets, ds)
	}
	return cd
}
