package fiber

import (
	"time"

	"firehose-dashboard/internal/dashboard/core/domain"
	"firehose-dashboard/internal/dashboard/core/presenter"
)

type WindowResponse struct {
	Period int    `json:"period" example:"30"`
	Start  string `json:"start" example:"2024-01-01"`
	End    string `json:"end" example:"2024-01-30"`
}

// FieldValues carries one optional number per field; null means no data.
type FieldValues struct {
	ClientsDevice *float64 `json:"Clients_Device"`
	TagDevice     *float64 `json:"Tag_Device"`
	BLETags       *float64 `json:"BLE_Tags"`
}

type SeriesPointResponse struct {
	Date time.Time `json:"date"`
	FieldValues
}

type DailyCellResponse struct {
	Value   *float64 `json:"value"`
	Display string   `json:"display" example:"100.00"`
	Status  string   `json:"status" example:"green"`
}

type DailyRowResponse struct {
	Date          string            `json:"date" example:"2024-01-30"`
	ClientsDevice DailyCellResponse `json:"Clients_Device"`
	TagDevice     DailyCellResponse `json:"Tag_Device"`
	BLETags       DailyCellResponse `json:"BLE_Tags"`
}

type DashboardResponse struct {
	Window      WindowResponse        `json:"window"`
	TotalRuns   int                   `json:"total_runs"`
	Averages    FieldValues           `json:"averages"`
	Series      []SeriesPointResponse `json:"series"`
	Daily       []DailyRowResponse    `json:"daily"`
	GeneratedAt time.Time             `json:"generated_at"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_period"`
	Message string `json:"message,omitempty" example:"period must be an integer between 1 and 365"`
}

func optional(c domain.Count) *float64 {
	if !c.Valid {
		return nil
	}
	v := c.Value
	return &v
}

func fieldValues(get func(domain.Field) domain.Count) FieldValues {
	return FieldValues{
		ClientsDevice: optional(get(domain.FieldClientsDevice)),
		TagDevice:     optional(get(domain.FieldTagDevice)),
		BLETags:       optional(get(domain.FieldBLETags)),
	}
}

func dailyCell(c domain.Count) DailyCellResponse {
	return DailyCellResponse{
		Value:   optional(c),
		Display: presenter.FormatMean(c),
		Status:  string(domain.Classify(c)),
	}
}

func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Window: WindowResponse{
			Period: d.Window.Period,
			Start:  d.Window.Start.Format(domain.DayLayout),
			End:    d.Window.End.Format(domain.DayLayout),
		},
		TotalRuns:   d.TotalRuns,
		Averages:    fieldValues(d.Averages.Get),
		Series:      make([]SeriesPointResponse, 0, len(d.Series)),
		Daily:       make([]DailyRowResponse, 0, len(d.Daily)),
		GeneratedAt: d.GeneratedAt,
	}

	for _, p := range d.Series {
		resp.Series = append(resp.Series, SeriesPointResponse{
			Date:        p.Date,
			FieldValues: fieldValues(p.Counts.Get),
		})
	}

	for _, day := range d.Daily {
		resp.Daily = append(resp.Daily, DailyRowResponse{
			Date:          day.Label(),
			ClientsDevice: dailyCell(day.Means.ClientsDevice),
			TagDevice:     dailyCell(day.Means.TagDevice),
			BLETags:       dailyCell(day.Means.BLETags),
		})
	}

	return resp
}
