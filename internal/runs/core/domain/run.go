package domain

import (
	"encoding/json"
	"time"

	dashboard "firehose-dashboard/internal/dashboard/core/domain"
)

// Run is one pipeline execution as written to the status table.
type Run struct {
	Name       string
	ExecutedAt time.Time
	Counts     map[dashboard.Field]float64
}

type countEnvelope struct {
	Count float64 `json:"count"`
}

// Reason encodes Counts in the layout dashboard.ParseReason reads back,
// e.g. {"Clients_Device":{"count":120}}.
func (r *Run) Reason() (string, error) {
	payload := make(map[string]countEnvelope, len(r.Counts))
	for f, v := range r.Counts {
		payload[string(f)] = countEnvelope{Count: v}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
