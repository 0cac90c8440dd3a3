package domain

import "time"

// DefaultStatusName is the status row the firehose script writes on every run.
const DefaultStatusName = "Detect and Locate"

type Field string

const (
	FieldClientsDevice Field = "Clients_Device"
	FieldTagDevice     Field = "Tag_Device"
	FieldBLETags       Field = "BLE_Tags"
)

// Fields lists the tracked fields in display order.
var Fields = []Field{FieldClientsDevice, FieldTagDevice, FieldBLETags}

func IsKnownField(name string) bool {
	for _, f := range Fields {
		if string(f) == name {
			return true
		}
	}
	return false
}

// Record is one row of the status table.
type Record struct {
	Name   string
	Date   time.Time
	Reason string // raw JSON text, possibly malformed
}

// Count is an optional numeric value. The zero value is absent.
type Count struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

func Present(v float64) Count {
	return Count{Value: v, Valid: true}
}

func Absent() Count {
	return Count{}
}

type ParsedCounts struct {
	ClientsDevice Count `json:"clients_device"`
	TagDevice     Count `json:"tag_device"`
	BLETags       Count `json:"ble_tags"`
}

func (p ParsedCounts) Get(f Field) Count {
	switch f {
	case FieldClientsDevice:
		return p.ClientsDevice
	case FieldTagDevice:
		return p.TagDevice
	case FieldBLETags:
		return p.BLETags
	default:
		return Absent()
	}
}

func (p *ParsedCounts) set(f Field, c Count) {
	switch f {
	case FieldClientsDevice:
		p.ClientsDevice = c
	case FieldTagDevice:
		p.TagDevice = c
	case FieldBLETags:
		p.BLETags = c
	}
}
