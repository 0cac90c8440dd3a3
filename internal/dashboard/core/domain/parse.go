package domain

import (
	"bytes"
	"encoding/json"
)

// ParseReason extracts the three counts from a reason payload shaped like
// {"Clients_Device": {"count": 42, ...}, ...}.
//
// It never fails: undecodable text, non-object values and non-numeric counts
// all come back as absent fields.
func ParseReason(reason string) ParsedCounts {
	var out ParsedCounts

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(reason), &top); err != nil {
		return out
	}

	for _, f := range Fields {
		raw, ok := top[string(f)]
		if !ok {
			continue
		}
		out.set(f, extractCount(raw))
	}

	return out
}

func extractCount(raw json.RawMessage) Count {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return Absent()
	}

	countRaw, ok := obj["count"]
	if !ok {
		return Absent()
	}

	dec := json.NewDecoder(bytes.NewReader(countRaw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Absent()
	}

	// null, strings and booleans are not counts
	n, ok := v.(json.Number)
	if !ok {
		return Absent()
	}
	f, err := n.Float64()
	if err != nil {
		return Absent()
	}
	return Present(f)
}
