package model

import (
	"encoding/json"
)

// wireField is one key of a wire record and the value it decodes into.
type wireField struct {
	name   string
	dst    any
	reason string
}

// typeMismatch is a field whose JSON value had the wrong type.
type typeMismatch struct {
	field  string
	reason string
}

// decodeFields decodes a JSON object one field at a time. A value of the
// wrong type is returned as a mismatch so the rest of the batch still
// decodes; the record itself is reported by ParseReading or ParseForecast.
func decodeFields(b []byte, fields []wireField) *typeMismatch {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return &typeMismatch{field: "record", reason: "must be a JSON object"}
	}
	var first *typeMismatch
	for _, f := range fields {
		v, ok := obj[f.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil && first == nil {
			first = &typeMismatch{field: f.name, reason: f.reason}
		}
	}
	return first
}

func (r *RawReading) UnmarshalJSON(b []byte) error {
	*r = RawReading{}
	r.mismatch = decodeFields(b, []wireField{
		{"date", &r.Date, "must be a string"},
		{"kwh_consumed", &r.KWhConsumed, "must be a number"},
		{"period_type", &r.PeriodType, "must be a string"},
		{"branch_id", &r.BranchID, "must be a string or a number"},
	})
	return nil
}

func (f *RawForecast) UnmarshalJSON(b []byte) error {
	*f = RawForecast{}
	f.mismatch = decodeFields(b, []wireField{
		{"date", &f.Date, "must be a string"},
		{"predicted_kwh", &f.PredictedKWh, "must be a number"},
	})
	return nil
}
