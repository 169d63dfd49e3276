package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-date wire format for readings and forecasts.
const DateLayout = "2006-01-02"

// PeriodType is the span of time a reading covers.
// Keep these values stable; they are part of the wire format.
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

func (p PeriodType) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	default:
		return false
	}
}

// ParsePeriodType normalizes a wire value. An empty value means daily,
// which is what the manual entry form submits by default.
func ParsePeriodType(s string) (PeriodType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PeriodDaily, true
	}
	p := PeriodType(s)
	return p, p.Valid()
}

// Reading is one historical energy-consumption observation.
// Readings are values; nothing in this module mutates one after parsing.
type Reading struct {
	Date        time.Time
	KWhConsumed float64
	PeriodType  PeriodType
	BranchID    string
}

// Validate reports the first problem with r as a *MalformedReading.
// The returned error has Index 0; callers that know the position set it.
func (r Reading) Validate() error {
	if r.Date.IsZero() {
		return malformedReading("date", "missing")
	}
	if math.IsNaN(r.KWhConsumed) || math.IsInf(r.KWhConsumed, 0) {
		return malformedReading("kwh_consumed", "must be a finite number")
	}
	if r.KWhConsumed < 0 {
		return malformedReading("kwh_consumed", fmt.Sprintf("must be >= 0, got %g", r.KWhConsumed))
	}
	if !r.PeriodType.Valid() {
		return malformedReading("period_type", fmt.Sprintf("unknown period type %q", r.PeriodType))
	}
	return nil
}

// RawReading is the wire shape of a reading as the reading store, the manual
// entry form, or a CSV upload delivers it. Nothing here is trusted yet.
type RawReading struct {
	Date        string     `json:"date" yaml:"date"`
	KWhConsumed *float64   `json:"kwh_consumed" yaml:"kwh_consumed"`
	PeriodType  string     `json:"period_type,omitempty" yaml:"period_type"`
	BranchID    Identifier `json:"branch_id,omitempty" yaml:"branch_id"`

	mismatch *typeMismatch
}

// ParseReading converts raw into a Reading, or returns a *MalformedReading
// carrying index.
func ParseReading(index int, raw RawReading) (Reading, error) {
	if m := raw.mismatch; m != nil {
		return Reading{}, indexed(malformedReading(m.field, m.reason), index)
	}
	if strings.TrimSpace(raw.Date) == "" {
		return Reading{}, indexed(malformedReading("date", "missing"), index)
	}
	date, err := ParseDate(raw.Date)
	if err != nil {
		return Reading{}, indexed(malformedReading("date", err.Error()), index)
	}
	if raw.KWhConsumed == nil {
		return Reading{}, indexed(malformedReading("kwh_consumed", "missing"), index)
	}
	period, ok := ParsePeriodType(raw.PeriodType)
	if !ok {
		return Reading{}, indexed(malformedReading("period_type", fmt.Sprintf("unknown period type %q", raw.PeriodType)), index)
	}

	r := Reading{
		Date:        date,
		KWhConsumed: *raw.KWhConsumed,
		PeriodType:  period,
		BranchID:    strings.TrimSpace(string(raw.BranchID)),
	}
	if err := r.Validate(); err != nil {
		return Reading{}, indexed(err, index)
	}
	return r, nil
}

// ParseDate accepts YYYY-MM-DD or RFC3339. RFC3339 values are truncated to
// their calendar date in the offset they were written with.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable date %q (expected YYYY-MM-DD)", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Identifier is an opaque id that may arrive as a JSON string or number.
type Identifier string

func (id *Identifier) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = Identifier(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identifier must be a string or a number: %w", err)
	}
	*id = Identifier(n.String())
	return nil
}
