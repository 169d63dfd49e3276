package model

import (
	"errors"
	"fmt"
)

// ErrMalformedReading matches every *MalformedReading via errors.Is.
var ErrMalformedReading = errors.New("malformed reading")

// Record kinds reported in MalformedReading.Kind.
const (
	KindReading  = "reading"
	KindForecast = "forecast"
)

// MalformedReading describes one input record that cannot take part in a
// computation: a negative value, an unparsable date, or a missing field.
type MalformedReading struct {
	Index  int    `json:"index"`
	Kind   string `json:"kind"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *MalformedReading) Error() string {
	return fmt.Sprintf("%s %d: %s: %s", e.Kind, e.Index, e.Field, e.Reason)
}

func (e *MalformedReading) Is(target error) bool {
	return target == ErrMalformedReading
}

func malformedReading(field, reason string) *MalformedReading {
	return &MalformedReading{Kind: KindReading, Field: field, Reason: reason}
}

func malformedForecast(field, reason string) *MalformedReading {
	return &MalformedReading{Kind: KindForecast, Field: field, Reason: reason}
}
