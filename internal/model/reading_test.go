package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestParseReading(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawReading
		wantField string
		want      Reading
	}{
		{
			name: "daily default",
			raw:  RawReading{Date: "2024-03-01", KWhConsumed: ptr(12.5)},
			want: Reading{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), KWhConsumed: 12.5, PeriodType: PeriodDaily},
		},
		{
			name: "monthly with branch",
			raw:  RawReading{Date: "2024-03-01", KWhConsumed: ptr(900), PeriodType: "Monthly", BranchID: " b1 "},
			want: Reading{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), KWhConsumed: 900, PeriodType: PeriodMonthly, BranchID: "b1"},
		},
		{
			name: "rfc3339 truncated",
			raw:  RawReading{Date: "2024-03-01T23:30:00+02:00", KWhConsumed: ptr(0)},
			want: Reading{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), KWhConsumed: 0, PeriodType: PeriodDaily},
		},
		{name: "missing date", raw: RawReading{KWhConsumed: ptr(1)}, wantField: "date"},
		{name: "bad date", raw: RawReading{Date: "03/01/2024", KWhConsumed: ptr(1)}, wantField: "date"},
		{name: "missing value", raw: RawReading{Date: "2024-03-01"}, wantField: "kwh_consumed"},
		{name: "negative value", raw: RawReading{Date: "2024-03-01", KWhConsumed: ptr(-1)}, wantField: "kwh_consumed"},
		{name: "nan", raw: RawReading{Date: "2024-03-01", KWhConsumed: ptr(math.NaN())}, wantField: "kwh_consumed"},
		{name: "unknown period", raw: RawReading{Date: "2024-03-01", KWhConsumed: ptr(1), PeriodType: "hourly"}, wantField: "period_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReading(4, tt.raw)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedReading))

			var mr *MalformedReading
			require.True(t, errors.As(err, &mr))
			assert.Equal(t, 4, mr.Index)
			assert.Equal(t, KindReading, mr.Kind)
			assert.Equal(t, tt.wantField, mr.Field)
		})
	}
}

func TestParseForecast(t *testing.T) {
	f, err := ParseForecast(0, RawForecast{Date: "2024-04-02", PredictedKWh: ptr(33)})
	require.NoError(t, err)
	assert.Equal(t, 33.0, f.PredictedKWh)
	assert.Equal(t, time.April, f.Date.Month())

	_, err = ParseForecast(2, RawForecast{Date: "2024-04-02", PredictedKWh: ptr(-3)})
	var mr *MalformedReading
	require.True(t, errors.As(err, &mr))
	assert.Equal(t, KindForecast, mr.Kind)
	assert.Equal(t, 2, mr.Index)
	assert.Equal(t, "forecast 2: predicted_kwh: must be >= 0, got -3", mr.Error())

	_, err = ParseForecast(1, RawForecast{PredictedKWh: ptr(3)})
	require.True(t, errors.As(err, &mr))
	assert.Equal(t, "date", mr.Field)
}

func TestDecodeMistypedFields(t *testing.T) {
	var raws []RawReading
	require.NoError(t, json.Unmarshal([]byte(`[
		{"date":"2024-01-01","kwh_consumed":10},
		{"date":"2024-01-02","kwh_consumed":"12.5"},
		{"date":20240103,"kwh_consumed":3},
		{"date":"2024-01-04","kwh_consumed":4,"branch_id":true},
		7
	]`), &raws))
	require.Len(t, raws, 5)

	_, err := ParseReading(0, raws[0])
	require.NoError(t, err)

	for i, field := range map[int]string{1: "kwh_consumed", 2: "date", 3: "branch_id", 4: "record"} {
		_, err := ParseReading(i, raws[i])
		var mr *MalformedReading
		require.True(t, errors.As(err, &mr), field)
		assert.Equal(t, i, mr.Index)
		assert.Equal(t, field, mr.Field)
	}

	var forecasts []RawForecast
	require.NoError(t, json.Unmarshal([]byte(`[{"date":"2024-01-05","predicted_kwh":"9"},{"date":"2024-01-06","predicted_kwh":9}]`), &forecasts))
	_, err = ParseForecast(0, forecasts[0])
	var mr *MalformedReading
	require.True(t, errors.As(err, &mr))
	assert.Equal(t, KindForecast, mr.Kind)
	assert.Equal(t, "predicted_kwh", mr.Field)
	_, err = ParseForecast(1, forecasts[1])
	assert.NoError(t, err)
}

func TestParsePeriodType(t *testing.T) {
	for in, want := range map[string]PeriodType{"": PeriodDaily, "weekly": PeriodWeekly, " MONTHLY ": PeriodMonthly} {
		got, ok := ParsePeriodType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParsePeriodType("yearly")
	assert.False(t, ok)
}

func TestRawReadingJSON(t *testing.T) {
	var rows []RawReading
	body := `[
		{"date":"2024-01-01","kwh_consumed":10,"branch_id":7},
		{"date":"2024-01-02","kwh_consumed":11,"branch_id":"north"},
		{"date":"2024-01-03","kwh_consumed":12,"branch_id":null},
		{"date":"2024-01-04"}
	]`
	require.NoError(t, json.Unmarshal([]byte(body), &rows))
	require.Len(t, rows, 4)

	assert.Equal(t, Identifier("7"), rows[0].BranchID)
	assert.Equal(t, Identifier("north"), rows[1].BranchID)
	assert.Equal(t, Identifier(""), rows[2].BranchID)
	assert.Nil(t, rows[3].KWhConsumed)

	var id Identifier
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestSeverityRank(t *testing.T) {
	assert.Greater(t, SeverityCritical.Rank(), SeverityHigh.Rank())
	assert.Greater(t, SeverityHigh.Rank(), SeverityWarning.Rank())
	assert.Greater(t, SeverityWarning.Rank(), SeverityInfo.Rank())
	assert.Equal(t, -1, Severity("bogus").Rank())
}
