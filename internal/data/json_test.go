package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"greenops-insights/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReadingsShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"date":"2024-01-01","kwh_consumed":1}]`, 1},
		{"envelope", `{"data":[{"date":"2024-01-01","kwh_consumed":1},{"date":"2024-01-02","kwh_consumed":2}]}`, 2},
		{"envelope without data", `{"message":"none"}`, 0},
		{"empty body", ``, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeReadings([]byte(tt.body))
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}

	_, err := DecodeReadings([]byte(`{"data": 4}`))
	assert.Error(t, err)
}

func TestDecodeReadingsKeepsGoodRecords(t *testing.T) {
	rows, err := DecodeReadings([]byte(`[
		{"date":"2024-01-01","kwh_consumed":10},
		{"date":"2024-01-02","kwh_consumed":"12.5"},
		{"date":20240103,"kwh_consumed":3}
	]`))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	_, err = model.ParseReading(0, rows[0])
	assert.NoError(t, err)
	_, err = model.ParseReading(1, rows[1])
	assert.ErrorIs(t, err, model.ErrMalformedReading)
	_, err = model.ParseReading(2, rows[2])
	assert.ErrorIs(t, err, model.ErrMalformedReading)
}

func TestLoadReadingsFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "readings.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"date":"2024-01-01","kwh_consumed":4.5,"branch_id":3}]`), 0o644))
	rows, err := LoadReadingsFile(jsonPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4.5, *rows[0].KWhConsumed)
	assert.Equal(t, model.Identifier("3"), rows[0].BranchID)

	csvPath := filepath.Join(dir, "readings.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,kwh_consumed\n2024-01-01,7\n2024-01-02,8\n"), 0o644))
	rows, err = LoadReadingsFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = LoadReadingsFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadForecastsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecasts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data":[{"date":"2024-02-01","predicted_kwh":12}]}`), 0o644))

	rows, err := LoadForecastsFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-02-01", rows[0].Date)
	assert.Equal(t, 12.0, *rows[0].PredictedKWh)
}

func TestGroupByBranch(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []model.Reading{
		{Date: d, KWhConsumed: 1, BranchID: "north"},
		{Date: d, KWhConsumed: 2},
		{Date: d, KWhConsumed: 3, BranchID: "east"},
		{Date: d, KWhConsumed: 4, BranchID: "north"},
	}

	groups := GroupByBranch(readings)
	assert.Equal(t, []string{DefaultBranch, "east", "north"}, BranchIDs(groups))
	require.Len(t, groups["north"], 2)
	assert.Equal(t, 1.0, groups["north"][0].KWhConsumed)
	assert.Equal(t, 4.0, groups["north"][1].KWhConsumed)
	assert.Len(t, groups[DefaultBranch], 1)

	assert.Empty(t, GroupByBranch(nil))
}
