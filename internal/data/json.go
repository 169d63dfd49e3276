package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"greenops-insights/internal/model"
)

// DefaultBranch is the bucket for readings that carry no branch id.
const DefaultBranch = "default"

// envelope is the {"data": [...]} shape the reading store returns.
type envelope[T any] struct {
	Data []T `json:"data"`
}

// decodeList accepts either a bare JSON array or an object with a "data" array.
func decodeList[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []T{}, nil
	}
	return env.Data, nil
}

func DecodeReadings(raw []byte) ([]model.RawReading, error) {
	return decodeList[model.RawReading](raw)
}

func DecodeForecasts(raw []byte) ([]model.RawForecast, error) {
	return decodeList[model.RawForecast](raw)
}

// LoadReadingsFile loads raw readings from a .csv file, or from JSON for any
// other extension.
func LoadReadingsFile(path string) ([]model.RawReading, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		parsed, err := ParseReadingsCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return parsed.Rows, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := DecodeReadings(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func LoadForecastsFile(path string) ([]model.RawForecast, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := DecodeForecasts(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// GroupByBranch splits readings into branch-keyed slices, keeping input
// order within each branch. Readings without a branch go to DefaultBranch.
func GroupByBranch(readings []model.Reading) map[string][]model.Reading {
	out := map[string][]model.Reading{}
	for _, r := range readings {
		key := r.BranchID
		if key == "" {
			key = DefaultBranch
		}
		out[key] = append(out[key], r)
	}
	return out
}

// BranchIDs returns the keys of groups in ascending order.
func BranchIDs(groups map[string][]model.Reading) []string {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
