package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"greenops-insights/internal/model"
)

// ErrInvalidCSV is wrapped by every structural CSV problem (as opposed to a
// bad value in one row, which is left for the engine to reject).
var ErrInvalidCSV = errors.New("invalid csv")

// CSV column names. ColumnBranchName is accepted as an alias of ColumnBranchID.
const (
	ColumnDate        = "date"
	ColumnKWhConsumed = "kwh_consumed"
	ColumnPeriodType  = "period_type"
	ColumnBranchID    = "branch_id"
	ColumnBranchName  = "branch_name"
)

// CSVReadings is the result of parsing an uploaded readings file.
type CSVReadings struct {
	Columns []string
	Rows    []model.RawReading
}

// ParseReadingsCSV reads a header row followed by one reading per row.
// Columns may appear in any order; unknown columns are ignored. A kwh cell
// that is not a number is carried as NaN so the row keeps its position and
// is rejected downstream like any other malformed reading.
func ParseReadingsCSV(r io.Reader) (*CSVReadings, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	columns := make([]string, len(header))
	idx := map[string]int{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		columns[i] = name
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	if _, ok := idx[ColumnBranchID]; !ok {
		if i, ok := idx[ColumnBranchName]; ok {
			idx[ColumnBranchID] = i
		}
	}
	for _, required := range []string{ColumnDate, ColumnKWhConsumed} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrInvalidCSV, required)
		}
	}

	out := &CSVReadings{Columns: columns, Rows: []model.RawReading{}}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		if blank(rec) {
			continue
		}
		out.Rows = append(out.Rows, model.RawReading{
			Date:        cell(rec, idx, ColumnDate),
			KWhConsumed: parseKWh(cell(rec, idx, ColumnKWhConsumed)),
			PeriodType:  cell(rec, idx, ColumnPeriodType),
			BranchID:    model.Identifier(cell(rec, idx, ColumnBranchID)),
		})
	}
	return out, nil
}

// WithBranch sets branch on every row that has none.
func (c *CSVReadings) WithBranch(branch string) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return
	}
	for i := range c.Rows {
		if c.Rows[i].BranchID == "" {
			c.Rows[i].BranchID = model.Identifier(branch)
		}
	}
}

func cell(rec []string, idx map[string]int, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseKWh(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v = math.NaN()
	}
	return &v
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
