package insights

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"greenops-insights/internal/model"
)

// WriteSeriesCSV writes points to path as label,actual,predicted,target.
// Absent values are written as empty cells.
func WriteSeriesCSV(path string, points []model.ChartPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteSeries(f, points); err != nil {
		return err
	}
	return f.Close()
}

func WriteSeries(out io.Writer, points []model.ChartPoint) error {
	w := csv.NewWriter(out)

	header := []string{"label", "actual", "predicted", "target"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range points {
		row := []string{
			p.Label,
			fmtValue(p.Actual),
			fmtValue(p.Predicted),
			fmtValue(p.Target),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
