package insights

import (
	"errors"

	"greenops-insights/internal/analysis"
	"greenops-insights/internal/logger"
	"greenops-insights/internal/model"
)

// Engine runs the analysis components with a fixed set of options.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	opts Options
}

func New(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

func (e *Engine) Options() Options { return e.opts }

// Input is an untrusted request: readings and forecasts as they arrived.
type Input struct {
	Readings  []model.RawReading  `json:"readings"`
	Forecasts []model.RawForecast `json:"forecasts,omitempty"`
}

// Dataset is the cleaned form of an Input. Rejected lists every record that
// was dropped, in input order, readings before forecasts.
type Dataset struct {
	Readings  []model.Reading
	Forecasts []model.ForecastPoint
	Rejected  []*MalformedReading
}

// Result is the full set of derived insight for one dataset.
type Result struct {
	Summary     model.SummaryStats   `json:"summary"`
	Alerts      []model.Alert        `json:"alerts"`
	AlertCounts analysis.AlertCounts `json:"alert_counts"`
	Series      []model.ChartPoint   `json:"series"`
	Rejected    []*MalformedReading  `json:"rejected"`
}

// Prepare parses in. Malformed records are dropped and reported in
// Dataset.Rejected, or fail the call with a *ValidationError in strict mode.
func (e *Engine) Prepare(in Input) (*Dataset, error) {
	d := &Dataset{
		Readings:  make([]model.Reading, 0, len(in.Readings)),
		Forecasts: make([]model.ForecastPoint, 0, len(in.Forecasts)),
		Rejected:  []*MalformedReading{},
	}
	for i, raw := range in.Readings {
		r, err := model.ParseReading(i, raw)
		if err != nil {
			d.reject(err)
			continue
		}
		d.Readings = append(d.Readings, r)
	}
	for i, raw := range in.Forecasts {
		f, err := model.ParseForecast(i, raw)
		if err != nil {
			d.reject(err)
			continue
		}
		d.Forecasts = append(d.Forecasts, f)
	}
	return e.finish(d)
}

func (e *Engine) finish(d *Dataset) (*Dataset, error) {
	logger.Debug("insights input cleaned",
		"readings", len(d.Readings),
		"forecasts", len(d.Forecasts),
		"rejected", len(d.Rejected),
		"strict", e.opts.Strict,
	)
	if e.opts.Strict && len(d.Rejected) > 0 {
		return nil, &ValidationError{Problems: d.Rejected}
	}
	return d, nil
}

func (d *Dataset) reject(err error) {
	var mr *MalformedReading
	if errors.As(err, &mr) {
		d.Rejected = append(d.Rejected, mr)
	}
}

func (e *Engine) Summary(d *Dataset) model.SummaryStats {
	return analysis.Summarize(d.Readings, e.opts.Rate, e.opts.ReferenceLoad)
}

// Alerts returns the dataset's alerts in display order.
func (e *Engine) Alerts(d *Dataset) []model.Alert {
	return analysis.SortBySeverity(analysis.GenerateAlerts(d.Readings, e.opts.Thresholds()))
}

func (e *Engine) Series(d *Dataset) []model.ChartPoint {
	return analysis.MergeSeries(d.Readings, d.Forecasts, e.opts.HistoryWindow, e.opts.ForecastWindow, e.opts.EfficiencyRatio)
}

// Analyze runs every component over d.
func (e *Engine) Analyze(d *Dataset) *Result {
	alerts := e.Alerts(d)
	return &Result{
		Summary:     e.Summary(d),
		Alerts:      alerts,
		AlertCounts: analysis.CountAlerts(alerts),
		Series:      e.Series(d),
		Rejected:    d.Rejected,
	}
}

// Run is Prepare followed by Analyze.
func (e *Engine) Run(in Input) (*Result, error) {
	d, err := e.Prepare(in)
	if err != nil {
		return nil, err
	}
	return e.Analyze(d), nil
}
