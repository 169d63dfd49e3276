package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"greenops-insights/internal/config"
	"greenops-insights/internal/data"
	"greenops-insights/internal/insights"
	"greenops-insights/internal/logger"
	"greenops-insights/internal/model"

	"github.com/guptarohit/asciigraph"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	logger.Setup(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			usage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "report":
		return cmdReport(args, out)
	case "summary":
		return cmdSummary(args, out)
	case "alerts":
		return cmdAlerts(args, out)
	case "series":
		return cmdSeries(args, out)
	case "branches":
		return cmdBranches(args, out)
	default:
		return errUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  cli report   --data readings.json [--forecasts forecasts.json] [--config insights.yaml]")
	fmt.Fprintln(w, "  cli summary  --data readings.csv --rate 0.15")
	fmt.Fprintln(w, "  cli alerts   --data readings.json --strict")
	fmt.Fprintln(w, "  cli series   --data readings.json --forecasts forecasts.json --out results/series.csv --plot")
	fmt.Fprintln(w, "  cli branches --data north.json,south.csv")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "notes:")
	fmt.Fprintln(w, "  - --data accepts comma-separated JSON or CSV files")
	fmt.Fprintln(w, "  - malformed readings are skipped and listed on stderr unless --strict is set")
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	data      *string
	forecasts *string
	config    *string
	strict    *bool
	rate      *float64
	history   *int
	forecast  *int

	fs *flag.FlagSet
}

// overrides returns the options given on the command line. Only flags that
// were passed are set, so an explicit 0 still reaches validation.
func (cf *commonFlags) overrides() config.InsightsConfig {
	var ic config.InsightsConfig
	cf.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rate":
			ic.Rate = cf.rate
		case "history":
			ic.HistoryWindow = cf.history
		case "forecast":
			ic.ForecastWindow = cf.forecast
		case "strict":
			ic.Strict = cf.strict
		}
	})
	return ic
}

func newFlagSet(name string) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cf := &commonFlags{
		data:      fs.String("data", "", "Comma-separated readings files (JSON or CSV)"),
		forecasts: fs.String("forecasts", "", "Optional: forecasts JSON file"),
		config:    fs.String("config", "", "Optional: path to YAML config"),
		strict:    fs.Bool("strict", false, "Fail on any malformed reading instead of skipping it"),
		rate:      fs.Float64("rate", 0, "Price per kWh (unset = config/default)"),
		history:   fs.Int("history", 0, "History window in readings (unset = config/default)"),
		forecast:  fs.Int("forecast", 0, "Forecast window in points (unset = config/default)"),
	}
	cf.fs = fs
	return fs, cf
}

// load resolves options and runs the engine's cleaning step.
func (cf *commonFlags) load() (*insights.Engine, *insights.Dataset, error) {
	if *cf.data == "" {
		return nil, nil, fmt.Errorf("--data is required")
	}

	opts := insights.DefaultOptions()
	if *cf.config != "" {
		c, err := config.Load(*cf.config)
		if err != nil {
			return nil, nil, err
		}
		opts = c.Options()
	}
	opts = cf.overrides().Apply(opts)

	engine, err := insights.New(opts)
	if err != nil {
		return nil, nil, err
	}

	var in insights.Input
	for _, p := range splitPaths(*cf.data) {
		rows, err := data.LoadReadingsFile(p)
		if err != nil {
			return nil, nil, err
		}
		in.Readings = append(in.Readings, rows...)
	}
	if *cf.forecasts != "" {
		in.Forecasts, err = data.LoadForecastsFile(*cf.forecasts)
		if err != nil {
			return nil, nil, err
		}
	}

	d, err := engine.Prepare(in)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range d.Rejected {
		logger.Warn("skipping malformed record", "kind", r.Kind, "index", r.Index, "field", r.Field, "reason", r.Reason)
	}
	return engine, d, nil
}

func cmdReport(args []string, out io.Writer) error {
	fs, cf := newFlagSet("report")
	if err := fs.Parse(args); err != nil {
		return err
	}
	engine, d, err := cf.load()
	if err != nil {
		return err
	}
	return writeJSON(out, engine.Analyze(d))
}

func cmdSummary(args []string, out io.Writer) error {
	fs, cf := newFlagSet("summary")
	if err := fs.Parse(args); err != nil {
		return err
	}
	engine, d, err := cf.load()
	if err != nil {
		return err
	}
	return writeJSON(out, engine.Summary(d))
}

func cmdAlerts(args []string, out io.Writer) error {
	fs, cf := newFlagSet("alerts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	engine, d, err := cf.load()
	if err != nil {
		return err
	}
	return writeJSON(out, engine.Alerts(d))
}

func cmdSeries(args []string, out io.Writer) error {
	fs, cf := newFlagSet("series")
	outPath := fs.String("out", "", "Optional: write the series as CSV to this path")
	plot := fs.Bool("plot", false, "Draw the series as an ASCII chart")
	height := fs.Int("height", 12, "Chart height in rows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	engine, d, err := cf.load()
	if err != nil {
		return err
	}
	points := engine.Series(d)

	if *outPath != "" {
		// ensure output dir exists
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			return err
		}
		if err := insights.WriteSeriesCSV(*outPath, points); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d points to %s\n", len(points), *outPath)
	}

	if *plot {
		fmt.Fprintln(out, plotSeries(points, *height))
		return nil
	}
	if *outPath == "" {
		return writeJSON(out, points)
	}
	return nil
}

func cmdBranches(args []string, out io.Writer) error {
	fs, cf := newFlagSet("branches")
	if err := fs.Parse(args); err != nil {
		return err
	}
	engine, d, err := cf.load()
	if err != nil {
		return err
	}

	groups := data.GroupByBranch(d.Readings)
	fmt.Fprintf(out, "%-16s %-8s %-12s %-10s %-8s %-10s %-6s\n", "branch", "count", "total_kwh", "avg_kwh", "cost$", "efficiency", "alerts")
	for _, id := range data.BranchIDs(groups) {
		res := engine.Analyze(&insights.Dataset{Readings: groups[id]})
		fmt.Fprintf(out, "%-16s %-8d %-12.2f %-10.2f %-8.2f %-10.1f %-6d\n",
			id,
			len(groups[id]),
			res.Summary.TotalKWh,
			res.Summary.AverageKWh,
			res.Summary.EstimatedCost,
			res.Summary.EfficiencyScore,
			res.AlertCounts.Total,
		)
	}
	return nil
}

// plotSeries draws actual, predicted and target as three lines. Absent
// values are NaN, which asciigraph leaves as gaps.
func plotSeries(points []model.ChartPoint, height int) string {
	actual := make([]float64, len(points))
	predicted := make([]float64, len(points))
	target := make([]float64, len(points))
	plotted := false
	for i, p := range points {
		actual[i] = orNaN(p.Actual)
		predicted[i] = orNaN(p.Predicted)
		target[i] = orNaN(p.Target)
		plotted = plotted || p.Actual != nil || p.Predicted != nil
	}
	if !plotted {
		return "(no readings or forecasts to plot)"
	}

	caption := fmt.Sprintf("kWh %s to %s: actual (green), predicted (blue), target (yellow)",
		points[0].Label, points[len(points)-1].Label)
	return asciigraph.PlotMany([][]float64{actual, predicted, target},
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Blue, asciigraph.Yellow),
	)
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
