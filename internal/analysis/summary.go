package analysis

import (
	"greenops-insights/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultReferenceLoad is the daily consumption (kWh) treated as "typical"
// when scoring efficiency. It is an empirical default, not a measured quantity.
const DefaultReferenceLoad = 50.0

// DefaultRate is the electricity price per kWh used when the caller supplies none.
const DefaultRate = 0.12

var hundred = decimal.NewFromInt(100)

// Summarize reduces a reading set to summary statistics.
// Empty input yields the zero SummaryStats.
//
// EfficiencyScore is a heuristic, not a physical measurement: 100 at zero
// consumption, falling linearly to 0 once the average reaches referenceLoad.
// A non-positive referenceLoad falls back to DefaultReferenceLoad.
func Summarize(readings []model.Reading, rate, referenceLoad float64) model.SummaryStats {
	if len(readings) == 0 {
		return model.SummaryStats{}
	}
	total := sumKWh(readings)
	avg := total.Div(decimal.NewFromInt(int64(len(readings))))

	return model.SummaryStats{
		TotalKWh:        total.InexactFloat64(),
		AverageKWh:      avg.InexactFloat64(),
		EstimatedCost:   estimateCost(total, rate),
		EfficiencyScore: EfficiencyScore(avg.InexactFloat64(), referenceLoad),
	}
}

// EstimateCost returns totalKWh * rate rounded to 2 decimal places, halves
// away from zero.
func EstimateCost(totalKWh, rate float64) float64 {
	return estimateCost(decimal.NewFromFloat(totalKWh), rate)
}

func estimateCost(total decimal.Decimal, rate float64) float64 {
	return total.Mul(decimal.NewFromFloat(rate)).Round(2).InexactFloat64()
}

// EfficiencyScore computes clamp(100 - min(avg/referenceLoad*100, 100), 0, 100).
func EfficiencyScore(averageKWh, referenceLoad float64) float64 {
	if referenceLoad <= 0 {
		referenceLoad = DefaultReferenceLoad
	}
	loadPct := decimal.NewFromFloat(averageKWh).Div(decimal.NewFromFloat(referenceLoad)).Mul(hundred)
	if loadPct.GreaterThan(hundred) {
		loadPct = hundred
	}
	return clamp(hundred.Sub(loadPct).InexactFloat64(), 0, 100)
}

func sumKWh(readings []model.Reading) decimal.Decimal {
	total := decimal.Zero
	for _, r := range readings {
		total = total.Add(decimal.NewFromFloat(r.KWhConsumed))
	}
	return total
}

func meanKWh(readings []model.Reading) decimal.Decimal {
	if len(readings) == 0 {
		return decimal.Zero
	}
	return sumKWh(readings).Div(decimal.NewFromInt(int64(len(readings))))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
