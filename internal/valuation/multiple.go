// Package valuation derives ARR multiples and enterprise values from
// baseline financial inputs via tiered lookup tables.
package valuation

import (
	"math"

	"go.uber.org/zap"

	"github.com/stratfit/scenario-cli/internal/model"
)

// stageMultipliers adjusts the multiple for funding-stage risk.
var stageMultipliers = map[model.Stage]float64{
	model.StagePreSeed: 0.70,
	model.StageSeed:    0.85,
	model.StageSeriesA: 1.00,
	model.StageSeriesB: 1.05,
	model.StageSeriesC: 1.10,
	model.StageGrowth:  1.15,
}

// methodModifiers adjusts the multiple for the selected methodology.
var methodModifiers = map[model.Method]float64{
	model.MethodStratfit:        1.00,
	model.MethodDCF:             0.92,
	model.MethodRevenueMultiple: 1.05,
	model.MethodComparables:     0.97,
}

// band is the sane range a stage's final multiple is clamped to.
type band struct {
	min, max float64
}

// stageBands prevents absurd multiples for extreme inputs.
var stageBands = map[model.Stage]band{
	model.StagePreSeed: {2, 10},
	model.StageSeed:    {3, 12},
	model.StageSeriesA: {4, 15},
	model.StageSeriesB: {5, 18},
	model.StageSeriesC: {5, 20},
	model.StageGrowth:  {6, 25},
}

// baseMultiple returns the growth-tier base multiple. Tier boundaries are
// inclusive on the lower bound: a value exactly at a boundary takes the
// higher tier.
func baseMultiple(growthPct float64) float64 {
	switch {
	case growthPct >= 100:
		return 15
	case growthPct >= 75:
		return 12
	case growthPct >= 50:
		return 9
	case growthPct >= 30:
		return 7
	default:
		return 5
	}
}

// nrrMultiplier rewards net revenue retention above 100% and penalizes churn.
func nrrMultiplier(nrrPct float64) float64 {
	switch {
	case nrrPct >= 130:
		return 1.30
	case nrrPct >= 120:
		return 1.20
	case nrrPct >= 110:
		return 1.10
	case nrrPct < 100:
		return 0.80
	default:
		return 1.0
	}
}

// marginMultiplier adjusts for gross margin quality.
func marginMultiplier(marginPct float64) float64 {
	switch {
	case marginPct >= 80:
		return 1.15
	case marginPct >= 70:
		return 1.05
	case marginPct < 60:
		return 0.85
	default:
		return 1.0
	}
}

// rule40Multiplier adjusts for the growth-plus-margin health heuristic.
func rule40Multiplier(rule40 float64) float64 {
	switch {
	case rule40 >= 60:
		return 1.25
	case rule40 >= 40:
		return 1.10
	case rule40 < 20:
		return 0.80
	default:
		return 1.0
	}
}

// Compute derives a ValuationMultiple from baseline inputs and a method.
// The computation is fully deterministic; inputs are sanitized rather than
// rejected, so there are no error conditions.
func Compute(inputs model.BaselineInputs, method model.Method) model.ValuationMultiple {
	inputs = inputs.Sanitize()
	if !method.Valid() {
		method = model.MethodStratfit
	}

	m := model.ValuationMultiple{
		BaseMultiple:     baseMultiple(inputs.GrowthPct),
		NRRMultiplier:    nrrMultiplier(inputs.NRRPct),
		MarginMultiplier: marginMultiplier(inputs.GrossMarginPct),
		Rule40Multiplier: rule40Multiplier(inputs.Rule40),
		StageMultiplier:  stageMultipliers[inputs.Stage],
		MethodModifier:   methodModifiers[method],
	}

	m.RawMultiple = m.BaseMultiple * m.NRRMultiplier * m.MarginMultiplier *
		m.Rule40Multiplier * m.StageMultiplier * m.MethodModifier

	b := stageBands[inputs.Stage]
	m.MinMultiple = b.min
	m.MaxMultiple = b.max
	m.FinalMultiple = clamp(m.RawMultiple, b.min, b.max)
	m.Clamped = m.FinalMultiple != m.RawMultiple

	// Round to 2 decimal places for stable display and persistence.
	m.RawMultiple = round2(m.RawMultiple)
	m.FinalMultiple = round2(m.FinalMultiple)

	return m
}

// Value computes the full valuation (multiple plus implied enterprise value).
func Value(inputs model.BaselineInputs, method model.Method) model.Valuation {
	inputs = inputs.Sanitize()
	if !method.Valid() {
		method = model.MethodStratfit
	}
	m := Compute(inputs, method)

	v := model.Valuation{
		Inputs:          inputs,
		Method:          method,
		Multiple:        m,
		EnterpriseValue: math.Round(inputs.ARR * m.FinalMultiple),
	}

	zap.L().Debug("valuation: computed",
		zap.Float64("arr", inputs.ARR),
		zap.String("stage", string(inputs.Stage)),
		zap.String("method", string(method)),
		zap.Float64("final_multiple", m.FinalMultiple),
		zap.Float64("enterprise_value", v.EnterpriseValue),
	)

	return v
}

// StageBand returns the [min,max] multiple band for a stage.
func StageBand(stage model.Stage) (min, max float64) {
	b := stageBands[stage]
	return b.min, b.max
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
