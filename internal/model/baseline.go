package model

import "math"

// Stage represents a company's funding stage.
type Stage string

const (
	StagePreSeed  Stage = "pre-seed"
	StageSeed     Stage = "seed"
	StageSeriesA  Stage = "series-a"
	StageSeriesB  Stage = "series-b"
	StageSeriesC  Stage = "series-c"
	StageGrowth   Stage = "growth"
)

// Stages lists all valid funding stages in order.
var Stages = []Stage{StagePreSeed, StageSeed, StageSeriesA, StageSeriesB, StageSeriesC, StageGrowth}

// Valid reports whether s is a known funding stage.
func (s Stage) Valid() bool {
	for _, v := range Stages {
		if s == v {
			return true
		}
	}
	return false
}

// Method selects the valuation methodology.
type Method string

const (
	MethodStratfit        Method = "stratfit"
	MethodDCF             Method = "dcf"
	MethodRevenueMultiple Method = "revenue-multiple"
	MethodComparables     Method = "comparables"
)

// Valid reports whether m is a known valuation method.
func (m Method) Valid() bool {
	switch m {
	case MethodStratfit, MethodDCF, MethodRevenueMultiple, MethodComparables:
		return true
	}
	return false
}

// BaselineInputs is a point-in-time snapshot of company financials.
// All percentage fields are expressed as whole percentages (e.g. 120 for
// 120% NRR). Rule40 may be negative; everything else is non-negative.
type BaselineInputs struct {
	ARR            float64 `json:"arr"`
	GrowthPct      float64 `json:"growth_pct"`
	NRRPct         float64 `json:"nrr_pct"`
	GrossMarginPct float64 `json:"gross_margin_pct"`
	Rule40         float64 `json:"rule40"`
	MonthlyBurn    float64 `json:"monthly_burn,omitempty"`
	CashOnHand     float64 `json:"cash_on_hand,omitempty"`
	Stage          Stage   `json:"stage"`
}

// Sanitize coerces non-finite or out-of-domain values to safe defaults.
// Inputs never produce errors downstream; degenerate values flow through
// the tier tables as zeros.
func (b BaselineInputs) Sanitize() BaselineInputs {
	b.ARR = coerceNonNegative(b.ARR)
	b.GrowthPct = coerceNonNegative(b.GrowthPct)
	b.NRRPct = coerceNonNegative(b.NRRPct)
	b.GrossMarginPct = coerceNonNegative(b.GrossMarginPct)
	b.MonthlyBurn = coerceNonNegative(b.MonthlyBurn)
	b.CashOnHand = coerceNonNegative(b.CashOnHand)
	b.Rule40 = coerceFinite(b.Rule40)
	if !b.Stage.Valid() {
		b.Stage = StageSeed
	}
	return b
}

func coerceNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func coerceFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
