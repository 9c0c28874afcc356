package levers

import "github.com/stratfit/scenario-cli/internal/model"

// ValuesFromBaseline derives catalog lever positions (0-100) from the
// baseline metrics. Metrics with a natural 0-100 reading map directly;
// the rest shift onto the scale so a typical healthy SaaS baseline lands
// mid-band. Callers can override any entry before analysis.
func ValuesFromBaseline(in model.BaselineInputs) map[string]float64 {
	in = in.Sanitize()

	burn := 50.0
	if in.ARR > 0 {
		// Annualized burn as a share of ARR, capped at 100.
		burn = clampValue(in.MonthlyBurn * 12 / in.ARR * 100)
	}

	return map[string]float64{
		"pricing-power":      clampValue(in.GrossMarginPct),
		"customer-retention": clampValue(in.NRRPct - 20),
		"sales-efficiency":   clampValue(in.Rule40 + 30),
		"product-velocity":   clampValue(in.GrowthPct),
		"market-expansion":   clampValue(in.GrowthPct / 2),
		"hiring-intensity":   burn,
		"burn-intensity":     burn,
		"debt-leverage":      0,
	}
}
