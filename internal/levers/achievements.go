package levers

import (
	"math"

	"github.com/stratfit/scenario-cli/internal/model"
)

// achievements evaluates the fixed milestone set. Progress and Unlocked are
// deliberately independent: Progress is a display percentage derived from a
// milestone-specific formula, while Unlocked is a boolean predicate over the
// raw inputs, so Progress can reach 100 with the milestone still locked.
func (a *Analyzer) achievements(values map[string]float64, summary model.FinancialSummary) []model.Achievement {
	retention := clampValue(values["customer-retention"])
	burn := clampValue(values["burn-intensity"])
	sales := clampValue(values["sales-efficiency"])

	return []model.Achievement{
		{
			ID:       "survivor",
			Name:     "Survivor",
			Progress: pct(summary.SurvivalRate * 100),
			Unlocked: summary.SurvivalRate >= 0.90 && summary.MedianRunway >= 18,
		},
		{
			ID:       "retention-master",
			Name:     "Retention Master",
			Progress: pct(retention / 85 * 100),
			Unlocked: retention >= 85 && summary.OverallScore >= 60,
		},
		{
			ID:       "efficient-operator",
			Name:     "Efficient Operator",
			Progress: pct(((100 - burn) + sales) / 2),
			Unlocked: burn <= 50 && sales >= 70,
		},
		{
			ID:       "compounder",
			Name:     "Compounder",
			Progress: pct(summary.OverallScore),
			Unlocked: summary.OverallScore >= 80 && summary.SurvivalRate >= 0.75,
		},
	}
}

// pct clamps a progress value to the displayable 0-100 range.
func pct(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return math.Round(v)
}
