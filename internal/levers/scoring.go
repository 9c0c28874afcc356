package levers

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/stratfit/scenario-cli/internal/model"
)

// dangerWarningFraction: a lever enters its danger zone once it reaches
// this fraction of the threshold.
const dangerWarningFraction = 0.85

// Analyzer scores lever maps against a financial summary. It holds no
// mutable state; every Analyze call is a pure recomputation.
type Analyzer struct {
	defs []LeverDef
	cfg  Config
}

// NewAnalyzer creates an Analyzer over the given catalog. A nil or empty
// catalog falls back to the built-in one; a zero config falls back to the
// canonical thresholds.
func NewAnalyzer(defs []LeverDef, cfg Config) *Analyzer {
	if len(defs) == 0 {
		defs = DefaultLevers()
	}
	if cfg.FocusFactor <= 0 {
		cfg.FocusFactor = DefaultConfig().FocusFactor
	}
	if cfg.HighImpactThreshold <= 0 {
		cfg.HighImpactThreshold = DefaultConfig().HighImpactThreshold
	}
	if cfg.ShortRunwayMonths <= 0 {
		cfg.ShortRunwayMonths = DefaultConfig().ShortRunwayMonths
	}
	return &Analyzer{defs: defs, cfg: cfg}
}

// Analyze computes the full lever analysis for the given value map and
// financial summary. Levers missing from the map score at value 0; values
// outside 0-100 are clamped.
func (a *Analyzer) Analyze(values map[string]float64, summary model.FinancialSummary) model.LeverAnalysis {
	impacts := make([]model.LeverImpact, 0, len(a.defs))
	for _, def := range a.defs {
		v := clampValue(values[def.ID])
		impacts = append(impacts, a.scoreLever(def, v, summary))
	}

	// Stable sort keeps catalog declaration order as the tie-break.
	sort.SliceStable(impacts, func(i, j int) bool {
		return impacts[i].ImpactScore > impacts[j].ImpactScore
	})
	for i := range impacts {
		impacts[i].Rank = i + 1
		impacts[i].Quadrant = a.quadrant(impacts[i])
	}

	analysis := model.LeverAnalysis{
		Impacts:      impacts,
		FocusScore:   a.focusScore(impacts),
		DangerZones:  a.dangerZones(values),
		Achievements: a.achievements(values, summary),
	}

	zap.L().Debug("levers: analysis complete",
		zap.Int("levers", len(impacts)),
		zap.Float64("focus_score", analysis.FocusScore),
		zap.Int("danger_zones", len(analysis.DangerZones)),
	)

	return analysis
}

// scoreLever computes the 0-100 impact score for one lever. Impact grows
// with the lever's configured weight, the headroom left to move it, and the
// urgency implied by the financial summary.
func (a *Analyzer) scoreLever(def LeverDef, value float64, summary model.FinancialSummary) model.LeverImpact {
	headroom := (100 - value) / 100

	// Weak overall outcomes raise the urgency of every lever.
	stress := 1 - clampValue(summary.OverallScore)/100
	urgency := 0.6 + 0.4*stress
	if def.RunwaySensitive && summary.MedianRunway > 0 && summary.MedianRunway < a.cfg.ShortRunwayMonths {
		urgency = math.Min(1, urgency+0.2)
	}

	impact := 100 * def.Weight * (0.35 + 0.65*headroom) * urgency
	impact = math.Min(100, math.Max(0, math.Round(impact)))

	return model.LeverImpact{
		ID:           def.ID,
		Name:         def.Name,
		CurrentValue: value,
		ImpactScore:  impact,
		DollarImpact: math.Round(impact / 100 * headroom * summary.MedianARR),
		Effort:       def.Effort,
		Category:     def.Category,
	}
}

// focusScore rewards concentrating effort on the highest-impact levers:
// the average current value of the top-3 ranked levers, scaled and clamped.
func (a *Analyzer) focusScore(ranked []model.LeverImpact) float64 {
	if len(ranked) == 0 {
		return 0
	}
	n := 3
	if len(ranked) < n {
		n = len(ranked)
	}
	var sum float64
	for _, li := range ranked[:n] {
		sum += li.CurrentValue
	}
	avg := sum / float64(n)
	return math.Min(100, math.Max(0, math.Round(avg*a.cfg.FocusFactor)))
}

// quadrant buckets a lever by impact and effort. Canonical rule set:
// high impact at or above the configured threshold, low effort for low and
// medium effort levers.
func (a *Analyzer) quadrant(li model.LeverImpact) model.Quadrant {
	highImpact := li.ImpactScore >= a.cfg.HighImpactThreshold
	lowEffort := li.Effort == model.EffortLow || li.Effort == model.EffortMedium

	switch {
	case highImpact && lowEffort:
		return model.QuadrantQuickWins
	case highImpact && !lowEffort:
		return model.QuadrantStrategicBets
	case !highImpact && lowEffort:
		return model.QuadrantFillIns
	default:
		return model.QuadrantMoneyPits
	}
}

// dangerZones flags levers at or near their hardcoded thresholds.
func (a *Analyzer) dangerZones(values map[string]float64) []model.DangerZone {
	var zones []model.DangerZone
	for _, def := range a.defs {
		if def.DangerThreshold <= 0 {
			continue
		}
		v := clampValue(values[def.ID])
		if v < def.DangerThreshold*dangerWarningFraction {
			continue
		}
		severity := model.SeverityWarning
		if v >= def.DangerThreshold {
			severity = model.SeverityCritical
		}
		zones = append(zones, model.DangerZone{
			LeverID:      def.ID,
			LeverName:    def.Name,
			CurrentValue: v,
			Threshold:    def.DangerThreshold,
			Severity:     severity,
		})
	}
	return zones
}

func clampValue(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
