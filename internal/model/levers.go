package model

// Effort buckets the cost of moving a lever.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Quadrant is the effort/impact bucket a lever lands in.
type Quadrant string

const (
	QuadrantQuickWins     Quadrant = "quick-wins"
	QuadrantStrategicBets Quadrant = "strategic-bets"
	QuadrantFillIns       Quadrant = "fill-ins"
	QuadrantMoneyPits     Quadrant = "money-pits"
)

// Severity grades a danger-zone breach.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// FinancialSummary carries the simulation-level outcomes that lever scoring
// is conditioned on.
type FinancialSummary struct {
	SurvivalRate float64 `json:"survival_rate"` // 0.0-1.0
	MedianRunway float64 `json:"median_runway"` // months
	MedianARR    float64 `json:"median_arr"`
	OverallScore float64 `json:"overall_score"` // 0-100
}

// LeverImpact is a named strategic control and its computed influence.
type LeverImpact struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CurrentValue float64  `json:"current_value"` // 0-100
	ImpactScore  float64  `json:"impact_score"`  // 0-100
	DollarImpact float64  `json:"dollar_impact"`
	Effort       Effort   `json:"effort"`
	Category     string   `json:"category"`
	Quadrant     Quadrant `json:"quadrant"`
	Rank         int      `json:"rank"` // 1-based, descending impact
}

// DangerZone records a lever at or near its risk threshold.
type DangerZone struct {
	LeverID      string   `json:"lever_id"`
	LeverName    string   `json:"lever_name"`
	CurrentValue float64  `json:"current_value"`
	Threshold    float64  `json:"threshold"`
	Severity     Severity `json:"severity"`
}

// Achievement is a milestone gated on lever/metric combinations. Progress
// and Unlocked are evaluated independently: Progress is a derived display
// percentage while Unlocked comes from a boolean predicate over the raw
// inputs, so Progress of 100 does not by itself imply Unlocked.
type Achievement struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Progress float64 `json:"progress"` // 0-100
	Unlocked bool    `json:"unlocked"`
}

// LeverAnalysis is the full output of driver/risk scoring.
type LeverAnalysis struct {
	Impacts      []LeverImpact `json:"impacts"` // ranked descending by impact
	FocusScore   float64       `json:"focus_score"`
	DangerZones  []DangerZone  `json:"danger_zones"`
	Achievements []Achievement `json:"achievements"`
}
