package model

import "time"

// RunStatus represents the current state of a scenario run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// ScenarioRun is one persisted projection of a baseline through the
// simulation and scoring pipeline.
type ScenarioRun struct {
	ID        string         `json:"id"`
	Inputs    BaselineInputs `json:"inputs"`
	Method    Method         `json:"method"`
	Status    RunStatus      `json:"status"`
	Result    *RunResult     `json:"result,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// RunResult holds the final outcome of a scenario run.
type RunResult struct {
	Valuation  Valuation           `json:"valuation"`
	Summary    DistributionSummary `json:"summary"`
	Financials FinancialSummary    `json:"financials"`
	Levers     LeverAnalysis       `json:"levers"`
	Iterations int                 `json:"iterations"`
	Seed       int64               `json:"seed"`
	DurationMS int64               `json:"duration_ms"`
	Error      string              `json:"error,omitempty"`
}
