package store

import (
	"context"

	"github.com/stratfit/scenario-cli/internal/model"
)

// RunFilter specifies criteria for listing scenario runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Stage  model.Stage     `json:"stage,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines persistence for scenario runs.
type Store interface {
	CreateRun(ctx context.Context, inputs model.BaselineInputs, method model.Method) (*model.ScenarioRun, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunResult(ctx context.Context, runID string, result *model.RunResult) error
	GetRun(ctx context.Context, runID string) (*model.ScenarioRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.ScenarioRun, error)
	DeleteRun(ctx context.Context, runID string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
