package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratfit/scenario-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func seedInputs() model.BaselineInputs {
	return model.BaselineInputs{
		ARR:            4_000_000,
		GrowthPct:      60,
		NRRPct:         115,
		GrossMarginPct: 72,
		Rule40:         45,
		Stage:          model.StageSeed,
	}
}

func TestSQLiteCreateAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, seedInputs(), model.MethodStratfit)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, model.MethodStratfit, got.Method)
	assert.Equal(t, seedInputs(), got.Inputs)
	assert.Nil(t, got.Result)
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "nonexistent")
	assert.Error(t, err)
}

func TestSQLiteUpdateRunStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, seedInputs(), model.MethodStratfit)
	require.NoError(t, err)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusRunning, got.Status)
}

func TestSQLiteUpdateRunStatusNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateRunStatus(context.Background(), "nonexistent", model.RunStatusRunning)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteUpdateRunResult(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, seedInputs(), model.MethodStratfit)
	require.NoError(t, err)

	result := &model.RunResult{
		Summary:    model.DistributionSummary{P10: 1, P25: 2, P50: 3, P75: 4, P90: 5, IsFromRealDistribution: true, SampleCount: 500},
		Financials: model.FinancialSummary{SurvivalRate: 0.8, MedianRunway: 20, MedianARR: 6_000_000, OverallScore: 72},
		Iterations: 500,
		Seed:       42,
	}
	require.NoError(t, s.UpdateRunResult(ctx, run.ID, result))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, 500, got.Result.Summary.SampleCount)
	assert.InDelta(t, 0.8, got.Result.Financials.SurvivalRate, 0.001)
}

func TestSQLiteUpdateRunResultWithErrorMarksFailed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, seedInputs(), model.MethodStratfit)
	require.NoError(t, err)

	require.NoError(t, s.UpdateRunResult(ctx, run.ID, &model.RunResult{Error: "simulation aborted"}))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
}

func TestSQLiteListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedRun, err := s.CreateRun(ctx, seedInputs(), model.MethodStratfit)
	require.NoError(t, err)

	growthInputs := seedInputs()
	growthInputs.Stage = model.StageGrowth
	_, err = s.CreateRun(ctx, growthInputs, model.MethodDCF)
	require.NoError(t, err)

	t.Run("no filter returns all", func(t *testing.T) {
		runs, err := s.ListRuns(ctx, RunFilter{})
		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})

	t.Run("filter by stage", func(t *testing.T) {
		runs, err := s.ListRuns(ctx, RunFilter{Stage: model.StageSeed})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, seedRun.ID, runs[0].ID)
	})

	t.Run("filter by status", func(t *testing.T) {
		require.NoError(t, s.UpdateRunStatus(ctx, seedRun.ID, model.RunStatusComplete))
		runs, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, seedRun.ID, runs[0].ID)
	})

	t.Run("limit applies", func(t *testing.T) {
		runs, err := s.ListRuns(ctx, RunFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	})
}

func TestSQLiteDeleteRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, seedInputs(), model.MethodStratfit)
	require.NoError(t, err)

	require.NoError(t, s.DeleteRun(ctx, run.ID))

	_, err = s.GetRun(ctx, run.ID)
	assert.Error(t, err)

	assert.Error(t, s.DeleteRun(ctx, run.ID))
}
