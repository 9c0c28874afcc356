package simulate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratfit/scenario-cli/internal/config"
	"github.com/stratfit/scenario-cli/internal/distribution"
	"github.com/stratfit/scenario-cli/internal/model"
)

func testInputs() model.BaselineInputs {
	return model.BaselineInputs{
		ARR:            4_000_000,
		GrowthPct:      60,
		NRRPct:         115,
		GrossMarginPct: 72,
		Rule40:         45,
		MonthlyBurn:    250_000,
		CashOnHand:     6_000_000,
		Stage:          model.StageSeriesA,
	}
}

func testCfg(seed int64) config.SimulationConfig {
	return config.SimulationConfig{
		Iterations:    500,
		Seed:          seed,
		HorizonMonths: 24,
		Workers:       4,
		GrowthVolPct:  25,
		NRRVolPct:     8,
		MarginVolPct:  10,
	}
}

func TestRunDeterministicForFixedSeed(t *testing.T) {
	eng := New(testCfg(42))

	first, err := eng.Run(context.Background(), testInputs(), model.MethodStratfit)
	require.NoError(t, err)
	second, err := eng.Run(context.Background(), testInputs(), model.MethodStratfit)
	require.NoError(t, err)

	require.Equal(t, len(first.Samples), len(second.Samples))
	for i := range first.Samples {
		assert.Equal(t, first.Samples[i], second.Samples[i])
	}
	assert.Equal(t, first.Financials, second.Financials)
	assert.Equal(t, int64(42), first.Seed)
}

func TestRunProducesRequestedIterations(t *testing.T) {
	eng := New(testCfg(7))

	res, err := eng.Run(context.Background(), testInputs(), model.MethodStratfit)
	require.NoError(t, err)

	assert.Equal(t, 500, res.Iterations)
	assert.Len(t, res.Samples, 500)
	for _, s := range res.Samples {
		assert.Greater(t, s, 0.0)
	}
}

func TestRunFinancialSummaryBounds(t *testing.T) {
	eng := New(testCfg(7))

	res, err := eng.Run(context.Background(), testInputs(), model.MethodStratfit)
	require.NoError(t, err)

	fin := res.Financials
	assert.GreaterOrEqual(t, fin.SurvivalRate, 0.0)
	assert.LessOrEqual(t, fin.SurvivalRate, 1.0)
	assert.Greater(t, fin.MedianRunway, 0.0)
	assert.Greater(t, fin.MedianARR, testInputs().ARR*0.5)
	assert.GreaterOrEqual(t, fin.OverallScore, 0.0)
	assert.LessOrEqual(t, fin.OverallScore, 100.0)
}

func TestRunSamplesFeedRealDistribution(t *testing.T) {
	eng := New(testCfg(11))

	res, err := eng.Run(context.Background(), testInputs(), model.MethodStratfit)
	require.NoError(t, err)

	s := distribution.Summarize(distribution.Input{Samples: res.Samples}, distribution.Options{})
	assert.True(t, s.IsFromRealDistribution)
	assert.False(t, s.Insufficient)
	assert.Equal(t, 500, s.SampleCount)
	assert.LessOrEqual(t, s.P10, s.P50)
	assert.LessOrEqual(t, s.P50, s.P90)
}

func TestRunNoBurnMeansFullSurvival(t *testing.T) {
	inputs := testInputs()
	inputs.MonthlyBurn = 0

	eng := New(testCfg(3))
	res, err := eng.Run(context.Background(), inputs, model.MethodStratfit)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Financials.SurvivalRate, 0.001)
	assert.InDelta(t, 24, res.Financials.MedianRunway, 0.001)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testCfg(5)
	cfg.Iterations = 100_000
	eng := New(cfg)

	_, err := eng.Run(ctx, testInputs(), model.MethodStratfit)
	assert.Error(t, err)
}

func TestNewAppliesDefaults(t *testing.T) {
	eng := New(config.SimulationConfig{})
	assert.Equal(t, 1000, eng.cfg.Iterations)
	assert.Equal(t, 4, eng.cfg.Workers)
	assert.Equal(t, 24, eng.cfg.HorizonMonths)
}

func TestMedian(t *testing.T) {
	assert.Zero(t, median(nil))
	assert.InDelta(t, 3, median([]float64{5, 1, 3}), 0.001)
	assert.InDelta(t, 2.5, median([]float64{4, 1, 2, 3}), 0.001)
}

func TestOverallScoreBounds(t *testing.T) {
	score := overallScore(model.BaselineInputs{Rule40: 80, NRRPct: 140}, model.FinancialSummary{SurvivalRate: 1})
	assert.InDelta(t, 100, score, 0.001)

	score = overallScore(model.BaselineInputs{Rule40: -20, NRRPct: 60}, model.FinancialSummary{SurvivalRate: 0})
	assert.Zero(t, score)
}
