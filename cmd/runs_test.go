package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stratfit/scenario-cli/internal/model"
)

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "9f1c2d3a", truncateID("9f1c2d3a-4b5e-6f70-8192-a3b4c5d6e7f8"))
	assert.Equal(t, "short", truncateID("short"))
}

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	runs := []model.ScenarioRun{
		{
			ID:     "9f1c2d3a-4b5e-6f70-8192-a3b4c5d6e7f8",
			Inputs: model.BaselineInputs{Stage: model.StageSeed},
			Method: model.MethodStratfit,
			Status: model.RunStatusComplete,
			Result: &model.RunResult{
				Summary: model.DistributionSummary{P50: 36_800_000},
			},
			CreatedAt: now,
		},
		{
			ID:        "11112222-3333-4444-5555-666677778888",
			Inputs:    model.BaselineInputs{Stage: model.StageGrowth},
			Method:    model.MethodDCF,
			Status:    model.RunStatusQueued,
			CreatedAt: now,
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)
	out := buf.String()

	assert.Contains(t, out, "9f1c2d3a")
	assert.Contains(t, out, "$36,800,000")
	assert.Contains(t, out, "seed")
	// A run without a result shows the placeholder instead of a median.
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "queued")
}
