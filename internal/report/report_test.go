package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/stratfit/scenario-cli/internal/model"
)

func completedRun() *model.ScenarioRun {
	return &model.ScenarioRun{
		ID: "run-1",
		Inputs: model.BaselineInputs{
			ARR:    4_000_000,
			Stage:  model.StageSeed,
			NRRPct: 115,
		},
		Method: model.MethodStratfit,
		Status: model.RunStatusComplete,
		Result: &model.RunResult{
			Valuation: model.Valuation{
				Method:          model.MethodStratfit,
				EnterpriseValue: 36_800_000,
				Multiple: model.ValuationMultiple{
					BaseMultiple:  9,
					FinalMultiple: 9.2,
					MinMultiple:   3,
					MaxMultiple:   12,
				},
			},
			Summary: model.DistributionSummary{
				P10: 29_440_000, P25: 33_120_000, P50: 36_800_000,
				P75: 40_480_000, P90: 44_160_000,
				IsFromRealDistribution: true, SampleCount: 500,
			},
			Financials: model.FinancialSummary{
				SurvivalRate: 0.82, MedianRunway: 19.5,
				MedianARR: 6_200_000, OverallScore: 71,
			},
			Levers: model.LeverAnalysis{
				Impacts: []model.LeverImpact{
					{ID: "customer-retention", Name: "Customer Retention", Rank: 1,
						ImpactScore: 78, DollarImpact: 910_000,
						Effort: model.EffortMedium, Quadrant: model.QuadrantQuickWins},
					{ID: "market-expansion", Name: "Market Expansion", Rank: 2,
						ImpactScore: 55, DollarImpact: 430_000,
						Effort: model.EffortHigh, Quadrant: model.QuadrantFillIns},
				},
				FocusScore: 73,
				DangerZones: []model.DangerZone{
					{LeverID: "burn-intensity", LeverName: "Burn Intensity",
						CurrentValue: 82, Threshold: 80, Severity: model.SeverityCritical},
				},
				Achievements: []model.Achievement{
					{ID: "survivor", Name: "Survivor", Progress: 82, Unlocked: false},
				},
			},
			Iterations: 500,
			Seed:       42,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{4_250_000, "$4,250,000"},
		{36_800_000.4, "$36,800,000"},
		{-1_500_000, "-$1,500,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in), "Money(%v)", tt.in)
	}
}

func TestFromRunWithoutResult(t *testing.T) {
	run := completedRun()
	run.Result = nil

	r := FromRun(run)
	assert.True(t, r.Insufficient())
	for _, row := range r.SummaryRows() {
		assert.Equal(t, Placeholder, row[1])
	}
}

func TestSummaryRowsInsufficient(t *testing.T) {
	run := completedRun()
	run.Result.Summary.Insufficient = true

	r := FromRun(run)
	require.True(t, r.Insufficient())
	for _, row := range r.SummaryRows() {
		assert.Equal(t, Placeholder, row[1])
	}
}

func TestWriteTable(t *testing.T) {
	r := FromRun(completedRun())

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "$36,800,000")
	assert.Contains(t, out, "Customer Retention")
	assert.Contains(t, out, "quick-wins")
	assert.Contains(t, out, "Focus score: 73")
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "Survivor")
	assert.Contains(t, out, "seed 42")
}

func TestWriteTableInsufficient(t *testing.T) {
	run := completedRun()
	run.Result.Summary.Insufficient = true

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, FromRun(run)))
	out := buf.String()

	assert.Contains(t, out, "Insufficient data")
	assert.Contains(t, out, Placeholder)
}

func TestWriteCSV(t *testing.T) {
	r := FromRun(completedRun())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, r))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 levers
	assert.True(t, strings.HasPrefix(lines[0], "run_id,stage,method,rank"))
	assert.Contains(t, lines[1], "customer-retention")
	assert.Contains(t, lines[2], "market-expansion")
}

func TestWriteCSVNoLevers(t *testing.T) {
	run := completedRun()
	run.Result.Levers = model.LeverAnalysis{}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, FromRun(run)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2) // header + single summary row
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, FromRun(completedRun())))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)
	assert.Equal(t, "Valuation", f.Sheets[0].Name)
	assert.Equal(t, "Distribution", f.Sheets[1].Name)
	assert.Equal(t, "Levers", f.Sheets[2].Name)

	// Lever sheet: header + 2 impacts at the top.
	levers := f.Sheets[2]
	require.GreaterOrEqual(t, len(levers.Rows), 3)
	assert.Equal(t, "Customer Retention", levers.Rows[1].Cells[2].String())
}
