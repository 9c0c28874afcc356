package report

import (
	"fmt"
	"math"
	"time"

	"github.com/stratfit/scenario-cli/internal/model"
)

// Placeholder is shown wherever a value cannot be stated because the
// underlying distribution was degenerate or the simulation failed.
const Placeholder = "N/A"

// Report is the presentation view of a completed scenario run. All
// rendering (table, CSV, XLSX) goes through it so the placeholder
// rules apply uniformly.
type Report struct {
	GeneratedAt time.Time
	RunID       string
	Inputs      model.BaselineInputs
	Method      model.Method
	Valuation   *model.Valuation
	Summary     *model.DistributionSummary
	Financials  *model.FinancialSummary
	Levers      *model.LeverAnalysis
	Iterations  int
	Seed        int64
}

// FromRun builds a Report from a stored scenario run. Runs without a
// result produce a report with nil sections; writers render placeholders.
func FromRun(run *model.ScenarioRun) *Report {
	r := &Report{
		GeneratedAt: time.Now().UTC(),
		RunID:       run.ID,
		Inputs:      run.Inputs,
		Method:      run.Method,
	}
	if run.Result == nil {
		return r
	}
	res := run.Result
	r.Valuation = &res.Valuation
	r.Summary = &res.Summary
	r.Financials = &res.Financials
	r.Levers = &res.Levers
	r.Iterations = res.Iterations
	r.Seed = res.Seed
	return r
}

// Insufficient reports whether the distribution section must be
// rendered as placeholders.
func (r *Report) Insufficient() bool {
	return r.Summary == nil || r.Summary.Insufficient
}

// SummaryRows returns label/value pairs for the distribution section.
// Every value is the placeholder when the distribution is insufficient.
func (r *Report) SummaryRows() [][2]string {
	labels := []string{"P10", "P25", "P50 (median)", "P75", "P90"}
	if r.Insufficient() {
		rows := make([][2]string, len(labels))
		for i, l := range labels {
			rows[i] = [2]string{l, Placeholder}
		}
		return rows
	}
	s := r.Summary
	vals := []float64{s.P10, s.P25, s.P50, s.P75, s.P90}
	rows := make([][2]string, len(labels))
	for i, l := range labels {
		rows[i] = [2]string{l, Money(vals[i])}
	}
	return rows
}

// Money formats a dollar amount with thousands separators, e.g.
// 4250000 -> "$4,250,000". Fractions are rounded away.
func Money(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Placeholder
	}
	neg := amount < 0
	n := int64(math.Round(math.Abs(amount)))
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, byte(c))
	}
	if neg {
		return "-$" + string(out)
	}
	return "$" + string(out)
}

// Pct formats a 0..1 rate as a percentage with one decimal.
func Pct(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Placeholder
	}
	return fmt.Sprintf("%.1f%%", rate*100)
}
