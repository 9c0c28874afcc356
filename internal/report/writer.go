package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// WriteTable renders the full report as aligned plain text.
func WriteTable(w io.Writer, r *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Run:     %s\n", orPlaceholder(r.RunID))
	fmt.Fprintf(&b, "Stage:   %s\n", r.Inputs.Stage)
	fmt.Fprintf(&b, "Method:  %s\n", r.Method)
	fmt.Fprintf(&b, "ARR:     %s\n", Money(r.Inputs.ARR))

	if r.Valuation != nil {
		m := r.Valuation.Multiple
		fmt.Fprintf(&b, "\n--- Valuation ---\n")
		fmt.Fprintf(&b, "Base multiple:     %.2fx\n", m.BaseMultiple)
		fmt.Fprintf(&b, "NRR multiplier:    %.2f\n", m.NRRMultiplier)
		fmt.Fprintf(&b, "Margin multiplier: %.2f\n", m.MarginMultiplier)
		fmt.Fprintf(&b, "Rule40 multiplier: %.2f\n", m.Rule40Multiplier)
		fmt.Fprintf(&b, "Stage multiplier:  %.2f\n", m.StageMultiplier)
		fmt.Fprintf(&b, "Method modifier:   %.2f\n", m.MethodModifier)
		fmt.Fprintf(&b, "Final multiple:    %.2fx", m.FinalMultiple)
		if m.Clamped {
			fmt.Fprintf(&b, " (clamped to %.0f-%.0fx band)", m.MinMultiple, m.MaxMultiple)
		}
		fmt.Fprintf(&b, "\nEnterprise value:  %s\n", Money(r.Valuation.EnterpriseValue))
	}

	fmt.Fprintf(&b, "\n--- Outcome Distribution ---\n")
	if r.Insufficient() {
		fmt.Fprintf(&b, "Insufficient data for a meaningful distribution.\n")
	}
	for _, row := range r.SummaryRows() {
		fmt.Fprintf(&b, "%-14s %s\n", row[0], row[1])
	}
	if s := r.Summary; s != nil && s.IsFromRealDistribution {
		fmt.Fprintf(&b, "%-14s %d samples\n", "Source", s.SampleCount)
	}

	if f := r.Financials; f != nil {
		fmt.Fprintf(&b, "\n--- Financials ---\n")
		fmt.Fprintf(&b, "Survival rate:  %s\n", Pct(f.SurvivalRate))
		fmt.Fprintf(&b, "Median runway:  %.1f months\n", f.MedianRunway)
		fmt.Fprintf(&b, "Median ARR:     %s\n", Money(f.MedianARR))
		fmt.Fprintf(&b, "Overall score:  %.0f / 100\n", f.OverallScore)
	}

	if l := r.Levers; l != nil {
		fmt.Fprintf(&b, "\n--- Levers ---\n")
		fmt.Fprintf(&b, "%-4s %-22s %-10s %7s %15s %-15s\n",
			"Rank", "Lever", "Effort", "Impact", "Dollar Impact", "Quadrant")
		fmt.Fprintln(&b, strings.Repeat("-", 78))
		for _, imp := range l.Impacts {
			fmt.Fprintf(&b, "%-4d %-22s %-10s %7.0f %15s %-15s\n",
				imp.Rank, imp.Name, imp.Effort, imp.ImpactScore, Money(imp.DollarImpact), imp.Quadrant)
		}
		fmt.Fprintf(&b, "\nFocus score: %.0f / 100\n", l.FocusScore)

		if len(l.DangerZones) > 0 {
			fmt.Fprintf(&b, "\n--- Danger Zones ---\n")
			for _, dz := range l.DangerZones {
				fmt.Fprintf(&b, "%-10s %-22s value %.0f vs threshold %.0f\n",
					strings.ToUpper(string(dz.Severity)), dz.LeverName, dz.CurrentValue, dz.Threshold)
			}
		}

		if len(l.Achievements) > 0 {
			fmt.Fprintf(&b, "\n--- Achievements ---\n")
			for _, a := range l.Achievements {
				mark := " "
				if a.Unlocked {
					mark = "*"
				}
				fmt.Fprintf(&b, "[%s] %-22s %5.1f%%\n", mark, a.Name, a.Progress)
			}
		}
	}

	if r.Iterations > 0 {
		fmt.Fprintf(&b, "\nIterations: %d (seed %d)\n", r.Iterations, r.Seed)
	}

	_, err := io.WriteString(w, b.String())
	return eris.Wrap(err, "report: write table")
}

// WriteCSV renders the lever impacts plus headline metrics as CSV rows,
// one lever per line.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"run_id", "stage", "method", "rank", "lever_id", "lever_name",
		"effort", "impact_score", "dollar_impact", "quadrant",
		"p50_value", "survival_rate", "overall_score",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}

	p50 := Placeholder
	if !r.Insufficient() {
		p50 = fmt.Sprintf("%.0f", r.Summary.P50)
	}
	survival, overall := Placeholder, Placeholder
	if r.Financials != nil {
		survival = fmt.Sprintf("%.3f", r.Financials.SurvivalRate)
		overall = fmt.Sprintf("%.0f", r.Financials.OverallScore)
	}

	if r.Levers == nil || len(r.Levers.Impacts) == 0 {
		row := []string{r.RunID, string(r.Inputs.Stage), string(r.Method),
			"", "", "", "", "", "", "", p50, survival, overall}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
		return nil
	}

	for _, imp := range r.Levers.Impacts {
		row := []string{
			r.RunID,
			string(r.Inputs.Stage),
			string(r.Method),
			fmt.Sprintf("%d", imp.Rank),
			imp.ID,
			imp.Name,
			string(imp.Effort),
			fmt.Sprintf("%.0f", imp.ImpactScore),
			fmt.Sprintf("%.0f", imp.DollarImpact),
			string(imp.Quadrant),
			p50, survival, overall,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}
	return nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
