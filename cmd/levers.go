package main

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stratfit/scenario-cli/internal/levers"
	"github.com/stratfit/scenario-cli/internal/model"
	"github.com/stratfit/scenario-cli/internal/report"
)

var leversCmd = &cobra.Command{
	Use:   "levers",
	Short: "Score strategic levers for a baseline",
	Long: `Ranks the lever catalog by impact, assigns effort/impact quadrants,
flags danger zones, and evaluates achievements. Lever positions default from
the baseline metrics; override any of them with --levers or a YAML file.

Examples:
  # Derive lever positions from the baseline
  levers --arr 4000000 --growth 60 --nrr 115 --burn 150000 --stage seed

  # Override specific positions inline
  levers --arr 4000000 --growth 60 --levers burn-intensity=85,customer-retention=40

  # Load positions from YAML (lever-id: value pairs)
  levers --arr 4000000 --levers-file positions.yaml --format csv`,
	RunE: runLevers,
}

func init() {
	addBaselineFlags(leversCmd)
	f := leversCmd.Flags()
	f.String("levers", "", "comma-separated lever overrides (id=value)")
	f.String("levers-file", "", "YAML file of lever-id: value pairs")
	f.String("format", "table", "output format: table, csv, or json")
	f.Float64("survival", 1.0, "assumed survival rate 0-1 (use simulate for computed values)")
	f.Float64("runway", 24, "assumed median runway in months")
	f.Float64("score", 50, "assumed overall score 0-100")
	rootCmd.AddCommand(leversCmd)
}

func runLevers(cmd *cobra.Command, _ []string) error {
	inputs, method, err := baselineFromFlags(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "csv" && format != "json" {
		return eris.Errorf("levers: --format must be table, csv, or json (got %q)", format)
	}

	values := levers.ValuesFromBaseline(inputs)

	if path, _ := cmd.Flags().GetString("levers-file"); path != "" {
		fileValues, err := loadLeverFile(path)
		if err != nil {
			return err
		}
		for id, v := range fileValues {
			values[id] = v
		}
	}
	if spec, _ := cmd.Flags().GetString("levers"); spec != "" {
		overrides, err := parseLeverOverrides(spec)
		if err != nil {
			return err
		}
		for id, v := range overrides {
			values[id] = v
		}
	}

	survival, _ := cmd.Flags().GetFloat64("survival")
	runway, _ := cmd.Flags().GetFloat64("runway")
	score, _ := cmd.Flags().GetFloat64("score")
	financials := model.FinancialSummary{
		SurvivalRate: survival,
		MedianRunway: runway,
		MedianARR:    inputs.ARR,
		OverallScore: score,
	}

	analyzer := levers.NewAnalyzer(levers.DefaultLevers(), leverConfig())
	analysis := analyzer.Analyze(values, financials)

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	run := &model.ScenarioRun{
		Inputs: inputs,
		Method: method,
		Result: &model.RunResult{Levers: analysis, Financials: financials},
	}
	r := report.FromRun(run)
	r.Valuation = nil
	r.Summary = nil
	r.Financials = nil

	if format == "csv" {
		return report.WriteCSV(os.Stdout, r)
	}
	return report.WriteTable(os.Stdout, r)
}

// parseLeverOverrides parses "id=value,id=value" pairs.
func parseLeverOverrides(spec string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, eris.Errorf("levers: bad override %q (want id=value)", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "levers: bad value in %q", pair)
		}
		if v < 0 || v > 100 {
			return nil, eris.Errorf("levers: value out of range in %q (want 0-100)", pair)
		}
		out[strings.TrimSpace(id)] = v
	}
	if len(out) == 0 {
		return nil, eris.New("levers: no overrides parsed")
	}
	return out, nil
}

func loadLeverFile(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "levers: read %s", path)
	}
	var values map[string]float64
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, eris.Wrapf(err, "levers: parse %s", path)
	}
	for id, v := range values {
		if v < 0 || v > 100 {
			return nil, eris.Errorf("levers: %s out of range in %s (want 0-100)", id, path)
		}
	}
	return values, nil
}
