package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stratfit/scenario-cli/internal/report"
	"github.com/stratfit/scenario-cli/internal/valuation"
)

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Compute the ARR multiple and enterprise value for a baseline",
	Long: `Derives a valuation multiple from growth, retention, margin, Rule of 40,
and funding stage, then applies it to ARR. The multiple is clamped to the
stage's plausible band.

Examples:
  # Seed-stage company, $4M ARR growing 60%
  value --arr 4000000 --growth 60 --nrr 115 --margin 72 --rule40 45 --stage seed

  # Same baseline under a DCF-flavored modifier, as JSON
  value --arr 4000000 --growth 60 --stage seed --method dcf --format json`,
	RunE: runValue,
}

func init() {
	addBaselineFlags(valueCmd)
	valueCmd.Flags().String("format", "table", "output format: table or json")
	rootCmd.AddCommand(valueCmd)
}

func runValue(cmd *cobra.Command, _ []string) error {
	inputs, method, err := baselineFromFlags(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return eris.Errorf("value: --format must be table or json (got %q)", format)
	}

	v := valuation.Value(inputs, method)

	zap.L().Debug("valuation computed",
		zap.Float64("arr", inputs.ARR),
		zap.String("stage", string(inputs.Stage)),
		zap.Float64("final_multiple", v.Multiple.FinalMultiple),
		zap.Float64("enterprise_value", v.EnterpriseValue),
	)

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	m := v.Multiple
	fmt.Printf("Stage:             %s\n", inputs.Stage)
	fmt.Printf("Method:            %s\n", method)
	fmt.Printf("ARR:               %s\n", report.Money(inputs.ARR))
	fmt.Println()
	fmt.Printf("Base multiple:     %.2fx\n", m.BaseMultiple)
	fmt.Printf("NRR multiplier:    %.2f\n", m.NRRMultiplier)
	fmt.Printf("Margin multiplier: %.2f\n", m.MarginMultiplier)
	fmt.Printf("Rule40 multiplier: %.2f\n", m.Rule40Multiplier)
	fmt.Printf("Stage multiplier:  %.2f\n", m.StageMultiplier)
	fmt.Printf("Method modifier:   %.2f\n", m.MethodModifier)
	fmt.Printf("Raw multiple:      %.2fx\n", m.RawMultiple)
	fmt.Printf("Final multiple:    %.2fx", m.FinalMultiple)
	if m.Clamped {
		fmt.Printf(" (clamped to %.0f-%.0fx band)", m.MinMultiple, m.MaxMultiple)
	}
	fmt.Println()
	fmt.Printf("\nEnterprise value:  %s\n", report.Money(v.EnterpriseValue))
	return nil
}
