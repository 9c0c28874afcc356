package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/stratfit/scenario-cli/internal/model"
)

// addBaselineFlags registers the shared baseline input flags used by the
// value, simulate, and levers commands.
func addBaselineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("arr", 0, "annual recurring revenue in dollars")
	f.Float64("growth", 0, "YoY ARR growth rate in percent")
	f.Float64("nrr", 100, "net revenue retention in percent")
	f.Float64("margin", 70, "gross margin in percent")
	f.Float64("rule40", 0, "Rule of 40 score (growth + FCF margin)")
	f.Float64("burn", 0, "monthly net burn in dollars")
	f.Float64("cash", 0, "cash on hand in dollars")
	f.String("stage", string(model.StageSeed), "funding stage (pre-seed, seed, series-a, series-b, series-c, growth)")
	f.String("method", string(model.MethodStratfit), "valuation method (stratfit, dcf, revenue-multiple, comparables)")
}

// baselineFromFlags assembles sanitized baseline inputs plus the valuation
// method from the command flags.
func baselineFromFlags(cmd *cobra.Command) (model.BaselineInputs, model.Method, error) {
	f := cmd.Flags()
	arr, _ := f.GetFloat64("arr")
	growth, _ := f.GetFloat64("growth")
	nrr, _ := f.GetFloat64("nrr")
	margin, _ := f.GetFloat64("margin")
	rule40, _ := f.GetFloat64("rule40")
	burn, _ := f.GetFloat64("burn")
	cash, _ := f.GetFloat64("cash")
	stage, _ := f.GetString("stage")
	method, _ := f.GetString("method")

	if !model.Stage(stage).Valid() {
		return model.BaselineInputs{}, "", eris.Errorf("unknown stage %q", stage)
	}
	if !model.Method(method).Valid() {
		return model.BaselineInputs{}, "", eris.Errorf("unknown method %q", method)
	}

	inputs := model.BaselineInputs{
		ARR:            arr,
		GrowthPct:      growth,
		NRRPct:         nrr,
		GrossMarginPct: margin,
		Rule40:         rule40,
		MonthlyBurn:    burn,
		CashOnHand:     cash,
		Stage:          model.Stage(stage),
	}.Sanitize()

	return inputs, model.Method(method), nil
}
