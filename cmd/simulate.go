package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stratfit/scenario-cli/internal/distribution"
	"github.com/stratfit/scenario-cli/internal/levers"
	"github.com/stratfit/scenario-cli/internal/model"
	"github.com/stratfit/scenario-cli/internal/report"
	"github.com/stratfit/scenario-cli/internal/simulate"
	"github.com/stratfit/scenario-cli/internal/valuation"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run Monte Carlo projections for a baseline",
	Long: `Draws growth, retention, and margin noise around the baseline, values
each draw, and summarizes the enterprise value distribution and financial
outcomes. A fixed --seed makes runs reproducible.

Examples:
  # 1000 iterations with the configured volatility
  simulate --arr 4000000 --growth 60 --burn 150000 --cash 5000000 --stage seed

  # Reproducible run, winsorized display, persisted to the run store
  simulate --arr 4000000 --growth 60 --stage seed --seed 42 --winsorize --save`,
	RunE: runSimulate,
}

func init() {
	addBaselineFlags(simulateCmd)
	f := simulateCmd.Flags()
	f.Int("iterations", 0, "number of draws (default from config)")
	f.Int64("seed", 0, "random seed (0 = derive from clock)")
	f.Bool("winsorize", false, "compute winsorized display bounds")
	f.Bool("save", false, "persist the run to the scenario store")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputs, method, err := baselineFromFlags(cmd)
	if err != nil {
		return err
	}

	simCfg := cfg.Simulation
	if v, _ := cmd.Flags().GetInt("iterations"); v > 0 {
		simCfg.Iterations = v
	}
	if v, _ := cmd.Flags().GetInt64("seed"); v != 0 {
		simCfg.Seed = v
	}
	winsorize, _ := cmd.Flags().GetBool("winsorize")
	save, _ := cmd.Flags().GetBool("save")

	log := zap.L().With(zap.String("command", "simulate"))
	log.Info("starting simulation",
		zap.Int("iterations", simCfg.Iterations),
		zap.Int64("seed", simCfg.Seed),
		zap.String("stage", string(inputs.Stage)),
	)

	start := time.Now()
	result, err := simulate.New(simCfg).Run(ctx, inputs, method)
	if err != nil {
		return eris.Wrap(err, "simulate: run")
	}

	opts := distribution.Options{
		UncertaintyPct: cfg.Distribution.UncertaintyPct,
		Winsorize:      winsorize,
		WinsorLowPct:   cfg.Distribution.WinsorLowPct,
		WinsorHighPct:  cfg.Distribution.WinsorHighPct,
	}
	summary := distribution.FromSamples(result.Samples, opts)

	analyzer := levers.NewAnalyzer(levers.DefaultLevers(), leverConfig())
	analysis := analyzer.Analyze(levers.ValuesFromBaseline(inputs), result.Financials)

	runResult := &model.RunResult{
		Valuation:  valuation.Value(inputs, method),
		Summary:    summary,
		Financials: result.Financials,
		Levers:     analysis,
		Iterations: result.Iterations,
		Seed:       result.Seed,
		DurationMS: time.Since(start).Milliseconds(),
	}

	log.Info("simulation complete",
		zap.Int("iterations", result.Iterations),
		zap.Int64("duration_ms", runResult.DurationMS),
		zap.Float64("survival_rate", result.Financials.SurvivalRate),
	)

	run := &model.ScenarioRun{Inputs: inputs, Method: method, Result: runResult}

	if save {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		created, err := st.CreateRun(ctx, inputs, method)
		if err != nil {
			return eris.Wrap(err, "simulate: create run")
		}
		if err := st.UpdateRunResult(ctx, created.ID, runResult); err != nil {
			return eris.Wrap(err, "simulate: save result")
		}
		run.ID = created.ID
		fmt.Fprintf(os.Stderr, "Saved run %s\n", created.ID)
	}

	return report.WriteTable(os.Stdout, report.FromRun(run))
}

func leverConfig() levers.Config {
	c := levers.DefaultConfig()
	if cfg.Levers.FocusFactor > 0 {
		c.FocusFactor = cfg.Levers.FocusFactor
	}
	if cfg.Levers.HighImpactThreshold > 0 {
		c.HighImpactThreshold = cfg.Levers.HighImpactThreshold
	}
	return c
}
