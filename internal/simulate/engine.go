// Package simulate runs Monte Carlo projections of a baseline through the
// valuation pipeline, producing enterprise value samples and a financial
// summary for downstream scoring.
package simulate

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stratfit/scenario-cli/internal/config"
	"github.com/stratfit/scenario-cli/internal/model"
	"github.com/stratfit/scenario-cli/internal/valuation"
)

// Result holds the raw draws and derived aggregates of one simulation run.
type Result struct {
	Samples    []float64 // enterprise value per draw
	Financials model.FinancialSummary
	Iterations int
	Seed       int64
}

// Engine runs seeded, reproducible projections.
type Engine struct {
	cfg config.SimulationConfig
}

// New creates an Engine. Zero-valued config fields fall back to defaults.
func New(cfg config.SimulationConfig) *Engine {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.HorizonMonths <= 0 {
		cfg.HorizonMonths = 24
	}
	if cfg.GrowthVolPct <= 0 {
		cfg.GrowthVolPct = 25
	}
	if cfg.NRRVolPct <= 0 {
		cfg.NRRVolPct = 8
	}
	if cfg.MarginVolPct <= 0 {
		cfg.MarginVolPct = 10
	}
	return &Engine{cfg: cfg}
}

// draw is the per-iteration outcome collected by the workers.
type draw struct {
	ev     float64
	arr    float64
	runway float64
}

// Run executes the simulation. A fixed seed makes the run fully
// reproducible; seed 0 derives one from the clock.
func (e *Engine) Run(ctx context.Context, inputs model.BaselineInputs, method model.Method) (*Result, error) {
	inputs = inputs.Sanitize()
	if !method.Valid() {
		method = model.MethodStratfit
	}

	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	draws := make([]draw, e.cfg.Iterations)

	// Each worker owns a disjoint slice segment and its own seeded RNG, so
	// results are deterministic for a fixed seed and worker count.
	g, ctx := errgroup.WithContext(ctx)
	chunk := (e.cfg.Iterations + e.cfg.Workers - 1) / e.cfg.Workers
	for w := 0; w < e.cfg.Workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > e.cfg.Iterations {
			hi = e.cfg.Iterations
		}
		if lo >= hi {
			break
		}
		rng := rand.New(rand.NewSource(seed + int64(w)))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				draws[i] = e.drawOne(rng, inputs, method)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "simulate: run")
	}

	res := e.aggregate(draws, inputs, seed)

	zap.L().Info("simulate: run complete",
		zap.Int("iterations", e.cfg.Iterations),
		zap.Int64("seed", seed),
		zap.Float64("survival_rate", res.Financials.SurvivalRate),
		zap.Float64("median_arr", res.Financials.MedianARR),
		zap.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

// drawOne perturbs the baseline and values the result. Growth, NRR, and
// margin get independent normal noise; rule-of-40 moves with the growth
// delta since margin enters it directly.
func (e *Engine) drawOne(rng *rand.Rand, base model.BaselineInputs, method model.Method) draw {
	perturbed := base
	perturbed.GrowthPct = math.Max(0, base.GrowthPct+rng.NormFloat64()*e.cfg.GrowthVolPct)
	perturbed.NRRPct = math.Max(0, base.NRRPct+rng.NormFloat64()*e.cfg.NRRVolPct)
	perturbed.GrossMarginPct = clampPct(base.GrossMarginPct + rng.NormFloat64()*e.cfg.MarginVolPct)
	perturbed.Rule40 = base.Rule40 + (perturbed.GrowthPct - base.GrowthPct)

	// One year of growth at the drawn rate.
	arr := base.ARR * (1 + perturbed.GrowthPct/100)
	perturbed.ARR = arr

	v := valuation.Value(perturbed, method)

	return draw{
		ev:     v.EnterpriseValue,
		arr:    arr,
		runway: e.runwayMonths(base, perturbed),
	}
}

// runwayMonths estimates months of cash left under the drawn margin. With
// no burn configured the company is treated as self-sustaining and credited
// the full horizon.
func (e *Engine) runwayMonths(base, perturbed model.BaselineInputs) float64 {
	if base.MonthlyBurn <= 0 {
		return float64(e.cfg.HorizonMonths)
	}
	// Margin slipping below baseline inflates the effective burn.
	burn := base.MonthlyBurn * (1 + (base.GrossMarginPct-perturbed.GrossMarginPct)/100)
	if burn <= 0 {
		return float64(e.cfg.HorizonMonths)
	}
	return base.CashOnHand / burn
}

// aggregate derives the financial summary from the collected draws.
func (e *Engine) aggregate(draws []draw, inputs model.BaselineInputs, seed int64) *Result {
	samples := make([]float64, len(draws))
	arrs := make([]float64, len(draws))
	runways := make([]float64, len(draws))
	survived := 0
	for i, d := range draws {
		samples[i] = d.ev
		arrs[i] = d.arr
		runways[i] = d.runway
		if d.runway >= float64(e.cfg.HorizonMonths) {
			survived++
		}
	}

	survival := 0.0
	if len(draws) > 0 {
		survival = float64(survived) / float64(len(draws))
	}

	fin := model.FinancialSummary{
		SurvivalRate: survival,
		MedianRunway: median(runways),
		MedianARR:    median(arrs),
	}
	fin.OverallScore = overallScore(inputs, fin)

	return &Result{
		Samples:    samples,
		Financials: fin,
		Iterations: len(draws),
		Seed:       seed,
	}
}

// overallScore blends survival odds with baseline health heuristics into a
// single 0-100 gauge.
func overallScore(inputs model.BaselineInputs, fin model.FinancialSummary) float64 {
	rule40Part := math.Min(1, math.Max(0, inputs.Rule40/60))
	nrrPart := math.Min(1, math.Max(0, (inputs.NRRPct-80)/50))
	score := 100 * (0.4*fin.SurvivalRate + 0.3*rule40Part + 0.3*nrrPart)
	return math.Round(score)
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func clampPct(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
