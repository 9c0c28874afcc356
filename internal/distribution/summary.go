// Package distribution produces canonical 5-point summaries of enterprise
// value distributions from samples, percentile payloads, or point estimates.
package distribution

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/stratfit/scenario-cli/internal/model"
)

// MinRealSamples is the sample count below which an input is not treated as
// a real distribution.
const MinRealSamples = 100

// Options controls summarization behavior.
type Options struct {
	// UncertaintyPct is the synthetic spread (as a percentage of the point
	// estimate) used when no distribution data is available.
	UncertaintyPct float64
	// Winsorize enables display-only tail clipping at the configured
	// percentiles. Underlying p-values are never altered.
	Winsorize     bool
	WinsorLowPct  float64
	WinsorHighPct float64
}

// DefaultOptions returns the options used when callers pass the zero value.
func DefaultOptions() Options {
	return Options{
		UncertaintyPct: 20,
		WinsorLowPct:   5,
		WinsorHighPct:  95,
	}
}

// Input carries whichever distribution evidence the caller has, in priority
// order: raw samples, a p10/p50/p90 payload, or a bare point estimate.
type Input struct {
	Samples []float64
	P10     float64
	P50     float64
	P90     float64
	Point   float64
}

// Summarize dispatches to the best available input mode.
func Summarize(in Input, opts Options) model.DistributionSummary {
	opts = normalizeOptions(opts)

	switch {
	case len(in.Samples) >= MinRealSamples:
		return FromSamples(in.Samples, opts)
	case in.P10 > 0 && in.P50 > 0 && in.P90 > 0:
		return FromPercentiles(in.P10, in.P50, in.P90)
	default:
		return FromPoint(in.Point, opts)
	}
}

// FromSamples computes an empirical summary from raw simulation draws.
func FromSamples(samples []float64, opts Options) model.DistributionSummary {
	opts = normalizeOptions(opts)

	sorted := make([]float64, 0, len(samples))
	for _, v := range samples {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)

	if len(sorted) == 0 {
		return markInsufficient(model.DistributionSummary{})
	}

	s := model.DistributionSummary{
		P10:                    Percentile(sorted, 10),
		P25:                    Percentile(sorted, 25),
		P50:                    Percentile(sorted, 50),
		P75:                    Percentile(sorted, 75),
		P90:                    Percentile(sorted, 90),
		IsFromRealDistribution: len(sorted) >= MinRealSamples,
		SampleCount:            len(sorted),
	}

	if opts.Winsorize {
		s.WinsorLow = Percentile(sorted, opts.WinsorLowPct)
		s.WinsorHigh = Percentile(sorted, opts.WinsorHighPct)
	}

	if s.P50 <= 0 {
		return markInsufficient(s)
	}

	zap.L().Debug("distribution: empirical summary",
		zap.Int("samples", s.SampleCount),
		zap.Float64("p50", s.P50),
	)

	return s
}

// FromPercentiles builds a summary from a p10/p50/p90 payload. The missing
// quartiles are linearly interpolated midpoints, which is an approximation,
// not a statistically correct quantile estimate; callers must treat p25 and
// p75 as indicative only.
func FromPercentiles(p10, p50, p90 float64) model.DistributionSummary {
	s := model.DistributionSummary{
		P10: p10,
		P25: (p10 + p50) / 2,
		P50: p50,
		P75: (p50 + p90) / 2,
		P90: p90,
	}
	s = enforceOrder(s)
	if s.P50 <= 0 {
		return markInsufficient(s)
	}
	return s
}

// FromPoint synthesizes a spread around a single point estimate using the
// configured uncertainty fraction.
func FromPoint(estimate float64, opts Options) model.DistributionSummary {
	opts = normalizeOptions(opts)

	if estimate <= 0 || math.IsNaN(estimate) || math.IsInf(estimate, 0) {
		return markInsufficient(model.DistributionSummary{})
	}

	u := opts.UncertaintyPct / 100
	s := model.DistributionSummary{
		P10: estimate * (1 - u),
		P25: estimate * (1 - u/2),
		P50: estimate,
		P75: estimate * (1 + u/2),
		P90: estimate * (1 + u),
	}
	return s
}

// Percentile returns the q-th percentile (0-100) of sorted values using
// linear interpolation between closest ranks.
func Percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 100 {
		return sorted[n-1]
	}

	rank := q / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// PercentileRank returns the percentage (0-100) of sorted values at or
// below v.
func PercentileRank(sorted []float64, v float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	// Index of first value strictly greater than v.
	idx := sort.SearchFloat64s(sorted, math.Nextafter(v, math.Inf(1)))
	return float64(idx) / float64(n) * 100
}

// normalizeOptions fills zero-valued fields with defaults.
func normalizeOptions(opts Options) Options {
	def := DefaultOptions()
	if opts.UncertaintyPct <= 0 {
		opts.UncertaintyPct = def.UncertaintyPct
	}
	if opts.WinsorLowPct <= 0 {
		opts.WinsorLowPct = def.WinsorLowPct
	}
	if opts.WinsorHighPct <= 0 || opts.WinsorHighPct <= opts.WinsorLowPct {
		opts.WinsorHighPct = def.WinsorHighPct
	}
	return opts
}

// enforceOrder makes the 5-point summary monotonic non-decreasing. Needed
// only for caller-supplied percentile payloads, which may be inconsistent.
func enforceOrder(s model.DistributionSummary) model.DistributionSummary {
	vals := []float64{s.P10, s.P25, s.P50, s.P75, s.P90}
	sort.Float64s(vals)
	s.P10, s.P25, s.P50, s.P75, s.P90 = vals[0], vals[1], vals[2], vals[3], vals[4]
	return s
}

func markInsufficient(s model.DistributionSummary) model.DistributionSummary {
	s.Insufficient = true
	return s
}
