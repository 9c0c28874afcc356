package model

// DistributionSummary is a canonical 5-point valuation distribution.
// Invariant: P10 <= P25 <= P50 <= P75 <= P90 regardless of input mode.
type DistributionSummary struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`

	// Display-only winsor bounds. Zero when winsorization is disabled.
	WinsorLow  float64 `json:"winsor_low,omitempty"`
	WinsorHigh float64 `json:"winsor_high,omitempty"`

	// IsFromRealDistribution is true only when the summary was computed from
	// actual simulation samples, not synthesized or interpolated.
	IsFromRealDistribution bool `json:"is_from_real_distribution"`
	SampleCount            int  `json:"sample_count"`

	// Insufficient marks a degenerate summary (p50 <= 0). Consumers must
	// render a placeholder instead of a zero-valued chart.
	Insufficient bool `json:"insufficient,omitempty"`
}

// Spread returns the inner-80 width (p90 - p10).
func (d DistributionSummary) Spread() float64 {
	return d.P90 - d.P10
}

// IQR returns the interquartile range (p75 - p25).
func (d DistributionSummary) IQR() float64 {
	return d.P75 - d.P25
}
