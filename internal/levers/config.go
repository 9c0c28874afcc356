// Package levers implements driver/risk scoring for strategic levers:
// ranked impact scores, focus scoring, effort/impact quadrants, danger
// zones, and milestone achievements.
package levers

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/stratfit/scenario-cli/internal/model"
)

// LeverDef declares a strategic lever and its scoring parameters.
// Declaration order in the catalog is the tie-break order for ranking.
type LeverDef struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Category string       `yaml:"category"`
	Effort   model.Effort `yaml:"effort"`
	// Weight is the 0-1 sensitivity of outcomes to this lever.
	Weight float64 `yaml:"weight"`
	// DangerThreshold is the value at which the lever becomes critical.
	// Zero disables danger-zone tracking for the lever.
	DangerThreshold float64 `yaml:"danger_threshold,omitempty"`
	// RunwaySensitive levers get an urgency boost when median runway is
	// short.
	RunwaySensitive bool `yaml:"runway_sensitive,omitempty"`
}

// Config holds the tunable scoring thresholds.
type Config struct {
	// FocusFactor scales the top-3 average into the focus score.
	FocusFactor float64
	// HighImpactThreshold splits the quadrant grid vertically.
	HighImpactThreshold float64
	// ShortRunwayMonths is the runway below which runway-sensitive levers
	// are boosted.
	ShortRunwayMonths float64
}

// DefaultConfig returns the canonical rule set. The product history carried
// several divergent variants of these constants; this set is the one the
// engine standardizes on (65-point impact split, low+medium counted as low
// effort).
func DefaultConfig() Config {
	return Config{
		FocusFactor:         1.1,
		HighImpactThreshold: 65,
		ShortRunwayMonths:   12,
	}
}

// DefaultLevers returns the built-in lever catalog.
func DefaultLevers() []LeverDef {
	return []LeverDef{
		{ID: "pricing-power", Name: "Pricing Power", Category: "pricing", Effort: model.EffortMedium, Weight: 0.90},
		{ID: "customer-retention", Name: "Customer Retention", Category: "go-to-market", Effort: model.EffortMedium, Weight: 0.95},
		{ID: "sales-efficiency", Name: "Sales Efficiency", Category: "go-to-market", Effort: model.EffortMedium, Weight: 0.85},
		{ID: "product-velocity", Name: "Product Velocity", Category: "product", Effort: model.EffortHigh, Weight: 0.70},
		{ID: "market-expansion", Name: "Market Expansion", Category: "go-to-market", Effort: model.EffortHigh, Weight: 0.60},
		{ID: "hiring-intensity", Name: "Hiring Intensity", Category: "team", Effort: model.EffortHigh, Weight: 0.75, DangerThreshold: 75, RunwaySensitive: true},
		{ID: "burn-intensity", Name: "Burn Intensity", Category: "finance", Effort: model.EffortLow, Weight: 0.80, DangerThreshold: 80, RunwaySensitive: true},
		{ID: "debt-leverage", Name: "Debt Leverage", Category: "finance", Effort: model.EffortLow, Weight: 0.50, DangerThreshold: 70, RunwaySensitive: true},
	}
}

// ValidateCatalog checks a lever catalog for internal consistency.
func ValidateCatalog(defs []LeverDef) error {
	var errs []string
	seen := make(map[string]bool)
	for _, d := range defs {
		if d.ID == "" {
			errs = append(errs, "lever id must not be empty")
			continue
		}
		if seen[d.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lever id %q", d.ID))
		}
		seen[d.ID] = true
		if d.Weight <= 0 || d.Weight > 1 {
			errs = append(errs, fmt.Sprintf("lever %q weight must be in (0,1] (got %.2f)", d.ID, d.Weight))
		}
		if d.DangerThreshold < 0 || d.DangerThreshold > 100 {
			errs = append(errs, fmt.Sprintf("lever %q danger threshold must be 0-100 (got %.1f)", d.ID, d.DangerThreshold))
		}
		switch d.Effort {
		case model.EffortLow, model.EffortMedium, model.EffortHigh:
		default:
			errs = append(errs, fmt.Sprintf("lever %q has unknown effort %q", d.ID, d.Effort))
		}
	}
	if len(errs) > 0 {
		return eris.Errorf("levers: %s", strings.Join(errs, "; "))
	}
	return nil
}
