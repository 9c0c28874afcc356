package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks that the configuration is usable for the given scope.
// Known scopes: "store", "serve", "simulate".
func (c *Config) Validate(scope string) error {
	var errs []string

	switch scope {
	case "store":
		errs = append(errs, c.validateStore()...)
	case "serve":
		errs = append(errs, c.validateStore()...)
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server.port must be 1-65535 (got %d)", c.Server.Port))
		}
		if c.Server.RateLimitRPS <= 0 {
			errs = append(errs, "server.rate_limit_rps must be positive")
		}
		if c.Server.RateLimitBurst <= 0 {
			errs = append(errs, "server.rate_limit_burst must be positive")
		}
	case "simulate":
		if c.Simulation.Iterations <= 0 {
			errs = append(errs, "simulation.iterations must be positive")
		}
		if c.Simulation.HorizonMonths <= 0 {
			errs = append(errs, "simulation.horizon_months must be positive")
		}
		if c.Simulation.Workers <= 0 {
			errs = append(errs, "simulation.workers must be positive")
		}
		if c.Distribution.WinsorLowPct >= c.Distribution.WinsorHighPct {
			errs = append(errs, "distribution.winsor_low_pct must be below winsor_high_pct")
		}
	default:
		return eris.Errorf("config: unknown validation scope %q", scope)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateStore() []string {
	var errs []string
	switch c.Store.Driver {
	case "sqlite":
		if c.Store.Path == "" {
			errs = append(errs, "store.path is required for sqlite")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required for postgres")
		}
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be sqlite or postgres (got %q)", c.Store.Driver))
	}
	return errs
}
