package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "stratfit.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 20, cfg.Server.RateLimitRPS, 0.001)
	assert.Equal(t, 40, cfg.Server.RateLimitBurst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 1000, cfg.Simulation.Iterations)
	assert.Equal(t, 24, cfg.Simulation.HorizonMonths)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.InDelta(t, 25, cfg.Simulation.GrowthVolPct, 0.001)
	assert.InDelta(t, 20, cfg.Distribution.UncertaintyPct, 0.001)
	assert.InDelta(t, 5, cfg.Distribution.WinsorLowPct, 0.001)
	assert.InDelta(t, 95, cfg.Distribution.WinsorHighPct, 0.001)
	assert.InDelta(t, 1.1, cfg.Levers.FocusFactor, 0.001)
	assert.InDelta(t, 65, cfg.Levers.HighImpactThreshold, 0.001)
}

func TestLoadFromYAML(t *testing.T) {
	chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/stratfit
log:
  level: debug
  format: console
server:
  port: 9090
simulation:
  iterations: 5000
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Simulation.Iterations)
	// Defaults still apply for unset values
	assert.Equal(t, 24, cfg.Simulation.HorizonMonths)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("STRATFIT_STORE_DRIVER", "postgres")
	t.Setenv("STRATFIT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("STRATFIT_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.Driver = "sqlite"
	cfg.Store.Path = "stratfit.db"
	cfg.Server.Port = 8080
	cfg.Server.RateLimitRPS = 20
	cfg.Server.RateLimitBurst = 40
	cfg.Simulation.Iterations = 1000
	cfg.Simulation.HorizonMonths = 24
	cfg.Simulation.Workers = 4
	cfg.Distribution.WinsorLowPct = 5
	cfg.Distribution.WinsorHighPct = 95
	return cfg
}

func TestValidateStore_SQLite(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("store"))
}

func TestValidateStore_SQLiteMissingPath(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Path = ""

	err := cfg.Validate("store")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.path is required")
}

func TestValidateStore_PostgresMissingURL(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "postgres"

	err := cfg.Validate("store")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidateStore_UnknownDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "mysql"

	err := cfg.Validate("store")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite or postgres")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidateSimulate(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("simulate"))

	cfg.Simulation.Iterations = 0
	err := cfg.Validate("simulate")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.iterations")
}

func TestValidateSimulate_WinsorBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Distribution.WinsorLowPct = 95
	cfg.Distribution.WinsorHighPct = 5

	err := cfg.Validate("simulate")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "winsor_low_pct")
}

func TestValidateUnknownScope(t *testing.T) {
	cfg := validDefaults()
	assert.Error(t, cfg.Validate("bogus"))
}
