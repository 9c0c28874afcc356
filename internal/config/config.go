package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store        StoreConfig        `yaml:"store" mapstructure:"store"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Simulation   SimulationConfig   `yaml:"simulation" mapstructure:"simulation"`
	Distribution DistributionConfig `yaml:"distribution" mapstructure:"distribution"`
	Levers       LeversConfig       `yaml:"levers" mapstructure:"levers"`
}

// StoreConfig configures the scenario run store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Path        string `yaml:"path" mapstructure:"path"` // sqlite file path
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int     `yaml:"port" mapstructure:"port"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SimulationConfig configures the Monte Carlo projection engine.
type SimulationConfig struct {
	Iterations    int     `yaml:"iterations" mapstructure:"iterations"`
	Seed          int64   `yaml:"seed" mapstructure:"seed"` // 0 = derive from clock
	HorizonMonths int     `yaml:"horizon_months" mapstructure:"horizon_months"`
	Workers       int     `yaml:"workers" mapstructure:"workers"`
	GrowthVolPct  float64 `yaml:"growth_vol_pct" mapstructure:"growth_vol_pct"`
	NRRVolPct     float64 `yaml:"nrr_vol_pct" mapstructure:"nrr_vol_pct"`
	MarginVolPct  float64 `yaml:"margin_vol_pct" mapstructure:"margin_vol_pct"`
}

// DistributionConfig configures distribution summarization.
type DistributionConfig struct {
	UncertaintyPct float64 `yaml:"uncertainty_pct" mapstructure:"uncertainty_pct"` // synthetic spread around a point estimate
	WinsorLowPct   float64 `yaml:"winsor_low_pct" mapstructure:"winsor_low_pct"`
	WinsorHighPct  float64 `yaml:"winsor_high_pct" mapstructure:"winsor_high_pct"`
}

// LeversConfig configures driver/risk scoring thresholds.
type LeversConfig struct {
	FocusFactor         float64 `yaml:"focus_factor" mapstructure:"focus_factor"`
	HighImpactThreshold float64 `yaml:"high_impact_threshold" mapstructure:"high_impact_threshold"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("STRATFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "stratfit.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_limit_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("simulation.iterations", 1000)
	v.SetDefault("simulation.horizon_months", 24)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.growth_vol_pct", 25)
	v.SetDefault("simulation.nrr_vol_pct", 8)
	v.SetDefault("simulation.margin_vol_pct", 10)
	v.SetDefault("distribution.uncertainty_pct", 20)
	v.SetDefault("distribution.winsor_low_pct", 5)
	v.SetDefault("distribution.winsor_high_pct", 95)
	v.SetDefault("levers.focus_factor", 1.1)
	v.SetDefault("levers.high_impact_threshold", 65)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
