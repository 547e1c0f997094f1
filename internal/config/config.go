// Package config provides configuration management for the engine and CLI.
// Configuration is explicitly constructed and passed in; the engine itself
// holds no global state.
package config

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"trade-cost/internal/logging"
)

// EngineConfig contains calculation defaults.
// The inland estimates are deliberately configurable rather than constants:
// real deployments want per-lane values.
type EngineConfig struct {
	// DefaultCurrency is the currency assumed when input omits one
	DefaultCurrency string `mapstructure:"default_currency"`

	// DefaultInsuranceRate is the cargo insurance rate used absent an override (fraction)
	DefaultInsuranceRate float64 `mapstructure:"default_insurance_rate"`

	// OriginInlandEstimate is the flat factory-to-port trucking estimate (EXW only)
	OriginInlandEstimate float64 `mapstructure:"origin_inland_estimate"`

	// DestinationInlandEstimate is the flat port-to-warehouse trucking estimate
	DestinationInlandEstimate float64 `mapstructure:"destination_inland_estimate"`
}

// InsuranceRate returns the default insurance rate as a decimal
func (c EngineConfig) InsuranceRate() decimal.Decimal {
	return decimal.NewFromFloat(c.DefaultInsuranceRate)
}

// OriginEstimate returns the origin inland estimate as a decimal
func (c EngineConfig) OriginEstimate() decimal.Decimal {
	return decimal.NewFromFloat(c.OriginInlandEstimate)
}

// DestinationEstimate returns the destination inland estimate as a decimal
func (c EngineConfig) DestinationEstimate() decimal.Decimal {
	return decimal.NewFromFloat(c.DestinationInlandEstimate)
}

// Config is the main application configuration
type Config struct {
	// Engine contains calculation defaults
	Engine EngineConfig `mapstructure:"engine"`

	// Logging contains logging configuration
	Logging logging.Config `mapstructure:"logging"`
}

// Load loads configuration from a file, falling back to defaults for any
// key the file omits. An empty path returns pure defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("engine.default_currency", "USD")
	v.SetDefault("engine.default_insurance_rate", 0.005)
	v.SetDefault("engine.origin_inland_estimate", 350)
	v.SetDefault("engine.destination_inland_estimate", 500)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the default configuration
func Default() *Config {
	cfg, _ := Load("")
	return cfg
}
