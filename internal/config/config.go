package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// CatalogFile points at a YAML procedure/resource catalog. Empty means
	// the compiled-in clinic catalog.
	CatalogFile string `mapstructure:"CATALOG_FILE"`

	RateLimitRPS    float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int     `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout  int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	BodyLimit       string  `mapstructure:"BODY_LIMIT"`

	// Engine thresholds. Zero values fall back to the package defaults.
	FatigueLimit          int     `mapstructure:"FATIGUE_LIMIT"`
	DayStartHour          int     `mapstructure:"DAY_START_HOUR"`
	DayEndHour            int     `mapstructure:"DAY_END_HOUR"`
	NominalHoursPerStaff  float64 `mapstructure:"NOMINAL_HOURS_PER_STAFF"`
	CapacityHoursPerStaff float64 `mapstructure:"CAPACITY_HOURS_PER_STAFF"`
	BreakCreditInterval   int     `mapstructure:"BREAK_CREDIT_INTERVAL_MINUTES"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("BODY_LIMIT", "1M")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("CATALOG_FILE")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")
	v.BindEnv("BODY_LIMIT")
	v.BindEnv("FATIGUE_LIMIT")
	v.BindEnv("DAY_START_HOUR")
	v.BindEnv("DAY_END_HOUR")
	v.BindEnv("NOMINAL_HOURS_PER_STAFF")
	v.BindEnv("CAPACITY_HOURS_PER_STAFF")
	v.BindEnv("BREAK_CREDIT_INTERVAL_MINUTES")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
