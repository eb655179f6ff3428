package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.RateLimitRPS != 100 {
		t.Errorf("expected default rate limit 100, got %f", cfg.RateLimitRPS)
	}
	if cfg.BodyLimit != "1M" {
		t.Errorf("expected default body limit 1M, got %s", cfg.BodyLimit)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Error("expected default CORS origins")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DAY_START_HOUR", "7")
	os.Setenv("CATALOG_FILE", "/etc/clinic/catalog.yaml")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DAY_START_HOUR")
		os.Unsetenv("CATALOG_FILE")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.DayStartHour != 7 {
		t.Errorf("expected day start 7, got %d", cfg.DayStartHour)
	}
	if cfg.CatalogFile != "/etc/clinic/catalog.yaml" {
		t.Errorf("expected catalog file override, got %s", cfg.CatalogFile)
	}
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	os.Setenv("CORS_ORIGINS", "http://a.example.com,http://b.example.com")
	defer os.Unsetenv("CORS_ORIGINS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
	if cfg.CORSOrigins[1] != "http://b.example.com" {
		t.Errorf("expected second origin b.example.com, got %s", cfg.CORSOrigins[1])
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
	if !c.IsProduction() {
		t.Error("expected IsProduction() to return true for production")
	}
}
