package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY", "SWAGGER_ENABLED",
		"API_BASE_PATH", "DB_PATH", "DEDUP_WINDOW", "RETENTION_HORIZON", "TIMEZONE",
		"MIN_TEXT_RUNES", "DELIVERY_TTL", "RATE_RPS", "RATE_BURST",
		"CORS_ALLOWED_ORIGINS", "ENABLE_HSTS", "HSTS_MAX_AGE",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.DBPath != "messages.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.DedupWindow != 24*time.Hour || cfg.RetentionHorizon != 7*24*time.Hour {
		t.Fatalf("window/retention defaults: %v / %v", cfg.DedupWindow, cfg.RetentionHorizon)
	}
	if cfg.Timezone != "Asia/Jakarta" || cfg.MinTextRunes != 5 {
		t.Fatalf("engine defaults: tz=%q min=%d", cfg.Timezone, cfg.MinTextRunes)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEDUP_WINDOW", "1h")
	t.Setenv("RETENTION_HORIZON", "48h")
	t.Setenv("TIMEZONE", "Europe/Athens")
	t.Setenv("MIN_TEXT_RUNES", "3")
	t.Setenv("API_BASE_PATH", "v2/")
	t.Setenv("LOG_LEVEL", "WARNING")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DedupWindow != time.Hour || cfg.RetentionHorizon != 48*time.Hour {
		t.Fatalf("overrides not applied: %v / %v", cfg.DedupWindow, cfg.RetentionHorizon)
	}
	if cfg.Timezone != "Europe/Athens" || cfg.MinTextRunes != 3 {
		t.Fatalf("engine overrides: %+v", cfg)
	}
	if cfg.APIBasePath != "/v2" {
		t.Fatalf("base path not normalized: %q", cfg.APIBasePath)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("warning alias not normalized: %q", cfg.LogLevel)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"retention below window", map[string]string{"DEDUP_WINDOW": "48h", "RETENTION_HORIZON": "24h"}},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{"zero min runes", map[string]string{"MIN_TEXT_RUNES": "0"}},
		{"negative rate", map[string]string{"RATE_RPS": "-1"}},
		{"zero burst", map[string]string{"RATE_BURST": "0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_InvalidGinModeFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "chaos")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q; want release fallback", cfg.GinMode)
	}
}
