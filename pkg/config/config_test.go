package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"CONCILIADOR_API_BASE",
		"CONCILIADOR_API_TIMEOUT",
		"CONCILIADOR_REDIS_ADDR",
		"CONCILIADOR_DB_PATH",
		"CONCILIADOR_MAPPING_PATH",
		"CONCILIADOR_SUGGEST_DAYS",
		"CONCILIADOR_SUGGEST_AMOUNT_TOL",
		"DEBUG",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.BaseURL != "" {
		t.Errorf("API.BaseURL = %q, expected empty", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, expected 30s", cfg.API.Timeout)
	}
	if cfg.Local.DBPath != "./data/conciliador.db" {
		t.Errorf("Local.DBPath = %q, expected default path", cfg.Local.DBPath)
	}
	if cfg.Suggest.Days != 5 {
		t.Errorf("Suggest.Days = %d, expected 5", cfg.Suggest.Days)
	}
	if cfg.Suggest.AmountTol != 0.01 {
		t.Errorf("Suggest.AmountTol = %v, expected 0.01", cfg.Suggest.AmountTol)
	}
	if cfg.Debug {
		t.Error("Debug = true, expected false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONCILIADOR_API_BASE", "https://conciliador.ofitec.cl/api")
	t.Setenv("CONCILIADOR_API_TIMEOUT", "10")
	t.Setenv("CONCILIADOR_REDIS_ADDR", "localhost:6379")
	t.Setenv("CONCILIADOR_DB_PATH", "/tmp/test.db")
	t.Setenv("CONCILIADOR_SUGGEST_DAYS", "3")
	t.Setenv("CONCILIADOR_SUGGEST_AMOUNT_TOL", "0.05")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.BaseURL != "https://conciliador.ofitec.cl/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, expected 10s", cfg.API.Timeout)
	}
	if cfg.API.RedisAddr != "localhost:6379" {
		t.Errorf("API.RedisAddr = %q", cfg.API.RedisAddr)
	}
	if cfg.Local.DBPath != "/tmp/test.db" {
		t.Errorf("Local.DBPath = %q", cfg.Local.DBPath)
	}
	if cfg.Suggest.Days != 3 {
		t.Errorf("Suggest.Days = %d, expected 3", cfg.Suggest.Days)
	}
	if cfg.Suggest.AmountTol != 0.05 {
		t.Errorf("Suggest.AmountTol = %v, expected 0.05", cfg.Suggest.AmountTol)
	}
	if !cfg.Debug {
		t.Error("Debug = false, expected true")
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	t.Setenv("CONCILIADOR_API_TIMEOUT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for non-numeric timeout")
	}
}

func TestLoadEnvFile(t *testing.T) {
	// t.Setenv registers the restore; the variable must be absent so the
	// .env file value is picked up.
	t.Setenv("CONCILIADOR_SUGGEST_DAYS", "")
	_ = os.Unsetenv("CONCILIADOR_SUGGEST_DAYS")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("CONCILIADOR_SUGGEST_DAYS=9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Suggest.Days != 9 {
		t.Errorf("Suggest.Days = %d, expected 9 from .env file", cfg.Suggest.Days)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Load() expected error for an explicit .env path that does not exist")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.API.BaseURL = "http://localhost:5555/api"

	if err := cfg.Validate([]string{"api", "baseUrl"}); err != nil {
		t.Errorf("Validate() error for present field: %v", err)
	}

	err := cfg.Validate([]string{"api", "redisAddr"}, []string{"local", "mappingPath"})
	if err == nil {
		t.Fatal("Validate() expected error for missing fields")
	}
	if !strings.Contains(err.Error(), "api.redisAddr") || !strings.Contains(err.Error(), "local.mappingPath") {
		t.Errorf("Validate() error %q does not name the missing paths", err)
	}
}
