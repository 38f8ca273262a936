package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	// clear env vars
	_ = os.Unsetenv("DAYBOOK_BUILD_TARGET")
	_ = os.Unsetenv("DAYBOOK_DB_DRIVER")
	_ = os.Unsetenv("DAYBOOK_HTTP_PORT")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.BuildTarget != "local" || cfg.DBDriver != "sqlite" || cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CacheTTLSeconds != 300 {
		t.Fatalf("unexpected default cache TTL: %d", cfg.CacheTTLSeconds)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("DAYBOOK_HTTP_PORT", "9191")
	defer func() { _ = os.Unsetenv("DAYBOOK_HTTP_PORT") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 9191 {
		t.Fatalf("http port env override failed, got %d", cfg.HTTPPort)
	}
}

func TestConfigLoad_PostgresRequiresDSN(t *testing.T) {
	_ = os.Setenv("DAYBOOK_DB_DRIVER", "postgres")
	_ = os.Unsetenv("DAYBOOK_POSTGRES_DSN")
	defer func() { _ = os.Unsetenv("DAYBOOK_DB_DRIVER") }()

	if _, err := New(); err == nil {
		t.Fatal("expected error for postgres driver without DSN")
	}
}
