package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_NAME", "APP_TIMEZONE", "ID_NODE", "APP_PORT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
		"DB_DSN", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_AUTO_MIGRATE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		// t.Setenv registra la restauración; después se quita para que
		// godotenv pueda aplicar el archivo.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected port %q", cfg.Server.Port)
	}
	if cfg.UsesDatabase() {
		t.Fatalf("expected memory store by default")
	}
	if cfg.DB.MaxOpenConns != 10 || cfg.DB.MaxIdleConns != 5 || !cfg.DB.AutoMigrate {
		t.Fatalf("unexpected db defaults %+v", cfg.DB)
	}
	if cfg.Server.ReadTimeout != 5*time.Second || cfg.Server.WriteTimeout != 10*time.Second {
		t.Fatalf("unexpected timeouts %+v", cfg.Server)
	}
	if cfg.App.IDNode != 1 || cfg.App.Name != "pet-boarding" {
		t.Fatalf("unexpected app %+v", cfg.App)
	}
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nAPP_TIMEZONE=UTC\nDB_AUTO_MIGRATE=false\nID_NODE=7\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.DB.AutoMigrate || cfg.App.IDNode != 7 {
		t.Fatalf("env file not applied: %+v", cfg)
	}
	if cfg.Location().String() != "UTC" {
		t.Fatalf("location = %s", cfg.Location())
	}
}

func TestLoad_AggregatesErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("ID_NODE", "5000")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "ID_NODE") || !strings.Contains(msg, "APP_TIMEZONE") {
		t.Fatalf("expected both problems reported, got %q", msg)
	}
}

func TestLoad_RejectsMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for malformed DB_MAX_OPEN_CONNS")
	}
}
