package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type mapEnv map[string]string

func (m mapEnv) Getenv(key string) string { return m[key] }

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadConfigFromEnv(mapEnv{"SESSION_SECRET": "x"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("expected default gin mode release, got %q", cfg.GinMode)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("expected default driver sqlite, got %q", cfg.DBDriver)
	}
	if cfg.SessionExpiry != 12*time.Hour {
		t.Fatalf("expected default expiry 12h, got %v", cfg.SessionExpiry)
	}
}

func TestLoadConfigFromEnv_MissingSecret(t *testing.T) {
	_, err := LoadConfigFromEnv(mapEnv{})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadConfigFromEnv_InvalidDriver(t *testing.T) {
	_, err := LoadConfigFromEnv(mapEnv{"SESSION_SECRET": "x", "DB_DRIVER": "postgres"})
	if err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := LoadConfigFromEnv(mapEnv{
		"SESSION_SECRET":         "x",
		"PORT":                   "1234",
		"DB_DRIVER":              "mysql",
		"DB_DSN":                 "user:pass@tcp(db:3306)/c2",
		"SESSION_EXPIRY_SECONDS": "60",
		"ADMIN_USER":             "operator",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 1234 {
		t.Fatalf("expected port 1234, got %d", cfg.Port)
	}
	if cfg.DBDriver != "mysql" || cfg.DBDSN != "user:pass@tcp(db:3306)/c2" {
		t.Fatalf("unexpected db config: %q %q", cfg.DBDriver, cfg.DBDSN)
	}
	if cfg.SessionExpiry != time.Minute {
		t.Fatalf("expected expiry 1m, got %v", cfg.SessionExpiry)
	}
	if cfg.AdminUser != "operator" {
		t.Fatalf("expected operator, got %q", cfg.AdminUser)
	}
}

func TestLoadConfigFromEnv_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte("server:\n  port: 9000\nadmin:\n  session_secret: from-file\n  username: fileadmin\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfigFromEnv(mapEnv{"CONFIG_FILE": path, "PORT": "9100"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("env should win over file, got port %d", cfg.Port)
	}
	if cfg.SessionSecret != "from-file" {
		t.Fatalf("expected secret from file, got %q", cfg.SessionSecret)
	}
	if cfg.AdminUser != "fileadmin" {
		t.Fatalf("expected fileadmin, got %q", cfg.AdminUser)
	}
}
