package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %s", cfg.Server.Port)
	}
	if cfg.Database.DBName != "transcript_tracker" {
		t.Errorf("default dbname = %s", cfg.Database.DBName)
	}
	if cfg.JWT.AccessTokenExpiration != "24h" || cfg.JWT.Issuer != "transcript-tracker" {
		t.Errorf("JWT defaults = %+v", cfg.JWT)
	}
	if cfg.App.OverdueSweepInterval != "24h" {
		t.Errorf("default sweep interval = %s", cfg.App.OverdueSweepInterval)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "9090"
app:
  frontend_url: https://portal.school.edu
  overdue_sweep_interval: 12h
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.App.FrontendURL != "https://portal.school.edu" {
		t.Errorf("frontend url = %s", cfg.App.FrontendURL)
	}
	if cfg.App.OverdueSweepInterval != "12h" {
		t.Errorf("sweep interval = %s", cfg.App.OverdueSweepInterval)
	}
	// Untouched values keep their defaults
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host = %s", cfg.Database.Host)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("APP_ADMIN_EMAIL", "root@school.edu")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("port = %s, want 7070", cfg.Server.Port)
	}
	if cfg.SMTP.Port != 2525 {
		t.Errorf("smtp port = %d, want 2525", cfg.SMTP.Port)
	}
	if cfg.App.AdminEmail != "root@school.edu" {
		t.Errorf("admin email = %s", cfg.App.AdminEmail)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_OVERDUE_SWEEP_INTERVAL", "often")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("unparseable sweep interval must fail validation")
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing JWT secret must fail validation")
	}
}
