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
		"CONFIG_PATH", "PORT", "DATABASE_URL", "JWT_PRIVATE_KEY", "JWT_TTL",
		"PROMOTION_SWEEP_INTERVAL", "MAIL_WORKERS", "MAILGUN_API_KEY", "MAILGUN_DOMAIN", "S3_BUCKET",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_RequiresDatabaseAndKey(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected database error, got %v", err)
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/eats")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_PRIVATE_KEY") {
		t.Fatalf("expected jwt error, got %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
http:
  port: "7000"
database:
  dsn: postgres://file/eats
jwt:
  privateKey: from-file
  ttl: 2h
mail:
  apiKey: k
  domain: mg.example.com
promotion:
  sweepInterval: 10m
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_PRIVATE_KEY", "from-env")
	t.Setenv("MAIL_WORKERS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != "7000" || cfg.Database.DSN != "postgres://file/eats" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.JWT.PrivateKey != "from-env" {
		t.Errorf("env must override file, got %q", cfg.JWT.PrivateKey)
	}
	if cfg.JWT.TTL != 2*time.Hour || cfg.Promotion.SweepInterval != 10*time.Minute {
		t.Errorf("durations = %v %v", cfg.JWT.TTL, cfg.Promotion.SweepInterval)
	}
	if cfg.Mail.Workers != 5 || cfg.Mail.QueueSize != 100 || cfg.Admin.Port != "9090" {
		t.Errorf("mail/admin = %+v %+v", cfg.Mail, cfg.Admin)
	}
	if !cfg.MailEnabled() || cfg.UploadsEnabled() {
		t.Errorf("enabled flags wrong")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "x")
	t.Setenv("JWT_PRIVATE_KEY", "y")
	t.Setenv("JWT_TTL", "soon")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_TTL") {
		t.Fatalf("expected JWT_TTL error, got %v", err)
	}
}
