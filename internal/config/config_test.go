package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "ocr:\n  api_key: sk-test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("port = %d, want 3000", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("env should default to development")
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.OCR.APIKey != "sk-test" {
		t.Errorf("ocr key = %q", cfg.OCR.APIKey)
	}
	if cfg.Storage.MaxUploadMB != 4 {
		t.Errorf("max upload = %d, want 4", cfg.Storage.MaxUploadMB)
	}
	if cfg.DSN == "" {
		t.Error("mysql dsn not computed")
	}
}

func TestLoadSQLiteDriver(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: sqlite\n  path: /tmp/app.db\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "/tmp/app.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, "port: 70000\n")
	if _, err := Load(path); err == nil {
		t.Fatal("invalid port accepted")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: postgres\n")
	if _, err := Load(path); err == nil {
		t.Fatal("unknown driver accepted")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "prot: 3000\n")
	if _, err := Load(path); err == nil {
		t.Fatal("unknown top-level field accepted")
	}
}

func TestLoadEnvKeyFallback(t *testing.T) {
	t.Setenv("TOGETHER_API_KEY", "sk-from-env")
	path := writeConfig(t, "env: production\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OCR.APIKey != "sk-from-env" {
		t.Errorf("ocr key = %q, want env fallback", cfg.OCR.APIKey)
	}
	if cfg.IsDev() {
		t.Error("production env reported as dev")
	}
}

func TestMySQLDSNShape(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"database:",
		"  host: db.internal",
		"  port: 3307",
		"  user: app",
		"  password: pw",
		"  name: snapocr",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(cfg.DSN, "db.internal:3307") || !strings.Contains(cfg.DSN, "snapocr") {
		t.Errorf("dsn = %q", cfg.DSN)
	}
}
