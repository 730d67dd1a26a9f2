package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.AI.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout 30, got %d", cfg.AI.TimeoutSeconds)
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = "9000"

[ai]
model = "from-file"
timeout_seconds = 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AI_MODEL", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("expected port from file, got %s", cfg.Server.Port)
	}
	if cfg.AI.Model != "from-env" {
		t.Errorf("expected env to beat file, got %s", cfg.AI.Model)
	}
	if cfg.AI.TimeoutSeconds != 10 {
		t.Errorf("expected timeout from file, got %d", cfg.AI.TimeoutSeconds)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	if _, err := Load("/nonexistent/config.toml"); err != nil {
		t.Errorf("expected missing file tolerated, got: %v", err)
	}
}

func TestLoad_BadEnvValues(t *testing.T) {
	t.Setenv("AI_TIMEOUT_SECONDS", "not-a-number")
	if _, err := Load(""); err == nil {
		t.Error("expected error for bad timeout")
	}
}

func TestDSN_Format(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=h port=5432 user=u password=p dbname=n sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
