package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv keeps ambient environment out of the way so each test sees only
// what it sets itself.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BACKEND_URL", "")
	t.Setenv("BRIDGE_PORT", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected defaults to load, got error: %v", err)
	}

	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("Expected default backend URL, got %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSeconds != 30 {
		t.Errorf("Expected default timeout 30s, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Bridge.Port != 8080 {
		t.Errorf("Expected default bridge port 8080, got %d", cfg.Bridge.Port)
	}
	if cfg.HealthPoll.Schedule != "@every 30s" {
		t.Errorf("Expected default poll schedule, got %q", cfg.HealthPoll.Schedule)
	}
	if cfg.HealthPoll.Disabled {
		t.Error("Health poll should be enabled by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, `
backend:
  url: http://127.0.0.1:9000
  timeout_seconds: 10
bridge:
  port: 9090
  allowed_origins:
    - http://localhost:5173
health_poll:
  schedule: "@every 1m"
  disabled: true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected config to load, got error: %v", err)
	}

	if cfg.Backend.URL != "http://127.0.0.1:9000" {
		t.Errorf("Expected backend URL from file, got %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSeconds != 10 {
		t.Errorf("Expected timeout 10s, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Bridge.Port != 9090 {
		t.Errorf("Expected bridge port 9090, got %d", cfg.Bridge.Port)
	}
	if len(cfg.Bridge.AllowedOrigins) != 1 || cfg.Bridge.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("Unexpected allowed origins: %v", cfg.Bridge.AllowedOrigins)
	}
	if cfg.HealthPoll.Schedule != "@every 1m" {
		t.Errorf("Expected poll schedule from file, got %q", cfg.HealthPoll.Schedule)
	}
	if !cfg.HealthPoll.Disabled {
		t.Error("Expected health poll disabled")
	}
}

func TestFileWinsOverEnvironment(t *testing.T) {
	clearEnv(t)
	writeConfig(t, `
backend:
  url: http://from-file:9000
`)
	t.Setenv("BACKEND_URL", "http://from-env:9001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected config to load, got error: %v", err)
	}
	if cfg.Backend.URL != "http://from-file:9000" {
		t.Errorf("File value should win over environment, got %q", cfg.Backend.URL)
	}
}

func TestEnvironmentFillsGaps(t *testing.T) {
	clearEnv(t)
	writeConfig(t, `
backend:
  timeout_seconds: 15
`)
	t.Setenv("BACKEND_URL", "http://from-env:9001")
	t.Setenv("BRIDGE_PORT", "9191")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected config to load, got error: %v", err)
	}
	if cfg.Backend.URL != "http://from-env:9001" {
		t.Errorf("Expected backend URL from environment, got %q", cfg.Backend.URL)
	}
	if cfg.Bridge.Port != 9191 {
		t.Errorf("Expected bridge port from environment, got %d", cfg.Bridge.Port)
	}
	if cfg.Backend.TimeoutSeconds != 15 {
		t.Errorf("File timeout should be kept, got %d", cfg.Backend.TimeoutSeconds)
	}
}

func TestInvalidBridgePortEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRIDGE_PORT", "not-a-port")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "invalid BRIDGE_PORT") {
		t.Errorf("Expected invalid BRIDGE_PORT error, got %v", err)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantSubstr string
	}{
		{
			name: "Unsupported scheme",
			yaml: `
backend:
  url: ftp://localhost:8000
`,
			wantSubstr: "must use http or https",
		},
		{
			name: "Missing host",
			yaml: `
backend:
  url: http://
`,
			wantSubstr: "missing a host",
		},
		{
			name: "Negative timeout",
			yaml: `
backend:
  timeout_seconds: -5
`,
			wantSubstr: "must not be negative",
		},
		{
			name: "Port out of range",
			yaml: `
bridge:
  port: 70000
`,
			wantSubstr: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			writeConfig(t, tt.yaml)

			_, err := Load()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantSubstr, err)
			}
		})
	}
}

func TestLoadParseError(t *testing.T) {
	clearEnv(t)
	writeConfig(t, "backend: [broken")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestConfigHelpers(t *testing.T) {
	backend := BackendConfig{TimeoutSeconds: 30}
	if backend.Timeout() != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", backend.Timeout())
	}

	bridge := BridgeConfig{Port: 8080}
	if bridge.Addr() != ":8080" {
		t.Errorf("Expected addr ':8080', got %q", bridge.Addr())
	}
}
