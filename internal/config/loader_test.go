package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-accountform/internal/config"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), *cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Backend.Endpoint(); got != "http://localhost:8080/api/users/register" {
		t.Fatalf("endpoint: %s", got)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "accountform.yaml", `
backend:
  host: users.internal
  port: 9000
  timeout: 3s
log:
  level: DEBUG
ui:
  theme: ocean
  tokens:
    af-accent: "#0ea5e9"
`)
	cfg, err := config.Load(config.Options{File: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.Host != "users.internal" || cfg.Backend.Port != 9000 {
		t.Fatalf("backend not overridden: %#v", cfg.Backend)
	}
	if cfg.Backend.Timeout != 3*time.Second {
		t.Fatalf("timeout: got %s", cfg.Backend.Timeout)
	}
	if cfg.Backend.Scheme != "http" {
		t.Fatalf("unset keys should keep defaults, scheme=%q", cfg.Backend.Scheme)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("level should be normalised, got %q", cfg.Log.Level)
	}

	theme := cfg.UI.RendererConfig()
	if theme == nil || theme.Theme != "ocean" || theme.CSSVars["af-accent"] != "#0ea5e9" {
		t.Fatalf("theme config not derived: %#v", theme)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "accountform.yaml", "backend:\n  host: from-file\n")
	t.Setenv("ACCOUNTFORM_BACKEND__HOST", "from-env")
	t.Setenv("ACCOUNTFORM_STUB__FAIL", "true")

	cfg, err := config.Load(config.Options{File: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.Host != "from-env" {
		t.Fatalf("env should win, got %q", cfg.Backend.Host)
	}
	if !cfg.Stub.Fail {
		t.Fatalf("stub.fail not read from env")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	const key = "ACCOUNTFORM_HTTP__LISTEN_ADDR"
	t.Setenv(key, "")
	os.Unsetenv(key)
	t.Cleanup(func() { os.Unsetenv(key) })

	envFile := writeFile(t, ".env", key+"=127.0.0.1:4000\n")
	cfg, err := config.Load(config.Options{EnvFile: envFile})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:4000" {
		t.Fatalf("dotenv value not applied, got %q", cfg.HTTP.ListenAddr)
	}

	if _, err := config.Load(config.Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")}); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bad scheme", body: "backend:\n  scheme: ftp\n", want: "Scheme"},
		{name: "bad port", body: "backend:\n  port: 70000\n", want: "Port"},
		{name: "bad level", body: "log:\n  level: loud\n", want: "Level"},
		{name: "bad listen addr", body: "http:\n  listen_addr: nope\n", want: "ListenAddr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "accountform.yaml", tt.body)
			_, err := config.Load(config.Options{File: path})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := config.Load(config.Options{File: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestUI_RendererConfigNilWhenUnset(t *testing.T) {
	if (config.UI{}).RendererConfig() != nil {
		t.Fatalf("expected nil theme config")
	}
}
