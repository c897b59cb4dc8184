package config

import (
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-accountform/pkg/client"
)

// Backend locates the user service the client posts to.
type Backend struct {
	Scheme  string        `koanf:"scheme"  validate:"oneof=http https"`
	Host    string        `koanf:"host"    validate:"required"`
	Port    int           `koanf:"port"    validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
}

// Endpoint is the full registration URL.
func (b Backend) Endpoint() string {
	return client.Endpoint(b.Scheme, b.Host, b.Port)
}

// HTTP holds the browser front end listener.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

// Stub configures the development backend.
type Stub struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	Fail       bool   `koanf:"fail"`
}

// Log configures internal/logger.
type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	Dir   string `koanf:"dir"`
}

// UI selects presentation overlays and theme.
type UI struct {
	Schema  string            `koanf:"schema"`
	Theme   string            `koanf:"theme"`
	Variant string            `koanf:"variant"`
	Tokens  map[string]string `koanf:"tokens"`
}

// RendererConfig turns the UI section into the go-theme config consumed by
// the HTML renderer. Tokens double as CSS variables. Nil when no theme
// is configured.
func (u UI) RendererConfig() *theme.RendererConfig {
	if u.Theme == "" && u.Variant == "" && len(u.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(u.Tokens))
	tokens := make(map[string]string, len(u.Tokens))
	for key, value := range u.Tokens {
		tokens[key] = value
		vars[key] = value
	}
	return &theme.RendererConfig{
		Theme:   u.Theme,
		Variant: u.Variant,
		Tokens:  tokens,
		CSSVars: vars,
	}
}

// Config is the merged configuration tree.
type Config struct {
	Backend Backend `koanf:"backend"`
	HTTP    HTTP    `koanf:"http"`
	Stub    Stub    `koanf:"stub"`
	Log     Log     `koanf:"log"`
	UI      UI      `koanf:"ui"`
}

// Default returns the configuration used when no file or environment
// override is present. The backend matches the stub's default listener.
func Default() Config {
	return Config{
		Backend: Backend{
			Scheme:  "http",
			Host:    "localhost",
			Port:    8080,
			Timeout: 10 * time.Second,
		},
		HTTP: HTTP{ListenAddr: ":3000"},
		Stub: Stub{ListenAddr: ":8080"},
		Log:  Log{Level: "info"},
	}
}
