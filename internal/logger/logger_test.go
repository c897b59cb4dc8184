package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-accountform/internal/logger"
)

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Infow("hidden")
	log.Warnw("shown", "field", "value")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "warn") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestNew_FileSink(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Dir: dir, Console: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Infow("to file", "session", "abc")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, logger.FileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"session":"abc"`) {
		t.Fatalf("expected JSON line, got %s", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"DEBUG", zapcore.DebugLevel},
		{" error ", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := logger.ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := logger.ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
