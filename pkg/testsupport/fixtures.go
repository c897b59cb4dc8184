// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-accountform/pkg/registration"
)

// ValidFormData returns a registration that passes every field rule.
func ValidFormData() registration.FormData {
	return registration.FormData{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		PhoneNumber: "5551234567",
		Gender:      registration.GenderFemale,
		Proficiency: "Fluent",
	}
}

// Fill replays every value of data through Session.Change.
func Fill(t *testing.T, session *registration.Session, data registration.FormData) {
	t.Helper()
	for _, field := range registration.Fields() {
		if err := session.Change(field, data.Get(field)); err != nil {
			t.Fatalf("change %s: %v", field, err)
		}
	}
}

// StaticSubmitter is a registration.Submitter that records calls and returns
// Err. It is safe to share with HTTP handlers.
type StaticSubmitter struct {
	Err error

	mu    sync.Mutex
	calls []registration.FormData
}

// Submit records data and returns s.Err.
func (s *StaticSubmitter) Submit(_ context.Context, data registration.FormData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, data)
	return s.Err
}

// Calls returns a copy of every submitted payload.
func (s *StaticSubmitter) Calls() []registration.FormData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]registration.FormData(nil), s.calls...)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
