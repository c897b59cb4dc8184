package registration_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-accountform/pkg/registration"
)

func TestFormData_WithReplacesExactlyOneField(t *testing.T) {
	base := validData()
	for _, field := range registration.Fields() {
		t.Run(field.String(), func(t *testing.T) {
			next, err := base.With(field, "changed")
			if err != nil {
				t.Fatalf("with: %v", err)
			}
			if got := next.Get(field); got != "changed" {
				t.Fatalf("field %s not updated: %q", field, got)
			}
			for _, other := range registration.Fields() {
				if other == field {
					continue
				}
				if next.Get(other) != base.Get(other) {
					t.Fatalf("field %s changed unexpectedly: %q -> %q", other, base.Get(other), next.Get(other))
				}
			}
			if base.Get(field) == "changed" {
				t.Fatalf("With mutated the receiver")
			}
		})
	}
}

func TestFormData_WithUnknownField(t *testing.T) {
	base := validData()
	got, err := base.With(registration.Field("nickname"), "x")
	if !errors.Is(err, registration.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if got != base {
		t.Fatalf("unknown field must leave data untouched")
	}
}

func TestFormData_WithKeepsRawValue(t *testing.T) {
	next, err := registration.FormData{}.With(registration.FieldFirstName, "  Jane  ")
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if next.FirstName != "  Jane  " {
		t.Fatalf("value should be stored untrimmed, got %q", next.FirstName)
	}
}

func TestFormData_JSONHasExactlySixStringKeys(t *testing.T) {
	payload, err := json.Marshal(registration.FormData{FirstName: "Jane"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"firstName":   "Jane",
		"lastName":    "",
		"email":       "",
		"phoneNumber": "",
		"gender":      "",
		"proficiency": "",
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestParseField(t *testing.T) {
	field, err := registration.ParseField(" phoneNumber ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if field != registration.FieldPhoneNumber {
		t.Fatalf("unexpected field %q", field)
	}
	if _, err := registration.ParseField("PhoneNumber"); !errors.Is(err, registration.ErrUnknownField) {
		t.Fatalf("field names are case sensitive, got %v", err)
	}
}

func TestFormData_IsZero(t *testing.T) {
	if !(registration.FormData{}).IsZero() {
		t.Fatalf("empty form should be zero")
	}
	if validData().IsZero() {
		t.Fatalf("filled form should not be zero")
	}
}
