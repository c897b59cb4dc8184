// Package contract describes the registration backend boundary as an OpenAPI
// document and validates payloads against its request schema.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-accountform/pkg/client"
	"github.com/goliatone/go-accountform/pkg/registration"
)

const (
	// OperationID names the registration operation in the document.
	OperationID = "registerUser"
	// RequestSchemaName is the component holding the request body schema.
	RequestSchemaName = "RegisterRequest"
)

//go:embed openapi.yaml
var rawDocument []byte

// ErrInvalidPayload wraps schema violations reported by Validator.
var ErrInvalidPayload = errors.New("contract: payload does not match schema")

// Raw returns the embedded document as YAML.
func Raw() []byte {
	out := make([]byte, len(rawDocument))
	copy(out, rawDocument)
	return out
}

// Document loads and validates the embedded OpenAPI document.
func Document(ctx context.Context) (*openapi3.T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(rawDocument)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Find(client.RegisterPath) == nil {
		return nil, fmt.Errorf("contract: document has no %s path", client.RegisterPath)
	}
	return doc, nil
}

// JSON renders the document as indented JSON.
func JSON(ctx context.Context) ([]byte, error) {
	doc, err := Document(ctx)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("contract: encode document: %w", err)
	}
	return out, nil
}

// RequestSchema returns the resolved request body schema of the registration
// operation.
func RequestSchema(doc *openapi3.T) (*openapi3.Schema, error) {
	if doc == nil || doc.Paths == nil {
		return nil, errors.New("contract: document is nil")
	}
	item := doc.Paths.Find(client.RegisterPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("contract: POST %s not described", client.RegisterPath)
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, errors.New("contract: registration operation has no request body")
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("contract: registration request body is not JSON")
	}
	return media.Schema.Value, nil
}

// Validator checks registration payloads against the request schema.
type Validator struct {
	schema *openapi3.Schema
}

// NewValidator loads the embedded document and extracts the request schema.
func NewValidator(ctx context.Context) (*Validator, error) {
	doc, err := Document(ctx)
	if err != nil {
		return nil, err
	}
	schema, err := RequestSchema(doc)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema}, nil
}

// ValidateJSON decodes raw and validates it, reporting every violation.
func (v *Validator) ValidateJSON(raw []byte) error {
	if v == nil || v.schema == nil {
		return errors.New("contract: validator is nil")
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := v.schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPayload, summarize(err))
	}
	return nil
}

// ValidatePayload validates the JSON encoding of data.
func (v *Validator) ValidatePayload(data registration.FormData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("contract: encode payload: %w", err)
	}
	return v.ValidateJSON(raw)
}

func summarize(err error) string {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return reason(err)
	}
	parts := make([]string, 0, len(multi))
	for _, e := range multi {
		parts = append(parts, reason(e))
	}
	return strings.Join(parts, "; ")
}

func reason(err error) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		path := strings.Join(schemaErr.JSONPointer(), ".")
		if path == "" {
			return schemaErr.Reason
		}
		return path + ": " + schemaErr.Reason
	}
	return err.Error()
}
