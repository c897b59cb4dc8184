// Package accountform is the top-level entry point for the account
// registration form. It assembles the form model with presentation overlays,
// renders it to HTML and opens registration sessions against a backend.
package accountform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-accountform/pkg/client"
	"github.com/goliatone/go-accountform/pkg/model"
	"github.com/goliatone/go-accountform/pkg/registration"
	"github.com/goliatone/go-accountform/pkg/render"
	"github.com/goliatone/go-accountform/pkg/renderers/vanilla"
	"github.com/goliatone/go-accountform/pkg/uischema"
	"github.com/goliatone/go-accountform/pkg/widgets"
)

// RenderOptions aliases render.RenderOptions so callers can prefill values or
// surface errors without importing the render package.
type RenderOptions = render.RenderOptions

// FormData aliases the six-field registration payload.
type FormData = registration.FormData

// BuildForm returns the registration form posting to action, decorated with
// the overlay found at schemaPath (file or directory) and then with widget
// hints. An empty schemaPath leaves the default copy in place.
func BuildForm(action, schemaPath string, decorators ...model.Decorator) (model.FormModel, error) {
	store, err := uischema.Load(schemaPath)
	if err != nil {
		return model.FormModel{}, err
	}
	all := append([]model.Decorator{uischema.NewDecorator(store), widgets.NewRegistry()}, decorators...)
	form, err := model.Apply(model.Registration(action), all...)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("accountform: decorate form: %w", err)
	}
	return form, nil
}

// GenerateHTML renders form with the built-in vanilla renderer.
func GenerateHTML(ctx context.Context, form model.FormModel, options RenderOptions, rendererOptions ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(rendererOptions...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, options)
}

// NewSession opens a registration session that posts to endpoint.
func NewSession(endpoint string, clientOptions []client.Option, sessionOptions ...registration.SessionOption) (*registration.Session, error) {
	c, err := client.New(endpoint, clientOptions...)
	if err != nil {
		return nil, err
	}
	return registration.NewSession(c, sessionOptions...), nil
}
