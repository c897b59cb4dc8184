package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-accountform/pkg/model"
	"github.com/goliatone/go-accountform/pkg/render"
	rendertemplate "github.com/goliatone/go-accountform/pkg/render/template"
	gotemplate "github.com/goliatone/go-accountform/pkg/render/template/gotemplate"
)

const templateName = "templates/form.tmpl"

// themeAssetStylesheet is the go-theme asset key that overrides the bundled
// stylesheet URL.
const themeAssetStylesheet = "accountform.stylesheet"

type Option func(*config)

type config struct {
	templateFS     fs.FS
	assetURLPrefix string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithAssetURLPrefix sets the URL prefix the bundled stylesheet is served
// under (for example "/assets").
func WithAssetURLPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetURLPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// Renderer produces the registration page as server-rendered HTML.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	assetURLPrefix string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}

	return &Renderer{templates: engine, assetURLPrefix: cfg.assetURLPrefix}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the full page: notice banner, the six controls bound to
// options.Values, inline errors for every field present in options.Errors, and
// the hidden fields.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	data := buildView(form, options)
	data["assets"] = map[string]any{
		"stylesheet": r.stylesheetURL(options),
	}

	result, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) stylesheetURL(options render.RenderOptions) string {
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if resolved := strings.TrimSpace(options.Theme.AssetURL(themeAssetStylesheet)); resolved != "" {
			return resolved
		}
	}
	return r.assetURLPrefix + "/" + StylesheetName
}
