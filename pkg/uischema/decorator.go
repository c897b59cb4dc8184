package uischema

import (
	"strings"

	pkgmodel "github.com/goliatone/go-accountform/pkg/model"
)

const (
	subtitleHintKey = "layout.subtitle"
	helpTextHintKey = "helpText"
)

// Decorator applies overlay copy to a form model.
type Decorator struct {
	store *Store
}

var _ pkgmodel.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments the supplied form model with overlay copy. When no
// overlay matches the form id the form is left untouched. Field keys that do
// not name a form field are ignored.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}

	overlay, ok := d.store.Form(form.ID)
	if !ok {
		return nil
	}

	applyFormConfig(form, overlay.Form)
	for i := range form.Fields {
		cfg, ok := overlay.Fields[form.Fields[i].Name]
		if !ok {
			continue
		}
		applyFieldConfig(&form.Fields[i], cfg)
	}
	return nil
}

func applyFormConfig(form *pkgmodel.FormModel, cfg FormConfig) {
	if title := strings.TrimSpace(cfg.Title); title != "" {
		form.Title = title
	}
	if label := strings.TrimSpace(cfg.SubmitLabel); label != "" {
		form.SubmitLabel = label
	}
	if subtitle := SanitizeMarkup(cfg.Subtitle); subtitle != "" {
		form.UIHints = ensure(form.UIHints)
		form.UIHints[subtitleHintKey] = subtitle
	}
	for key, value := range cfg.Metadata {
		form.Metadata = ensure(form.Metadata)
		form.Metadata[key] = value
	}
}

func applyFieldConfig(field *pkgmodel.Field, cfg FieldConfig) {
	if label := strings.TrimSpace(cfg.Label); label != "" {
		field.Label = label
	}
	if placeholder := strings.TrimSpace(cfg.Placeholder); placeholder != "" {
		field.Placeholder = placeholder
		if field.Type == pkgmodel.FieldTypeSelect && len(field.Options) > 0 && field.Options[0].Value == "" {
			field.Options[0].Label = placeholder
		}
	}
	if help := SanitizeMarkup(cfg.HelpText); help != "" {
		field.UIHints = ensure(field.UIHints)
		field.UIHints[helpTextHintKey] = help
	}
	for key, value := range cfg.UIHints {
		if key == helpTextHintKey {
			continue
		}
		field.UIHints = ensure(field.UIHints)
		field.UIHints[key] = value
	}
}

func ensure(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return m
}
