package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-accountform/pkg/model"
	"github.com/goliatone/go-accountform/pkg/registration"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText   = "text"
	WidgetEmail  = "email"
	WidgetTel    = "tel"
	WidgetSelect = "select"
)

// HintKey is the metadata and UI hint key carrying the resolved widget.
const HintKey = "widget"

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

var _ model.Decorator = (*Registry)(nil)

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence; ties resolve in registration order.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Explicit hints (metadata or UI
// hints) are honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator. Resolved widgets are written to both
// Metadata["widget"] and UIHints["widget"] without overwriting existing
// values.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for i := range form.Fields {
		form.Fields[i] = r.decorateField(form.Fields[i])
	}
	return nil
}

func (r *Registry) decorateField(field model.Field) model.Field {
	widget, ok := r.Resolve(field)
	if !ok || widget == "" {
		return field
	}
	if field.Metadata == nil {
		field.Metadata = make(map[string]string)
	}
	if field.Metadata[HintKey] == "" {
		field.Metadata[HintKey] = widget
	}
	if field.UIHints == nil {
		field.UIHints = make(map[string]string)
	}
	if field.UIHints[HintKey] == "" {
		field.UIHints[HintKey] = widget
	}
	return field
}

func explicitWidget(field model.Field) string {
	if widget := strings.TrimSpace(field.Metadata[HintKey]); widget != "" {
		return widget
	}
	if widget := strings.TrimSpace(field.UIHints[HintKey]); widget != "" {
		return widget
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetSelect, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeSelect || len(field.Options) > 0
	})

	r.Register(WidgetEmail, 80, func(field model.Field) bool {
		return strings.EqualFold(field.InputType, WidgetEmail) ||
			field.Name == registration.FieldEmail.String()
	})

	r.Register(WidgetTel, 70, func(field model.Field) bool {
		return strings.EqualFold(field.InputType, WidgetTel) ||
			field.Name == registration.FieldPhoneNumber.String()
	})

	r.Register(WidgetText, 0, func(field model.Field) bool {
		return field.Type == model.FieldTypeText
	})
}
