package vanilla

import (
	"strings"

	"github.com/goliatone/go-accountform/pkg/model"
	"github.com/goliatone/go-accountform/pkg/registration"
	"github.com/goliatone/go-accountform/pkg/render"
	"github.com/goliatone/go-accountform/pkg/widgets"
)

const (
	subtitleHintKey = "layout.subtitle"
	helpTextHintKey = "helpText"
)

// buildView flattens the form model and session state into the plain maps the
// template consumes.
func buildView(form model.FormModel, options render.RenderOptions) map[string]any {
	values := options.Values.Values()

	fields := make([]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		value := values[registration.Field(field.Name)]
		message := options.Errors.Message(registration.Field(field.Name))

		entry := map[string]any{
			"name":        field.Name,
			"type":        string(field.Type),
			"inputType":   inputType(field),
			"label":       field.Label,
			"placeholder": field.Placeholder,
			"required":    field.Required,
			"value":       value,
			"error":       message,
			"helpText":    field.UIHints[helpTextHintKey],
		}
		if field.Type == model.FieldTypeSelect {
			entry["options"] = selectOptions(field.Options, value)
		}
		fields = append(fields, entry)
	}

	hidden := make([]any, 0, len(options.Hidden))
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	view := map[string]any{
		"form": map[string]any{
			"id":          form.ID,
			"title":       form.Title,
			"subtitle":    form.UIHints[subtitleHintKey],
			"action":      form.Endpoint,
			"method":      methodOrPost(form.Method),
			"submitLabel": form.SubmitLabel,
		},
		"fields": fields,
		"hidden": hidden,
		"theme":  buildThemeContext(options.Theme).view(),
	}
	if options.Notice != nil {
		view["notice"] = map[string]any{
			"kind":    string(options.Notice.Kind),
			"message": options.Notice.Message,
		}
	}
	return view
}

func selectOptions(options []model.Option, current string) []any {
	out := make([]any, 0, len(options))
	for _, option := range options {
		out = append(out, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"selected": option.Value == current,
		})
	}
	return out
}

// inputType lets an email or tel widget hint refine the declared input type.
func inputType(field model.Field) string {
	switch hint := field.UIHints[widgets.HintKey]; hint {
	case widgets.WidgetEmail, widgets.WidgetTel:
		return hint
	}
	if t := strings.TrimSpace(field.InputType); t != "" {
		return t
	}
	return "text"
}

// methodOrPost keeps the page a plain HTML form: anything other than GET is
// posted.
func methodOrPost(method string) string {
	if strings.EqualFold(strings.TrimSpace(method), "get") {
		return "get"
	}
	return "post"
}
