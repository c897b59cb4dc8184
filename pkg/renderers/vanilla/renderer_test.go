package vanilla_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-accountform/pkg/model"
	"github.com/goliatone/go-accountform/pkg/registration"
	"github.com/goliatone/go-accountform/pkg/render"
	"github.com/goliatone/go-accountform/pkg/renderers/vanilla"
	"github.com/goliatone/go-accountform/pkg/testsupport"
	"github.com/goliatone/go-accountform/pkg/widgets"
)

func renderForm(t *testing.T, options render.RenderOptions, opts ...vanilla.Option) string {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), model.Registration("/register"), options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_EmptyForm(t *testing.T) {
	html := renderForm(t, render.RenderOptions{})

	assertContains(t, html,
		"<title>Create Your Account</title>",
		`<form method="post" action="/register" novalidate>`,
		`<input type="text" id="field-firstName" name="firstName" placeholder="First Name" value="" required>`,
		`<input type="email" id="field-email" name="email" placeholder="Email" value="" required>`,
		`<select id="field-gender" name="gender" required>`,
		`<option value="" selected>Select Gender</option>`,
		`<option value="Male">Male</option>`,
		`<option value="Female">Female</option>`,
		`<button type="submit">Submit</button>`,
		`href="/accountform.css"`,
	)
	assertNotContains(t, html, "field__error", "notice", "aria-invalid")
}

func TestRenderer_FieldOrder(t *testing.T) {
	html := renderForm(t, render.RenderOptions{})
	last := -1
	for _, field := range registration.Fields() {
		idx := strings.Index(html, `name="`+field.String()+`"`)
		if idx < 0 {
			t.Fatalf("field %s missing", field)
		}
		if idx < last {
			t.Fatalf("field %s rendered out of order", field)
		}
		last = idx
	}
}

func TestRenderer_ValuesAndInlineErrors(t *testing.T) {
	data := testsupport.ValidFormData()
	data.Email = `bad"email`
	data.Gender = registration.GenderMale

	html := renderForm(t, render.RenderOptions{
		Values: data,
		Errors: registration.Validate(data),
	})

	assertContains(t, html,
		`value="Jane"`,
		`value="bad&quot;email"`,
		`<option value="Male" selected>Male</option>`,
		`aria-invalid="true" aria-describedby="error-email"`,
		`<p class="field__error" id="error-email">Invalid email format.</p>`,
	)
	if strings.Count(html, "field__error") != 1 {
		t.Fatalf("only the failing field should carry an error:\n%s", html)
	}
}

func TestRenderer_Notice(t *testing.T) {
	tests := []struct {
		name   string
		notice registration.Notice
		want   string
	}{
		{
			name:   "success",
			notice: registration.Notice{Kind: registration.NoticeSuccess, Message: registration.MsgAccountCreated},
			want:   `<div class="notice notice--success" role="status">Account created successfully!</div>`,
		},
		{
			name:   "failure",
			notice: registration.Notice{Kind: registration.NoticeFailure, Message: registration.MsgAccountFailed},
			want:   `<div class="notice notice--failure" role="alert">Failed to create account.</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notice := tt.notice
			html := renderForm(t, render.RenderOptions{Notice: &notice})
			assertContains(t, html, tt.want)
		})
	}
}

func TestRenderer_HiddenFields(t *testing.T) {
	html := renderForm(t, render.RenderOptions{
		Hidden: render.MergeHiddenFields(nil, render.SessionField("abc-123")),
	})
	assertContains(t, html, `<input type="hidden" name="session_id" value="abc-123">`)
}

func TestRenderer_ThemeAndAssets(t *testing.T) {
	html := renderForm(t, render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "ocean",
			Variant: "dark",
			CSSVars: map[string]string{
				"af-accent": "#0ea5e9",
				"--bad":     "red;}</style>",
			},
			AssetURL: func(key string) string {
				if key == "accountform.stylesheet" {
					return "https://cdn.example/theme.css"
				}
				return ""
			},
		},
	}, vanilla.WithAssetURLPrefix("/assets/"))

	assertContains(t, html,
		`data-theme="ocean" data-theme-variant="dark"`,
		"--af-accent: #0ea5e9;",
		`href="https://cdn.example/theme.css"`,
	)
	assertNotContains(t, html, "--bad")
}

func TestRenderer_AssetPrefix(t *testing.T) {
	html := renderForm(t, render.RenderOptions{}, vanilla.WithAssetURLPrefix("/assets/"))
	assertContains(t, html, `href="/assets/accountform.css"`)
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/form.tmpl": {Data: []byte(`{{ form.title }}|{% for field in fields %}{{ field.name }}{% if field.error %}!{% endif %};{% endfor %}`)},
	}
	html := renderForm(t, render.RenderOptions{
		Errors: registration.ErrorMap{registration.FieldGender: registration.MsgGenderRequired},
	}, vanilla.WithTemplatesFS(files))

	want := "Create Your Account|firstName;lastName;email;phoneNumber;gender!;proficiency;"
	if html != want {
		t.Fatalf("custom template output mismatch\nwant: %q\n got: %q", want, html)
	}
}

func TestRenderer_DecoratedCopy(t *testing.T) {
	form := model.Registration("/register")
	form.UIHints = map[string]string{"layout.subtitle": "Takes <b>two</b> minutes"}
	form.Fields[5].UIHints = map[string]string{"helpText": "e.g. <em>Fluent</em>"}

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`<p class="account-form__subtitle">Takes <b>two</b> minutes</p>`,
		`<small class="field__help">e.g. <em>Fluent</em></small>`,
	)
}

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".field__error") {
		t.Fatalf("stylesheet missing error styles")
	}
}

func TestRenderer_WidgetHintsRefineInputType(t *testing.T) {
	form, err := model.Apply(model.Registration("/register"), widgets.NewRegistry())
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`<input type="tel" id="field-phoneNumber"`,
		`<input type="email" id="field-email"`,
		`<input type="text" id="field-firstName"`,
	)
}
