package model

// Decorator enriches a form model with presentation overrides after the
// canonical registration structure has been built.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Apply runs decorators in order against a clone of form and returns the
// decorated copy. Nil decorators are skipped.
func Apply(form FormModel, decorators ...Decorator) (FormModel, error) {
	out := form.Clone()
	for _, d := range decorators {
		if d == nil {
			continue
		}
		if err := d.Decorate(&out); err != nil {
			return FormModel{}, err
		}
	}
	return out, nil
}
