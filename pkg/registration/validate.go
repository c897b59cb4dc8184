package registration

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages shown beneath failing inputs.
const (
	MsgFirstNameRequired   = "First Name is required."
	MsgLastNameRequired    = "Last Name is required."
	MsgEmailRequired       = "Email is required."
	MsgEmailInvalid        = "Invalid email format."
	MsgPhoneRequired       = "Phone number is required."
	MsgPhoneInvalid        = "Invalid phone number."
	MsgGenderRequired      = "Gender selection is required."
	MsgProficiencyRequired = "Language proficiency is required."
)

const (
	tagRequired   = "required"
	tagNotBlank   = "notblank"
	tagEmailShape = "emailshape"
	tagPhone10    = "phone10"
)

// blankClass matches the whitespace set browsers use for \s, which is wider
// than RE2's ASCII-only \s.
const blankClass = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	emailPattern = regexp.MustCompile(`^[^` + blankClass + `@]+@[^` + blankClass + `@]+\.[^` + blankClass + `@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	blankPattern = regexp.MustCompile(`^[` + blankClass + `]*$`)
)

var defaultValidator = NewValidator()

// Validate runs the default Validator against data.
func Validate(data FormData) ErrorMap {
	return defaultValidator.Validate(data)
}

// Validator computes an ErrorMap from a FormData snapshot. It holds no state
// between calls and is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator wires the registration rules into a go-playground validator.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, tagNotBlank, func(fl validator.FieldLevel) bool {
		return !isBlank(fl.Field().String())
	})
	mustRegister(v, tagEmailShape, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, tagPhone10, func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("registration: register " + tag + ": " + err.Error())
	}
}

// Validate returns exactly the failing fields of data. Every field is checked
// independently; the first failing rule of a field decides its message. The
// result is never nil.
func (v *Validator) Validate(data FormData) ErrorMap {
	out := make(ErrorMap)
	if v == nil || v.validate == nil {
		return out
	}

	err := v.validate.Struct(data)
	if err == nil {
		return out
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return out
	}
	for _, failure := range failures {
		field := Field(failure.Field())
		out[field] = messageFor(field, failure.Tag())
	}
	return out
}

func messageFor(field Field, tag string) string {
	switch field {
	case FieldFirstName:
		return MsgFirstNameRequired
	case FieldLastName:
		return MsgLastNameRequired
	case FieldEmail:
		if tag == tagEmailShape {
			return MsgEmailInvalid
		}
		return MsgEmailRequired
	case FieldPhoneNumber:
		if tag == tagPhone10 {
			return MsgPhoneInvalid
		}
		return MsgPhoneRequired
	case FieldGender:
		return MsgGenderRequired
	case FieldProficiency:
		return MsgProficiencyRequired
	default:
		return "Invalid value."
	}
}

// isBlank reports whether value holds only blankClass runes. U+0085 is not
// part of the set, so a name made of it is kept.
func isBlank(value string) bool {
	return blankPattern.MatchString(value)
}
