package registration

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a field identifier does not name one of the
// registration inputs.
var ErrUnknownField = errors.New("registration: unknown field")

// Field identifies one input of the registration form. The value doubles as
// the JSON key sent to the backend and the HTML input name.
type Field string

const (
	FieldFirstName   Field = "firstName"
	FieldLastName    Field = "lastName"
	FieldEmail       Field = "email"
	FieldPhoneNumber Field = "phoneNumber"
	FieldGender      Field = "gender"
	FieldProficiency Field = "proficiency"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

var fieldOrder = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhoneNumber,
	FieldGender,
	FieldProficiency,
}

// Fields returns every registration field in display order.
func Fields() []Field {
	return append([]Field(nil), fieldOrder...)
}

// GenderOptions returns the selectable gender values. The unselected state is
// the empty string and is never part of this list.
func GenderOptions() []string {
	return []string{GenderMale, GenderFemale}
}

// ParseField resolves a raw name (for example an HTML input name) into a
// Field.
func ParseField(raw string) (Field, error) {
	candidate := Field(strings.TrimSpace(raw))
	for _, field := range fieldOrder {
		if field == candidate {
			return field, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return string(f)
}

// FormData is the record of user-entered values. The JSON encoding is the
// request body expected by the registration endpoint: exactly six string keys,
// always present. The validate tags are interpreted by Validator.
type FormData struct {
	FirstName   string `json:"firstName" validate:"notblank"`
	LastName    string `json:"lastName" validate:"notblank"`
	Email       string `json:"email" validate:"required,emailshape"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone10"`
	Gender      string `json:"gender" validate:"required"`
	Proficiency string `json:"proficiency" validate:"notblank"`
}

// Get returns the current value of field. Unknown fields read as empty.
func (d FormData) Get(field Field) string {
	switch field {
	case FieldFirstName:
		return d.FirstName
	case FieldLastName:
		return d.LastName
	case FieldEmail:
		return d.Email
	case FieldPhoneNumber:
		return d.PhoneNumber
	case FieldGender:
		return d.Gender
	case FieldProficiency:
		return d.Proficiency
	default:
		return ""
	}
}

// With returns a copy of d with exactly one field replaced. Values are stored
// raw; nothing is trimmed or validated here.
func (d FormData) With(field Field, value string) (FormData, error) {
	switch field {
	case FieldFirstName:
		d.FirstName = value
	case FieldLastName:
		d.LastName = value
	case FieldEmail:
		d.Email = value
	case FieldPhoneNumber:
		d.PhoneNumber = value
	case FieldGender:
		d.Gender = value
	case FieldProficiency:
		d.Proficiency = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	return d, nil
}

// IsZero reports whether every field is empty.
func (d FormData) IsZero() bool {
	return d == FormData{}
}

// Values returns the record keyed by field.
func (d FormData) Values() map[Field]string {
	out := make(map[Field]string, len(fieldOrder))
	for _, field := range fieldOrder {
		out[field] = d.Get(field)
	}
	return out
}
