package model

import (
	"net/http"

	"github.com/goliatone/go-accountform/pkg/registration"
)

// RegistrationFormID identifies the account registration form in UI schema
// overlays.
const RegistrationFormID = "createAccount"

// GenderPlaceholder labels the unselected gender entry.
const GenderPlaceholder = "Select Gender"

// Registration describes the account registration form posting to endpoint.
func Registration(endpoint string) FormModel {
	genderOptions := []Option{{Value: "", Label: GenderPlaceholder}}
	for _, value := range registration.GenderOptions() {
		genderOptions = append(genderOptions, Option{Value: value, Label: value})
	}

	return FormModel{
		ID:          RegistrationFormID,
		Endpoint:    endpoint,
		Method:      http.MethodPost,
		Title:       "Create Your Account",
		SubmitLabel: "Submit",
		Fields: []Field{
			textField(registration.FieldFirstName, "text", "First Name"),
			textField(registration.FieldLastName, "text", "Last Name"),
			textField(registration.FieldEmail, "email", "Email"),
			textField(registration.FieldPhoneNumber, "text", "Phone Number"),
			{
				Name:     registration.FieldGender.String(),
				Type:     FieldTypeSelect,
				Required: true,
				Label:    "Gender",
				Options:  genderOptions,
			},
			textField(registration.FieldProficiency, "text", "Language Proficiency"),
		},
	}
}

func textField(field registration.Field, inputType, label string) Field {
	return Field{
		Name:        field.String(),
		Type:        FieldTypeText,
		InputType:   inputType,
		Required:    true,
		Label:       label,
		Placeholder: label,
	}
}
