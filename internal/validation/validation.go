// Package validation holds the contact field rules shared by the HTTP API and
// the interactive form, so the two can never disagree about what is valid.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"contacthub/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]{7,20}$`)
)

// Field names a validated contact field.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldMessage Field = "message"
)

// Fields lists every contact field in reporting order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldMessage}

const (
	tagEmail = "contact_email"
	tagPhone = "contact_phone"
)

var rules = map[Field]string{
	FieldName:    "required,min=2,max=100",
	FieldEmail:   "required," + tagEmail,
	FieldPhone:   "required," + tagPhone,
	FieldMessage: "max=1000",
}

var messages = map[Field]map[string]string{
	FieldName: {
		"required": "Name is required",
		"min":      "Name must be at least 2 characters",
		"max":      "Name cannot exceed 100 characters",
	},
	FieldEmail: {
		"required": "Email is required",
		tagEmail:   "Please provide a valid email address",
	},
	FieldPhone: {
		"required": "Phone number is required",
		tagPhone:   "Please provide a valid phone number",
	},
	FieldMessage: {
		"max": "Message cannot exceed 1000 characters",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, tagEmail, IsValidEmail)
	mustRegister(v, tagPhone, IsValidPhone)
	return v
}

func mustRegister(v *validator.Validate, tag string, pred func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pred(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// IsValidEmail reports whether s, once trimmed, looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsValidPhone reports whether s, once trimmed, is 7 to 20 characters of
// digits, whitespace, '+', '-', '(' or ')'.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// ValidateField checks a single field and returns the message of the first
// failed rule, or "" when the value is valid. Unknown fields are always valid.
func ValidateField(field Field, value string) string {
	rule, ok := rules[field]
	if !ok {
		return ""
	}
	err := validate.Var(strings.TrimSpace(value), rule)
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Sprintf("Invalid %s", field)
	}
	if msg, ok := messages[field][verrs[0].Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("Invalid %s", field)
}

// FieldError is one violated field.
type FieldError struct {
	Field   Field
	Message string
}

// Errors collects every violated field of a contact, in Fields order.
type Errors []FieldError

func (e Errors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the human-readable messages only.
func (e Errors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Message)
	}
	return out
}

// Has reports whether field is among the violations.
func (e Errors) Has(field Field) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// ValidateContact checks every field of in and reports all violations. The
// result is nil when in is valid.
func ValidateContact(in models.ContactInput) Errors {
	values := map[Field]string{
		FieldName:    in.Name,
		FieldEmail:   in.Email,
		FieldPhone:   in.Phone,
		FieldMessage: in.Message,
	}
	var errs Errors
	for _, f := range Fields {
		if msg := ValidateField(f, values[f]); msg != "" {
			errs = append(errs, FieldError{Field: f, Message: msg})
		}
	}
	return errs
}

// Normalize trims every field and lower-cases the e-mail address.
func Normalize(in models.ContactInput) models.ContactInput {
	return models.ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   strings.TrimSpace(in.Phone),
		Message: strings.TrimSpace(in.Message),
	}
}
