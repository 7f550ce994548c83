// Package form holds the state of the "add contact" form independently of how
// it is drawn.
package form

import (
	"context"
	"strings"
	"unicode/utf8"

	"contacthub/internal/models"
	"contacthub/internal/validation"
)

type FieldState int

const (
	Untouched FieldState = iota
	Touched
)

// SubmitFunc sends the form contents and reports whether they were accepted.
type SubmitFunc func(ctx context.Context, in models.ContactInput) bool

// Form is not safe for concurrent use; drive it from a single goroutine.
type Form struct {
	values     map[validation.Field]string
	errors     map[validation.Field]string
	states     map[validation.Field]FieldState
	submitting bool
}

func New() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Reset clears every value, error and touched flag.
func (f *Form) Reset() {
	f.values = make(map[validation.Field]string, len(validation.Fields))
	f.errors = make(map[validation.Field]string, len(validation.Fields))
	f.states = make(map[validation.Field]FieldState, len(validation.Fields))
	f.submitting = false
}

func (f *Form) Value(field validation.Field) string { return f.values[field] }

func (f *Form) State(field validation.Field) FieldState { return f.states[field] }

// Error returns the field's last validation result, touched or not.
func (f *Form) Error(field validation.Field) string { return f.errors[field] }

// VisibleError returns the error to display, which is empty until the field
// has been touched.
func (f *Form) VisibleError(field validation.Field) string {
	if f.states[field] != Touched {
		return ""
	}
	return f.errors[field]
}

func (f *Form) Submitting() bool { return f.submitting }

// Change sets a value. Touched fields are re-validated immediately.
func (f *Form) Change(field validation.Field, value string) {
	if f.submitting {
		return
	}
	f.values[field] = value
	if f.states[field] == Touched {
		f.errors[field] = validation.ValidateField(field, value)
	}
}

// Blur marks the field touched and validates it.
func (f *Form) Blur(field validation.Field) {
	f.states[field] = Touched
	f.errors[field] = validation.ValidateField(field, f.values[field])
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	if f.submitting {
		return false
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.values[validation.FieldName])) < 2 ||
		!validation.IsValidEmail(f.values[validation.FieldEmail]) ||
		!validation.IsValidPhone(f.values[validation.FieldPhone]) {
		return false
	}
	for _, msg := range f.errors {
		if msg != "" {
			return false
		}
	}
	return true
}

// Prepare validates and touches every field. When all pass it enters the
// submitting state and returns the input to send; Complete must follow.
func (f *Form) Prepare() (models.ContactInput, bool) {
	if f.submitting {
		return models.ContactInput{}, false
	}

	ok := true
	for _, field := range validation.Fields {
		f.states[field] = Touched
		f.errors[field] = validation.ValidateField(field, f.values[field])
		if f.errors[field] != "" {
			ok = false
		}
	}
	if !ok {
		return models.ContactInput{}, false
	}

	f.submitting = true
	return models.ContactInput{
		Name:    f.values[validation.FieldName],
		Email:   f.values[validation.FieldEmail],
		Phone:   f.values[validation.FieldPhone],
		Message: f.values[validation.FieldMessage],
	}, true
}

// Complete leaves the submitting state. An accepted submission resets the
// form; a rejected one keeps what the user typed.
func (f *Form) Complete(accepted bool) {
	if accepted {
		f.Reset()
		return
	}
	f.submitting = false
}

// Submit runs Prepare, fn and Complete in order. It reports whether fn was
// called and accepted the input.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) bool {
	in, ok := f.Prepare()
	if !ok {
		return false
	}
	accepted := false
	defer func() { f.Complete(accepted) }()
	accepted = fn(ctx, in)
	return accepted
}
