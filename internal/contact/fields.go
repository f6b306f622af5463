package contact

import (
	"net/mail"
	"sort"
	"strings"
)

// Field names accepted by Form.SetField.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Fields holds the values typed into the contact form.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Empty reports whether every field is blank.
func (f Fields) Empty() bool {
	return f.Name == "" && f.Email == "" && f.Message == ""
}

// ValidationError lists the fields that block a submission, keyed by field
// name with a short hint for each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "contact: invalid fields: " + strings.Join(names, ", ")
}

// Hint returns the message for one field, or "" when it is valid.
func (e *ValidationError) Hint(field string) string {
	if e == nil {
		return ""
	}
	return e.Fields[field]
}

// Validate applies the form's required-field and email rules. It returns nil
// or a *ValidationError. Required text fields only reject an empty value;
// whitespace counts as filled in. The email is trimmed before parsing.
func (f Fields) Validate() error {
	problems := make(map[string]string)

	if f.Name == "" {
		problems[FieldName] = "Please fill out this field."
	}

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		problems[FieldEmail] = "Please fill out this field."
	case !validEmail(email):
		problems[FieldEmail] = "Please enter an email address."
	}

	if f.Message == "" {
		problems[FieldMessage] = "Please fill out this field."
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Fields: problems}
}

// validEmail accepts a bare addr-spec; display names are rejected.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s && strings.Contains(s, "@")
}
