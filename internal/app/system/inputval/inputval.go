// Package inputval provides request input validation using waffle/pantry/validate.
//
// This package wraps pantry/validate to provide a convenient interface for
// validating JSON API inputs with struct tags. Define an input struct with
// validate tags, decode the request body into it, and call Validate to get
// user-friendly error messages.
//
// Example:
//
//	type CreateArticleInput struct {
//	    Title    string `json:"title" validate:"required,max=200" label:"Title"`
//	    Category string `json:"category" validate:"required,category" label:"Category"`
//	}
//
//	if result := inputval.Validate(input); result.HasErrors() {
//	    jsonutil.ValidationError(w, result.Fields())
//	    return
//	}
package inputval

import (
	"net/mail"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/stratapress/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError represents a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or empty string if no errors.
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// All returns all error messages joined with "; ".
func (r *Result) All() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the errors as a field-to-message map, in the shape
// jsonutil.ValidationError expects.
func (r *Result) Fields() map[string]string {
	if len(r.Errors) == 0 {
		return nil
	}
	fields := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, dup := fields[e.Field]; !dup {
			fields[e.Field] = e.Message
		}
	}
	return fields
}

// customValidator is a singleton validator with custom rules registered.
var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

// getValidator returns the singleton validator with custom rules.
func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		customValidator = validate.New(validate.WithStopOnFirstError())

		// role: validates against the known user roles
		customValidator.RegisterRuleFunc("role", func(value any) bool {
			if s, ok := value.(string); ok {
				return models.IsValidRole(strings.ToLower(strings.TrimSpace(s)))
			}
			return false
		}, "role")

		// category: validates against the known article categories
		customValidator.RegisterRuleFunc("category", func(value any) bool {
			if s, ok := value.(string); ok {
				return models.IsValidCategory(strings.TrimSpace(s))
			}
			return false
		}, "category")

		// articlestatus: validates against the known article statuses
		customValidator.RegisterRuleFunc("articlestatus", func(value any) bool {
			if s, ok := value.(string); ok {
				return models.IsValidStatus(strings.TrimSpace(s))
			}
			return false
		}, "articlestatus")

		// httpurl: validates that string is a valid http/https URL
		customValidator.RegisterRuleFunc("httpurl", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsValidHTTPURL(s)
			}
			return false
		}, "httpurl")
	})
	return customValidator
}

// Validate validates a struct and returns a Result with user-friendly errors.
// The struct should have `validate` tags for rules and optional `label` tags
// for user-friendly field names.
//
// Supported validation rules (from pantry/validate):
//   - required: field must not be empty
//   - email: field must be a valid email address
//   - oneof=a b c: field must be one of the specified values
//   - min=N: string length or numeric value must be >= N
//   - max=N: string length or numeric value must be <= N
//
// Custom validation rules (registered by this package):
//   - role: field must be a valid user role (admin, staff)
//   - category: field must be a valid article category
//   - articlestatus: field must be a valid article status (Draft, Published)
//   - httpurl: field must be a valid http:// or https:// URL
func Validate(s any) *Result {
	result := &Result{}

	v := getValidator()
	err := v.Struct(s)
	if err == nil {
		return result
	}

	labels := getFieldLabels(s)

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			label := labels[e.Field]
			if label == "" {
				label = e.Field
			}

			msg := formatMessage(label, e.Rule, e.Param)
			result.Errors = append(result.Errors, FieldError{
				Field:   e.Field,
				Label:   label,
				Message: msg,
			})
		}
	}

	return result
}

// getFieldLabels extracts the "label" tag from struct fields.
func getFieldLabels(s any) map[string]string {
	labels := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return labels
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		// Get the field name (use json tag if available)
		fieldName := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				fieldName = parts[0]
			}
		}

		if label := field.Tag.Get("label"); label != "" {
			labels[fieldName] = label
		}
	}

	return labels
}

// formatMessage creates a user-friendly message for a validation rule.
func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "oneof", "enum":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min":
		return label + " must be at least " + param + " characters."
	case "max":
		return label + " must be at most " + param + " characters."
	case "role":
		return label + " must be one of: " + strings.Join(models.AllRoles(), ", ") + "."
	case "category":
		return label + " must be one of: " + strings.Join(models.AllCategories(), ", ") + "."
	case "articlestatus":
		return label + " must be one of: " + strings.Join(models.AllStatuses(), ", ") + "."
	case "httpurl":
		return label + " must be a valid URL starting with http:// or https://."
	default:
		return label + " is invalid."
	}
}

// IsValidEmail checks if the given string has a valid email format.
//
// This uses Go's net/mail.ParseAddress for RFC 5322 compliant validation,
// plus a dotted-domain requirement so bare hostnames like "user@localhost"
// are rejected the same way the admin UI rejects them.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	// ParseAddress accepts "Name <email>" format, so verify the address
	// matches what we passed in (just the email part).
	if addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}

// IsValidHTTPURL checks if the given string is a valid http:// or https:// URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// IsValidPhotoRef checks if the given string is usable as a profile photo:
// either an http(s) URL or an embedded data:image/... URI.
func IsValidPhotoRef(s string) bool {
	s = strings.TrimSpace(s)
	return IsValidHTTPURL(s) || strings.HasPrefix(s, "data:image/")
}
