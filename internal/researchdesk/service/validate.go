package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so clients can match them up.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags of in and collects the failures into
// ve under prefix.
func validateStruct(ve *ValidationError, prefix string, in any) {
	err := validate.Struct(in)
	if err == nil {
		return
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		ve.add(prefix, err.Error())
		return
	}
	for _, fe := range errs {
		ve.add(joinPath(prefix, fieldPath(fe.Namespace())), fieldMessage(fe.Tag(), fe.Param()))
	}
}

// validateVar checks a single value against tag and records a failure under
// field.
func validateVar(ve *ValidationError, field string, value any, tag string) {
	err := validate.Var(value, tag)
	if err == nil {
		return
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		ve.add(field, fieldMessage(errs[0].Tag(), errs[0].Param()))
		return
	}
	ve.add(field, err.Error())
}

// fieldPath turns "CreateProjectInput.collaborators[0].email" into
// "collaborators.0.email".
func fieldPath(namespace string) string {
	_, rest, ok := strings.Cut(namespace, ".")
	if !ok {
		rest = namespace
	}
	rest = strings.ReplaceAll(rest, "[", ".")
	return strings.ReplaceAll(rest, "]", "")
}

func joinPath(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	default:
		return prefix + "." + field
	}
}

func fieldMessage(tag, param string) string {
	switch tag {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "url":
		return "Invalid url"
	case "min":
		return fmt.Sprintf("Must contain at least %s character(s)", param)
	case "max":
		return fmt.Sprintf("Must contain at most %s character(s)", param)
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(param), ", ")
	default:
		return "Invalid value"
	}
}

// deadlineLayouts are tried in order. Date-only values mean midnight UTC.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseDeadline accepts an RFC 3339 timestamp or a YYYY-MM-DD date. The
// empty string means no deadline.
func parseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid deadline %q", s)
}

// normalizeEmail is the form emails are stored and compared in.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
