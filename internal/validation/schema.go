// Package validation turns untyped request bodies into typed input structs.
// A Schema checks fields in order and reports only the first violation.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/healthnest-server/internal/model"
)

// Kind is the expected shape of a field value.
type Kind int

const (
	String Kind = iota
	Bool
	Date
	Email
	Strings
	Emails
	Weekdays
	Object
	Objects
)

// Mode selects create or update semantics.
type Mode int

const (
	// Create enforces required fields and fills defaults for absent optional fields.
	Create Mode = iota
	// Update treats every field as optional and never fills defaults.
	Update
)

const dateOnly = "2006-01-02"

var validate = validator.New()

// Field describes one accepted key.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Rules is a validator tag checked against a string value or, for list kinds, the list.
	Rules string
	// Default overrides the zero value filled in Create mode. Dates are never defaulted.
	Default any
	// Elem validates every element of an Objects field.
	Elem Schema
}

// Schema is an ordered field list. Keys not in the schema are dropped.
type Schema []Field

// Validate returns the normalized field set or the first *model.ValidationError.
// A null value counts as absent.
func (s Schema) Validate(raw map[string]any, mode Mode) (map[string]any, error) {
	out := make(map[string]any, len(s))
	for _, f := range s {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if mode == Update {
				continue
			}
			if f.Required {
				return nil, model.NewValidationError(f.Name, "%s is required", f.Name)
			}
			if d, ok := f.defaultValue(); ok {
				out[f.Name] = d
			}
			continue
		}

		norm, err := f.normalize(f.Name, v)
		if err != nil {
			return nil, err
		}
		out[f.Name] = norm
	}
	return out, nil
}

func (f Field) defaultValue() (any, bool) {
	if f.Default != nil {
		return f.Default, true
	}
	switch f.Kind {
	case String, Email:
		return "", true
	case Bool:
		return false, true
	case Strings, Emails:
		return []string{}, true
	case Weekdays:
		return []int{}, true
	case Object:
		return map[string]any{}, true
	case Objects:
		return []map[string]any{}, true
	default:
		return nil, false
	}
}

func (f Field) normalize(path string, v any) (any, error) {
	switch f.Kind {
	case String, Email:
		s, ok := v.(string)
		if !ok {
			return nil, model.NewValidationError(path, "%s must be a string", path)
		}
		if err := ruleError(path, path, validate.Var(s, f.rules())); err != nil {
			return nil, err
		}
		return s, nil

	case Bool:
		b, ok := v.(bool)
		if !ok {
			return nil, model.NewValidationError(path, "%s must be a boolean", path)
		}
		return b, nil

	case Date:
		s, ok := v.(string)
		if !ok {
			return nil, model.NewValidationError(path, "%s must be a date string", path)
		}
		t, err := ParseDate(s)
		if err != nil {
			return nil, model.NewValidationError(path, "%s must be an RFC 3339 timestamp or a YYYY-MM-DD date", path)
		}
		return t, nil

	case Strings, Emails:
		list, ok := v.([]any)
		if !ok {
			return nil, model.NewValidationError(path, "%s must be a list of strings", path)
		}
		out := make([]string, 0, len(list))
		for i, e := range list {
			s, ok := e.(string)
			if !ok {
				return nil, model.NewValidationError(path, "%s[%d] must be a string", path, i)
			}
			if f.Kind == Emails {
				label := fmt.Sprintf("%s[%d]", path, i)
				if err := ruleError(path, label, validate.Var(s, "email")); err != nil {
					return nil, err
				}
			}
			out = append(out, s)
		}
		if err := ruleError(path, path, validate.Var(out, f.Rules)); err != nil {
			return nil, err
		}
		return out, nil

	case Weekdays:
		list, ok := v.([]any)
		if !ok {
			return nil, model.NewValidationError(path, "%s must be a list of weekdays", path)
		}
		out := make([]int, 0, len(list))
		for i, e := range list {
			n, ok := e.(float64)
			if !ok || n != math.Trunc(n) || validate.Var(int(n), "gte=0,lte=6") != nil {
				return nil, model.NewValidationError(path, "%s[%d] must be a weekday number from 0 to 6", path, i)
			}
			out = append(out, int(n))
		}
		return out, nil

	case Object:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, model.NewValidationError(path, "%s must be an object", path)
		}
		return m, nil

	case Objects:
		list, ok := v.([]any)
		if !ok {
			return nil, model.NewValidationError(path, "%s must be a list of objects", path)
		}
		out := make([]map[string]any, 0, len(list))
		for i, e := range list {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, model.NewValidationError(path, "%s[%d] must be an object", path, i)
			}
			elem, err := f.Elem.element(fmt.Sprintf("%s[%d]", path, i), m)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	}

	return nil, fmt.Errorf("unknown kind %d for field %s", f.Kind, f.Name)
}

// element validates a nested object in Create mode, prefixing field paths.
func (s Schema) element(prefix string, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s))
	for _, f := range s {
		path := prefix + "." + f.Name
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				return nil, model.NewValidationError(path, "%s is required", path)
			}
			if d, ok := f.defaultValue(); ok {
				out[f.Name] = d
			}
			continue
		}
		norm, err := f.normalize(path, v)
		if err != nil {
			return nil, err
		}
		out[f.Name] = norm
	}
	return out, nil
}

// ParseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date and returns it in UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func (f Field) rules() string {
	if f.Kind != Email {
		return f.Rules
	}
	if f.Rules == "" {
		return "email"
	}
	return f.Rules + ",email"
}

// ruleError turns the first failed validator rule into a ValidationError on field.
// label names the offending value in the message.
func ruleError(field, label string, err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("failed to validate %s: %w", label, err)
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return model.NewValidationError(field, "%s must not be empty", label)
	case "min":
		if fe.Kind() == reflect.Slice {
			return model.NewValidationError(field, "%s must not be empty", label)
		}
		return model.NewValidationError(field, "%s must be at least %s characters", label, fe.Param())
	case "oneof":
		return model.NewValidationError(field, "%s must be one of: %s", label, strings.Join(strings.Fields(fe.Param()), ", "))
	case "email":
		return model.NewValidationError(field, "%s must be a valid email address", label)
	default:
		return model.NewValidationError(field, "%s is invalid", label)
	}
}
