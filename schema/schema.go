package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// FieldType enumerates the primitive types a declared field may carry.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeStringList
)

// Field declares the shape and constraints of one named input field.
type Field struct {
	Name     string
	Type     FieldType
	Required bool

	// String constraints, counted in runes after whitespace trimming.
	// MaxLen of zero means unbounded.
	MinLen int
	MaxLen int

	// Numeric bounds, inclusive. Nil means unbounded.
	Min *float64
	Max *float64

	// Format constraints for string fields.
	Email bool
	URL   bool
	Date  bool
}

// Schema is an ordered set of field declarations interpreted by Validate.
// Declaring schemas as data avoids bespoke per-endpoint validation logic.
type Schema struct {
	Fields []Field
}

// Validate checks every declared field against the input and reports all
// failures in one pass rather than stopping at the first. On success it
// returns a normalized map containing only declared fields coerced to their
// declared types; undeclared input keys are dropped.
func (s Schema) Validate(input map[string]any) (map[string]any, *errs.ValidationError) {
	normalized := make(map[string]any, len(s.Fields))
	var failures []errs.FieldError

	fail := func(name, format string, args ...any) {
		failures = append(failures, errs.FieldError{
			Field:   name,
			Message: fmt.Sprintf(format, args...),
		})
	}

	for _, field := range s.Fields {
		value, present := input[field.Name]
		if !present || value == nil {
			if field.Required {
				fail(field.Name, "is required")
			}
			continue
		}

		switch field.Type {
		case TypeString:
			str, ok := value.(string)
			if !ok {
				fail(field.Name, "must be a string")
				continue
			}
			str = strings.TrimSpace(str)
			if field.Required && str == "" {
				fail(field.Name, "is required")
				continue
			}
			length := utf8.RuneCountInString(str)
			if field.MinLen > 0 && length < field.MinLen {
				fail(field.Name, "must be at least %d characters", field.MinLen)
				continue
			}
			if field.MaxLen > 0 && length > field.MaxLen {
				fail(field.Name, "must be at most %d characters", field.MaxLen)
				continue
			}
			if field.Email && !ValidEmail(str) {
				fail(field.Name, "must be a valid email address")
				continue
			}
			if field.URL && !ValidURL(str) {
				fail(field.Name, "must be a valid URL")
				continue
			}
			if field.Date {
				if _, err := ParseDate(str); err != nil {
					fail(field.Name, "must be a valid date (YYYY-MM-DD or RFC3339)")
					continue
				}
			}
			normalized[field.Name] = str

		case TypeInt:
			n, ok := asInt(value)
			if !ok {
				fail(field.Name, "must be an integer")
				continue
			}
			if !inBounds(float64(n), field.Min, field.Max) {
				fail(field.Name, "is out of range")
				continue
			}
			normalized[field.Name] = n

		case TypeFloat:
			f, ok := asFloat(value)
			if !ok {
				fail(field.Name, "must be a number")
				continue
			}
			if !inBounds(f, field.Min, field.Max) {
				fail(field.Name, "is out of range")
				continue
			}
			normalized[field.Name] = f

		case TypeBool:
			b, ok := value.(bool)
			if !ok {
				fail(field.Name, "must be a boolean")
				continue
			}
			normalized[field.Name] = b

		case TypeStringList:
			list, ok := asStringList(value)
			if !ok {
				fail(field.Name, "must be a list of strings")
				continue
			}
			normalized[field.Name] = list
		}
	}

	if len(failures) > 0 {
		return nil, errs.NewValidationError(failures)
	}
	return normalized, nil
}

// asInt accepts native integers plus the float64 values JSON decoding
// produces, as long as they are integral.
func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func asStringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			list = append(list, str)
		}
		return list, true
	}
	return nil, false
}

func inBounds(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

// emailPattern requires a local part, a single "@", and a dotted domain.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)

// ValidEmail reports whether s looks like user@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidURL reports whether s parses as an absolute http(s) URL.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses a front-matter date in either plain YYYY-MM-DD or RFC3339
// form.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
