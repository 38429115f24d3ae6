// Package inputval validates form input before it is sent to the API.
//
// Rules live in `validate` struct tags (go-playground/validator) and the
// human-readable field name in a `label` tag. Errors are keyed by the
// field's `json` name, which is also the form input name, so templates can
// render each message next to its field.
package inputval

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Validator returns the shared validator instance. Field names reported by
// it are the struct's json names.
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			return jsonName(f)
		})
	})
	return v
}

// Result holds per-field messages in struct field order.
type Result struct {
	Errors map[string]string
	order  []string
}

// HasErrors reports whether any field failed.
func (r Result) HasErrors() bool { return len(r.order) > 0 }

// First returns the first message, or "".
func (r Result) First() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.Errors[r.order[0]]
}

// Get returns the message for a form field, or "".
func (r Result) Get(field string) string { return r.Errors[field] }

// Fields returns the failing field names in order.
func (r Result) Fields() []string { return append([]string(nil), r.order...) }

// Validate checks a struct and returns friendly messages. A non-struct or
// nil input yields an empty Result.
func Validate(in any) Result {
	res := Result{Errors: map[string]string{}}
	err := Validator().Struct(in)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return res
	}

	t := reflect.TypeOf(in)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := res.Errors[field]; seen {
			continue
		}
		res.Errors[field] = message(fe, labelFor(t, fe.StructField()))
		res.order = append(res.order, field)
	}
	return res
}

func message(fe validator.FieldError, label string) string {
	p := fe.Param()
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "required_without":
		return label + " is required when " + strings.ToLower(splitCamel(p)) + " is empty."
	case "email":
		return label + " must be a valid email address."
	case "url":
		return label + " must be a valid URL."
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(p, " ", ", ") + "."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, p)
		}
		return fmt.Sprintf("%s must be at most %s.", label, p)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, p)
		}
		return fmt.Sprintf("%s must be at least %s.", label, p)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters.", label, p)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, p)
	case "gte":
		return fmt.Sprintf("%s must be %s or more.", label, p)
	case "lte":
		return fmt.Sprintf("%s must be %s or less.", label, p)
	case "datetime":
		return fmt.Sprintf("%s must match the format %s.", label, p)
	case "uppercase":
		return label + " must be upper case."
	}
	return label + " is invalid."
}

func labelFor(t reflect.Type, structField string) string {
	if t != nil && t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(structField); ok {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
		}
	}
	return splitCamel(structField)
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// splitCamel turns "MeetingURL" into "Meeting URL".
func splitCamel(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && rs[i+1] >= 'a' && rs[i+1] <= 'z'
			if (prev >= 'a' && prev <= 'z') || (prev >= 'A' && prev <= 'Z' && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsValidEmail reports whether s is a bare address (no display name).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	a, err := mail.ParseAddress(s)
	if err != nil || a.Name != "" || a.Address != s {
		return false
	}
	return Validator().Var(s, "email") == nil
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
