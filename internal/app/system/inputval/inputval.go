// Package inputval validates decoded request structs with
// go-playground/validator and turns failures into human-readable,
// per-field messages.
//
// Struct tags:
//
//	validate:"required,min=2"   validator rules
//	label:"Full name"           name used in messages (defaults to the field name)
//	msg:"Please enter ..."      replaces every message for the field
//
// Field keys in the result are the json tag names, so they line up with the
// request body the client sent.
package inputval

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures of one Validate call in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// Fields groups messages by field key, preserving order within a field.
func (r *Result) Fields() map[string][]string {
	if !r.HasErrors() {
		return nil
	}
	out := make(map[string][]string, len(r.Errors))
	for _, e := range r.Errors {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// Add appends a failure. Used for cross-field rules the tags cannot express.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return IsValidClock(fl.Field().String())
		})
	})
	return v
}

// Validate runs the struct's validate tags. s must be a struct or pointer to
// one.
func Validate(s any) *Result {
	res := &Result{}
	err := engine().Struct(s)
	if err == nil {
		return res
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Add("", "The submitted data could not be validated.")
		return res
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		label, override := fieldMeta(t, fe.StructNamespace())
		msg := override
		if msg == "" {
			msg = message(label, fe)
		}
		res.Add(fieldKey(fe), msg)
	}
	return res
}

// fieldKey drops the top-level struct name from the namespace so nested
// fields read like "outline[0].pointTitle".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// fieldMeta walks the struct namespace to the failing field and returns its
// label and msg tags.
func fieldMeta(t reflect.Type, structNS string) (label, msg string) {
	parts := strings.Split(structNS, ".")
	if len(parts) > 0 {
		parts = parts[1:]
	}
	cur := t
	var sf reflect.StructField
	found := false
	for _, p := range parts {
		if i := strings.IndexByte(p, '['); i >= 0 {
			p = p[:i]
		}
		for cur.Kind() == reflect.Pointer || cur.Kind() == reflect.Slice {
			cur = cur.Elem()
		}
		if cur.Kind() != reflect.Struct {
			found = false
			break
		}
		sf, found = cur.FieldByName(p)
		if !found {
			break
		}
		cur = sf.Type
	}
	if !found {
		return parts[len(parts)-1], ""
	}
	label = sf.Tag.Get("label")
	if label == "" {
		label = sf.Name
	}
	return label, sf.Tag.Get("msg")
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return label + " is required."
	case "min":
		return fmt.Sprintf("%s must be at least %s%s.", label, fe.Param(), unit(fe, "characters", "items"))
	case "max":
		return fmt.Sprintf("%s must be at most %s%s.", label, fe.Param(), unit(fe, "characters", "items"))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, fe.Param())
	case "email":
		return "A valid email address is required."
	case "url", "http_url":
		return label + " must be a valid URL."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "objectid":
		return label + " is not a valid id."
	case "datetime":
		return label + " must be a valid date (YYYY-MM-DD)."
	case "hhmm":
		return label + " must be a valid time (HH:MM)."
	case "numeric":
		return label + " must contain only digits."
	}
	return label + " is invalid."
}

func unit(fe validator.FieldError, strUnit, sliceUnit string) string {
	switch fe.Kind() {
	case reflect.String:
		return " " + strUnit
	case reflect.Slice, reflect.Array, reflect.Map:
		return " " + sliceUnit
	}
	return ""
}

// IsValidObjectID reports whether s (trimmed) is a 24-char hex ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// IsValidClock reports whether s is a 24h HH:MM time.
func IsValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	for _, c := range []byte{s[0], s[1], s[3], s[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	return h < 24 && m < 60
}

// IsValidEmail is a pragmatic addr-spec check: one @, non-empty local and
// domain parts, no whitespace or display-name syntax, and no empty dot
// segments. Single-label domains are accepted for dev mail servers.
func IsValidEmail(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n<>()[],;:\"") {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 || strings.Count(s, "@") != 1 {
		return false
	}
	for _, part := range []string{s[:at], s[at+1:]} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	return true
}
