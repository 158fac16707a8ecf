// Package validation turns raw request payloads into typed domain records.
// Every function is pure: no I/O, no clock reads beyond defaulting.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aryan0dhankhar/workforce/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	mustRegister("taskstatus", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseStatus(fl.Field().String())
		return err == nil
	})
	mustRegister("taskpriority", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePriority(fl.Field().String())
		return err == nil
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// labels are the human-readable names used in problem messages
var labels = map[string]string{
	"firstName":   "First name",
	"lastName":    "Last name",
	"email":       "Email",
	"designation": "Designation",
	"department":  "Department",
	"hireDate":    "Hire date",
	"title":       "Task title",
	"description": "Description",
	"assignedTo":  "Assigned employee",
	"dueDate":     "Due date",
	"status":      "Status",
	"priority":    "Priority",
}

func labelFor(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

// message renders one friendly problem for a failed validation tag
func message(fe validator.FieldError) string {
	label := labelFor(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return label + " cannot be empty"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "email":
		return "Please provide a valid email address"
	case "date":
		return label + " must be a valid date (YYYY-MM-DD or RFC 3339)"
	case "taskstatus":
		return label + " must be one of " + joinNames(domain.Statuses)
	case "taskpriority":
		return label + " must be one of " + joinNames(domain.Priorities)
	}
	return label + " is invalid"
}

func joinNames[T fmt.Stringer](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return strings.Join(names, ", ")
}

// dateLayouts are tried in order by ParseDate
var dateLayouts = []string{"2006-01-02", time.RFC3339Nano, time.RFC3339}

// ParseDate accepts a calendar date or an RFC 3339 timestamp and returns it in UTC
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", v)
}

// fields reads string values out of a decoded JSON object, remembering
// which keys carried a value of the wrong type
type fields struct {
	raw      map[string]any
	problems []string
	bad      map[string]bool
}

func newFields(raw map[string]any) *fields {
	return &fields{raw: raw, bad: map[string]bool{}}
}

// lookup returns the trimmed string under key (or its first present alias).
// Absent keys give nil; JSON null gives an empty string.
func (f *fields) lookup(key string, aliases ...string) *string {
	for _, k := range append([]string{key}, aliases...) {
		v, ok := f.raw[k]
		if !ok {
			continue
		}
		out := ""
		switch s := v.(type) {
		case nil:
		case string:
			out = strings.TrimSpace(s)
		default:
			f.problems = append(f.problems, labelFor(key)+" must be a string")
			f.bad[key] = true
		}
		return &out
	}
	return nil
}

func (f *fields) value(key string, aliases ...string) string {
	if p := f.lookup(key, aliases...); p != nil {
		return *p
	}
	return ""
}

// check runs the struct validator and folds its result together with any type problems
func (f *fields) check(input any) error {
	problems := f.problems
	err := validate.Struct(input)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if f.bad[fe.Field()] {
				continue
			}
			problems = append(problems, message(fe))
		}
	} else if err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	if len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}
