// Package schema defines the insert shapes and validation rules for every
// writable entity. Each Insert* type mirrors its domain entity minus the
// server-assigned columns (id, createdAt, and closedAt for sessions), and
// each Validate* function is a pure, synchronous accept/reject decision: it
// returns the normalized domain record with defaults applied, or a list of
// field-level errors. Validation never consults the database: referential
// checks belong to the service layer, and a message aimed at a closed
// session still passes validation here.
//
// Constraint tags are evaluated with go-playground/validator; field names in
// errors use the JSON names clients actually sent.
package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one violated constraint on one field.
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "daysOfWeek[2]").
	Field string `json:"field"`
	// Rule is the violated constraint tag (e.g. "required", "oneof", "max").
	Rule string `json:"rule"`
	// Message is a human-readable description safe to surface to clients.
	Message string `json:"message"`
}

// Errors is the full list of violations for one candidate record.
// A nil Errors means the candidate was accepted.
type Errors []FieldError

// Error implements the error interface by joining field messages.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Has reports whether any error concerns the named field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field || strings.HasPrefix(fe.Field, field+"[") {
			return true
		}
	}
	return false
}

// FlexID is a foreign-key id that accepts either JSON string or number form
// ("3" and 3 normalize identically). Used by the assignment insert shape,
// whose admin UI submits ids from <select> elements as strings.
type FlexID int

// UnmarshalJSON coerces both `"7"` and `7` to the numeric id.
func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("id must be a number or numeric string, got %s", string(b))
	}
	*f = FlexID(n)
	return nil
}

// Int returns the canonical numeric id.
func (f FlexID) Int() int { return int(f) }

// validate is the shared validator instance. Field names reported in errors
// are taken from the json tag, not the Go field name.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}()

// check runs tag validation over a candidate struct and converts the result
// into the package's field-level error shape.
func check(candidate any) Errors {
	err := validate.Struct(candidate)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "", Rule: "invalid", Message: err.Error()}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	return out
}

// fieldPath strips the leading struct name from a validator namespace, so
// "InsertGuideAssignment.daysOfWeek[1]" becomes "daysOfWeek[1]".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// describe renders a violated constraint as a short human-readable message.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "failed the '" + fe.Tag() + "' rule"
	}
}
