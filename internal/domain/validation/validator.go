// Package validation checks and normalizes user and movie payloads decoded
// from JSON. Every rule runs and every failure is reported; nothing stops at
// the first error except a wrong top-level shape.
package validation

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required": "%s is required",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gt":    "%s must be greater than %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

// checkVar runs tag against value and returns a message naming field, or ""
// when the value passes.
func checkVar(field string, value any, tag string) string {
	err := GetValidator().Var(value, tag)
	if err == nil {
		return ""
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return fmt.Sprintf("%s is invalid: %v", field, err)
	}
	fe := errs[0]
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

// asNumber accepts JSON numbers (float64) and the integer kinds YAML and
// bson decoding produce.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func isWhole(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0)
}

// nonEmptyString validates a required text field.
func nonEmptyString(field string, v any) string {
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%s must be a string", field)
	}
	return checkVar(field, s, "required")
}

// filterFields keeps only the allowed keys of in.
func filterFields(in map[string]any, allowed []string) map[string]any {
	out := make(map[string]any, len(allowed))
	for _, key := range allowed {
		if v, ok := in[key]; ok {
			out[key] = v
		}
	}
	return out
}
