package service

import (
	"strings"

	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// fieldValidator collects violations across all checked fields so the caller
// can surface every problem at once instead of failing on the first.
type fieldValidator struct {
	violations map[string]any
}

func newFieldValidator() *fieldValidator {
	return &fieldValidator{violations: map[string]any{}}
}

func (v *fieldValidator) requireText(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		v.violations[field] = message
	}
}

func (v *fieldValidator) requireMin(field string, value, min int, message string) {
	if value < min {
		v.violations[field] = message
	}
}

func (v *fieldValidator) add(field, message string) {
	v.violations[field] = message
}

func (v *fieldValidator) has(field string) bool {
	_, ok := v.violations[field]
	return ok
}

// err returns a single VALIDATION_FAILED error carrying every violation, or
// nil when all checks passed.
func (v *fieldValidator) err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return apperrors.NewValidationError("validation failed", v.violations)
}
