package validation

import (
	"strings"
	"unicode/utf8"

	"duo-tasks/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using default limits
func NewValidator() *Validator {
	return &Validator{config: config.NewConfig()}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	if cfg == nil {
		return NewValidator()
	}
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength reports whether the trimmed string has at most max characters
func (v *Validator) IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// checkText validates a required free-text field and returns it trimmed.
func (v *Validator) checkText(ve *ValidationError, field, value string, max int) string {
	trimmed := v.TrimAndValidateString(value)
	if !v.IsNonEmptyString(trimmed) {
		ve.AddRequiredError(field)
		return ""
	}
	if !v.IsWithinLength(trimmed, max) {
		ve.AddInvalidLengthError(field, trimmed, max)
	}
	return trimmed
}

func (v *Validator) titleMaxLength() int {
	return v.config.Validation.TitleMaxLength
}

func (v *Validator) descriptionMaxLength() int {
	return v.config.Validation.DescriptionMaxLength
}

func (v *Validator) userNameMaxLength() int {
	return v.config.Validation.UserNameMaxLength
}

func (v *Validator) importMaxTasks() int {
	return v.config.Validation.ImportMaxTasks
}
