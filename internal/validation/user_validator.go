package validation

// UserValidator validates user display names
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a user validator sharing v's limits
func NewUserValidator(v *Validator) *UserValidator {
	return &UserValidator{validator: v}
}

// ValidateName returns the trimmed name or a validation error.
func (uv *UserValidator) ValidateName(name string) (string, error) {
	ve := NewValidationError()
	cleaned := uv.validator.checkText(ve, "name", name, uv.validator.userNameMaxLength())
	if err := ve.Err(); err != nil {
		return "", err
	}
	return cleaned, nil
}
