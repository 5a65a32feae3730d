package validation

import (
	"fmt"

	"duo-tasks/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithValidator creates a task validator sharing v's limits
func NewTaskValidatorWithValidator(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

// ValidateDraft validates the fields of a new task and returns them cleaned.
func (tv *TaskValidator) ValidateDraft(title, description, owner string) (domain.TaskDraft, error) {
	ve := NewValidationError()

	draft := domain.TaskDraft{
		Title:       tv.validator.checkText(ve, "title", title, tv.validator.titleMaxLength()),
		Description: tv.validator.checkText(ve, "description", description, tv.validator.descriptionMaxLength()),
		Priority:    domain.PriorityLow,
	}

	userID, err := tv.ValidateUserID("userId", owner)
	ve.Merge(err)
	draft.AssignedTo = userID

	if err := ve.Err(); err != nil {
		return domain.TaskDraft{}, err
	}
	return draft, nil
}

// ValidateUserID parses a user identifier reported under field.
func (tv *TaskValidator) ValidateUserID(field, raw string) (domain.UserID, error) {
	if !tv.validator.IsNonEmptyString(raw) {
		return "", NewFieldError(field, ErrorTypeRequired, fmt.Sprintf("%s is required", field))
	}
	id, err := domain.ParseUserID(raw)
	if err != nil {
		ve := NewValidationError()
		ve.AddInvalidValueError(field, raw, fmt.Sprintf("must be %s or %s", domain.User1, domain.User2))
		return "", ve
	}
	return id, nil
}

// ValidatePriority checks that p is 0, 1 or 2.
func (tv *TaskValidator) ValidatePriority(field string, p int) (domain.Priority, error) {
	priority := domain.Priority(p)
	if !priority.IsValid() {
		ve := NewValidationError()
		ve.AddInvalidRangeError(field, p, "must be 0 (low), 1 (medium) or 2 (high)")
		return 0, ve
	}
	return priority, nil
}

// ValidateUpdate validates a partial update. At least one field must be set,
// and set text fields must be non-empty.
func (tv *TaskValidator) ValidateUpdate(title, description *string, priority *int) (domain.TaskUpdate, error) {
	ve := NewValidationError()
	var update domain.TaskUpdate

	if title != nil {
		t := tv.validator.checkText(ve, "title", *title, tv.validator.titleMaxLength())
		update.Title = &t
	}
	if description != nil {
		d := tv.validator.checkText(ve, "description", *description, tv.validator.descriptionMaxLength())
		update.Description = &d
	}
	if priority != nil {
		p, err := tv.ValidatePriority("priority", *priority)
		ve.Merge(err)
		update.Priority = &p
	}

	if update.IsEmpty() {
		ve.AddError("updates", ErrorTypeRequired, "updates must include title, description or priority", nil)
	}

	if err := ve.Err(); err != nil {
		return domain.TaskUpdate{}, err
	}
	return update, nil
}

// ValidateTransfer parses both ends of a transfer and rejects a transfer to the current owner.
func (tv *TaskValidator) ValidateTransfer(from, to string) (domain.UserID, domain.UserID, error) {
	ve := NewValidationError()

	fromID, err := tv.ValidateUserID("fromUserId", from)
	ve.Merge(err)
	toID, err := tv.ValidateUserID("toUserId", to)
	ve.Merge(err)

	if !ve.HasErrors() && fromID == toID {
		ve.AddInvalidValueError("toUserId", to, "must differ from fromUserId")
	}

	if err := ve.Err(); err != nil {
		return "", "", err
	}
	return fromID, toID, nil
}

// ValidateTaskID checks that a task id was supplied.
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		return NewFieldError("id", ErrorTypeRequired, "task id is required")
	}
	return nil
}
