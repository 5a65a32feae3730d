package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"duo-tasks/internal/domain"
)

// ImportValidator parses and validates an import batch.
type ImportValidator struct {
	validator *Validator
}

// NewImportValidator creates an import validator sharing v's limits
func NewImportValidator(v *Validator) *ImportValidator {
	return &ImportValidator{validator: v}
}

// ParseBatch decodes raw as a JSON array of tasks. The first invalid element
// rejects the whole batch; the error names its 1-based position and field.
// Fields other than title, description, assignedTo and priority are ignored.
func (iv *ImportValidator) ParseBatch(raw string) ([]domain.TaskDraft, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, NewFieldError("tasks", ErrorTypeRequired, "No tasks provided")
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, NewFieldError("tasks", ErrorTypeInvalidFormat, "Invalid JSON format")
	}
	if dec.More() {
		return nil, NewFieldError("tasks", ErrorTypeInvalidFormat, "Invalid JSON format")
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, NewFieldError("tasks", ErrorTypeInvalidFormat, "Tasks must be an array")
	}

	if max := iv.validator.importMaxTasks(); len(items) > max {
		return nil, NewFieldError("tasks", ErrorTypeInvalidLength,
			fmt.Sprintf("Too many tasks: at most %d can be imported at once", max))
	}

	drafts := make([]domain.TaskDraft, 0, len(items))
	for i, item := range items {
		draft, err := iv.parseItem(i+1, item)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func (iv *ImportValidator) parseItem(n int, item any) (domain.TaskDraft, error) {
	fail := func(field string, errorType ValidationErrorType, msg string) (domain.TaskDraft, error) {
		path := fmt.Sprintf("tasks[%d]", n)
		if field != "" {
			path += "." + field
		}
		return domain.TaskDraft{}, NewFieldError(path, errorType, fmt.Sprintf("task %d: %s", n, msg))
	}

	obj, ok := item.(map[string]any)
	if !ok {
		return fail("", ErrorTypeInvalidFormat, "must be an object")
	}

	title, ok := obj["title"].(string)
	if !ok {
		return fail("title", ErrorTypeInvalidFormat, "title must be a string")
	}
	description, ok := obj["description"].(string)
	if !ok {
		return fail("description", ErrorTypeInvalidFormat, "description must be a string")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return fail("title", ErrorTypeRequired, "title is required")
	}
	if max := iv.validator.titleMaxLength(); !iv.validator.IsWithinLength(title, max) {
		return fail("title", ErrorTypeInvalidLength, fmt.Sprintf("title must be at most %d characters long", max))
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return fail("description", ErrorTypeRequired, "description is required")
	}
	if max := iv.validator.descriptionMaxLength(); !iv.validator.IsWithinLength(description, max) {
		return fail("description", ErrorTypeInvalidLength, fmt.Sprintf("description must be at most %d characters long", max))
	}

	assigned, _ := obj["assignedTo"].(string)
	owner := domain.UserID(assigned)
	if !owner.IsValid() {
		return fail("assignedTo", ErrorTypeInvalidValue, fmt.Sprintf("assignedTo must be %s or %s", domain.User1, domain.User2))
	}

	priority := domain.PriorityLow
	if rawPriority, present := obj["priority"]; present && rawPriority != nil {
		num, ok := rawPriority.(json.Number)
		if !ok {
			return fail("priority", ErrorTypeInvalidFormat, "priority must be a number")
		}
		p, err := num.Int64()
		if err != nil || !domain.Priority(p).IsValid() {
			return fail("priority", ErrorTypeInvalidRange, "priority must be 0, 1 or 2")
		}
		priority = domain.Priority(p)
	}

	return domain.TaskDraft{
		Title:       title,
		Description: description,
		AssignedTo:  owner,
		Priority:    priority,
	}, nil
}
