package cli

import (
	"errors"
	"testing"

	apperrors "duo-tasks/internal/errors"
	"duo-tasks/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add task",
			err:       apperrors.NewValidationError("title is required", nil),
			expected:  "failed to add task: title is required",
		},
		{
			name:      "Not found error",
			operation: "get user",
			err:       apperrors.NewNotFoundError("user", "123"),
			expected:  "failed to get user: user not found: 123",
		},
		{
			name:      "Task unavailable",
			operation: "start task",
			err:       apperrors.NewTaskUnavailableError("abc"),
			expected:  "failed to start task: task not found or unauthorized",
		},
		{
			name:      "Database error",
			operation: "list tasks",
			err:       apperrors.NewDatabaseError("select", errors.New("disk I/O error")),
			expected:  "failed to list tasks: A database error occurred. Please try again.",
		},
		{
			name:      "Raw validation error",
			operation: "rename user",
			err:       validation.NewFieldError("name", validation.ErrorTypeRequired, "name is required"),
			expected:  "failed to rename user: name is required",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleNil(t *testing.T) {
	if err := NewErrorHandler().Handle("anything", nil); err != nil {
		t.Errorf("Handle(nil) = %v, want nil", err)
	}
}

func TestErrorHandler_HandleKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewErrorHandler().Handle("process", cause)
	if !errors.Is(err, cause) {
		t.Errorf("Handle() should wrap the original error")
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	if !eh.IsValidationError(apperrors.NewValidationError("bad", nil)) {
		t.Error("app validation error should be a validation error")
	}
	if !eh.IsValidationError(validation.NewFieldError("title", validation.ErrorTypeRequired, "title is required")) {
		t.Error("field error should be a validation error")
	}
	if eh.IsValidationError(errors.New("plain")) {
		t.Error("plain error should not be a validation error")
	}
	if !eh.IsNotFoundError(apperrors.NewTaskUnavailableError("x")) {
		t.Error("unavailable task should be a not found error")
	}
	if got := eh.GetErrorCode(apperrors.NewTaskUnavailableError("x")); got != apperrors.CodeTaskUnavailable {
		t.Errorf("GetErrorCode() = %q, want %q", got, apperrors.CodeTaskUnavailable)
	}
	if got := eh.GetErrorCode(errors.New("plain")); got != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %q, want UNKNOWN_ERROR", got)
	}
}
