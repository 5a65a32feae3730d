package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duo-tasks/internal/config"
	"duo-tasks/internal/domain"
)

func TestImportValidator_ParseBatch(t *testing.T) {
	iv := NewImportValidator(NewValidator())

	drafts, err := iv.ParseBatch(`[
		{"title": "A", "description": "B", "assignedTo": "user1"},
		{"title": " C ", "description": "D", "assignedTo": "user2", "priority": 2, "completed": true, "id": "x"}
	]`)
	require.NoError(t, err)

	assert.Equal(t, []domain.TaskDraft{
		{Title: "A", Description: "B", AssignedTo: domain.User1, Priority: domain.PriorityLow},
		{Title: "C", Description: "D", AssignedTo: domain.User2, Priority: domain.PriorityHigh},
	}, drafts)
}

func TestImportValidator_EmptyArray(t *testing.T) {
	iv := NewImportValidator(NewValidator())
	drafts, err := iv.ParseBatch(`[]`)
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestImportValidator_Errors(t *testing.T) {
	iv := NewImportValidator(NewValidator())
	valid := `{"title":"A","description":"B","assignedTo":"user1"}`

	tests := []struct {
		name    string
		raw     string
		message string
	}{
		{"empty input", "  ", "No tasks provided"},
		{"malformed json", `[{"title":`, "Invalid JSON format"},
		{"trailing data", `[] []`, "Invalid JSON format"},
		{"object instead of array", valid, "Tasks must be an array"},
		{"element not object", `["A"]`, "task 1: must be an object"},
		{"numeric title", `[` + valid + `,{"title":1,"description":"B","assignedTo":"user1"}]`, "task 2: title must be a string"},
		{"missing description", `[{"title":"A","assignedTo":"user1"}]`, "task 1: description must be a string"},
		{"blank title", `[{"title":"  ","description":"B","assignedTo":"user1"}]`, "task 1: title is required"},
		{"bad owner", `[{"title":"A","description":"B","assignedTo":"user3"}]`, "task 1: assignedTo must be user1 or user2"},
		{"string priority", `[{"title":"A","description":"B","assignedTo":"user1","priority":"high"}]`, "task 1: priority must be a number"},
		{"priority out of range", `[{"title":"A","description":"B","assignedTo":"user1","priority":3}]`, "task 1: priority must be 0, 1 or 2"},
		{"fractional priority", `[{"title":"A","description":"B","assignedTo":"user1","priority":1.5}]`, "task 1: priority must be 0, 1 or 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts, err := iv.ParseBatch(tt.raw)
			assert.Nil(t, drafts)
			ve, ok := AsValidationError(err)
			require.True(t, ok, "expected ValidationError, got %v", err)
			assert.Equal(t, tt.message, ve.GetUserFriendlyMessage())
		})
	}
}

func TestImportValidator_NullPriorityDefaults(t *testing.T) {
	iv := NewImportValidator(NewValidator())
	drafts, err := iv.ParseBatch(`[{"title":"A","description":"B","assignedTo":"user1","priority":null}]`)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, drafts[0].Priority)
}

func TestImportValidator_BatchLimit(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.ImportMaxTasks = 2
	iv := NewImportValidator(NewValidatorWithConfig(cfg))

	item := `{"title":"A","description":"B","assignedTo":"user1"}`
	raw := fmt.Sprintf("[%s]", strings.Join([]string{item, item, item}, ","))

	_, err := iv.ParseBatch(raw)
	assert.ErrorContains(t, err, "at most 2")
}
