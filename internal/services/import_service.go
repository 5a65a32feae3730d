package services

import (
	"context"
	"log/slog"
	"time"

	"duo-tasks/internal/domain"
	"duo-tasks/internal/repository/sqlite"
	"duo-tasks/internal/validation"

	"github.com/google/uuid"
)

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	repo      sqlite.Repository
	clock     Clock
	mapper    *domain.Mapper
	validator *validation.ImportValidator
}

// NewImportService creates a new ImportService instance
func NewImportService(repo sqlite.Repository, validator *validation.ImportValidator, clock Clock) ImportService {
	if validator == nil {
		validator = validation.NewImportValidator(validation.NewValidator())
	}
	if clock == nil {
		clock = time.Now
	}
	return &importServiceImpl{
		repo:      repo,
		clock:     clock,
		mapper:    domain.NewMapper(),
		validator: validator,
	}
}

// ImportTasks validates the whole batch before inserting it in one transaction.
func (s *importServiceImpl) ImportTasks(ctx context.Context, raw string) ([]domain.Task, error) {
	drafts, err := s.validator.ParseBatch(raw)
	if err != nil {
		return nil, invalid(err)
	}

	now := s.clock().UTC()
	tasks := make([]domain.Task, len(drafts))
	for i, draft := range drafts {
		tasks[i] = domain.NewTask(uuid.NewString(), draft, now)
	}

	if err := s.repo.CreateTasks(ctx, s.mapper.Task.ToDatabaseSlice(tasks)); err != nil {
		return nil, err
	}

	slog.Info("tasks imported", "count", len(tasks))
	return tasks, nil
}

// ExportTasks returns every task in its portable form
func (s *importServiceImpl) ExportTasks(ctx context.Context) ([]domain.TaskRecord, error) {
	rows, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]domain.TaskRecord, 0, len(rows))
	for _, task := range s.mapper.Task.FromDatabaseSlice(rows) {
		records = append(records, task.Record())
	}
	return records, nil
}
