package services

import (
	"time"

	"duo-tasks/internal/config"
	"duo-tasks/internal/repository/sqlite"
	"duo-tasks/internal/validation"
)

// Option customizes NewServiceContainer.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// NewServiceContainer wires every service against repo using cfg's validation limits.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, opts ...Option) *ServiceContainer {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	v := validation.NewValidatorWithConfig(cfg)
	taskValidator := validation.NewTaskValidatorWithValidator(v)

	return &ServiceContainer{
		TaskService:      NewTaskService(repo, taskValidator, o.clock),
		ImportService:    NewImportService(repo, validation.NewImportValidator(v), o.clock),
		UserService:      NewUserService(repo, validation.NewUserValidator(v), taskValidator),
		ReportingService: NewReportingService(repo, o.clock),
	}
}
