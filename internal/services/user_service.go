package services

import (
	"context"
	"log/slog"

	"duo-tasks/internal/domain"
	"duo-tasks/internal/repository/sqlite"
	"duo-tasks/internal/validation"
)

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	userValidator *validation.UserValidator
	taskValidator *validation.TaskValidator
}

// NewUserService creates a new UserService instance
func NewUserService(repo sqlite.Repository, userValidator *validation.UserValidator, taskValidator *validation.TaskValidator) UserService {
	if userValidator == nil {
		userValidator = validation.NewUserValidator(validation.NewValidator())
	}
	if taskValidator == nil {
		taskValidator = validation.NewTaskValidator()
	}
	return &userServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		userValidator: userValidator,
		taskValidator: taskValidator,
	}
}

// ListUsers returns both users ordered by id
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.User.FromDatabaseSlice(rows), nil
}

// GetUser retrieves a user by id
func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*domain.User, error) {
	userID, err := s.taskValidator.ValidateUserID("id", id)
	if err != nil {
		return nil, invalid(err)
	}

	row, err := s.repo.GetUser(ctx, string(userID))
	if err != nil {
		return nil, err
	}
	user := s.mapper.User.FromDatabase(*row)
	return &user, nil
}

// RenameUser stores a new display name
func (s *userServiceImpl) RenameUser(ctx context.Context, id, name string) (*domain.User, error) {
	userID, err := s.taskValidator.ValidateUserID("id", id)
	if err != nil {
		return nil, invalid(err)
	}
	cleaned, err := s.userValidator.ValidateName(name)
	if err != nil {
		return nil, invalid(err)
	}

	user := domain.User{ID: userID, Name: cleaned}
	row := s.mapper.User.ToDatabase(user)
	if err := s.repo.UpdateUser(ctx, &row); err != nil {
		return nil, err
	}

	slog.Debug("user renamed", "id", userID, "name", cleaned)
	return &user, nil
}
