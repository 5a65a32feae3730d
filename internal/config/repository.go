package config

import (
	"context"
	"fmt"
	"os"

	"duo-tasks/internal/domain"
	"duo-tasks/internal/repository/sqlite"
)

// CreateRepository opens the configured database, creating its directory if
// needed, and seeds both users with their configured names.
func CreateRepository(ctx context.Context, config *Config) (sqlite.Repository, error) {
	dbPath := config.GetDatabasePath()

	if dbPath != MemoryDatabase {
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	repo, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := repo.EnsureUsers(ctx, DefaultUsers(config)); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates a seeded in-memory repository for testing
func CreateTestRepository(ctx context.Context) (sqlite.Repository, error) {
	cfg := NewConfig()
	cfg.Database.Filename = MemoryDatabase
	return CreateRepository(ctx, cfg)
}

// DefaultUsers returns the seed rows for both users.
func DefaultUsers(config *Config) []*sqlite.User {
	names := map[domain.UserID]string{
		domain.User1: config.Users.User1Name,
		domain.User2: config.Users.User2Name,
	}
	users := make([]*sqlite.User, 0, len(names))
	for _, id := range domain.AllUsers() {
		users = append(users, &sqlite.User{ID: string(id), Name: names[id]})
	}
	return users
}
