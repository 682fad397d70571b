package repomanager

import (
	"context"
	"database/sql"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/dbx"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out one shared in-memory store whatever
// connection is passed in; there is no schema to migrate.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() RepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}
