package repomanager

import (
	"context"
	"database/sql"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/dbx"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or
// transaction and prepares the schema they need.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
