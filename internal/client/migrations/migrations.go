// Package migrations embeds the goose migrations for the two local
// credential databases and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed plain/*.sql secure/*.sql
var embedded embed.FS

// Set selects which database a migration run targets.
type Set string

const (
	// Plain is the unencrypted key/value database.
	Plain Set = "plain"
	// Secure is the encrypted secrets database.
	Secure Set = "secure"
)

// Up applies every pending migration of set to db.
func Up(ctx context.Context, db *sql.DB, set Set) error {
	fsys, err := fs.Sub(embedded, string(set))
	if err != nil {
		return fmt.Errorf("migrations %s: %w", set, err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("migrations %s: %w", set, err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations %s: %w", set, err)
	}
	return nil
}
