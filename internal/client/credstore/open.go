package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/migrations"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/repositories/metadata"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/repositories/vault"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/cryptox"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/filex"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"

	_ "modernc.org/sqlite"
)

const (
	PlainDBFile   = "credentials.db"
	SecureDBFile  = "vault.db"
	DeviceKeyFile = "device.key"
)

// Open creates (if needed) the data directory and both SQLite files under
// dir, applies migrations and returns a Store plus a function that closes
// the databases.
func Open(ctx context.Context, dir string, logger logging.Logger) (*Store, func() error, error) {
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, nil, err
	}

	secret, err := filex.ReadOrCreateSecret(filepath.Join(dir, DeviceKeyFile), cryptox.KeySize)
	if err != nil {
		return nil, nil, err
	}

	plainDB, err := openDB(ctx, filepath.Join(dir, PlainDBFile), migrations.Plain)
	if err != nil {
		return nil, nil, err
	}

	secureDB, err := openDB(ctx, filepath.Join(dir, SecureDBFile), migrations.Secure)
	if err != nil {
		_ = plainDB.Close()
		return nil, nil, err
	}

	closeAll := func() error {
		return errors.Join(secureDB.Close(), plainDB.Close())
	}

	secure, err := vault.Open(ctx, secureDB, secret)
	if err != nil {
		_ = closeAll()
		return nil, nil, err
	}

	store := New(secure, metadata.NewSQLiteRepository(plainDB), WithLogger(logger))
	return store, closeAll, nil
}

func openDB(ctx context.Context, path string, set migrations.Set) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := migrations.Up(ctx, db, set); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
