// Package vault is the secure key/value backend of the credential store.
// Values are sealed with AES-GCM under a key derived (argon2id) from a
// per-device secret and a salt persisted next to the data.
package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/cryptox"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/dbx"
)

const saltSize = 16

// ErrUndecryptable is returned when a stored value cannot be opened with
// the current key, e.g. after the device secret was replaced.
var ErrUndecryptable = errors.New("secret cannot be decrypted")

type SQLiteRepository struct {
	db  *sql.DB
	key []byte
}

// Open prepares the repository on a migrated database, creating the salt on
// first use.
func Open(ctx context.Context, db *sql.DB, deviceSecret []byte) (*SQLiteRepository, error) {
	if len(deviceSecret) == 0 {
		return nil, cryptox.ErrEmptyKey
	}

	var salt []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		err := tx.QueryRowContext(ctx, `SELECT value FROM vault_params WHERE name = 'salt'`).Scan(&salt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		salt = common.GenerateRandByteArray(saltSize)
		_, err = tx.ExecContext(ctx, `INSERT INTO vault_params (name, value) VALUES ('salt', ?)`, salt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init vault salt: %w", err)
	}

	return &SQLiteRepository{db: db, key: cryptox.DeriveKey(deviceSecret, salt)}, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var ciphertext, nonce []byte
	err := r.db.QueryRowContext(ctx, `SELECT ciphertext, nonce FROM secrets WHERE key = ?`, key).Scan(&ciphertext, &nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get secret[%s]: %w", key, err)
	}

	value, err := cryptox.Open(ciphertext, nonce, r.key)
	if err != nil {
		return nil, fmt.Errorf("secret[%s]: %w", key, errors.Join(ErrUndecryptable, err))
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	ciphertext, nonce, err := cryptox.Seal(value, r.key)
	if err != nil {
		return fmt.Errorf("failed to seal secret[%s]: %w", key, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO secrets (key, ciphertext, nonce, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET ciphertext = excluded.ciphertext, nonce = excluded.nonce, updated_at = excluded.updated_at
	`, key, ciphertext, nonce)
	if err != nil {
		return fmt.Errorf("failed to set secret[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM secrets WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete secret[%s]: %w", key, err)
	}
	return nil
}
