package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/models"
)

var columns = []string{"id", "username", "email", "password_hash", "role", "first_name", "last_name", "career_total_score", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func avaRow(created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(columns).
		AddRow(int64(1), "ava", "ava@example.com", []byte("hash"), "Student", "Ava", "Jones", int64(12210), created)
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*password_hash,\s*role,\s*first_name,\s*last_name,\s*career_total_score\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+id,\s*created_at\s*$`
	mock.ExpectQuery(q).
		WithArgs("ava", "ava@example.com", []byte("hash"), "Student", "Ava", "Jones", int64(12210)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))

	u := &models.User{Username: "ava", Email: "ava@example.com", PasswordHash: []byte("hash"), Role: "Student",
		FirstName: "Ava", LastName: "Jones", CareerTotalScore: 12210}
	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, created, got.CreatedAt)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_lower_idx"})

	_, err := repo.Create(context.Background(), &models.User{Username: "ava"})
	assert.ErrorIs(t, err, common.ErrorLoginAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Username: "ava"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Now().UTC()

	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+lower\(username\)\s*=\s*lower\(\$1\)\s*$`
	mock.ExpectQuery(q).WithArgs("AVA").WillReturnRows(avaRow(created))

	got, err := repo.GetByUsername(context.Background(), "AVA")
	require.NoError(t, err)
	assert.Equal(t, "ava", got.Username)
	assert.Equal(t, int64(12210), got.CareerTotalScore)
	assert.Equal(t, []byte("hash"), got.PasswordHash)
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM users`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs(int64(1)).WillReturnRows(avaRow(time.Now()))
	mock.ExpectQuery(q).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ava", got.FirstName)

	_, err = repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateProfile(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+users\s+SET\s+first_name\s*=\s*\$2,\s*last_name\s*=\s*\$3,\s*email\s*=\s*\$4,\s*username\s*=\s*\$5\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,.*$`
	rows := sqlmock.NewRows(columns).
		AddRow(int64(1), "ab", "a@b.com", []byte("hash"), "Student", "A", "B", int64(12210), time.Now())
	mock.ExpectQuery(q).WithArgs(int64(1), "A", "B", "a@b.com", "ab").WillReturnRows(rows)

	got, err := repo.UpdateProfile(context.Background(), &models.User{ID: 1, FirstName: "A", LastName: "B", Email: "a@b.com", Username: "ab"})
	require.NoError(t, err)
	assert.Equal(t, "ab", got.Username)
	assert.Equal(t, int64(12210), got.CareerTotalScore)
}

func TestUpdateProfile_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE users`).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`UPDATE users`).WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.UpdateProfile(context.Background(), &models.User{ID: 9})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.UpdateProfile(context.Background(), &models.User{ID: 1, Username: "liam"})
	assert.ErrorIs(t, err, common.ErrorLoginAlreadyExists)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	rows := sqlmock.NewRows(columns).
		AddRow(int64(1), "ava", "ava@example.com", []byte("h1"), "Student", "Ava", "Jones", int64(12210), now).
		AddRow(int64(2), "liam", "liam@example.com", []byte("h2"), "Student", "Liam", "Johnson", int64(12720), now)
	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+ORDER\s+BY\s+id\s*$`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ava", got[0].FirstName)
	assert.Equal(t, "Liam", got[1].FirstName)
}

func TestList_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM users`).WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
