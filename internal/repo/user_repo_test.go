package repo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
)

var userCols = []string{"id", "username", "password_hash", "created_at"}

func newUserRepoWithMock(t *testing.T) (*PGUserRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return NewPGUserRepo(mock), mock
}

func TestPGUserRepo_GetByUsername(t *testing.T) {
	r, mock := newUserRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("admin").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow("u-1", "admin", "$2a$hash", now))

	u, err := r.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "$2a$hash", u.PasswordHash)
}

func TestPGUserRepo_GetByID_NotFound(t *testing.T) {
	r, mock := newUserRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("u-404").
		WillReturnError(pgx.ErrNoRows)

	_, err := r.GetByID(context.Background(), "u-404")
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestPGUserRepo_Create_Duplicate(t *testing.T) {
	r, mock := newUserRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, password_hash)")).
		WithArgs("admin", "$2a$hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := r.Create(context.Background(), "admin", "$2a$hash")
	assert.ErrorIs(t, err, dom.ErrUsernameTaken)
}
