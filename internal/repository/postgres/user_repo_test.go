package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/and161185/taskkeep/internal/errs"
	"github.com/and161185/taskkeep/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestUserRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{
		ID:      uuid.Must(uuid.NewV4()),
		Email:   "a@example.com",
		PwdHash: []byte("h"),
	}

	// OK
	mock.ExpectExec(`INSERT INTO users \(id, email, pwd_hash\)\s+VALUES \(\$1, \$2, \$3\)`).
		WithArgs(u.ID, u.Email, u.PwdHash).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	// Unique violation on email
	mock.ExpectExec(`INSERT INTO users \(id, email, pwd_hash\)\s+VALUES \(\$1, \$2, \$3\)`).
		WithArgs(u.ID, u.Email, u.PwdHash).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	err := r.Create(ctx, u)
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	email := "a@example.com"
	id := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, email, pwd_hash, created_at\s+FROM users WHERE email=\$1`).
		WithArgs(email).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "pwd_hash", "created_at"}).
			AddRow(id, email, []byte("h"), time.Now()))
	u, err := r.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, email, u.Email)

	mock.ExpectQuery(`SELECT id, email, pwd_hash, created_at\s+FROM users WHERE email=\$1`).
		WithArgs(email).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByEmail(ctx, email)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_GetByEmail_StoreFailurePropagates(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	// Only a genuine miss is ErrNotFound; an unreachable store must not
	// look like an absent user (that would turn an outage into a 401).
	mock.ExpectQuery(`SELECT id, email, pwd_hash, created_at\s+FROM users WHERE email=\$1`).
		WithArgs("a@example.com").
		WillReturnError(errors.New("connection refused"))
	_, err := r.GetByEmail(context.Background(), "a@example.com")
	require.Error(t, err)
	require.False(t, errors.Is(err, errs.ErrNotFound))
	require.Contains(t, err.Error(), "connection refused")
}

func TestUserRepo_GetByEmail_CaseSensitive(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	// The query passes the email through verbatim; no lowercasing.
	mock.ExpectQuery(`SELECT id, email, pwd_hash, created_at\s+FROM users WHERE email=\$1`).
		WithArgs("A@Example.com").
		WillReturnError(pgx.ErrNoRows)
	_, err := r.GetByEmail(context.Background(), "A@Example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
