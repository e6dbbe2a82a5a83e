package db

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/JMURv/iptv-gateway/internal/dto"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{
			"id", "username", "password_hash", "max_connections",
			"is_active", "role", "expires_at", "created_at", "updated_at",
		},
	).AddRow(
		id, "alice", "hashed", 2,
		true, md.RoleUser, nil, time.Now(), time.Now(),
	)
}

func TestRepository_GetUserByUsername(t *testing.T) {
	r, mock := newMockRepo(t)
	uid := uuid.New()

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(userGetByUsernameQ)).
				WithArgs("alice").
				WillReturnRows(userRows(uid))

			res, err := r.GetUserByUsername(context.Background(), "alice")
			require.NoError(t, err)
			assert.Equal(t, uid, res.ID)
			assert.Equal(t, "hashed", res.Password)
			assert.Equal(t, 2, res.MaxConnections)
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(userGetByUsernameQ)).
				WithArgs("ghost").
				WillReturnError(sql.ErrNoRows)

			_, err := r.GetUserByUsername(context.Background(), "ghost")
			assert.ErrorIs(t, err, repo.ErrNotFound)
		},
	)
}

func TestRepository_CreateUser(t *testing.T) {
	r, mock := newMockRepo(t)
	uid := uuid.New()

	req := &dto.CreateUserRequest{
		Username:       "alice",
		Password:       "hashed",
		MaxConnections: 1,
		Role:           md.RoleUser,
	}

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(userCreateQ)).
				WithArgs(req.Username, req.Password, req.MaxConnections, true, req.Role, req.ExpiresAt).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uid))

			id, err := r.CreateUser(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, uid, id)
		},
	)

	t.Run(
		"AlreadyExists", func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(userCreateQ)).
				WithArgs(req.Username, req.Password, req.MaxConnections, true, req.Role, req.ExpiresAt).
				WillReturnError(&pgconn.PgError{Code: uniqueViolation})

			_, err := r.CreateUser(context.Background(), req)
			assert.ErrorIs(t, err, repo.ErrAlreadyExists)
		},
	)
}

func TestRepository_UpdateUser(t *testing.T) {
	r, mock := newMockRepo(t)
	uid := uuid.New()

	maxConn := 5
	req := &dto.UpdateUserRequest{MaxConnections: &maxConn}

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectExec("UPDATE users").
				WillReturnResult(sqlmock.NewResult(0, 1))

			assert.NoError(t, r.UpdateUser(context.Background(), uid, req))
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			mock.ExpectExec("UPDATE users").
				WillReturnResult(sqlmock.NewResult(0, 0))

			assert.ErrorIs(
				t, r.UpdateUser(context.Background(), uid, req), repo.ErrNotFound,
			)
		},
	)
}

func TestRepository_DeleteUser(t *testing.T) {
	r, mock := newMockRepo(t)
	uid := uuid.New()

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(userDeleteQ)).
				WithArgs(uid).
				WillReturnResult(sqlmock.NewResult(0, 1))

			assert.NoError(t, r.DeleteUser(context.Background(), uid))
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(userDeleteQ)).
				WithArgs(uid).
				WillReturnResult(sqlmock.NewResult(0, 0))

			assert.ErrorIs(t, r.DeleteUser(context.Background(), uid), repo.ErrNotFound)
		},
	)
}
