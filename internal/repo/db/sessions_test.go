package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Repository{conn: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestRepository_GetSessionByFingerprint(t *testing.T) {
	r, mock := newMockRepo(t)
	uid := uuid.New()
	sid := uuid.New()

	tests := []struct {
		name        string
		mock        func()
		expectedErr error
	}{
		{
			name: "Success",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(sessionGetByFingerprintQ)).
					WithArgs(uid, "fp").
					WillReturnRows(
						sqlmock.NewRows(
							[]string{
								"id", "user_id", "fingerprint", "device_name",
								"device_type", "ip", "user_agent", "last_activity", "created_at",
							},
						).AddRow(
							sid, uid, "fp", "TiviMate",
							"tv", "10.0.0.1", "TiviMate/4.7.0", time.Now(), time.Now(),
						),
					)
			},
		},
		{
			name: "NotFound",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(sessionGetByFingerprintQ)).
					WithArgs(uid, "fp").
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: repo.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				tt.mock()

				res, err := r.GetSessionByFingerprint(context.Background(), uid, "fp")
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, sid, res.ID)
				assert.Equal(t, md.DeviceTV, res.DeviceType)
				assert.NoError(t, mock.ExpectationsWereMet())
			},
		)
	}
}

func TestRepository_CountSessions(t *testing.T) {
	r, mock := newMockRepo(t)
	uid := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(sessionCountQ)).
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := r.CountSessions(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateSession(t *testing.T) {
	r, mock := newMockRepo(t)
	uid := uuid.New()
	sid := uuid.New()

	s := &md.Session{
		UserID:      uid,
		Fingerprint: "fp",
		DeviceName:  "TiviMate",
		DeviceType:  md.DeviceTV,
		IP:          "10.0.0.1",
		UA:          "TiviMate/4.7.0",
	}

	mock.ExpectQuery(regexp.QuoteMeta(sessionCreateQ)).
		WithArgs(s.UserID, s.Fingerprint, s.DeviceName, s.DeviceType, s.IP, s.UA).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(sid))

	id, err := r.CreateSession(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, sid, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteSession(t *testing.T) {
	r, mock := newMockRepo(t)
	uid := uuid.New()

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(sessionDeleteQ)).
				WithArgs(uid, "fp").
				WillReturnResult(sqlmock.NewResult(0, 1))

			assert.NoError(t, r.DeleteSession(context.Background(), uid, "fp"))
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(sessionDeleteQ)).
				WithArgs(uid, "fp").
				WillReturnResult(sqlmock.NewResult(0, 0))

			assert.ErrorIs(
				t, r.DeleteSession(context.Background(), uid, "fp"), repo.ErrNotFound,
			)
		},
	)
}

func TestRepository_DeleteIdleSessions(t *testing.T) {
	r, mock := newMockRepo(t)
	cutoff := time.Now().Add(-30 * time.Minute)

	mock.ExpectExec(regexp.QuoteMeta(sessionDeleteIdleQ)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	count, err := r.DeleteIdleSessions(context.Background(), cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TouchSession(t *testing.T) {
	r, mock := newMockRepo(t)
	sid := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(sessionTouchQ)).
		WithArgs("10.0.0.2", "VLC/3.0.18", sid).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.TouchSession(context.Background(), sid, "10.0.0.2", "VLC/3.0.18"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteAllSessions(t *testing.T) {
	r, mock := newMockRepo(t)
	uid := uuid.New()

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(sessionDeleteAllQ)).
				WithArgs(uid).
				WillReturnResult(sqlmock.NewResult(0, 3))

			count, err := r.DeleteAllSessions(context.Background(), uid)
			require.NoError(t, err)
			assert.EqualValues(t, 3, count)
		},
	)

	t.Run(
		"ExecError", func(t *testing.T) {
			testErr := errors.New("testErr")
			mock.ExpectExec(regexp.QuoteMeta(sessionDeleteAllQ)).
				WithArgs(uid).
				WillReturnError(testErr)

			_, err := r.DeleteAllSessions(context.Background(), uid)
			assert.ErrorIs(t, err, testErr)
		},
	)
}
