package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

func (r *Repository) GetSessionByFingerprint(
	ctx context.Context,
	userID uuid.UUID,
	fingerprint string,
) (*md.Session, error) {
	const op = "sessions.GetSessionByFingerprint.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.Session{}
	err := r.conn.GetContext(ctx, res, sessionGetByFingerprintQ, userID, fingerprint)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

// TouchSession refreshes last_activity and the connection attributes of
// an existing session on reconnect.
func (r *Repository) TouchSession(
	ctx context.Context,
	id uuid.UUID,
	ip, ua string,
) error {
	const op = "sessions.TouchSession.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	_, err := r.conn.ExecContext(ctx, sessionTouchQ, ip, ua, id)
	return err
}

func (r *Repository) CountSessions(ctx context.Context, userID uuid.UUID) (int, error) {
	const op = "sessions.CountSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var count int
	if err := r.conn.GetContext(ctx, &count, sessionCountQ, userID); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) CreateSession(ctx context.Context, s *md.Session) (uuid.UUID, error) {
	const op = "sessions.CreateSession.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var id uuid.UUID
	err := r.conn.QueryRowxContext(
		ctx,
		sessionCreateQ,
		s.UserID,
		s.Fingerprint,
		s.DeviceName,
		s.DeviceType,
		s.IP,
		s.UA,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (r *Repository) ListSessions(ctx context.Context, userID uuid.UUID) ([]md.Session, error) {
	const op = "sessions.ListSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := make([]md.Session, 0)
	if err := r.conn.SelectContext(ctx, &res, sessionListQ, userID); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *Repository) ListAllSessions(ctx context.Context, limit int) ([]md.Session, error) {
	const op = "sessions.ListAllSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := make([]md.Session, 0)
	if err := r.conn.SelectContext(ctx, &res, sessionListAllQ, limit); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *Repository) CountAllSessions(ctx context.Context) (int, error) {
	const op = "sessions.CountAllSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var count int
	if err := r.conn.GetContext(ctx, &count, sessionCountAllQ); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) DeleteSession(
	ctx context.Context,
	userID uuid.UUID,
	fingerprint string,
) error {
	const op = "sessions.DeleteSession.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, sessionDeleteQ, userID, fingerprint)
	if err != nil {
		return err
	}

	if aff, _ := res.RowsAffected(); aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteAllSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "sessions.DeleteAllSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, sessionDeleteAllQ, userID)
	if err != nil {
		return 0, err
	}

	aff, _ := res.RowsAffected()
	return aff, nil
}

// DeleteIdleSessions removes every session whose last_activity is older
// than the cutoff and reports how many were dropped.
func (r *Repository) DeleteIdleSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	const op = "sessions.DeleteIdleSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, sessionDeleteIdleQ, olderThan)
	if err != nil {
		return 0, err
	}

	aff, _ := res.RowsAffected()
	return aff, nil
}
