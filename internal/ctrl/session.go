package ctrl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JMURv/iptv-gateway/internal/auth"
	"github.com/JMURv/iptv-gateway/internal/dto"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// Admit lets a device onto an account or refuses it with the limit
// numbers. A device already holding a session is always readmitted and
// only refreshed. The count check and the insert are not one atomic
// step; two first-time devices racing past the check can both land,
// which is accepted in exchange for lock-free admission.
func (c *Controller) Admit(
	ctx context.Context,
	userID uuid.UUID,
	maxConnections int,
	d *dto.DeviceRequest,
) (*dto.AdmitResult, error) {
	const op = "sessions.Admit.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	device := auth.GenerateDevice(d)

	existing, err := c.repo.GetSessionByFingerprint(ctx, userID, device.Fingerprint)
	if err == nil {
		if err = c.repo.TouchSession(ctx, existing.ID, d.IP, d.UA); err != nil {
			zap.L().Debug("failed to touch session", zap.String("op", op), zap.Error(err))
			return nil, err
		}
		return &dto.AdmitResult{Allowed: true}, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		zap.L().Debug("failed to look up session", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	count, err := c.repo.CountSessions(ctx, userID)
	if err != nil {
		zap.L().Debug("failed to count sessions", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	if count >= maxConnections {
		return &dto.AdmitResult{
			Allowed: false,
			Message: fmt.Sprintf("Device limit reached (%d/%d)", count, maxConnections),
			Current: count,
			Max:     maxConnections,
		}, nil
	}

	device.UserID = userID
	if _, err = c.repo.CreateSession(ctx, &device); err != nil {
		zap.L().Debug("failed to create session", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	zap.L().Info(
		"device admitted",
		zap.String("uid", userID.String()),
		zap.String("device", device.DeviceName),
		zap.String("ip", d.IP),
	)
	return &dto.AdmitResult{Allowed: true, Current: count + 1, Max: maxConnections}, nil
}

func (c *Controller) ListDevices(ctx context.Context, userID uuid.UUID) ([]md.Session, error) {
	const op = "sessions.ListDevices.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.ListSessions(ctx, userID)
	if err != nil {
		zap.L().Debug("failed to list sessions", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return res, nil
}

func (c *Controller) ListAllSessions(ctx context.Context, limit int) ([]md.Session, error) {
	const op = "sessions.ListAllSessions.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.ListAllSessions(ctx, limit)
	if err != nil {
		zap.L().Debug("failed to list all sessions", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return res, nil
}

func (c *Controller) Disconnect(
	ctx context.Context,
	userID uuid.UUID,
	fingerprint string,
) error {
	const op = "sessions.Disconnect.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if err := c.repo.DeleteSession(ctx, userID, fingerprint); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		zap.L().Debug("failed to delete session", zap.String("op", op), zap.Error(err))
		return err
	}

	return nil
}

func (c *Controller) DisconnectAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "sessions.DisconnectAll.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	count, err := c.repo.DeleteAllSessions(ctx, userID)
	if err != nil {
		zap.L().Debug("failed to delete sessions", zap.String("op", op), zap.Error(err))
		return 0, err
	}

	return count, nil
}

// SweepIdle drops sessions idle longer than timeout and frees their
// admission slots. Driven by a ticker in main.
func (c *Controller) SweepIdle(ctx context.Context, timeout time.Duration) (int64, error) {
	const op = "sessions.SweepIdle.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	count, err := c.repo.DeleteIdleSessions(ctx, time.Now().Add(-timeout))
	if err != nil {
		zap.L().Debug("failed to sweep idle sessions", zap.String("op", op), zap.Error(err))
		return 0, err
	}

	if count > 0 {
		zap.L().Info("idle sessions swept", zap.Int64("count", count))
	}
	return count, nil
}
