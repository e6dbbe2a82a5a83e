package ctrl

import (
	"context"
	"errors"

	"github.com/JMURv/iptv-gateway/internal/dto"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	"github.com/JMURv/iptv-gateway/internal/stream"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// TriggerSync runs one ingestion cycle. The email report and the
// template archive upload are best effort; only the cycle itself can
// fail the call.
func (c *Controller) TriggerSync(ctx context.Context) (*dto.SyncSummary, error) {
	const op = "sync.TriggerSync.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	summary, err := c.pipeline.Run(ctx)
	if err != nil {
		zap.L().Error("sync cycle failed", zap.String("op", op), zap.Error(err))
		if c.notify != nil {
			if nerr := c.notify.SendSyncReport(nil, err); nerr != nil {
				zap.L().Warn("failed to send sync failure report", zap.Error(nerr))
			}
		}
		return nil, err
	}

	c.resolver.Invalidate()
	if err = c.resolver.Preload(ctx); err != nil {
		zap.L().Warn("failed to preload resolver after sync", zap.Error(err))
	}

	if c.archive != nil && summary.TemplatePath != "" {
		if err = c.archive.UploadTemplate(ctx, summary.TemplatePath); err != nil {
			zap.L().Warn("failed to archive template", zap.Error(err))
		}
	}

	if c.notify != nil {
		if err = c.notify.SendSyncReport(summary, nil); err != nil {
			zap.L().Warn("failed to send sync report", zap.Error(err))
		}
	}

	return summary, nil
}

// ReloadTemplate re-reads the published template from disk into the
// in-memory snapshot.
func (c *Controller) ReloadTemplate(ctx context.Context) error {
	const op = "sync.ReloadTemplate.ctrl"

	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return c.template.Reload()
}

// GeneratePlaylist renders the personalized playlist for a subscriber.
func (c *Controller) GeneratePlaylist(username, password string) string {
	return c.template.Generate(c.publicDomain, username, password)
}

// ResolveStream maps a public stream id to its origin URL.
func (c *Controller) ResolveStream(
	ctx context.Context,
	kind md.ContentKind,
	providerID string,
) (string, error) {
	const op = "sync.ResolveStream.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	url, err := c.resolver.Resolve(ctx, kind, providerID)
	if err != nil {
		if errors.Is(err, stream.ErrOriginNotFound) {
			return "", ErrNotFound
		}
		zap.L().Debug("failed to resolve stream", zap.String("op", op), zap.Error(err))
		return "", err
	}

	return url, nil
}

func (c *Controller) GetSyncMeta(ctx context.Context) (*md.SyncMeta, error) {
	const op = "sync.GetSyncMeta.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.GetSyncMeta(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		zap.L().Debug("failed to get sync metadata", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return res, nil
}

// SystemStats aggregates account, session and catalog counts for the
// admin dashboard.
func (c *Controller) SystemStats(ctx context.Context) (*dto.SystemStatsResponse, error) {
	const op = "sync.SystemStats.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &dto.SystemStatsResponse{}

	all, err := c.repo.ListUsers(ctx, 1, 1, nil)
	if err != nil {
		return nil, err
	}
	res.TotalUsers = int(all.Count)

	active, err := c.repo.ListUsers(ctx, 1, 1, map[string]any{"is_active": true})
	if err != nil {
		return nil, err
	}
	res.ActiveUsers = int(active.Count)

	if res.TotalSessions, err = c.repo.CountAllSessions(ctx); err != nil {
		return nil, err
	}

	if res.TotalChannels, err = c.repo.CountContent(ctx, md.KindLive); err != nil {
		return nil, err
	}
	if res.TotalMovies, err = c.repo.CountContent(ctx, md.KindMovie); err != nil {
		return nil, err
	}
	if res.TotalSeries, err = c.repo.CountContent(ctx, md.KindSeries); err != nil {
		return nil, err
	}

	return res, nil
}
