package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JMURv/iptv-gateway/internal/config"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	sq "github.com/Masterminds/squirrel"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const syncMetaUpsertQ = `
INSERT INTO sync_metadata (id, last_sync, total_channels, total_movies, total_series, feed_size, template_path)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	last_sync = EXCLUDED.last_sync,
	total_channels = EXCLUDED.total_channels,
	total_movies = EXCLUDED.total_movies,
	total_series = EXCLUDED.total_series,
	feed_size = EXCLUDED.feed_size,
	template_path = EXCLUDED.template_path
`

const syncMetaGetQ = `
SELECT id, last_sync, total_channels, total_movies, total_series, feed_size, template_path
FROM sync_metadata
WHERE id = $1
`

func (r *Repository) CountContent(ctx context.Context, kind md.ContentKind) (int, error) {
	const op = "catalog.CountContent.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var count int
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", kind.Table())
	if err := r.conn.GetContext(ctx, &count, q); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) InsertContentBatch(
	ctx context.Context,
	kind md.ContentKind,
	items []md.ContentItem,
) error {
	const op = "catalog.InsertContentBatch.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if len(items) == 0 {
		return nil
	}

	query := sq.Insert(kind.Table()).
		PlaceholderFormat(sq.Dollar).
		Columns(
			"seq",
			"name",
			"logo",
			"url",
			"provider_id",
			"group_title",
			"country",
			"tvg_id",
			"season",
			"episode",
		)

	for i := range items {
		query = query.Values(
			items[i].Seq,
			items[i].Name,
			items[i].Logo,
			items[i].URL,
			items[i].ProviderID,
			items[i].GroupTitle,
			items[i].Country,
			items[i].TvgID,
			items[i].Season,
			items[i].Episode,
		)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		zap.L().Error("failed to build insert query", zap.String("op", op), zap.Error(err))
		return err
	}

	_, err = r.conn.ExecContext(ctx, sqlStr, args...)
	return err
}

// PurgeContent empties a catalog table. TRUNCATE is tried first; when
// the store refuses it the purge degrades to bounded delete batches
// with a short sleep between them, capped so a misbehaving backend
// cannot spin forever.
func (r *Repository) PurgeContent(ctx context.Context, kind md.ContentKind) error {
	const op = "catalog.PurgeContent.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	table := kind.Table()
	if _, err := r.conn.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err == nil {
		return nil
	} else {
		zap.L().Warn(
			"TRUNCATE unavailable, falling back to batched deletes",
			zap.String("table", table),
			zap.Error(err),
		)
	}

	deleteQ := fmt.Sprintf(
		"DELETE FROM %s WHERE id IN (SELECT id FROM %s LIMIT %d)",
		table, table, config.DeleteBatchLimit,
	)

	var deleted int64
	for attempt := 0; attempt < config.MaxDeleteAttempts; attempt++ {
		res, err := r.conn.ExecContext(ctx, deleteQ)
		if err != nil {
			zap.L().Error(
				"failed to delete batch",
				zap.String("table", table),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}

		aff, _ := res.RowsAffected()
		if aff == 0 {
			break
		}
		deleted += aff

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(config.DeleteBatchSleep):
		}
	}

	zap.L().Info(
		"table purged",
		zap.String("table", table),
		zap.Int64("deleted", deleted),
	)
	return nil
}

// GetOriginURL resolves a provider-assigned id to the upstream URL for
// the given content kind.
func (r *Repository) GetOriginURL(
	ctx context.Context,
	kind md.ContentKind,
	providerID string,
) (string, error) {
	const op = "catalog.GetOriginURL.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var url string
	q := fmt.Sprintf("SELECT url FROM %s WHERE provider_id = $1 LIMIT 1", kind.Table())
	err := r.conn.GetContext(ctx, &url, q, providerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repo.ErrNotFound
		}
		return "", err
	}

	return url, nil
}

// ListOrigins returns every provider_id -> url mapping of a kind, used
// by the resolver's preload.
func (r *Repository) ListOrigins(
	ctx context.Context,
	kind md.ContentKind,
) (map[string]string, error) {
	const op = "catalog.ListOrigins.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	rows, err := r.conn.QueryxContext(
		ctx,
		fmt.Sprintf("SELECT provider_id, url FROM %s", kind.Table()),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[string]string)
	for rows.Next() {
		var providerID, url string
		if err = rows.Scan(&providerID, &url); err != nil {
			return nil, err
		}
		res[providerID] = url
	}

	return res, rows.Err()
}

func (r *Repository) UpsertSyncMeta(ctx context.Context, meta *md.SyncMeta) error {
	const op = "catalog.UpsertSyncMeta.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	_, err := r.conn.ExecContext(
		ctx,
		syncMetaUpsertQ,
		meta.ID,
		meta.LastSync,
		meta.TotalChannels,
		meta.TotalMovies,
		meta.TotalSeries,
		meta.FeedSizeBytes,
		meta.TemplatePath,
	)
	return err
}

func (r *Repository) GetSyncMeta(ctx context.Context) (*md.SyncMeta, error) {
	const op = "catalog.GetSyncMeta.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.SyncMeta{}
	err := r.conn.GetContext(ctx, res, syncMetaGetQ, config.SyncMetadataID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}
