package ingest

import (
	"context"

	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type batchWriter interface {
	InsertContentBatch(ctx context.Context, kind md.ContentKind, items []md.ContentItem) error
}

// BulkInserter writes classified items in fixed-size batches through a
// bounded worker pool. A batch that still fails after every retry
// attempt counts its records as failed and the run keeps going.
type BulkInserter struct {
	repo      batchWriter
	batchSize int
	workers   int
	retry     RetryPolicy
	onBatch   ProgressFunc
}

func NewBulkInserter(
	repo batchWriter,
	batchSize, workers int,
	retry RetryPolicy,
	onBatch ProgressFunc,
) *BulkInserter {
	if batchSize <= 0 {
		batchSize = 5000
	}
	if workers <= 0 {
		workers = 2
	}

	return &BulkInserter{
		repo:      repo,
		batchSize: batchSize,
		workers:   workers,
		retry:     retry,
		onBatch:   onBatch,
	}
}

// Insert writes all items of one content kind and reports how many
// records made it in and how many were lost to failed batches.
func (b *BulkInserter) Insert(
	ctx context.Context,
	kind md.ContentKind,
	items []md.ContentItem,
) (inserted, failed int, err error) {
	const op = "ingest.Insert.inserter"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if len(items) == 0 {
		return 0, 0, nil
	}

	stats := newInsertStats(len(items), b.onBatch)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for start := 0; start < len(items); start += b.batchSize {
		end := start + b.batchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		g.Go(func() error {
			if err := b.insertBatch(gctx, kind, batch); err != nil {
				zap.L().Error(
					"batch failed after retries",
					zap.String("kind", string(kind)),
					zap.Int("size", len(batch)),
					zap.Error(err),
				)
				stats.record(0, len(batch))
				return nil
			}

			stats.record(len(batch), 0)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	snap := stats.snapshot()
	return snap.Inserted, snap.Failed, nil
}

func (b *BulkInserter) insertBatch(
	ctx context.Context,
	kind md.ContentKind,
	batch []md.ContentItem,
) error {
	var lastErr error
	for attempt := 0; attempt < b.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := b.retry.Wait(ctx, attempt-1); err != nil {
				return err
			}
		}

		if lastErr = b.repo.InsertContentBatch(ctx, kind, batch); lastErr == nil {
			return nil
		}

		zap.L().Warn(
			"batch insert attempt failed",
			zap.String("kind", string(kind)),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	return lastErr
}
