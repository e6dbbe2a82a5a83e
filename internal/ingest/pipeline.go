package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JMURv/iptv-gateway/internal/config"
	"github.com/JMURv/iptv-gateway/internal/dto"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/playlist"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

var (
	ErrNoSourceURL = errors.New("no feed source url configured")
	ErrEmptyFeed   = errors.New("feed parsed to zero entries")
)

type catalogRepo interface {
	batchWriter
	Ping(ctx context.Context) error
	CountContent(ctx context.Context, kind md.ContentKind) (int, error)
	PurgeContent(ctx context.Context, kind md.ContentKind) error
	UpsertSyncMeta(ctx context.Context, meta *md.SyncMeta) error
}

type templatePublisher interface {
	Publish(content string) (string, error)
}

// Pipeline runs one full ingestion cycle: download the provider feed,
// classify it, replace the catalog tables, publish the playlist
// template and record the cycle's metadata.
type Pipeline struct {
	conf     config.SyncConfig
	repo     catalogRepo
	template templatePublisher
	client   *http.Client
	onBatch  ProgressFunc
}

func New(
	conf config.SyncConfig,
	repo catalogRepo,
	template templatePublisher,
	onBatch ProgressFunc,
) *Pipeline {
	return &Pipeline{
		conf:     conf,
		repo:     repo,
		template: template,
		client:   &http.Client{Timeout: conf.DownloadTimeout},
		onBatch:  onBatch,
	}
}

// Run executes a cycle. Download failure, a feed that yields no
// entries (a provider error page behind a 200) or an unreachable store
// all abort before anything is written; a matching count-diff skips
// the write phase but still refreshes the template and metadata row.
func (p *Pipeline) Run(ctx context.Context) (*dto.SyncSummary, error) {
	const op = "ingest.Run.pipeline"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	summary := &dto.SyncSummary{StartedAt: time.Now()}

	feed, err := p.download(ctx)
	if err != nil {
		return nil, err
	}
	summary.FeedSizeBytes = int64(len(feed))
	summary.DownloadTime = time.Since(summary.StartedAt)

	parseStart := time.Now()
	classified := p.classify(feed)
	summary.ParseTime = time.Since(parseStart)
	summary.Channels = len(classified[md.KindLive])
	summary.Movies = len(classified[md.KindMovie])
	summary.Series = len(classified[md.KindSeries])

	if summary.Channels+summary.Movies+summary.Series == 0 {
		return nil, fmt.Errorf(
			"%w: %d bytes downloaded, keeping the previous catalog",
			ErrEmptyFeed, summary.FeedSizeBytes,
		)
	}

	if err = p.repo.Ping(ctx); err != nil {
		return nil, fmt.Errorf("store unreachable, aborting sync: %w", err)
	}

	stale, err := p.staleKinds(ctx, classified)
	if err != nil {
		return nil, err
	}

	if len(stale) == 0 {
		zap.L().Info("catalog counts unchanged, skipping write phase")
		summary.Skipped = true
	} else {
		insertStart := time.Now()
		if err = p.replaceCatalog(ctx, stale, classified, summary); err != nil {
			return nil, err
		}
		summary.InsertTime = time.Since(insertStart)
	}

	path, err := p.template.Publish(feed)
	if err != nil {
		return nil, err
	}
	summary.TemplatePath = path

	summary.FinishedAt = time.Now()
	if err = p.repo.UpsertSyncMeta(ctx, &md.SyncMeta{
		ID:            config.SyncMetadataID,
		LastSync:      summary.FinishedAt,
		TotalChannels: summary.Channels,
		TotalMovies:   summary.Movies,
		TotalSeries:   summary.Series,
		FeedSizeBytes: summary.FeedSizeBytes,
		TemplatePath:  path,
	}); err != nil {
		return nil, err
	}

	zap.L().Info(
		"sync cycle finished",
		zap.Int("channels", summary.Channels),
		zap.Int("movies", summary.Movies),
		zap.Int("series", summary.Series),
		zap.Int64("inserted", summary.Inserted),
		zap.Int64("failed", summary.Failed),
		zap.Bool("skipped", summary.Skipped),
		zap.Duration("took", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

func (p *Pipeline) download(ctx context.Context) (string, error) {
	const op = "ingest.download.pipeline"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if p.conf.SourceURL == "" {
		return "", ErrNoSourceURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.conf.SourceURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("feed source returned %d", resp.StatusCode)
	}

	bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read feed body: %w", err)
	}

	return string(bytes), nil
}

// classify splits parsed entries into per-class item slices with
// 1-based sequence numbers inside each class.
func (p *Pipeline) classify(feed string) map[md.ContentKind][]md.ContentItem {
	res := map[md.ContentKind][]md.ContentItem{
		md.KindLive:   nil,
		md.KindMovie:  nil,
		md.KindSeries: nil,
	}

	for _, e := range playlist.Parse(feed) {
		kind := playlist.DetectKind(e.URL, e.Name)
		res[kind] = append(res[kind], playlist.BuildItem(e, len(res[kind])+1, kind))
	}

	return res
}

// staleKinds reports which classes need their table rewritten: the
// stored row count differs from the feed's. A class the feed came back
// empty for is never marked stale, so its previous rows survive a feed
// that silently dropped a whole class.
func (p *Pipeline) staleKinds(
	ctx context.Context,
	classified map[md.ContentKind][]md.ContentItem,
) ([]md.ContentKind, error) {
	stale := make([]md.ContentKind, 0, len(classified))
	for _, kind := range []md.ContentKind{md.KindLive, md.KindMovie, md.KindSeries} {
		items := classified[kind]
		if len(items) == 0 {
			continue
		}

		stored, err := p.repo.CountContent(ctx, kind)
		if err != nil {
			return nil, err
		}
		if stored != len(items) {
			stale = append(stale, kind)
		}
	}

	return stale, nil
}

func (p *Pipeline) replaceCatalog(
	ctx context.Context,
	stale []md.ContentKind,
	classified map[md.ContentKind][]md.ContentItem,
	summary *dto.SyncSummary,
) error {
	inserter := NewBulkInserter(
		p.repo,
		p.conf.BatchSize,
		p.conf.Workers,
		DefaultRetryPolicy(p.conf.MaxRetries),
		p.onBatch,
	)

	for _, kind := range stale {
		if err := p.repo.PurgeContent(ctx, kind); err != nil {
			return err
		}

		inserted, failed, err := inserter.Insert(ctx, kind, classified[kind])
		if err != nil {
			return err
		}

		summary.Inserted += int64(inserted)
		summary.Failed += int64(failed)
	}

	return nil
}
