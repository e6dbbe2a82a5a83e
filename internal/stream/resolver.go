package stream

import (
	"context"
	"errors"

	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

var ErrOriginNotFound = errors.New("origin url not found")

const defaultCacheSize = 200_000

type originRepo interface {
	GetOriginURL(ctx context.Context, kind md.ContentKind, providerID string) (string, error)
	ListOrigins(ctx context.Context, kind md.ContentKind) (map[string]string, error)
}

// Resolver maps (kind, provider id) pairs to upstream URLs with an LRU
// memo in front of the store.
type Resolver struct {
	repo  originRepo
	cache *lru.Cache[string, string]
}

func NewResolver(repo originRepo) *Resolver {
	cache, err := lru.New[string, string](defaultCacheSize)
	if err != nil {
		zap.L().Fatal("failed to create resolver cache", zap.Error(err))
	}

	return &Resolver{repo: repo, cache: cache}
}

func cacheKey(kind md.ContentKind, providerID string) string {
	return string(kind) + ":" + providerID
}

// Resolve returns the origin URL for a provider id, consulting the
// store only on a cache miss.
func (r *Resolver) Resolve(
	ctx context.Context,
	kind md.ContentKind,
	providerID string,
) (string, error) {
	const op = "stream.Resolve.resolver"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	key := cacheKey(kind, providerID)
	if url, ok := r.cache.Get(key); ok {
		return url, nil
	}

	url, err := r.repo.GetOriginURL(ctx, kind, providerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrOriginNotFound
		}
		return "", err
	}

	r.cache.Add(key, url)
	return url, nil
}

// Preload warms the memo from the store so the first wave of stream
// requests after startup does not fan out into point lookups.
func (r *Resolver) Preload(ctx context.Context) error {
	const op = "stream.Preload.resolver"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var total int
	for _, kind := range []md.ContentKind{md.KindLive, md.KindMovie, md.KindSeries} {
		origins, err := r.repo.ListOrigins(ctx, kind)
		if err != nil {
			return err
		}

		for providerID, url := range origins {
			r.cache.Add(cacheKey(kind, providerID), url)
		}
		total += len(origins)
	}

	zap.L().Info("resolver cache preloaded", zap.Int("entries", total))
	return nil
}

// Invalidate empties the memo, used after a sync cycle replaces the
// catalog.
func (r *Resolver) Invalidate() {
	r.cache.Purge()
}
