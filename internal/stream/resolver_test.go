package stream

import (
	"context"
	"errors"
	"testing"

	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOriginRepo struct {
	origins map[string]string
	lookups int
	listErr error
}

func (f *fakeOriginRepo) GetOriginURL(
	_ context.Context,
	kind md.ContentKind,
	providerID string,
) (string, error) {
	f.lookups++
	url, ok := f.origins[cacheKey(kind, providerID)]
	if !ok {
		return "", repo.ErrNotFound
	}
	return url, nil
}

func (f *fakeOriginRepo) ListOrigins(
	_ context.Context,
	kind md.ContentKind,
) (map[string]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	res := make(map[string]string)
	for key, url := range f.origins {
		if key[:len(kind)] == string(kind) {
			res[key[len(kind)+1:]] = url
		}
	}
	return res, nil
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run(
		"MissThenCacheHit", func(t *testing.T) {
			frepo := &fakeOriginRepo{
				origins: map[string]string{"live:1001": "http://o/u/p/1001"},
			}
			r := NewResolver(frepo)

			url, err := r.Resolve(ctx, md.KindLive, "1001")
			require.NoError(t, err)
			assert.Equal(t, "http://o/u/p/1001", url)
			assert.Equal(t, 1, frepo.lookups)

			// Second resolve is served from the memo.
			url, err = r.Resolve(ctx, md.KindLive, "1001")
			require.NoError(t, err)
			assert.Equal(t, "http://o/u/p/1001", url)
			assert.Equal(t, 1, frepo.lookups)
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			r := NewResolver(&fakeOriginRepo{origins: map[string]string{}})

			_, err := r.Resolve(ctx, md.KindMovie, "9999")
			assert.ErrorIs(t, err, ErrOriginNotFound)
		},
	)

	t.Run(
		"KindsDoNotCollide", func(t *testing.T) {
			frepo := &fakeOriginRepo{
				origins: map[string]string{
					"live:7":  "http://o/u/p/7",
					"movie:7": "http://o/movie/u/p/7.mkv",
				},
			}
			r := NewResolver(frepo)

			live, err := r.Resolve(ctx, md.KindLive, "7")
			require.NoError(t, err)
			movie, err := r.Resolve(ctx, md.KindMovie, "7")
			require.NoError(t, err)
			assert.NotEqual(t, live, movie)
		},
	)
}

func TestResolver_Preload(t *testing.T) {
	frepo := &fakeOriginRepo{
		origins: map[string]string{
			"live:1001":  "http://o/u/p/1001",
			"movie:2002": "http://o/movie/u/p/2002.mkv",
		},
	}
	r := NewResolver(frepo)
	require.NoError(t, r.Preload(context.Background()))

	// Preloaded entries resolve without touching the store.
	url, err := r.Resolve(context.Background(), md.KindMovie, "2002")
	require.NoError(t, err)
	assert.Equal(t, "http://o/movie/u/p/2002.mkv", url)
	assert.Zero(t, frepo.lookups)
}

func TestResolver_PreloadError(t *testing.T) {
	testErr := errors.New("testErr")
	r := NewResolver(&fakeOriginRepo{listErr: testErr})
	assert.ErrorIs(t, r.Preload(context.Background()), testErr)
}

func TestResolver_Invalidate(t *testing.T) {
	frepo := &fakeOriginRepo{
		origins: map[string]string{"live:1001": "http://o/u/p/1001"},
	}
	r := NewResolver(frepo)

	_, err := r.Resolve(context.Background(), md.KindLive, "1001")
	require.NoError(t, err)
	require.Equal(t, 1, frepo.lookups)

	r.Invalidate()

	_, err = r.Resolve(context.Background(), md.KindLive, "1001")
	require.NoError(t, err)
	assert.Equal(t, 2, frepo.lookups)
}
