package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/JMURv/iptv-gateway/internal/config"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = "#EXTM3U\n" +
	`#EXTINF:-1 group-title="US|SPORTS",US| ESPN HD` + "\n" +
	"http://origin.example.com/u/p/1001\n" +
	`#EXTINF:-1 group-title="VOD",Heat (1995)` + "\n" +
	"http://origin.example.com/movie/u/p/2002.mkv\n" +
	`#EXTINF:-1 group-title="SERIES",Dark S1 E1` + "\n" +
	"http://origin.example.com/series/u/p/3003.mp4\n"

type fakeCatalog struct {
	mu       sync.Mutex
	counts   map[md.ContentKind]int
	purged   []md.ContentKind
	inserted map[md.ContentKind]int
	meta     *md.SyncMeta
	pingErr  error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		counts:   map[md.ContentKind]int{},
		inserted: map[md.ContentKind]int{},
	}
}

func (f *fakeCatalog) Ping(context.Context) error { return f.pingErr }

func (f *fakeCatalog) CountContent(_ context.Context, kind md.ContentKind) (int, error) {
	return f.counts[kind], nil
}

func (f *fakeCatalog) PurgeContent(_ context.Context, kind md.ContentKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purged = append(f.purged, kind)
	return nil
}

func (f *fakeCatalog) InsertContentBatch(
	_ context.Context,
	kind md.ContentKind,
	items []md.ContentItem,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted[kind] += len(items)
	return nil
}

func (f *fakeCatalog) UpsertSyncMeta(_ context.Context, meta *md.SyncMeta) error {
	f.meta = meta
	return nil
}

type fakePublisher struct {
	published string
	err       error
}

func (f *fakePublisher) Publish(content string) (string, error) {
	f.published = content
	return "data/m3u/template.m3u", f.err
}

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte(body))
			},
		),
	)
}

func testSyncConf(url string) config.SyncConfig {
	return config.SyncConfig{
		SourceURL:  url,
		BatchSize:  2,
		Workers:    2,
		MaxRetries: 1,
	}
}

func TestPipeline_Run(t *testing.T) {
	srv := feedServer(t, http.StatusOK, testFeed)
	defer srv.Close()

	repo := newFakeCatalog()
	pub := &fakePublisher{}
	p := New(testSyncConf(srv.URL), repo, pub, nil)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Channels)
	assert.Equal(t, 1, summary.Movies)
	assert.Equal(t, 1, summary.Series)
	assert.EqualValues(t, 3, summary.Inserted)
	assert.Zero(t, summary.Failed)
	assert.False(t, summary.Skipped)
	assert.EqualValues(t, len(testFeed), summary.FeedSizeBytes)

	assert.ElementsMatch(
		t, []md.ContentKind{md.KindLive, md.KindMovie, md.KindSeries}, repo.purged,
	)

	require.NotNil(t, repo.meta)
	assert.Equal(t, config.SyncMetadataID, repo.meta.ID)
	assert.Equal(t, 1, repo.meta.TotalChannels)
	assert.Equal(t, "data/m3u/template.m3u", repo.meta.TemplatePath)
	assert.Equal(t, testFeed, pub.published)
}

func TestPipeline_SkipsWriteWhenCountsMatch(t *testing.T) {
	srv := feedServer(t, http.StatusOK, testFeed)
	defer srv.Close()

	repo := newFakeCatalog()
	repo.counts[md.KindLive] = 1
	repo.counts[md.KindMovie] = 1
	repo.counts[md.KindSeries] = 1

	pub := &fakePublisher{}
	p := New(testSyncConf(srv.URL), repo, pub, nil)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Skipped)
	assert.Zero(t, summary.Inserted)
	assert.Empty(t, repo.purged)
	assert.Empty(t, repo.inserted)

	// The template and metadata row are still refreshed.
	assert.Equal(t, testFeed, pub.published)
	require.NotNil(t, repo.meta)
}

func TestPipeline_AbortsOnMalformedFeed(t *testing.T) {
	// A provider error page behind a 200 parses to zero entries and must
	// leave the stored catalog and the published template untouched.
	srv := feedServer(t, http.StatusOK, "<html>upstream error page</html>")
	defer srv.Close()

	repo := newFakeCatalog()
	repo.counts[md.KindLive] = 500
	repo.counts[md.KindMovie] = 200

	pub := &fakePublisher{}
	p := New(testSyncConf(srv.URL), repo, pub, nil)

	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, ErrEmptyFeed)
	assert.Empty(t, repo.purged)
	assert.Empty(t, repo.inserted)
	assert.Empty(t, pub.published)
	assert.Nil(t, repo.meta)
}

func TestPipeline_RewritesOnlyStaleKinds(t *testing.T) {
	srv := feedServer(t, http.StatusOK, testFeed)
	defer srv.Close()

	// Live and series already match the feed; only movie is stale.
	repo := newFakeCatalog()
	repo.counts[md.KindLive] = 1
	repo.counts[md.KindMovie] = 7
	repo.counts[md.KindSeries] = 1

	pub := &fakePublisher{}
	p := New(testSyncConf(srv.URL), repo, pub, nil)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, summary.Skipped)
	assert.EqualValues(t, 1, summary.Inserted)
	assert.Equal(t, []md.ContentKind{md.KindMovie}, repo.purged)
	assert.Equal(t, 1, repo.inserted[md.KindMovie])
	assert.Zero(t, repo.inserted[md.KindLive])
	assert.Zero(t, repo.inserted[md.KindSeries])
}

func TestPipeline_KeepsClassMissingFromFeed(t *testing.T) {
	// The feed lost its movie and series sections entirely; the stored
	// movie rows must survive while live is still rewritten.
	liveOnly := "#EXTM3U\n" +
		`#EXTINF:-1 group-title="US|SPORTS",US| ESPN HD` + "\n" +
		"http://origin.example.com/u/p/1001\n"

	srv := feedServer(t, http.StatusOK, liveOnly)
	defer srv.Close()

	repo := newFakeCatalog()
	repo.counts[md.KindMovie] = 5

	pub := &fakePublisher{}
	p := New(testSyncConf(srv.URL), repo, pub, nil)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []md.ContentKind{md.KindLive}, repo.purged)
	assert.Zero(t, repo.inserted[md.KindMovie])
	assert.EqualValues(t, 1, summary.Inserted)
}

func TestPipeline_AbortsOnBadFeedStatus(t *testing.T) {
	srv := feedServer(t, http.StatusBadGateway, "nope")
	defer srv.Close()

	repo := newFakeCatalog()
	pub := &fakePublisher{}
	p := New(testSyncConf(srv.URL), repo, pub, nil)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, pub.published)
	assert.Nil(t, repo.meta)
}

func TestPipeline_AbortsWhenStoreUnreachable(t *testing.T) {
	srv := feedServer(t, http.StatusOK, testFeed)
	defer srv.Close()

	repo := newFakeCatalog()
	repo.pingErr = errors.New("connection refused")

	pub := &fakePublisher{}
	p := New(testSyncConf(srv.URL), repo, pub, nil)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, repo.purged)
	assert.Empty(t, pub.published)
}

func TestPipeline_NoSourceURL(t *testing.T) {
	p := New(config.SyncConfig{}, newFakeCatalog(), &fakePublisher{}, nil)

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoSourceURL)
}
