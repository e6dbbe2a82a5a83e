package playlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		exp  string
	}{
		{
			name: "Series",
			in:   "http://origin.example.com/series/user1/pass1/3003.mp4",
			exp:  "{{DOMAIN}}/series/{{USERNAME}}/{{PASSWORD}}/3003.mp4",
		},
		{
			name: "Movie",
			in:   "http://origin.example.com/movie/user1/pass1/2002.mkv",
			exp:  "{{DOMAIN}}/movie/{{USERNAME}}/{{PASSWORD}}/2002.mkv",
		},
		{
			name: "Live",
			in:   "http://origin.example.com/user1/pass1/1001",
			exp:  "{{DOMAIN}}/{{USERNAME}}/{{PASSWORD}}/1001",
		},
		{
			name: "HTTPS",
			in:   "https://origin.example.com/user1/pass1/1001",
			exp:  "{{DOMAIN}}/{{USERNAME}}/{{PASSWORD}}/1001",
		},
		{
			name: "MetadataPassthrough",
			in:   `#EXTINF:-1 group-title="US|SPORTS",US| ESPN HD`,
			exp:  `#EXTINF:-1 group-title="US|SPORTS",US| ESPN HD`,
		},
		{
			name: "ForeignShapePassthrough",
			in:   "http://origin.example.com/some/other/deep/path/file.ts",
			exp:  "http://origin.example.com/some/other/deep/path/file.ts",
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				assert.Equal(t, tt.exp, RewriteLine(tt.in))
			},
		)
	}
}

func TestPublishAndGenerate(t *testing.T) {
	dir := t.TempDir()
	cache := NewTemplateCache(dir)

	path, err := cache.Publish(sampleFeed)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, templateFileName), path)

	// Durable copy holds placeholders, not credentials.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "{{DOMAIN}}/{{USERNAME}}/{{PASSWORD}}/1001")
	assert.NotContains(t, string(raw), "origin.example.com/user1")

	out := cache.Generate("http://gw.example.com", "alice", "s3cret")
	assert.Contains(t, out, "http://gw.example.com/alice/s3cret/1001")
	assert.Contains(t, out, "http://gw.example.com/movie/alice/s3cret/2002.mkv")
	assert.Contains(t, out, "http://gw.example.com/series/alice/s3cret/3003.mp4")
	assert.False(t, strings.Contains(out, "{{"))
}

func TestGenerate_ReloadsFromDisk(t *testing.T) {
	dir := t.TempDir()

	published := NewTemplateCache(dir)
	_, err := published.Publish(sampleFeed)
	require.NoError(t, err)

	// Fresh cache instance with an empty snapshot, same directory.
	fresh := NewTemplateCache(dir)
	out := fresh.Generate("http://gw.example.com", "bob", "pw")
	assert.Contains(t, out, "http://gw.example.com/bob/pw/1001")
}

func TestGenerate_FallbackWhenNeverPublished(t *testing.T) {
	cache := NewTemplateCache(t.TempDir())

	out := cache.Generate("http://gw.example.com", "bob", "pw")
	assert.Contains(t, out, "#EXTM3U")
	assert.Contains(t, out, "No catalog synced yet")
	assert.Contains(t, out, "http://gw.example.com/bob/pw/0")
}
