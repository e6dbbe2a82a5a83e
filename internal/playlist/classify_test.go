package playlist

import (
	"testing"

	"github.com/JMURv/iptv-gateway/internal/config"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		url  string
		item string
		exp  md.ContentKind
	}{
		{
			name: "LivePlainURL",
			url:  "http://origin.example.com/user/pass/1001",
			item: "US| ESPN HD",
			exp:  md.KindLive,
		},
		{
			name: "MoviePathMarker",
			url:  "http://origin.example.com/movie/user/pass/2002.mkv",
			item: "Heat (1995)",
			exp:  md.KindMovie,
		},
		{
			name: "SeriesPathMarker",
			url:  "http://origin.example.com/series/user/pass/3003.mp4",
			item: "Breaking Point",
			exp:  md.KindSeries,
		},
		{
			name: "SeriesByNamePattern",
			url:  "http://origin.example.com/movie/user/pass/4004.mkv",
			item: "KING AND CONQUEROR S1 E7",
			exp:  md.KindSeries,
		},
		{
			name: "SeriesNameCompact",
			url:  "http://origin.example.com/user/pass/5005",
			item: "Dark s03e11",
			exp:  md.KindSeries,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				assert.Equal(t, tt.exp, DetectKind(tt.url, tt.item))
			},
		)
	}
}

func TestSeasonEpisode(t *testing.T) {
	s, e := SeasonEpisode("KING AND CONQUEROR S1 E7")
	assert.Equal(t, "01", s)
	assert.Equal(t, "07", e)

	s, e = SeasonEpisode("Dark S03E11")
	assert.Equal(t, "03", s)
	assert.Equal(t, "11", e)

	s, e = SeasonEpisode("No episode markers here")
	assert.Empty(t, s)
	assert.Empty(t, e)
}

func TestCountry(t *testing.T) {
	assert.Equal(t, "ES", Country("ES|DEPORTES"))
	assert.Equal(t, "AR", Country("|AR| PELICULAS"))
	assert.Equal(t, "US", Country(" US | NEWS"))
	assert.Empty(t, Country("SPORTS"))
	assert.Empty(t, Country(""))
}

func TestProviderID(t *testing.T) {
	assert.Equal(t, "1001", ProviderID("http://origin.example.com/user/pass/1001"))
	assert.Equal(t, "2002", ProviderID("http://origin.example.com/movie/u/p/2002.mkv"))
	assert.Equal(t, "3003", ProviderID("http://origin.example.com/series/u/p/3003.mp4/"))
}

func TestBuildItem(t *testing.T) {
	e := Entry{
		Name:  "Breaking Point S2 E5",
		Group: "UK|SERIES",
		TvgID: "bp.uk",
		URL:   "http://origin.example.com/series/u/p/3003.mp4",
	}

	item := BuildItem(e, 12, md.KindSeries)
	assert.Equal(t, 12, item.Seq)
	assert.Equal(t, "3003", item.ProviderID)
	assert.Equal(t, "UK", item.Country)
	assert.Equal(t, "02", item.Season)
	assert.Equal(t, "05", item.Episode)
	assert.Equal(t, config.DefaultLogoURL, item.Logo)
	assert.Equal(t, md.KindSeries, item.Kind)
}
