package models

import "time"

// ContentKind selects the catalog table an item lives in and the path
// shape of its public stream URL.
type ContentKind string

const (
	KindLive   ContentKind = "live"
	KindMovie  ContentKind = "movie"
	KindSeries ContentKind = "series"
)

// Table returns the store table backing the kind.
func (k ContentKind) Table() string {
	switch k {
	case KindMovie:
		return "movies"
	case KindSeries:
		return "series"
	default:
		return "channels"
	}
}

// ContentItem is one playlist entry after classification. Items are
// immutable once written; a sync cycle replaces whole tables.
type ContentItem struct {
	ID         int64       `db:"id"          json:"id"`
	Seq        int         `db:"seq"         json:"seq"`
	Name       string      `db:"name"        json:"name"`
	Logo       string      `db:"logo"        json:"logo"`
	URL        string      `db:"url"         json:"url"`
	ProviderID string      `db:"provider_id" json:"providerId"`
	GroupTitle string      `db:"group_title" json:"groupTitle"`
	Country    string      `db:"country"     json:"country"`
	TvgID      string      `db:"tvg_id"      json:"tvgId"`
	Season     string      `db:"season"      json:"season"`
	Episode    string      `db:"episode"     json:"episode"`
	Kind       ContentKind `db:"-"           json:"kind"`
}

// SyncMeta is the single metadata row (fixed id) describing the last
// completed ingestion cycle.
type SyncMeta struct {
	ID            string    `db:"id"             json:"id"`
	LastSync      time.Time `db:"last_sync"      json:"lastSync"`
	TotalChannels int       `db:"total_channels" json:"totalChannels"`
	TotalMovies   int       `db:"total_movies"   json:"totalMovies"`
	TotalSeries   int       `db:"total_series"   json:"totalSeries"`
	FeedSizeBytes int64     `db:"feed_size"      json:"feedSizeBytes"`
	TemplatePath  string    `db:"template_path"  json:"templatePath"`
}
