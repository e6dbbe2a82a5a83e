package dto

import "time"

// SyncSummary is the structured result of one ingestion cycle.
type SyncSummary struct {
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	Channels int `json:"channels"`
	Movies   int `json:"movies"`
	Series   int `json:"series"`

	Inserted int64 `json:"inserted"`
	Failed   int64 `json:"failed"`

	// Skipped is true when stored counts already matched the feed and
	// the write phase was bypassed entirely.
	Skipped bool `json:"skipped"`

	FeedSizeBytes int64  `json:"feedSizeBytes"`
	TemplatePath  string `json:"templatePath"`

	DownloadTime time.Duration `json:"downloadTime"`
	ParseTime    time.Duration `json:"parseTime"`
	InsertTime   time.Duration `json:"insertTime"`
}
