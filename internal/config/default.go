package config

import "time"

type ctxKey string

const (
	UidKey    ctxKey = "uid"
	RoleKey   ctxKey = "role"
	DeviceKey ctxKey = "device"
)

const (
	DefaultPage      = 1
	DefaultSize      = 40
	DefaultCacheTime = time.Hour
)

const (
	AccessCookieName    = "access"
	AccessTokenDuration = time.Hour * 12
)

// Ingestion tunables that are not worth an env knob.
const (
	DeleteBatchLimit  = 5000
	MaxDeleteAttempts = 100
	DeleteBatchSleep  = 100 * time.Millisecond
)

const SyncMetadataID = "iptv_sync"

const DefaultLogoURL = "https://via.placeholder.com/150"
