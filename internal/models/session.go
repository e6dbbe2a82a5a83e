package models

import (
	"time"

	"github.com/google/uuid"
)

type DeviceType string

const (
	DeviceTV      DeviceType = "tv"
	DeviceMobile  DeviceType = "mobile"
	DeviceDesktop DeviceType = "desktop"
	DeviceUnknown DeviceType = "unknown"
)

// Session is one live device attached to an account. (user_id,
// fingerprint) is unique: reconnects from the same device refresh the
// existing row instead of creating a new one.
type Session struct {
	ID           uuid.UUID  `db:"id"            json:"id"`
	UserID       uuid.UUID  `db:"user_id"       json:"userId"`
	Fingerprint  string     `db:"fingerprint"   json:"fingerprint"`
	DeviceName   string     `db:"device_name"   json:"deviceName"`
	DeviceType   DeviceType `db:"device_type"   json:"deviceType"`
	IP           string     `db:"ip"            json:"ip"`
	UA           string     `db:"user_agent"    json:"ua"`
	LastActivity time.Time  `db:"last_activity" json:"lastActivity"`
	CreatedAt    time.Time  `db:"created_at"    json:"createdAt"`
}
