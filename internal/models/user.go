package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uuid.UUID  `db:"id"              json:"id"`
	Username       string     `db:"username"        json:"username"`
	Password       string     `db:"password_hash"   json:"-"`
	MaxConnections int        `db:"max_connections" json:"maxConnections"`
	IsActive       bool       `db:"is_active"       json:"isActive"`
	Role           string     `db:"role"            json:"role"`
	ExpiresAt      *time.Time `db:"expires_at"      json:"expiresAt"`
	CreatedAt      time.Time  `db:"created_at"      json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at"      json:"updatedAt"`

	ActiveDevices int `db:"active_devices" json:"activeDevices"`
}

// IsExpired reports whether the subscription lapsed. A nil ExpiresAt
// means the account never expires.
func (u *User) IsExpired() bool {
	return u.ExpiresAt != nil && time.Now().After(*u.ExpiresAt)
}
