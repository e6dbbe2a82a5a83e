package dto

import (
	"time"

	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/google/uuid"
)

type PaginatedUserResponse struct {
	Data        []*md.User `json:"data"`
	Count       int64      `json:"count"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	HasNextPage bool       `json:"hasNextPage"`
}

type CreateUserRequest struct {
	Username       string     `json:"username"       validate:"required,min=3,max=50"`
	Password       string     `json:"password"       validate:"required,min=6"`
	MaxConnections int        `json:"maxConnections" validate:"omitempty,gte=1,lte=10"`
	Role           string     `json:"role"           validate:"omitempty,oneof=user admin"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

type UpdateUserRequest struct {
	Password       *string    `json:"password"       validate:"omitempty,min=6"`
	MaxConnections *int       `json:"maxConnections" validate:"omitempty,gte=1,lte=10"`
	IsActive       *bool      `json:"isActive"`
	Role           *string    `json:"role"           validate:"omitempty,oneof=user admin"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

type CreateUserResponse struct {
	ID uuid.UUID `json:"id"`
}

type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Access string `json:"access"`
	Role   string `json:"role"`
}

// AuthResult distinguishes "identity invalid" (Valid=false) from
// "identity valid but blocked" (Valid=true, CanConnect=false) so the
// edge can answer with an account-status message instead of a generic
// auth failure.
type AuthResult struct {
	Valid          bool      `json:"valid"`
	CanConnect     bool      `json:"canConnect"`
	Message        string    `json:"message"`
	UserID         uuid.UUID `json:"userId,omitempty"`
	CurrentDevices int       `json:"currentDevices"`
	MaxDevices     int       `json:"maxDevices"`
}

type SystemStatsResponse struct {
	TotalUsers    int `json:"totalUsers"`
	ActiveUsers   int `json:"activeUsers"`
	TotalSessions int `json:"totalSessions"`
	TotalChannels int `json:"totalChannels"`
	TotalMovies   int `json:"totalMovies"`
	TotalSeries   int `json:"totalSeries"`
}
