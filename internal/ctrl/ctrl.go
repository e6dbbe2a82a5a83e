package ctrl

import (
	"context"
	"time"

	"github.com/JMURv/iptv-gateway/internal/auth"
	"github.com/JMURv/iptv-gateway/internal/auth/jwt"
	"github.com/JMURv/iptv-gateway/internal/dto"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/google/uuid"
)

type AppCtrl interface {
	ListUsers(ctx context.Context, page, size int, filters map[string]any) (*dto.PaginatedUserResponse, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (uuid.UUID, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	ValidateCredentials(ctx context.Context, username, password string) (*dto.AuthResult, error)
	Authenticate(ctx context.Context, req *dto.CredentialsRequest) (*dto.TokenResponse, error)

	Admit(ctx context.Context, userID uuid.UUID, maxConnections int, d *dto.DeviceRequest) (*dto.AdmitResult, error)
	ListDevices(ctx context.Context, userID uuid.UUID) ([]md.Session, error)
	ListAllSessions(ctx context.Context, limit int) ([]md.Session, error)
	Disconnect(ctx context.Context, userID uuid.UUID, fingerprint string) error
	DisconnectAll(ctx context.Context, userID uuid.UUID) (int64, error)
	SweepIdle(ctx context.Context, timeout time.Duration) (int64, error)

	TriggerSync(ctx context.Context) (*dto.SyncSummary, error)
	ReloadTemplate(ctx context.Context) error
	GeneratePlaylist(username, password string) string
	ResolveStream(ctx context.Context, kind md.ContentKind, providerID string) (string, error)
	GetSyncMeta(ctx context.Context) (*md.SyncMeta, error)
	SystemStats(ctx context.Context) (*dto.SystemStatsResponse, error)
}

type AppRepo interface {
	Ping(ctx context.Context) error

	ListUsers(ctx context.Context, page, size int, filters map[string]any) (*dto.PaginatedUserResponse, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error)
	GetUserByUsername(ctx context.Context, username string) (*md.User, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (uuid.UUID, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	GetSessionByFingerprint(ctx context.Context, userID uuid.UUID, fingerprint string) (*md.Session, error)
	TouchSession(ctx context.Context, id uuid.UUID, ip, ua string) error
	CountSessions(ctx context.Context, userID uuid.UUID) (int, error)
	CreateSession(ctx context.Context, s *md.Session) (uuid.UUID, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]md.Session, error)
	ListAllSessions(ctx context.Context, limit int) ([]md.Session, error)
	CountAllSessions(ctx context.Context) (int, error)
	DeleteSession(ctx context.Context, userID uuid.UUID, fingerprint string) error
	DeleteAllSessions(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteIdleSessions(ctx context.Context, olderThan time.Time) (int64, error)

	CountContent(ctx context.Context, kind md.ContentKind) (int, error)
	GetSyncMeta(ctx context.Context) (*md.SyncMeta, error)
}

type CacheService interface {
	GetToStruct(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, t time.Duration, key string, val any)
	Delete(ctx context.Context, key string)
	InvalidateKeysByPattern(ctx context.Context, pattern string)
	Close() error
}

type syncPipeline interface {
	Run(ctx context.Context) (*dto.SyncSummary, error)
}

type templateCache interface {
	Generate(domain, username, password string) string
	Reload() error
	Path() string
}

type streamResolver interface {
	Resolve(ctx context.Context, kind md.ContentKind, providerID string) (string, error)
	Preload(ctx context.Context) error
	Invalidate()
}

// Notifier delivers the post-cycle sync report. Implementations must
// tolerate being called with a nil summary when the cycle failed early.
type Notifier interface {
	SendSyncReport(summary *dto.SyncSummary, runErr error) error
}

type TemplateArchive interface {
	UploadTemplate(ctx context.Context, path string) error
}

type Controller struct {
	repo     AppRepo
	cache    CacheService
	auth     *auth.Core
	jwt      *jwt.Core
	pipeline syncPipeline
	template templateCache
	resolver streamResolver
	notify   Notifier
	archive  TemplateArchive

	publicDomain string
}

// New wires the controller. notify and archive may be nil when email
// reporting or object-storage archiving is disabled.
func New(
	repo AppRepo,
	cache CacheService,
	au *auth.Core,
	jwtCore *jwt.Core,
	pipeline syncPipeline,
	template templateCache,
	resolver streamResolver,
	notify Notifier,
	archive TemplateArchive,
	publicDomain string,
) *Controller {
	return &Controller{
		repo:         repo,
		cache:        cache,
		auth:         au,
		jwt:          jwtCore,
		pipeline:     pipeline,
		template:     template,
		resolver:     resolver,
		notify:       notify,
		archive:      archive,
		publicDomain: publicDomain,
	}
}
