package ctrl

import (
	"context"
	"errors"
	"fmt"

	"github.com/JMURv/iptv-gateway/internal/auth"
	"github.com/JMURv/iptv-gateway/internal/config"
	"github.com/JMURv/iptv-gateway/internal/dto"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const (
	userCacheKey     = "user:%v"
	userListCacheKey = "users-page-%v-size-%v-filters-%v"
	userInvalidate   = "user*"
)

func (c *Controller) ListUsers(
	ctx context.Context,
	page, size int,
	filters map[string]any,
) (*dto.PaginatedUserResponse, error) {
	const op = "users.ListUsers.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cached := &dto.PaginatedUserResponse{}
	key := fmt.Sprintf(userListCacheKey, page, size, filters)
	if err := c.cache.GetToStruct(ctx, key, cached); err == nil {
		return cached, nil
	}

	res, err := c.repo.ListUsers(ctx, page, size, filters)
	if err != nil {
		zap.L().Debug("failed to list users", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	c.cache.Set(ctx, config.DefaultCacheTime, key, res)
	return res, nil
}

func (c *Controller) GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cached := &md.User{}
	key := fmt.Sprintf(userCacheKey, userID)
	if err := c.cache.GetToStruct(ctx, key, cached); err == nil {
		return cached, nil
	}

	res, err := c.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		zap.L().Debug("failed to get user", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	c.cache.Set(ctx, config.DefaultCacheTime, key, res)
	return res, nil
}

func (c *Controller) CreateUser(
	ctx context.Context,
	req *dto.CreateUserRequest,
) (uuid.UUID, error) {
	const op = "users.CreateUser.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	hash, err := c.auth.Hash(req.Password)
	if err != nil {
		zap.L().Error("failed to hash password", zap.String("op", op), zap.Error(err))
		return uuid.Nil, ErrInternalError
	}
	req.Password = hash

	if req.MaxConnections == 0 {
		req.MaxConnections = 1
	}
	if req.Role == "" {
		req.Role = md.RoleUser
	}

	id, err := c.repo.CreateUser(ctx, req)
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return uuid.Nil, ErrAlreadyExists
		}
		zap.L().Debug("failed to create user", zap.String("op", op), zap.Error(err))
		return uuid.Nil, err
	}

	c.cache.InvalidateKeysByPattern(ctx, userInvalidate)
	return id, nil
}

func (c *Controller) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	req *dto.UpdateUserRequest,
) error {
	const op = "users.UpdateUser.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if req.Password != nil {
		hash, err := c.auth.Hash(*req.Password)
		if err != nil {
			zap.L().Error("failed to hash password", zap.String("op", op), zap.Error(err))
			return ErrInternalError
		}
		req.Password = &hash
	}

	if err := c.repo.UpdateUser(ctx, id, req); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		zap.L().Debug("failed to update user", zap.String("op", op), zap.Error(err))
		return err
	}

	c.cache.Delete(ctx, fmt.Sprintf(userCacheKey, id))
	c.cache.InvalidateKeysByPattern(ctx, userInvalidate)
	return nil
}

// DeleteUser removes the account; its sessions go with it via the
// store's cascade.
func (c *Controller) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	const op = "users.DeleteUser.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if err := c.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		zap.L().Debug("failed to delete user", zap.String("op", op), zap.Error(err))
		return err
	}

	c.cache.Delete(ctx, fmt.Sprintf(userCacheKey, userID))
	c.cache.InvalidateKeysByPattern(ctx, userInvalidate)
	return nil
}

// ValidateCredentials checks a subscriber's identity and account state.
// Unknown user and wrong password both map to an invalid identity;
// disabled or expired accounts are valid identities that cannot
// connect, each with its own message.
func (c *Controller) ValidateCredentials(
	ctx context.Context,
	username, password string,
) (*dto.AuthResult, error) {
	const op = "users.ValidateCredentials.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	invalid := &dto.AuthResult{Valid: false, Message: "Invalid username or password"}

	usr, err := c.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return invalid, nil
		}
		zap.L().Debug("failed to get user", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	if err = c.auth.ComparePasswords([]byte(usr.Password), []byte(password)); err != nil {
		return invalid, nil
	}

	if !usr.IsActive {
		return &dto.AuthResult{
			Valid:   true,
			Message: "Account is disabled",
			UserID:  usr.ID,
		}, nil
	}

	if usr.IsExpired() {
		return &dto.AuthResult{
			Valid:   true,
			Message: "Subscription has expired",
			UserID:  usr.ID,
		}, nil
	}

	count, err := c.repo.CountSessions(ctx, usr.ID)
	if err != nil {
		zap.L().Debug("failed to count sessions", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return &dto.AuthResult{
		Valid:          true,
		CanConnect:     true,
		UserID:         usr.ID,
		CurrentDevices: count,
		MaxDevices:     usr.MaxConnections,
	}, nil
}

// Authenticate verifies a login and issues the access token.
func (c *Controller) Authenticate(
	ctx context.Context,
	req *dto.CredentialsRequest,
) (*dto.TokenResponse, error) {
	const op = "users.Authenticate.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	usr, err := c.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		zap.L().Debug("failed to get user", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	if err = c.auth.ComparePasswords([]byte(usr.Password), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	if !usr.IsActive {
		return nil, auth.ErrAccountDisabled
	}
	if usr.IsExpired() {
		return nil, auth.ErrAccountExpired
	}

	access, err := c.jwt.NewToken(ctx, usr.ID, usr.Role, config.AccessTokenDuration)
	if err != nil {
		zap.L().Error("failed to create token", zap.String("op", op), zap.Error(err))
		return nil, ErrInternalError
	}

	return &dto.TokenResponse{Access: access, Role: usr.Role}, nil
}
