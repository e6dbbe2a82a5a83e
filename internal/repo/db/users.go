package db

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/JMURv/iptv-gateway/internal/dto"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/JMURv/iptv-gateway/internal/repo"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

func (r *Repository) ListUsers(
	ctx context.Context,
	page, size int,
	filters map[string]any,
) (*dto.PaginatedUserResponse, error) {
	const op = "users.ListUsers.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	query := sq.Select().From("users u").PlaceholderFormat(sq.Dollar)

	if isActive, ok := filters["is_active"].(bool); ok {
		query = query.Where(sq.Eq{"u.is_active": isActive})
	}

	if role, ok := filters["role"].(string); ok {
		query = query.Where(sq.Eq{"u.role": role})
	}

	countSQL, countArgs, err := query.Columns("COUNT(u.id)").ToSql()
	if err != nil {
		zap.L().Error("failed to build count query", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	var count int64
	if err = r.conn.GetContext(ctx, &count, countSQL, countArgs...); err != nil {
		return nil, err
	}

	dataSQL, dataArgs, err := query.
		Columns(
			"u.id",
			"u.username",
			"u.max_connections",
			"u.is_active",
			"u.role",
			"u.expires_at",
			"u.created_at",
			"u.updated_at",
			"(SELECT COUNT(*) FROM sessions s WHERE s.user_id = u.id) AS active_devices",
		).
		OrderBy("u.created_at DESC").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size)).
		ToSql()
	if err != nil {
		zap.L().Error("failed to build data query", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	users := make([]*md.User, 0, size)
	if err = r.conn.SelectContext(ctx, &users, dataSQL, dataArgs...); err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(count) / float64(size)))
	return &dto.PaginatedUserResponse{
		Data:        users,
		Count:       count,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: page < totalPages,
	}, nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByIDQ, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*md.User, error) {
	const op = "users.GetUserByUsername.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByUsernameQ, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

func (r *Repository) CreateUser(
	ctx context.Context,
	req *dto.CreateUserRequest,
) (uuid.UUID, error) {
	const op = "users.CreateUser.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var id uuid.UUID
	err := r.conn.QueryRowxContext(
		ctx,
		userCreateQ,
		req.Username,
		req.Password,
		req.MaxConnections,
		true,
		req.Role,
		req.ExpiresAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return uuid.Nil, repo.ErrAlreadyExists
		}
		return uuid.Nil, err
	}

	return id, nil
}

func (r *Repository) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	req *dto.UpdateUserRequest,
) error {
	const op = "users.UpdateUser.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	query := sq.Update("users").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})

	if req.Password != nil {
		query = query.Set("password_hash", *req.Password)
	}
	if req.MaxConnections != nil {
		query = query.Set("max_connections", *req.MaxConnections)
	}
	if req.IsActive != nil {
		query = query.Set("is_active", *req.IsActive)
	}
	if req.Role != nil {
		query = query.Set("role", *req.Role)
	}
	if req.ExpiresAt != nil {
		query = query.Set("expires_at", *req.ExpiresAt)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		zap.L().Error("failed to build update query", zap.String("op", op), zap.Error(err))
		return err
	}

	res, err := r.conn.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if aff, _ := res.RowsAffected(); aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	const op = "users.DeleteUser.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, userDeleteQ, userID)
	if err != nil {
		return err
	}

	if aff, _ := res.RowsAffected(); aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}
