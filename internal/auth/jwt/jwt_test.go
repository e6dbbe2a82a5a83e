package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/JMURv/iptv-gateway/internal/config"
	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCore(secret string) *Core {
	conf := config.Config{}
	conf.Auth.JWT.Secret = secret
	conf.Auth.JWT.Issuer = "iptv-gateway"
	return New(conf)
}

func TestCore_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	core := testCore("test-secret")
	uid := uuid.New()

	token, err := core.NewToken(ctx, uid, md.RoleAdmin, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := core.ParseClaims(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uid, claims.UID)
	assert.Equal(t, md.RoleAdmin, claims.Role)
	assert.Equal(t, "iptv-gateway", claims.Issuer)
}

func TestCore_ParseClaims(t *testing.T) {
	ctx := context.Background()
	core := testCore("test-secret")

	t.Run(
		"Garbage", func(t *testing.T) {
			_, err := core.ParseClaims(ctx, "not.a.token")
			assert.ErrorIs(t, err, ErrInvalidToken)
		},
	)

	t.Run(
		"WrongSecret", func(t *testing.T) {
			token, err := testCore("other-secret").NewToken(
				ctx, uuid.New(), md.RoleUser, time.Hour,
			)
			require.NoError(t, err)

			_, err = core.ParseClaims(ctx, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		},
	)

	t.Run(
		"Expired", func(t *testing.T) {
			token, err := core.NewToken(ctx, uuid.New(), md.RoleUser, -time.Minute)
			require.NoError(t, err)

			_, err = core.ParseClaims(ctx, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		},
	)
}
