package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Santo1997/summer-sage-server/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.GenerateToken("a@x.com", "Ada")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(AccessTokenExpiry), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := NewJWTService("secret")
	a, err := svc.GenerateToken("a@x.com", "")
	require.NoError(t, err)
	b, err := svc.GenerateToken("a@x.com", "")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret")

	t.Run("expired", func(t *testing.T) {
		old := NewJWTService("secret")
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := old.GenerateToken("a@x.com", "")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("foreign secret", func(t *testing.T) {
		token, err := NewJWTService("other").GenerateToken("a@x.com", "")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			Email: "a@x.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("missing email", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestRoleStore_WithoutRedis(t *testing.T) {
	store := NewRoleStore(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SetRole(ctx, "a@x.com", model.RoleAdmin))
	_, ok := store.GetRole(ctx, "a@x.com")
	assert.False(t, ok)
	assert.NoError(t, store.Invalidate(ctx, "a@x.com"))
}

func TestRoleStore_Disabled(t *testing.T) {
	store := NewRoleStore(nil, 0)
	_, ok := store.GetRole(context.Background(), "a@x.com")
	assert.False(t, ok)
}
