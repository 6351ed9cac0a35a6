package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adapters "accountapi/internal/account/adapters/services"
	"accountapi/internal/account/domain/services"
	"accountapi/pkg/logger"
)

const testSecret = "test-secret-key"

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestBcrypt_HashAndVerify(t *testing.T) {
	ctx := testContext(t)
	svc := adapters.NewBcrypt(bcrypt.MinCost)

	hash, err := svc.Hash(ctx, "Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hash)

	ok, err := svc.Verify(ctx, "Secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(ctx, "Wrong1234", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Verify(ctx, "abc", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_OverlongPasswordIsMismatch(t *testing.T) {
	ctx := testContext(t)
	svc := adapters.NewBcrypt(bcrypt.MinCost)

	hash, err := svc.Hash(ctx, "Secret123")
	require.NoError(t, err)

	ok, err := svc.Verify(ctx, strings.Repeat("x", 100), hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_Errors(t *testing.T) {
	ctx := testContext(t)
	svc := adapters.NewBcrypt(0)

	_, err := svc.Hash(ctx, "")
	require.ErrorIs(t, err, services.ErrInvalidPassword)

	_, err = svc.Hash(ctx, strings.Repeat("x", 73))
	require.ErrorIs(t, err, services.ErrHashingFailed)

	_, err = svc.Verify(ctx, "", "hash")
	require.ErrorIs(t, err, services.ErrInvalidPassword)

	_, err = svc.Verify(ctx, "Secret123", "not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestJWT_AccessTokenRoundTrip(t *testing.T) {
	ctx := testContext(t)
	svc := adapters.NewJWT(testSecret, "accountapi", 15*time.Minute, time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken(ctx, "user-id", "user")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	userID, err := svc.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-id", userID)

	parsed := &adapters.Claims{}
	_, err = jwt.ParseWithClaims(token, parsed, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	assert.Equal(t, "user", parsed.Role)
	assert.Equal(t, "accountapi", parsed.Issuer)
	assert.NotEmpty(t, parsed.ID)
}

func TestJWT_RefreshTokensAreUnique(t *testing.T) {
	ctx := testContext(t)
	svc := adapters.NewJWT(testSecret, "", time.Minute, time.Hour)

	first, _, err := svc.GenerateRefreshToken(ctx, "user-id")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken(ctx, "user-id")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWT_RefreshTokenIsNotAccessToken(t *testing.T) {
	ctx := testContext(t)
	svc := adapters.NewJWT(testSecret, "", time.Minute, time.Hour)

	refresh, _, err := svc.GenerateRefreshToken(ctx, "user-id")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(ctx, refresh)
	require.ErrorIs(t, err, services.ErrInvalidJWTToken)
}

func TestJWT_ValidateErrors(t *testing.T) {
	ctx := testContext(t)

	t.Run("expired token", func(t *testing.T) {
		svc := adapters.NewJWT(testSecret, "", -time.Minute, time.Hour)
		token, _, err := svc.GenerateAccessToken(ctx, "user-id", "user")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(ctx, token)
		require.ErrorIs(t, err, services.ErrExpiredJWTToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		issuer := adapters.NewJWT("other-secret", "", time.Minute, time.Hour)
		token, _, err := issuer.GenerateAccessToken(ctx, "user-id", "user")
		require.NoError(t, err)

		svc := adapters.NewJWT(testSecret, "", time.Minute, time.Hour)
		_, err = svc.ValidateAccessToken(ctx, token)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := adapters.NewJWT(testSecret, "", time.Minute, time.Hour)
		_, err := svc.ValidateAccessToken(ctx, "not.a.token")
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := adapters.Claims{
			UserID:   "user-id",
			TokenUse: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		svc := adapters.NewJWT(testSecret, "", time.Minute, time.Hour)
		_, err = svc.ValidateAccessToken(ctx, token)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("empty user id", func(t *testing.T) {
		claims := adapters.Claims{
			TokenUse: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		svc := adapters.NewJWT(testSecret, "", time.Minute, time.Hour)
		_, err = svc.ValidateAccessToken(ctx, token)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})
}

func TestJWT_EmptySecret(t *testing.T) {
	ctx := testContext(t)
	svc := adapters.NewJWT("", "", time.Minute, time.Hour)

	_, _, err := svc.GenerateAccessToken(ctx, "user-id", "user")
	require.ErrorIs(t, err, services.ErrGeneratingJWTToken)

	_, _, err = svc.GenerateRefreshToken(ctx, "user-id")
	require.ErrorIs(t, err, services.ErrGeneratingJWTToken)
}

func TestServiceFactory(t *testing.T) {
	factory := adapters.NewServiceFactory(testSecret, "accountapi", time.Minute, time.Hour, bcrypt.MinCost)

	require.NotNil(t, factory.PasswordService())
	require.NotNil(t, factory.TokenService())
	assert.Same(t, factory.PasswordService(), factory.PasswordService())
	assert.IsType(t, &adapters.ServiceBcrypt{}, factory.PasswordService())
	assert.IsType(t, &adapters.ServiceJWT{}, factory.TokenService())
}
