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

	"notegrid/internal/gateway/adapters/services"
	"notegrid/internal/gateway/config"
	svc "notegrid/internal/gateway/ports/services"
)

const testSecret = "test-secret"

func TestBcryptHashAndVerify(t *testing.T) {
	ctx := context.Background()
	s := services.NewBcrypt(bcrypt.MinCost)

	hash, err := s.Hash(ctx, "correct horse 1")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse 1", hash)

	ok, err := s.Verify(ctx, "correct horse 1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Verify(ctx, "wrong horse 1", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Verify(ctx, "", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptVerifyRejectsGarbageHash(t *testing.T) {
	ok, err := services.NewBcrypt(bcrypt.MinCost).Verify(context.Background(), "password1", "not-a-hash")

	require.Error(t, err)
	assert.False(t, ok)
}

func TestBcryptTooLongPassword(t *testing.T) {
	ctx := context.Background()
	s := services.NewBcrypt(bcrypt.MinCost)
	long := strings.Repeat("a", services.MaxPasswordBytes+1)

	_, err := s.Hash(ctx, long)
	require.ErrorIs(t, err, svc.ErrHashingFailed)

	hash, err := s.Hash(ctx, "password1")
	require.NoError(t, err)
	ok, err := s.Verify(ctx, long, hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewBcryptCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, services.NewBcrypt(bcrypt.MinCost).Cost())
	assert.Equal(t, bcrypt.DefaultCost, services.NewBcrypt(0).Cost())
	assert.Equal(t, bcrypt.DefaultCost, services.NewBcrypt(bcrypt.MaxCost+1).Cost())
}

func TestJWTRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := services.NewJWT(testSecret, time.Minute, time.Hour)

	token, expiresAt, err := s.GenerateAccessToken(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 2*time.Second)

	claims, err := s.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())

	assert.Equal(t, time.Minute, s.AccessTokenTTL())
	assert.Equal(t, time.Hour, s.RefreshTokenTTL())
}

func TestJWTRejectsExpired(t *testing.T) {
	ctx := context.Background()
	s := services.NewJWT(testSecret, -time.Minute, time.Hour)

	token, _, err := s.GenerateAccessToken(ctx, "u1", "s1")
	require.NoError(t, err)

	_, err = s.ValidateAccessToken(ctx, token)
	require.ErrorIs(t, err, svc.ErrExpiredToken)
}

func TestJWTRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	token, _, err := services.NewJWT("other-secret", time.Minute, time.Hour).GenerateAccessToken(ctx, "u1", "s1")
	require.NoError(t, err)

	_, err = services.NewJWT(testSecret, time.Minute, time.Hour).ValidateAccessToken(ctx, token)
	require.ErrorIs(t, err, svc.ErrInvalidToken)
}

func TestJWTRejectsMissingSession(t *testing.T) {
	claims := services.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = services.NewJWT(testSecret, time.Minute, time.Hour).ValidateAccessToken(context.Background(), token)
	require.ErrorIs(t, err, svc.ErrInvalidToken)
}

func TestJWTRejectsNoneAlgorithm(t *testing.T) {
	claims := services.Claims{UserID: "u1", SessionID: "s1"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = services.NewJWT(testSecret, time.Minute, time.Hour).ValidateAccessToken(context.Background(), token)
	require.ErrorIs(t, err, svc.ErrInvalidToken)
}

func TestJWTRejectsEmptySecret(t *testing.T) {
	_, _, err := services.NewJWT("", time.Minute, time.Hour).GenerateAccessToken(context.Background(), "u1", "s1")
	require.ErrorIs(t, err, svc.ErrGeneratingToken)
}

func TestGenerateRefreshTokenIsUnique(t *testing.T) {
	s := services.NewJWT(testSecret, time.Minute, time.Hour)

	first, err := s.GenerateRefreshToken(context.Background())
	require.NoError(t, err)
	second, err := s.GenerateRefreshToken(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestServiceFactory(t *testing.T) {
	factory := services.NewServiceFactory(&config.JWTConfig{
		SecretKey:       testSecret,
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		BcryptCost:      bcrypt.MinCost,
	})

	assert.NotNil(t, factory.PasswordService())
	assert.Equal(t, time.Hour, factory.TokenService().RefreshTokenTTL())
}
