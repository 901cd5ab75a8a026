package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentora/internal/core/apperror"
	appctx "rentora/internal/core/context"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hasher := &BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	return NewService(
		ServiceConfig{AdminUsername: "admin", AdminPasswordHash: hash},
		hasher,
		NewJWTService(DefaultJWTConfig("test-secret")),
	)
}

func TestBcryptHasher(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("pa55word")
	require.NoError(t, err)
	assert.NotEqual(t, "pa55word", hash)

	ok, err := h.Verify(hash, "pa55word")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Verify("not-a-hash", "pa55word")
	assert.Error(t, err)

	_, err = h.Hash("")
	assert.Error(t, err)
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name     string
		creds    Credentials
		wantCode string
	}{
		{name: "valid", creds: Credentials{Username: "admin", Password: "s3cret"}},
		{name: "wrong password", creds: Credentials{Username: "admin", Password: "nope"}, wantCode: apperror.CodeUnauthorized},
		{name: "unknown user", creds: Credentials{Username: "guest", Password: "s3cret"}, wantCode: apperror.CodeUnauthorized},
	}

	svc := newTestService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(context.Background(), tt.creds)
			if tt.wantCode != "" {
				assert.True(t, apperror.HasCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Bearer", token.TokenType)

			user, err := svc.jwt.ValidateToken(token.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, "admin", user.UserID)
			assert.True(t, user.IsAdmin)
		})
	}
}

func TestJWTService_Validate(t *testing.T) {
	user := &appctx.UserContext{UserID: "admin", IsAdmin: true}
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	signer := NewJWTService(DefaultJWTConfig("secret-a"))
	valid, _, err := signer.GenerateAccessToken(user)
	require.NoError(t, err)

	signer.now = func() time.Time { return past }
	expired, _, err := signer.GenerateAccessToken(user)
	require.NoError(t, err)

	foreign, _, err := NewJWTService(DefaultJWTConfig("secret-b")).GenerateAccessToken(user)
	require.NoError(t, err)

	validator := NewJWTService(DefaultJWTConfig("secret-a"))

	got, err := validator.ValidateToken(valid)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.UserID)

	_, err = validator.ValidateToken(expired)
	assert.Error(t, err)

	_, err = validator.ValidateToken(foreign)
	assert.Error(t, err)

	_, err = validator.ValidateToken("garbage")
	assert.Error(t, err)
}
