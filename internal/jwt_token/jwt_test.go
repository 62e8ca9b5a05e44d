package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "coursecloud/pkg/domain-errors"
)

var jwtService = NewJWTService(
	"test-signing-key",
	"test-issuer",
	"test-audience",
)
var userID = "42"
var username = "ada"
var role = "STUDENT"
var expiresIn = time.Hour

func Test_GenerateAccessToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(userID, username, role, expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID())
	assert.Equal(t, username, claims.Username)
	assert.Equal(t, role, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(expiresIn), claims.ExpiresAt.Time, time.Minute)
}

func Test_GenerateAccessToken_RequiresUser(t *testing.T) {
	_, err := jwtService.GenerateAccessToken(" ", username, role, expiresIn)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(userID, username, role, -time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token has expired")
}

func Test_ValidateToken_ClockOverride(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewJWTService("test-signing-key", "test-issuer", "test-audience",
		WithClock(func() time.Time { return issued }))
	token, err := svc.GenerateAccessToken(userID, username, role, time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.NoError(t, err)

	later := NewJWTService("test-signing-key", "test-issuer", "test-audience",
		WithClock(func() time.Time { return issued.Add(2 * time.Hour) }))
	_, err = later.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_RejectsForeignTokens(t *testing.T) {
	tests := []struct {
		name string
		svc  *JWTService
	}{
		{"wrong key", NewJWTService("other-key", "test-issuer", "test-audience")},
		{"wrong issuer", NewJWTService("test-signing-key", "someone-else", "test-audience")},
		{"wrong audience", NewJWTService("test-signing-key", "test-issuer", "other-api")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.svc.GenerateAccessToken(userID, username, role, expiresIn)
			require.NoError(t, err)
			_, err = jwtService.ValidateToken(token)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		})
	}
}

func Test_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "test-issuer",
			Audience:  []string{"test-audience"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(signed)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_IdentityValidatorAdapter(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(userID, username, role, expiresIn)
	require.NoError(t, err)

	identity, err := NewIdentityValidatorAdapter(jwtService).ValidateIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, username, identity.Username)
	assert.Equal(t, role, identity.Role)

	_, err = NewIdentityValidatorAdapter(jwtService).ValidateIdentity("garbage")
	assert.Error(t, err)
}
