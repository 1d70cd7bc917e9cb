package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(42, "first_user")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "first_user", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(7, "first_user")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_ValidateTokenOfType(t *testing.T) {
	svc := NewJWTService("test-secret")

	access, err := svc.GenerateAccessToken(1, "first_user")
	assert.NoError(t, err)
	_, refresh, err := svc.GenerateRefreshToken(1, "first_user")
	assert.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		tokenType string
		wantErr   bool
	}{
		{"access as access", access, TokenTypeAccess, false},
		{"refresh as refresh", refresh, TokenTypeRefresh, false},
		{"refresh used as access", refresh, TokenTypeAccess, true},
		{"access used as refresh", access, TokenTypeRefresh, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateTokenOfType(tt.token, tt.tokenType)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(1, "first_user")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = svc.ValidateToken("ajksndjkqwnekjnkqj")
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("other-secret").GenerateAccessToken(1, "first_user")
	assert.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
}
