package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caretrack/internal/shared/authorization"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 30, 2)
	dept := uint(7)

	token, expiresIn, err := svc.Generate(10, authorization.RoleEmployee, &dept)
	require.NoError(t, err)
	assert.Equal(t, int64(30*60), expiresIn)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(10), claims.UserID)
	assert.Equal(t, authorization.RoleEmployee, claims.Role)
	require.NotNil(t, claims.DepartmentID)
	assert.Equal(t, dept, *claims.DepartmentID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Nil(t, claims.OriginalAdminID)
	assert.False(t, claims.IsImpersonation())
}

func TestJWTService_Impersonation(t *testing.T) {
	svc := NewJWTService("test-secret", 30, 2)
	dept := uint(3)

	token, expiresIn, err := svc.GenerateImpersonation(20, authorization.RoleDepartmentAdmin, &dept, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2*3600), expiresIn)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.IsImpersonation())
	assert.Equal(t, uint(20), claims.UserID)
	assert.Equal(t, authorization.RoleDepartmentAdmin, claims.Role)
	require.NotNil(t, claims.OriginalAdminID)
	assert.Equal(t, uint(1), *claims.OriginalAdminID)

	// The window is bounded by the impersonation lifetime, not the access one.
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.LessOrEqual(t, remaining, 2*time.Hour)
	assert.Greater(t, remaining, time.Hour)
}

func TestJWTService_VerifyRejectsTampering(t *testing.T) {
	svc := NewJWTService("test-secret", 30, 2)

	token, _, err := svc.Generate(10, authorization.RoleEmployee, nil)
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	assert.Error(t, err)

	other := NewJWTService("different-secret", 30, 2)
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_VerifyRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", 0, 2)

	// Zero minutes puts the expiry at issuance time.
	token, _, err := svc.Generate(10, authorization.RoleEmployee, nil)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_VerifyRejectsImpersonationWithoutAdmin(t *testing.T) {
	svc := NewJWTService("test-secret", 30, 2)

	// Hand-build an impersonation token with no original admin claim.
	claims := &Claims{
		UserID:    20,
		Role:      authorization.RoleEmployee,
		TokenType: TokenTypeImpersonation,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorContains(t, err, "missing original admin")
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
	assert.Error(t, hasher.Compare(hash, "wrong"))
	assert.Error(t, hasher.Compare("not-a-hash", "anything"))
}
