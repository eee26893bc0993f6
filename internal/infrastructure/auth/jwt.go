package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess        TokenType = "access"
	TokenTypeImpersonation TokenType = "impersonation"
)

// Claims carries the authenticated identity. For impersonation tokens,
// UserID is the user being acted as and OriginalAdminID is the super admin
// who started the session; both travel in every request so the activity log
// can record each side.
type Claims struct {
	UserID          uint                   `json:"user_id"`
	Role            authorization.UserRole `json:"role"`
	DepartmentID    *uint                  `json:"department_id,omitempty"`
	TokenType       TokenType              `json:"token_type"`
	OriginalAdminID *uint                  `json:"original_admin_id,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) IsImpersonation() bool {
	return c.TokenType == TokenTypeImpersonation
}

type JWTService struct {
	secret               []byte
	accessExpMinutes     int
	impersonationExpHour int
}

func NewJWTService(secret string, accessExpMinutes, impersonationExpHours int) *JWTService {
	return &JWTService{
		secret:               []byte(secret),
		accessExpMinutes:     accessExpMinutes,
		impersonationExpHour: impersonationExpHours,
	}
}

func (s *JWTService) Generate(userID uint, role authorization.UserRole, departmentID *uint) (string, int64, error) {
	now := biztime.NowUTC()
	exp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)

	claims := &Claims{
		UserID:       userID,
		Role:         role,
		DepartmentID: departmentID,
		TokenType:    TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, int64(s.accessExpMinutes * 60), nil
}

// GenerateImpersonation issues a short-lived token that acts as the target
// user while keeping the original super admin on record. The lifetime is
// capped at the configured impersonation window regardless of the normal
// access token lifetime.
func (s *JWTService) GenerateImpersonation(targetUserID uint, targetRole authorization.UserRole, targetDepartmentID *uint, originalAdminID uint) (string, int64, error) {
	now := biztime.NowUTC()
	exp := now.Add(time.Duration(s.impersonationExpHour) * time.Hour)

	adminID := originalAdminID
	claims := &Claims{
		UserID:          targetUserID,
		Role:            targetRole,
		DepartmentID:    targetDepartmentID,
		TokenType:       TokenTypeImpersonation,
		OriginalAdminID: &adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign impersonation token: %w", err)
	}

	return signed, int64(s.impersonationExpHour * 3600), nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.TokenType == TokenTypeImpersonation && claims.OriginalAdminID == nil {
		return nil, fmt.Errorf("impersonation token missing original admin")
	}

	return claims, nil
}
