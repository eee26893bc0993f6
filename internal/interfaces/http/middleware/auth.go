package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"caretrack/internal/domain/identity"
	"caretrack/internal/infrastructure/auth"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/logger"
	"caretrack/internal/shared/utils"
)

const contextKeyActor = "actor"

type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      identity.UserRepository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, users identity.UserRepository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and reloads the effective user's
// current row, so role and department changes apply immediately and a
// deactivated user is locked out before token expiry. Impersonation tokens
// yield an actor whose effective identity is the impersonated user; the
// admin who started the session rides along for audit purposes.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			m.logger.Warnw("failed to load user for token", "user_id", claims.UserID, "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if !user.IsActive() {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user account is inactive")
			c.Abort()
			return
		}

		// Role and department come from the row, not the token claims.
		actor := authorization.Actor{
			UserID:          user.ID(),
			Role:            user.Role(),
			DepartmentID:    user.DepartmentID(),
			OriginalAdminID: claims.OriginalAdminID,
		}

		c.Set(contextKeyActor, actor)
		c.Set(constants.ContextKeyUserID, actor.UserID)
		c.Set(constants.ContextKeyUserRole, string(actor.Role))
		if actor.DepartmentID != nil {
			c.Set(constants.ContextKeyDepartmentID, *actor.DepartmentID)
		}
		if actor.IsImpersonating() {
			c.Set(constants.ContextKeyImpersonating, true)
			c.Set(constants.ContextKeyActorUserID, *claims.OriginalAdminID)
		}

		c.Next()
	}
}

// ActorFromContext returns the actor stored by RequireAuth.
func ActorFromContext(c *gin.Context) (authorization.Actor, bool) {
	value, exists := c.Get(contextKeyActor)
	if !exists {
		return authorization.Actor{}, false
	}
	actor, ok := value.(authorization.Actor)
	return actor, ok
}

// MustActor is for handlers behind RequireAuth; a missing actor is a wiring
// bug and responds 401.
func MustActor(c *gin.Context) (authorization.Actor, bool) {
	actor, ok := ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		c.Abort()
	}
	return actor, ok
}
