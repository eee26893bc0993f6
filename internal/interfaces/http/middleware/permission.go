package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/logger"
	"caretrack/internal/shared/utils"
)

// PermissionResolver resolves a permission code for an actor.
type PermissionResolver interface {
	Resolve(ctx context.Context, actor authorization.Actor, code string) (bool, error)
}

type PermissionMiddleware struct {
	resolver PermissionResolver
	logger   logger.Interface
}

func NewPermissionMiddleware(resolver PermissionResolver, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// Require rejects the request unless the actor holds the permission. Use
// cases still run their own checks; this is the cheap outer gate.
func (m *PermissionMiddleware) Require(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := MustActor(c)
		if !ok {
			return
		}

		allowed, err := m.resolver.Resolve(c.Request.Context(), actor, code)
		if err != nil {
			m.logger.Errorw("failed to resolve permission", "code", code, "user_id", actor.UserID, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve permission")
			c.Abort()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusForbidden, "permission denied")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin is for the few operations no permission row can grant.
func (m *PermissionMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := MustActor(c)
		if !ok {
			return
		}
		if !actor.IsSuperAdmin() {
			utils.ErrorResponse(c, http.StatusForbidden, "super admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
