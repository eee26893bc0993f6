package routes

import (
	"github.com/gin-gonic/gin"

	"caretrack/internal/interfaces/http/handlers"
	"caretrack/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler          *handlers.AuthHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	LoginRateLimit       gin.HandlerFunc // may be nil when Redis is not configured
}

// SetupAuthRoutes configures authentication and impersonation routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		if cfg.LoginRateLimit != nil {
			auth.POST("/login", cfg.LoginRateLimit, cfg.AuthHandler.Login)
		} else {
			auth.POST("/login", cfg.AuthHandler.Login)
		}

		auth.POST("/impersonation",
			cfg.AuthMiddleware.RequireAuth(),
			cfg.PermissionMiddleware.RequireSuperAdmin(),
			cfg.AuthHandler.StartImpersonation,
		)
		auth.DELETE("/impersonation",
			cfg.AuthMiddleware.RequireAuth(),
			cfg.AuthHandler.EndImpersonation,
		)
	}
}
