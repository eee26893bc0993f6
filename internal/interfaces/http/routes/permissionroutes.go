package routes

import (
	"github.com/gin-gonic/gin"

	"caretrack/internal/interfaces/http/handlers"
	"caretrack/internal/interfaces/http/middleware"
)

// PermissionRouteConfig holds dependencies for permission management routes.
type PermissionRouteConfig struct {
	PermissionHandler *handlers.PermissionHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupPermissionRoutes configures role default and user override routes.
// The manage permissions are enforced inside the use cases so the same
// gate covers HTTP and any future callers.
func SetupPermissionRoutes(engine *gin.Engine, cfg *PermissionRouteConfig) {
	permissions := engine.Group("/permissions")
	permissions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		permissions.GET("/roles/:role", cfg.PermissionHandler.GetRoleGrants)
		permissions.PUT("/roles/:role", cfg.PermissionHandler.SetRoleGrants)
		permissions.GET("/users/:id", cfg.PermissionHandler.GetUserGrants)
		permissions.PUT("/users/:id", cfg.PermissionHandler.SetUserGrants)
	}
}
