package routes

import (
	"github.com/gin-gonic/gin"

	"caretrack/internal/interfaces/http/handlers"
	"caretrack/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures user management routes. The users.manage
// permission is enforced inside the use cases.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	users := engine.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.POST("", cfg.UserHandler.CreateUser)
		users.GET("", cfg.UserHandler.ListUsers)
		users.PATCH("/:id", cfg.UserHandler.UpdateUser)
	}
}
