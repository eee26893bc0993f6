package routes

import (
	"github.com/gin-gonic/gin"

	"caretrack/internal/interfaces/http/handlers"
	"caretrack/internal/interfaces/http/middleware"
)

// ActivityRouteConfig holds dependencies for activity log routes.
type ActivityRouteConfig struct {
	ActivityHandler *handlers.ActivityHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// SetupActivityRoutes configures activity log routes.
func SetupActivityRoutes(engine *gin.Engine, cfg *ActivityRouteConfig) {
	activity := engine.Group("/activity")
	activity.Use(cfg.AuthMiddleware.RequireAuth())
	{
		activity.GET("", cfg.ActivityHandler.ListActivity)
	}
}
