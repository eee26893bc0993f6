package routes

import (
	"github.com/gin-gonic/gin"

	"caretrack/internal/interfaces/http/handlers"
	"caretrack/internal/interfaces/http/middleware"
	"caretrack/internal/shared/constants"
)

// ComplaintRouteConfig holds dependencies for complaint routes.
type ComplaintRouteConfig struct {
	ComplaintHandler     *handlers.ComplaintHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupComplaintRoutes configures complaint lifecycle routes. Scope and
// permission checks beyond the export gate live in the use cases, so a
// request that passes auth here can still come back 403 or 404.
func SetupComplaintRoutes(engine *gin.Engine, cfg *ComplaintRouteConfig) {
	complaints := engine.Group("/complaints")
	complaints.Use(cfg.AuthMiddleware.RequireAuth())
	{
		complaints.POST("", cfg.ComplaintHandler.CreateComplaint)
		complaints.GET("", cfg.ComplaintHandler.ListComplaints)
		complaints.GET("/export",
			cfg.PermissionMiddleware.Require(constants.PermComplaintExport),
			cfg.ComplaintHandler.ExportComplaints,
		)

		// Literal segment before /:id so gin does not treat it as an ID.
		complaints.GET("/number/:number", cfg.ComplaintHandler.GetComplaintByNumber)

		complaints.GET("/:id", cfg.ComplaintHandler.GetComplaint)
		complaints.POST("/:id/assign", cfg.ComplaintHandler.AssignComplaint)
		complaints.POST("/:id/replies", cfg.ComplaintHandler.ReplyComplaint)
		complaints.PATCH("/:id/status", cfg.ComplaintHandler.UpdateStatus)
	}
}
