package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/internal/application/permission/usecases"
	"caretrack/internal/interfaces/http/middleware"
	"caretrack/internal/shared/logger"
	"caretrack/internal/shared/utils"
)

type PermissionHandler struct {
	getGrantsUC usecases.GetGrantsExecutor
	setRoleUC   usecases.SetRolePermissionsExecutor
	setUserUC   usecases.SetUserPermissionsExecutor
	logger      logger.Interface
}

func NewPermissionHandler(
	getGrantsUC usecases.GetGrantsExecutor,
	setRoleUC usecases.SetRolePermissionsExecutor,
	setUserUC usecases.SetUserPermissionsExecutor,
) *PermissionHandler {
	return &PermissionHandler{
		getGrantsUC: getGrantsUC,
		setRoleUC:   setRoleUC,
		setUserUC:   setUserUC,
		logger:      logger.NewLogger(),
	}
}

type GrantsResponse struct {
	Catalog []usecases.PermissionDTO `json:"catalog"`
	Grants  map[string]bool          `json:"grants"`
}

type SetGrantsRequest struct {
	Grants map[string]bool `json:"grants" binding:"required"`
}

// GetRoleGrants handles GET /permissions/roles/:role
func (h *PermissionHandler) GetRoleGrants(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	result, err := h.getGrantsUC.Execute(c.Request.Context(), usecases.GetGrantsQuery{
		Actor: actor,
		Role:  c.Param("role"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", GrantsResponse{
		Catalog: result.Catalog,
		Grants:  result.Grants,
	})
}

// SetRoleGrants handles PUT /permissions/roles/:role
func (h *PermissionHandler) SetRoleGrants(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req SetGrantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "grants object is required")
		return
	}

	result, err := h.setRoleUC.Execute(c.Request.Context(), usecases.SetRolePermissionsCommand{
		Actor:  actor,
		Role:   c.Param("role"),
		Grants: req.Grants,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role permissions updated", result)
}

// GetUserGrants handles GET /permissions/users/:id
func (h *PermissionHandler) GetUserGrants(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getGrantsUC.Execute(c.Request.Context(), usecases.GetGrantsQuery{
		Actor:  actor,
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", GrantsResponse{
		Catalog: result.Catalog,
		Grants:  result.Grants,
	})
}

// SetUserGrants handles PUT /permissions/users/:id
func (h *PermissionHandler) SetUserGrants(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetGrantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "grants object is required")
		return
	}

	result, err := h.setUserUC.Execute(c.Request.Context(), usecases.SetUserPermissionsCommand{
		Actor:  actor,
		UserID: userID,
		Grants: req.Grants,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User permission overrides updated", result)
}
