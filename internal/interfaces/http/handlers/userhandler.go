package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"caretrack/internal/application/identity/usecases"
	"caretrack/internal/interfaces/http/middleware"
	"caretrack/internal/shared/logger"
	"caretrack/internal/shared/utils"
)

type UserHandler struct {
	createUC usecases.CreateUserExecutor
	updateUC usecases.UpdateUserExecutor
	listUC   usecases.ListUsersExecutor
	logger   logger.Interface
}

func NewUserHandler(
	createUC usecases.CreateUserExecutor,
	updateUC usecases.UpdateUserExecutor,
	listUC usecases.ListUsersExecutor,
) *UserHandler {
	return &UserHandler{
		createUC: createUC,
		updateUC: updateUC,
		listUC:   listUC,
		logger:   logger.NewLogger(),
	}
}

type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name" binding:"required,max=100"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required"`
	DepartmentID *uint  `json:"department_id"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create user request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Actor:        actor,
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created")
}

type UpdateUserRequest struct {
	Role         *string `json:"role"`
	DepartmentID *uint   `json:"department_id"`
	IsActive     *bool   `json:"is_active"`
	Password     *string `json:"password" binding:"omitempty,min=8"`
}

// UpdateUser handles PATCH /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		Actor:        actor,
		UserID:       userID,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		IsActive:     req.IsActive,
		Password:     req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated", result)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	pagination := utils.ParsePagination(c)
	query := usecases.ListUsersQuery{
		Actor:    actor,
		Role:     c.Query("role"),
		Search:   c.Query("search"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}
	if v := c.Query("department_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid department_id: "+v)
			return
		}
		deptID := uint(id)
		query.DepartmentID = &deptID
	}
	if v := c.Query("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid is_active: "+v)
			return
		}
		query.IsActive = &active
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:      result.Users,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: utils.TotalPages(result.Total, result.PageSize),
	})
}
