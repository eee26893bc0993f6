package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/internal/application/identity/usecases"
	"caretrack/internal/interfaces/http/middleware"
	"caretrack/internal/shared/logger"
	"caretrack/internal/shared/utils"
)

type AuthHandler struct {
	loginUC              usecases.LoginExecutor
	startImpersonationUC usecases.StartImpersonationExecutor
	endImpersonationUC   usecases.EndImpersonationExecutor
	logger               logger.Interface
}

func NewAuthHandler(
	loginUC usecases.LoginExecutor,
	startImpersonationUC usecases.StartImpersonationExecutor,
	endImpersonationUC usecases.EndImpersonationExecutor,
) *AuthHandler {
	return &AuthHandler{
		loginUC:              loginUC,
		startImpersonationUC: startImpersonationUC,
		endImpersonationUC:   endImpersonationUC,
		logger:               logger.NewLogger(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserID       uint   `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID *uint  `json:"department_id,omitempty"`
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid login request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", LoginResponse{
		UserID:       result.UserID,
		Name:         result.Name,
		Email:        result.Email,
		Role:         result.Role.String(),
		DepartmentID: result.DepartmentID,
		AccessToken:  result.AccessToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

type StartImpersonationRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type ImpersonationResponse struct {
	TargetUserID uint   `json:"target_user_id,omitempty"`
	TargetName   string `json:"target_name,omitempty"`
	Token        string `json:"token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// StartImpersonation handles POST /auth/impersonation
func (h *AuthHandler) StartImpersonation(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req StartImpersonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.startImpersonationUC.Execute(c.Request.Context(), usecases.StartImpersonationCommand{
		Actor:        actor,
		TargetUserID: req.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Impersonation started", ImpersonationResponse{
		TargetUserID: result.TargetUserID,
		TargetName:   result.TargetName,
		Token:        result.Token,
		ExpiresIn:    result.ExpiresIn,
	})
}

// EndImpersonation handles DELETE /auth/impersonation
func (h *AuthHandler) EndImpersonation(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	result, err := h.endImpersonationUC.Execute(c.Request.Context(), usecases.EndImpersonationCommand{Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Impersonation ended", ImpersonationResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	})
}
