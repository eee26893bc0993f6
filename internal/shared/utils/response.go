package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}
	if len(message) > 0 {
		response.Message = message[0]
	} else {
		response.Message = "Resource created successfully"
	}
	c.JSON(http.StatusCreated, response)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    "error",
			Message: message,
		},
	})
}

// ErrorResponseWithError converts an application error into an HTTP response.
// AppError carries its own status code and safe message; anything else is an
// unexpected internal failure and returns an opaque message so internals never
// leak to the caller.
func ErrorResponseWithError(c *gin.Context, err error) {
	if authErr := errors.GetAuthError(err); authErr != nil {
		c.JSON(authErr.Code, APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Type:    string(authErr.Type),
				Message: authErr.Message,
				Details: authErr.Details,
			},
		})
		return
	}

	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Type:    string(appErr.Type),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: constants.ErrMsgInternalServerError,
		},
	})
}
