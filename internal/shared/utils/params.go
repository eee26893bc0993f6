package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"caretrack/internal/shared/errors"
)

// ParseIDParam parses and validates a numeric ID from a URL path parameter.
// entityName is used in error messages (e.g., "complaint", "user").
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}

	return uint(id), nil
}
