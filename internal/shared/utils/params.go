package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/shared/errors"
)

// ParseUintParam parses a positive integer path parameter.
// entityName is used in the error message (e.g. "ticket").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}
	return uint(n), nil
}

// ParseOptionalUintQuery parses an optional positive integer query parameter.
// A missing or malformed value yields nil.
func ParseOptionalUintQuery(c *gin.Context, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil
	}
	v := uint(n)
	return &v
}

// ParseOptionalIntQuery parses an optional integer query parameter.
func ParseOptionalIntQuery(c *gin.Context, key string) *int {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
