package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusops/absence-api/internal/middleware"
	"github.com/campusops/absence-api/internal/models"
	appErrors "github.com/campusops/absence-api/pkg/errors"
	"github.com/campusops/absence-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// pathID parses the named path parameter as a positive integer identifier.
// On failure it writes a validation error response and returns false.
func pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}
