package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// DevOnly rejects every request with 403 when running in production.
func DevOnly(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if production {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure(
				"DEV routes are disabled in production",
				string(domainerror.ErrCodeForbidden),
			))
			return
		}
		c.Next()
	}
}
