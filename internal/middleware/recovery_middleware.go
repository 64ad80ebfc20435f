package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/pkg/utils"
)

// Recovery turns a panic into a 500 response in the API error format.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.LogError(fmt.Errorf("panic: %v", recovered), "Request panicked", map[string]interface{}{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(utils.RequestIDKey),
		})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error", ""))
	})
}
