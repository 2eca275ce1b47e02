package handler

import (
	"net/http"

	"github.com/Adarsha5421/Grainly-final/internal/middleware"
	"github.com/Adarsha5421/Grainly-final/internal/util"

	"github.com/gin-gonic/gin"
)

// GetMe returns the current authenticated user (requires AuthRequired).
func GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"is_admin":     user.IsAdmin,
			"created_at":   user.CreatedAt,
		},
	})
}
