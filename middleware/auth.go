package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"zatoka-backend/models"
)

// AdminRequired guards back-office mutations. It expects
// "Authorization: Bearer <token>" with a token issued by /api/auth/login and
// puts the admin id into the context for downstream handlers.
func AdminRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		var admin models.Admin
		if err := db.Where("token = ?", token).First(&admin).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("adminID", admin.ID)
		c.Next()
	}
}
