package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin must run AFTER Authenticate. It checks the resolved
// user's role with a literal equality test: only "admin" passes.
// There is no role hierarchy here.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized: You must authenticate to access this resource.",
			})
			c.Abort()
			return
		}

		if user.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Forbidden: User does not have admin privileges.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
