package middleware

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/auth"
	"github.com/sajidhasan/ecomart-golang/internal/models"
)

// CookieName is the cookie that carries the signed auth token.
const CookieName = "verifyToken"

// ContextUserKey is where Authenticate stores the resolved user.
const ContextUserKey = "user"

// Authenticate is the "security guard" for protected routes.
// It reads the token from the auth cookie, validates it, and loads the
// user from the database. Every failure returns the same generic 401
// so a caller can't probe which accounts exist.
func Authenticate(db *sql.DB, tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Read the Auth Cookie ---
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized: You must authenticate to access this resource.",
			})
			c.Abort()
			return
		}

		// 2. --- Validate Token ---
		claims, err := tm.Validate(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized: Invalid authentication token.",
			})
			c.Abort()
			return
		}

		// 3. --- Load the User ---
		// The token may outlive the account, so we re-check the row.
		var user models.User
		query := `
			SELECT id, name, email, password, role, avatar, bio, phone, birth_date, gender, active, created_at, updated_at
			FROM users WHERE id = ?`
		err = db.QueryRow(query, claims.UserID).Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
			&user.Avatar, &user.Bio, &user.Phone, &user.BirthDate, &user.Gender,
			&user.Active, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			// sql.ErrNoRows and real DB errors look the same to the caller.
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized: Invalid authentication token.",
			})
			c.Abort()
			return
		}

		// 4. --- Success ---
		c.Set(ContextUserKey, &user)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the gin context.
// Returns nil if Authenticate did not run on this route.
func CurrentUser(c *gin.Context) *models.User {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := raw.(*models.User)
	if !ok {
		return nil
	}
	return user
}
