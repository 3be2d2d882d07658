package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	"github.com/sajidhasan/ecomart-golang/internal/middleware"
	"github.com/sajidhasan/ecomart-golang/internal/models"
)

//
// --- Auth Handlers (Public) ---
//

// RegisterInput is the JSON we accept on /users/register.
// Separate from models.User so nobody can sneak in an 'id' or 'role'.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// setAuthCookie attaches the signed token to the response as an
// HTTP-only cookie. Secure is only set in production so local
// development over plain HTTP keeps working.
func (h *Handlers) setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(
		middleware.CookieName,
		token,
		int(time.Hour.Seconds()), // 1 hour, same as the token TTL
		"/",
		"",
		h.Config.IsProduction(),
		true, // HttpOnly
	)
}

// Register is the handler for POST /api/users/register
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Name, email, and password are required fields.",
		})
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	// 3. --- Save to Database ---
	now := time.Now()
	query := `
		INSERT INTO users (name, email, password, role, active, created_at, updated_at)
		VALUES (?, ?, ?, 'user', TRUE, ?, ?)`
	result, err := h.DB.Exec(query, input.Name, input.Email, password.Hash, now, now)
	if err != nil {
		// MySQL error 1062 = duplicate entry on the unique email index.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "An account with this email already exists.",
			})
			return
		}
		log.Printf("Register: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	userID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	// 4. --- Send Success Response ---
	// The password hash never leaves the server (json:"-" on the model).
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user": gin.H{
			"id":        userID,
			"name":      input.Name,
			"email":     input.Email,
			"role":      "user",
			"createdAt": now,
			"updatedAt": now,
		},
	})
}

// Login is the handler for POST /api/users/login
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required."})
		return
	}

	// 2. --- Find User By Email ---
	var user models.User
	query := "SELECT id, name, email, password, role, created_at, updated_at FROM users WHERE email = ?"
	err := h.DB.QueryRow(query, input.Email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// Same message as a wrong password. Never reveal whether
			// the email exists.
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		log.Printf("Login: lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	// 3. --- Check Password ---
	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	// 4. --- Generate Token & Set Cookie ---
	token, err := h.Auth.Generate(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}
	h.setAuthCookie(c, token)

	// 5. --- Send Success Response ---
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"createdAt": user.CreatedAt,
			"updatedAt": user.UpdatedAt,
		},
		"authToken": token,
	})
}

// Logout is the handler for POST /api/users/logout
// It only clears the cookie; there is no server-side session to
// revoke, so the token itself stays valid until it expires.
func (h *Handlers) Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "", -1, "/", "", h.Config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// VerifyToken is the handler for POST /api/users/verify-token
// Frontends call this on load to restore a session from the cookie.
func (h *Handlers) VerifyToken(c *gin.Context) {
	tokenString, err := c.Cookie(middleware.CookieName)
	if err != nil || tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Unauthorized: You must authenticate to access this resource.",
		})
		return
	}

	claims, err := h.Auth.Validate(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Unauthorized: Invalid authentication token.",
		})
		return
	}

	var user models.User
	query := "SELECT id, name, email, role, created_at, updated_at FROM users WHERE id = ?"
	err = h.DB.QueryRow(query, claims.UserID).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Unauthorized: User not found.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
