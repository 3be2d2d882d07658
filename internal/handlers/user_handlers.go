package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/models"
)

//
// --- User Handlers ---
//

// scanUser reads one full user row. Shared by the single-row and
// list queries so the column order lives in exactly one place.
const userColumns = "id, name, email, password, role, avatar, bio, phone, birth_date, gender, active, created_at, updated_at"

func scanUser(row interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.Avatar, &user.Bio, &user.Phone, &user.BirthDate, &user.Gender,
		&user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

// GetAllUsers is the handler for GET /api/users (Admin-Only)
func (h *Handlers) GetAllUsers(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + userColumns + " FROM users ORDER BY created_at DESC")
	if err != nil {
		log.Printf("GetAllUsers: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		users = append(users, user)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}

// GetUserByID is the handler for GET /api/users/:userId
func (h *Handlers) GetUserByID(c *gin.Context) {
	userID := c.Param("userId")

	row := h.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", userID)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// CreateUserInput is the admin-facing creation payload. Unlike
// Register, a role may be supplied here.
type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

// CreateUser is the handler for POST /api/users/create
func (h *Handlers) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if input.Role == "" {
		input.Role = "user"
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	now := time.Now()
	query := `
		INSERT INTO users (name, email, password, role, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, TRUE, ?, ?)`
	result, err := h.DB.Exec(query, input.Name, input.Email, password.Hash, input.Role, now, now)
	if err != nil {
		log.Printf("CreateUser: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	id, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user": models.User{
			ID:        id,
			Name:      input.Name,
			Email:     input.Email,
			Role:      input.Role,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	})
}

// UpdateUserInput allows partial updates; absent fields keep their
// stored values.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// UpdateUser is the handler for PUT /api/users/:userId
func (h *Handlers) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	// Fetch the current row first so missing fields stay untouched.
	row := h.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", userID)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		var password models.Password
		if err := password.Set(*input.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
			return
		}
		user.PasswordHash = password.Hash
	}
	user.UpdatedAt = time.Now()

	query := "UPDATE users SET name = ?, email = ?, password = ?, updated_at = ? WHERE id = ?"
	if _, err := h.DB.Exec(query, user.Name, user.Email, user.PasswordHash, user.UpdatedAt, user.ID); err != nil {
		log.Printf("UpdateUser: update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// DeleteUser is the handler for DELETE /api/users/:userId
func (h *Handlers) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")

	result, err := h.DB.Exec("DELETE FROM users WHERE id = ?", userID)
	if err != nil {
		log.Printf("DeleteUser: delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}
