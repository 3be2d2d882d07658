package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/sajidhasan/ecomart-golang/internal/models"
)

//
// --- Category Handlers ---
//

var categorySortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"id":        "id",
}

// GetAllCategories is the handler for GET /api/categories
func (h *Handlers) GetAllCategories(c *gin.Context) {
	opts := parseListOptions(c, "createdAt", 5)

	where := ""
	var args []interface{}
	if opts.Search != "" {
		where = " WHERE name LIKE ?"
		args = append(args, "%"+opts.Search+"%")
	}

	tx, err := h.DB.BeginTx(c, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer tx.Rollback()

	pageQuery := "SELECT id, name, slug, description, image, created_at, updated_at FROM categories" +
		where + orderByClause(opts, categorySortColumns, "createdAt") + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]interface{}{}, args...), opts.PageSize, opts.Offset())

	rows, err := tx.Query(pageQuery, pageArgs...)
	if err != nil {
		log.Printf("GetAllCategories: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Image, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		categories = append(categories, cat)
	}
	rows.Close()

	var totalItems int
	if err := tx.QueryRow("SELECT COUNT(*) FROM categories"+where, args...).Scan(&totalItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
		"totalItems": totalItems,
	})
}

// GetCategoryByID is the handler for GET /api/categories/:categoryId
func (h *Handlers) GetCategoryByID(c *gin.Context) {
	categoryID := c.Param("categoryId")

	var cat models.Category
	query := "SELECT id, name, slug, description, image, created_at, updated_at FROM categories WHERE id = ?"
	err := h.DB.QueryRow(query, categoryID).Scan(
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Image, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"category": cat,
	})
}

// CategoryInput is shared by create and update.
type CategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// CreateCategory is the handler for POST /api/categories (Admin-Only)
// Accepts either a JSON body or a multipart form with an uploaded
// image file; the file wins over an image URL in the body.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CategoryInput

	if isMultipart(c) {
		input.Name = c.PostForm("name")
		if desc := c.PostForm("description"); desc != "" {
			input.Description = &desc
		}
		if input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category name is required"})
			return
		}
		filename, err := h.saveUploadedImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if filename != "" {
			input.Image = &filename
		}
	} else {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category name is required"})
			return
		}
	}

	now := time.Now()
	catSlug := slug.Make(input.Name)
	query := "INSERT INTO categories (name, slug, description, image, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	result, err := h.DB.Exec(query, input.Name, catSlug, input.Description, input.Image, now, now)
	if err != nil {
		log.Printf("CreateCategory: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	id, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"category": models.Category{
			ID:          id,
			Name:        input.Name,
			Slug:        catSlug,
			Description: input.Description,
			Image:       input.Image,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	})
}

// UpdateCategory is the handler for PUT /api/categories/:categoryId (Admin-Only)
func (h *Handlers) UpdateCategory(c *gin.Context) {
	categoryID := c.Param("categoryId")

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category name is required"})
		return
	}

	now := time.Now()
	catSlug := slug.Make(input.Name)
	query := "UPDATE categories SET name = ?, slug = ?, description = ?, image = ?, updated_at = ? WHERE id = ?"
	result, err := h.DB.Exec(query, input.Name, catSlug, input.Description, input.Image, now, categoryID)
	if err != nil {
		log.Printf("UpdateCategory: update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated successfully",
	})
}

// DeleteCategory is the handler for DELETE /api/categories/:categoryId (Admin-Only)
func (h *Handlers) DeleteCategory(c *gin.Context) {
	categoryID := c.Param("categoryId")

	result, err := h.DB.Exec("DELETE FROM categories WHERE id = ?", categoryID)
	if err != nil {
		log.Printf("DeleteCategory: delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted successfully",
	})
}
