package handlers

import (
	"database/sql"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/models"
)

//
// --- Review Handlers ---
//

// ReviewDetail extends the base Review with the product name that the
// list/detail endpoints join in.
type ReviewDetail struct {
	models.Review
	ProductName string `json:"productName"`
}

var reviewSortColumns = map[string]string{
	"createdAt": "r.created_at",
	"rating":    "r.rating",
	"id":        "r.id",
}

// GetAllReviews is the handler for GET /api/reviews
// Supports an optional ?productId= filter on top of the usual
// pagination params.
func (h *Handlers) GetAllReviews(c *gin.Context) {
	opts := parseListOptions(c, "createdAt", 10)

	where := " WHERE 1=1"
	var args []interface{}
	if opts.Search != "" {
		where += " AND r.text LIKE ?"
		args = append(args, "%"+opts.Search+"%")
	}
	if productID, err := strconv.ParseInt(c.Query("productId"), 10, 64); err == nil {
		where += " AND r.product_id = ?"
		args = append(args, productID)
	}

	tx, err := h.DB.BeginTx(c, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer tx.Rollback()

	pageQuery := `
		SELECT r.id, r.text, r.rating, r.product_id, r.created_at, r.updated_at, p.name
		FROM reviews r
		JOIN products p ON r.product_id = p.id` +
		where + orderByClause(opts, reviewSortColumns, "createdAt") + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]interface{}{}, args...), opts.PageSize, opts.Offset())

	rows, err := tx.Query(pageQuery, pageArgs...)
	if err != nil {
		log.Printf("GetAllReviews: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	reviews := []ReviewDetail{}
	for rows.Next() {
		var r ReviewDetail
		if err := rows.Scan(&r.ID, &r.Text, &r.Rating, &r.ProductID, &r.CreatedAt, &r.UpdatedAt, &r.ProductName); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		reviews = append(reviews, r)
	}
	rows.Close()

	var totalItems int
	countQuery := "SELECT COUNT(*) FROM reviews r JOIN products p ON r.product_id = p.id" + where
	if err := tx.QueryRow(countQuery, args...).Scan(&totalItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"reviews":     reviews,
		"totalItems":  totalItems,
		"currentPage": opts.Page,
		"totalPages":  int(math.Ceil(float64(totalItems) / float64(opts.PageSize))),
	})
}

// GetReviewByID is the handler for GET /api/reviews/:reviewId
func (h *Handlers) GetReviewByID(c *gin.Context) {
	reviewID := c.Param("reviewId")

	var r ReviewDetail
	query := `
		SELECT r.id, r.text, r.rating, r.product_id, r.created_at, r.updated_at, p.name
		FROM reviews r
		JOIN products p ON r.product_id = p.id
		WHERE r.id = ?`
	err := h.DB.QueryRow(query, reviewID).Scan(
		&r.ID, &r.Text, &r.Rating, &r.ProductID, &r.CreatedAt, &r.UpdatedAt, &r.ProductName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review":  r,
	})
}

// ReviewInput is shared by create and update.
type ReviewInput struct {
	Text      string `json:"text" binding:"required"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	ProductID int64  `json:"productId" binding:"required"`
}

// CreateReview is the handler for POST /api/reviews (Login Required)
func (h *Handlers) CreateReview(c *gin.Context) {
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	now := time.Now()
	query := "INSERT INTO reviews (text, rating, product_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	result, err := h.DB.Exec(query, input.Text, input.Rating, input.ProductID, now, now)
	if err != nil {
		log.Printf("CreateReview: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	id, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"review": models.Review{
			ID:        id,
			Text:      input.Text,
			Rating:    input.Rating,
			ProductID: input.ProductID,
			CreatedAt: now,
			UpdatedAt: now,
		},
	})
}

// UpdateReview is the handler for PUT /api/reviews/:reviewId (Login Required)
func (h *Handlers) UpdateReview(c *gin.Context) {
	reviewID := c.Param("reviewId")

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	query := "UPDATE reviews SET text = ?, rating = ?, updated_at = ? WHERE id = ?"
	result, err := h.DB.Exec(query, input.Text, input.Rating, time.Now(), reviewID)
	if err != nil {
		log.Printf("UpdateReview: update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review updated successfully",
	})
}

// DeleteReview is the handler for DELETE /api/reviews/:reviewId (Login Required)
func (h *Handlers) DeleteReview(c *gin.Context) {
	reviewID := c.Param("reviewId")

	result, err := h.DB.Exec("DELETE FROM reviews WHERE id = ?", reviewID)
	if err != nil {
		log.Printf("DeleteReview: delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review deleted successfully",
	})
}
