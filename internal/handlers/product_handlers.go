package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/middleware"
	"github.com/sajidhasan/ecomart-golang/internal/models"
)

//
// --- Product Handlers ---
//

const productColumns = "id, name, description, price, discount, image, stock, category_id, user_id, created_at, updated_at"

func scanProduct(row interface{ Scan(...interface{}) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Discount, &p.Image,
		&p.Stock, &p.CategoryID, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

var productSortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"id":        "id",
}

// GetAllProducts is the handler for GET /api/products
// Page + count share one read transaction so the pagination UI never
// sees a count from a different snapshot than the page.
func (h *Handlers) GetAllProducts(c *gin.Context) {
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

	pageQuery := "SELECT " + productColumns + " FROM products" +
		where + orderByClause(opts, productSortColumns, "createdAt") + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]interface{}{}, args...), opts.PageSize, opts.Offset())

	rows, err := tx.Query(pageQuery, pageArgs...)
	if err != nil {
		log.Printf("GetAllProducts: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		products = append(products, p)
	}
	rows.Close()

	var totalItems int
	if err := tx.QueryRow("SELECT COUNT(*) FROM products"+where, args...).Scan(&totalItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"products":   products,
		"totalItems": totalItems,
	})
}

// GetProductByID is the handler for GET /api/products/:productId
func (h *Handlers) GetProductByID(c *gin.Context) {
	productID := c.Param("productId")

	row := h.DB.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", productID)
	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// ProductInput is shared by create and update.
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Discount    float64 `json:"discount" binding:"gte=0"`
	Image       *string `json:"image"`
	Stock       int     `json:"stock" binding:"gte=0"`
	CategoryID  int64   `json:"categoryId" binding:"required,gte=1"`
	UserID      int64   `json:"userId" binding:"omitempty,gte=1"`
}

// CreateProduct is the handler for POST /api/products (Admin-Only)
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	// The listing is owned by the caller unless the payload says
	// otherwise (admins can list on behalf of another user).
	if input.UserID == 0 {
		user := middleware.CurrentUser(c)
		if user != nil {
			input.UserID = user.ID
		}
	}

	now := time.Now()
	query := `
		INSERT INTO products (name, description, price, discount, image, stock, category_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := h.DB.Exec(query,
		input.Name, input.Description, input.Price, input.Discount, input.Image,
		input.Stock, input.CategoryID, input.UserID, now, now,
	)
	if err != nil {
		log.Printf("CreateProduct: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	id, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"product": models.Product{
			ID:          id,
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Discount:    input.Discount,
			Image:       input.Image,
			Stock:       input.Stock,
			CategoryID:  input.CategoryID,
			UserID:      input.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	})
}

// UpdateProduct is the handler for PUT /api/products/:productId (Admin-Only)
func (h *Handlers) UpdateProduct(c *gin.Context) {
	productID := c.Param("productId")

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, discount = ?, image = ?, stock = ?, category_id = ?, updated_at = ?
		WHERE id = ?`
	result, err := h.DB.Exec(query,
		input.Name, input.Description, input.Price, input.Discount, input.Image,
		input.Stock, input.CategoryID, time.Now(), productID,
	)
	if err != nil {
		log.Printf("UpdateProduct: update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	row := h.DB.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", productID)
	product, err := scanProduct(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// DeleteProduct is the handler for DELETE /api/products/:productId (Admin-Only)
func (h *Handlers) DeleteProduct(c *gin.Context) {
	productID := c.Param("productId")

	result, err := h.DB.Exec("DELETE FROM products WHERE id = ?", productID)
	if err != nil {
		log.Printf("DeleteProduct: delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}
