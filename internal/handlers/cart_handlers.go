package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/middleware"
)

//
// --- Cart Handlers (Login Required) ---
//

// getOrCreateCartID finds a user's cart or creates one.
// This is a helper function to be used within a transaction.
func (h *Handlers) getOrCreateCartID(tx *sql.Tx, userID int64) (int64, error) {
	var cartID int64

	// 1. Try to find an existing cart
	err := tx.QueryRow("SELECT id FROM carts WHERE user_id = ?", userID).Scan(&cartID)
	if err == nil {
		return cartID, nil // Found it
	}

	// 2. If no cart exists (sql.ErrNoRows), create one
	if err == sql.ErrNoRows {
		now := time.Now()
		result, err := tx.Exec("INSERT INTO carts (user_id, created_at, updated_at) VALUES (?, ?, ?)", userID, now, now)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}

	// 3. A real database error occurred
	return 0, err
}

// CartItemResponse is one line of the GetCart payload.
type CartItemResponse struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
	Stock     int     `json:"stock"`
}

// GetCart is the handler for GET /api/cart
// It retrieves the full contents of the caller's cart with live
// product prices (cart lines never store a price).
func (h *Handlers) GetCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: You must authenticate to access this resource."})
		return
	}

	// 1. --- Find the Cart ---
	var cartID int64
	err := h.DB.QueryRow("SELECT id FROM carts WHERE user_id = ?", user.ID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			// No cart yet. Return an empty cart response.
			c.JSON(http.StatusOK, gin.H{
				"success":  true,
				"items":    []CartItemResponse{},
				"subtotal": 0.0,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	// 2. --- Fetch Items With Live Prices ---
	query := `
		SELECT ci.product_id, p.name, p.price, ci.quantity, p.stock
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = ?`
	rows, err := h.DB.Query(query, cartID)
	if err != nil {
		log.Printf("GetCart: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer rows.Close()

	items := []CartItemResponse{}
	var subtotal float64
	for rows.Next() {
		var item CartItemResponse
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Quantity, &item.Stock); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		item.LineTotal = item.Price * float64(item.Quantity)
		subtotal += item.LineTotal
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"items":    items,
		"subtotal": subtotal,
	})
}

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// AddToCart is the handler for POST /api/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: You must authenticate to access this resource."})
		return
	}

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer tx.Rollback()

	cartID, err := h.getOrCreateCartID(tx, user.ID)
	if err != nil {
		log.Printf("AddToCart: cart init failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	// The product has to exist; adding is allowed regardless of stock,
	// checkout does not reserve stock either.
	var exists int64
	err = tx.QueryRow("SELECT id FROM products WHERE id = ?", input.ProductID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	// Insert or Update logic (Upsert): quantities accumulate.
	_, err = tx.Exec(`
		INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = NOW()`,
		cartID, input.ProductID, input.Quantity)
	if err != nil {
		log.Printf("AddToCart: upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Item added to cart",
	})
}

// UpdateCartItemInput sets an absolute quantity for a cart line.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItem is the handler for PUT /api/cart/items/:productId
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: You must authenticate to access this resource."})
		return
	}
	productID := c.Param("productId")

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var cartID int64
	err := h.DB.QueryRow("SELECT id FROM carts WHERE user_id = ?", user.ID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	result, err := h.DB.Exec(
		"UPDATE cart_items SET quantity = ?, updated_at = ? WHERE cart_id = ? AND product_id = ?",
		input.Quantity, time.Now(), cartID, productID,
	)
	if err != nil {
		log.Printf("UpdateCartItem: update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart item updated",
	})
}

// DeleteCartItem is the handler for DELETE /api/cart/items/:productId
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: You must authenticate to access this resource."})
		return
	}
	productID := c.Param("productId")

	var cartID int64
	err := h.DB.QueryRow("SELECT id FROM carts WHERE user_id = ?", user.ID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	result, err := h.DB.Exec("DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?", cartID, productID)
	if err != nil {
		log.Printf("DeleteCartItem: delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item removed from cart",
	})
}
