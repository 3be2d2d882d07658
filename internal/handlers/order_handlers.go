package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/middleware"
	"github.com/sajidhasan/ecomart-golang/internal/models"
)

//
// --- Order Handlers ---
//

// OrderItemInput is one requested line in a checkout payload.
type OrderItemInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gte=1"`
}

// CreateOrderInput is the JSON for POST /api/orders.
type CreateOrderInput struct {
	Name    string           `json:"name" binding:"required"`
	Address string           `json:"address" binding:"required"`
	City    string           `json:"city" binding:"required"`
	Zip     string           `json:"zip" binding:"required"`
	Email   string           `json:"email" binding:"required,email"`
	Phone   string           `json:"phone" binding:"required"`
	Items   []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// computeOrderTotal resolves the requested items against the prices
// read from the database and returns the order total plus the items
// that actually resolved. Items referencing an unknown productId are
// silently dropped — that is the documented contract, the total only
// ever reflects products that exist at checkout time. Prices always
// come from priceByID, never from the client.
func computeOrderTotal(items []OrderItemInput, priceByID map[int64]float64) (float64, []OrderItemInput) {
	var total float64
	resolved := make([]OrderItemInput, 0, len(items))

	for _, item := range items {
		price, ok := priceByID[item.ProductID]
		if !ok {
			continue
		}
		total += price * float64(item.Quantity)
		resolved = append(resolved, item)
	}

	return total, resolved
}

// fetchProductPrices does one batched lookup of the requested product
// IDs and returns a price map. Missing IDs are simply absent.
func (h *Handlers) fetchProductPrices(items []OrderItemInput) (map[int64]float64, error) {
	placeholders := make([]string, len(items))
	args := make([]interface{}, len(items))
	for i, item := range items {
		placeholders[i] = "?"
		args[i] = item.ProductID
	}

	query := "SELECT id, price FROM products WHERE id IN (" + strings.Join(placeholders, ", ") + ")"
	rows, err := h.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	priceByID := make(map[int64]float64, len(items))
	for rows.Next() {
		var id int64
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		priceByID[id] = price
	}
	return priceByID, rows.Err()
}

// CreateOrder is the handler for POST /api/orders (Login Required)
//
// The write sequence is strictly ordered: resolve products, compute
// the total from live prices, insert the header, insert the items,
// then re-read everything. The response is built from that final
// read, not from the in-memory values, so the caller sees exactly
// what was made durable.
func (h *Handlers) CreateOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: You must authenticate to access this resource."})
		return
	}

	// 1. --- Bind & Validate JSON ---
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	// 2. --- Resolve Products (one batched lookup) ---
	priceByID, err := h.fetchProductPrices(input.Items)
	if err != nil {
		log.Printf("CreateOrder: product lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	// 3. --- Compute Total From Live Prices ---
	total, resolvedItems := computeOrderTotal(input.Items, priceByID)

	// 4 + 5. --- Persist Header, Then Items ---
	var orderID int64
	if h.Config.OrderAtomicItems {
		orderID, err = h.createOrderAtomic(user.ID, input, total, resolvedItems)
	} else {
		orderID, err = h.createOrderLegacy(user.ID, input, total, resolvedItems)
	}
	if err != nil {
		log.Printf("CreateOrder: write failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	// 6. --- Reconciled Read ---
	order, items, orderUser, err := h.fetchOrderWithItems(orderID)
	if err != nil {
		log.Printf("CreateOrder: reconciling read failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
		"items":   items,
		"user":    orderUser,
	})
}

// insertOrderHeader writes the order row. PENDING / UNPAID, nothing
// paid yet, so due == total.
func insertOrderHeader(q Execer, userID int64, input CreateOrderInput, total float64, now time.Time) (int64, error) {
	query := `
		INSERT INTO orders
			(user_id, name, address, city, zip, email, phone,
			 status, total_amount, paid_amount, due_amount, payment_status,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, 'UNPAID', ?, ?)`
	result, err := q.Exec(query,
		userID, input.Name, input.Address, input.City, input.Zip, input.Email, input.Phone,
		models.OrderStatusPending, total, total, now, now,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// createOrderLegacy reproduces the historical write pattern: the
// header insert and each item insert are separate statements with no
// transaction around them. If an item insert fails partway, the
// header and the earlier items stay in the database and the caller
// gets a 500. The reconciling read in CreateOrder is what surfaces
// such a partial order.
func (h *Handlers) createOrderLegacy(userID int64, input CreateOrderInput, total float64, items []OrderItemInput) (int64, error) {
	now := time.Now()

	orderID, err := insertOrderHeader(h.DB, userID, input, total, now)
	if err != nil {
		return 0, err
	}

	itemQuery := "INSERT INTO order_items (order_id, product_id, quantity, created_at) VALUES (?, ?, ?, ?)"
	for _, item := range items {
		if _, err := h.DB.Exec(itemQuery, orderID, item.ProductID, item.Quantity, now); err != nil {
			return 0, err
		}
	}

	return orderID, nil
}

// createOrderAtomic is the hardened mode: header and items commit or
// roll back together.
func (h *Handlers) createOrderAtomic(userID int64, input CreateOrderInput, total float64, items []OrderItemInput) (int64, error) {
	tx, err := h.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // Safety net

	now := time.Now()
	orderID, err := insertOrderHeader(tx, userID, input, total, now)
	if err != nil {
		return 0, err
	}

	itemQuery := "INSERT INTO order_items (order_id, product_id, quantity, created_at) VALUES (?, ?, ?, ?)"
	for _, item := range items {
		if _, err := tx.Exec(itemQuery, orderID, item.ProductID, item.Quantity, now); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

// fetchOrderWithItems re-reads an order together with its items and
// the owning user.
func (h *Handlers) fetchOrderWithItems(orderID int64) (models.Order, []models.OrderItem, gin.H, error) {
	var order models.Order
	query := `
		SELECT id, user_id, status, name, address, city, zip, email, phone,
		       total_amount, paid_amount, due_amount, payment_status, created_at, updated_at
		FROM orders WHERE id = ?`
	err := h.DB.QueryRow(query, orderID).Scan(
		&order.ID, &order.UserID, &order.Status,
		&order.Name, &order.Address, &order.City, &order.Zip, &order.Email, &order.Phone,
		&order.TotalAmount, &order.PaidAmount, &order.DueAmount, &order.PaymentStatus,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return models.Order{}, nil, nil, err
	}

	rows, err := h.DB.Query(
		"SELECT id, order_id, product_id, quantity, created_at FROM order_items WHERE order_id = ?",
		orderID,
	)
	if err != nil {
		return models.Order{}, nil, nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.CreatedAt); err != nil {
			return models.Order{}, nil, nil, err
		}
		items = append(items, item)
	}

	var userName, userEmail string
	err = h.DB.QueryRow("SELECT name, email FROM users WHERE id = ?", order.UserID).
		Scan(&userName, &userEmail)
	if err != nil {
		return models.Order{}, nil, nil, err
	}
	orderUser := gin.H{"id": order.UserID, "name": userName, "email": userEmail}

	return order, items, orderUser, nil
}

// orderSortColumns is the allowlist for ?sortBy= on GET /api/orders.
var orderSortColumns = map[string]string{
	"createdAt":     "created_at",
	"status":        "status",
	"totalAmount":   "total_amount",
	"paymentStatus": "payment_status",
	"id":            "id",
}

// GetAllOrders is the handler for GET /api/orders
// The data page and the total count run inside ONE read transaction
// so totalItems always matches the page's filter at the same instant.
func (h *Handlers) GetAllOrders(c *gin.Context) {
	opts := parseListOptions(c, "createdAt", 5)

	// Search matches the order id (when numeric) OR a status substring.
	where := ""
	var args []interface{}
	if opts.Search != "" {
		if id, err := strconv.ParseInt(opts.Search, 10, 64); err == nil {
			where = " WHERE (id = ? OR status LIKE ?)"
			args = append(args, id, "%"+opts.Search+"%")
		} else {
			where = " WHERE status LIKE ?"
			args = append(args, "%"+opts.Search+"%")
		}
	}

	tx, err := h.DB.BeginTx(c, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer tx.Rollback()

	pageQuery := `
		SELECT id, user_id, status, name, address, city, zip, email, phone,
		       total_amount, paid_amount, due_amount, payment_status, created_at, updated_at
		FROM orders` + where + orderByClause(opts, orderSortColumns, "createdAt") + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]interface{}{}, args...), opts.PageSize, opts.Offset())

	rows, err := tx.Query(pageQuery, pageArgs...)
	if err != nil {
		log.Printf("GetAllOrders: page query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Status,
			&o.Name, &o.Address, &o.City, &o.Zip, &o.Email, &o.Phone,
			&o.TotalAmount, &o.PaidAmount, &o.DueAmount, &o.PaymentStatus,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		orders = append(orders, o)
	}
	rows.Close()

	// Same predicate, same transaction, same snapshot.
	var totalItems int
	if err := tx.QueryRow("SELECT COUNT(*) FROM orders"+where, args...).Scan(&totalItems); err != nil {
		log.Printf("GetAllOrders: count query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"orders":     orders,
		"totalItems": totalItems,
	})
}

// GetOrderByID is the handler for GET /api/orders/:orderId
func (h *Handlers) GetOrderByID(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	order, items, orderUser, err := h.fetchOrderWithItems(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		log.Printf("GetOrderByID: fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"items":   items,
		"user":    orderUser,
	})
}

// UpdateOrderInput carries the new status for an order.
type UpdateOrderInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrder is the handler for PUT /api/orders/:orderId (Admin-Only)
// The new status only has to be one of the recognized states; it is
// written unconditionally, there is no transition table. DELIVERED
// straight from PENDING is allowed.
func (h *Handlers) UpdateOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order status is required"})
		return
	}
	if !models.IsValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order status"})
		return
	}

	// Make sure the order exists before updating it.
	var exists int64
	err = h.DB.QueryRow("SELECT id FROM orders WHERE id = ?", orderID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	_, err = h.DB.Exec("UPDATE orders SET status = ?, updated_at = ? WHERE id = ?", input.Status, time.Now(), orderID)
	if err != nil {
		log.Printf("UpdateOrder: update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	order, items, orderUser, err := h.fetchOrderWithItems(orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"items":   items,
		"user":    orderUser,
	})
}

// DeleteOrder is the handler for DELETE /api/orders/:orderId (Admin-Only)
// The order_items rows go away via the foreign key's ON DELETE
// CASCADE; referential cleanup is the database's job, not ours.
func (h *Handlers) DeleteOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	result, err := h.DB.Exec("DELETE FROM orders WHERE id = ?", orderID)
	if err != nil {
		log.Printf("DeleteOrder: delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted successfully",
	})
}
