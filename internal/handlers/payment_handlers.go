package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sajidhasan/ecomart-golang/internal/models"
)

//
// --- Payment Handlers (Admin-Only) ---
//

const paymentColumns = "id, name, email, phone, method, amount, order_id, transaction_id, created_at, updated_at"

func scanPayment(row interface{ Scan(...interface{}) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.Method, &p.Amount,
		&p.OrderID, &p.TransactionID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

var paymentSortColumns = map[string]string{
	"createdAt": "created_at",
	"email":     "email",
	"amount":    "amount",
	"method":    "method",
}

// GetAllPayments is the handler for GET /api/payments (Admin-Only)
func (h *Handlers) GetAllPayments(c *gin.Context) {
	opts := parseListOptions(c, "email", 10)

	where := ""
	var args []interface{}
	if opts.Search != "" {
		where = " WHERE (name LIKE ? OR email LIKE ? OR method LIKE ?)"
		term := "%" + opts.Search + "%"
		args = append(args, term, term, term)
	}

	tx, err := h.DB.BeginTx(c, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer tx.Rollback()

	pageQuery := "SELECT " + paymentColumns + " FROM payments" +
		where + orderByClause(opts, paymentSortColumns, "email") + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]interface{}{}, args...), opts.PageSize, opts.Offset())

	rows, err := tx.Query(pageQuery, pageArgs...)
	if err != nil {
		log.Printf("GetAllPayments: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		payments = append(payments, p)
	}
	rows.Close()

	var totalItems int
	if err := tx.QueryRow("SELECT COUNT(*) FROM payments"+where, args...).Scan(&totalItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"payments":   payments,
		"totalItems": totalItems,
	})
}

// GetPaymentByID is the handler for GET /api/payments/:paymentId (Admin-Only)
func (h *Handlers) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("paymentId")

	row := h.DB.QueryRow("SELECT "+paymentColumns+" FROM payments WHERE id = ?", paymentID)
	payment, err := scanPayment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": payment,
	})
}

// PaymentInput is shared by create and update.
type PaymentInput struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         *string `json:"phone"`
	Method        string  `json:"method" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	OrderID       int64   `json:"orderId" binding:"required"`
	TransactionID *string `json:"transactionId"`
}

// CreatePayment is the handler for POST /api/payments (Admin-Only)
// Payments get a UUID primary key so records created by an external
// gateway import can keep their identity.
func (h *Handlers) CreatePayment(c *gin.Context) {
	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	now := time.Now()
	id := uuid.New().String()
	query := `
		INSERT INTO payments (id, name, email, phone, method, amount, order_id, transaction_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := h.DB.Exec(query,
		id, input.Name, input.Email, input.Phone, input.Method, input.Amount,
		input.OrderID, input.TransactionID, now, now,
	)
	if err != nil {
		log.Printf("CreatePayment: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"payment": models.Payment{
			ID:            id,
			Name:          input.Name,
			Email:         input.Email,
			Phone:         input.Phone,
			Method:        input.Method,
			Amount:        input.Amount,
			OrderID:       input.OrderID,
			TransactionID: input.TransactionID,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	})
}

// UpdatePayment is the handler for PUT /api/payments/:paymentId (Admin-Only)
func (h *Handlers) UpdatePayment(c *gin.Context) {
	paymentID := c.Param("paymentId")

	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	// Check existence first so a bad id is a clean 404.
	var exists string
	err := h.DB.QueryRow("SELECT id FROM payments WHERE id = ?", paymentID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	query := `
		UPDATE payments
		SET name = ?, email = ?, phone = ?, method = ?, amount = ?, order_id = ?, transaction_id = ?, updated_at = ?
		WHERE id = ?`
	_, err = h.DB.Exec(query,
		input.Name, input.Email, input.Phone, input.Method, input.Amount,
		input.OrderID, input.TransactionID, time.Now(), paymentID,
	)
	if err != nil {
		log.Printf("UpdatePayment: update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	row := h.DB.QueryRow("SELECT "+paymentColumns+" FROM payments WHERE id = ?", paymentID)
	payment, err := scanPayment(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": payment,
	})
}

// DeletePayment is the handler for DELETE /api/payments/:paymentId (Admin-Only)
func (h *Handlers) DeletePayment(c *gin.Context) {
	paymentID := c.Param("paymentId")

	result, err := h.DB.Exec("DELETE FROM payments WHERE id = ?", paymentID)
	if err != nil {
		log.Printf("DeletePayment: delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment deleted successfully",
	})
}
