package models

import "time"

// Valid order states. Creation always starts at PENDING; transitions
// are admin-only and (deliberately) not checked against a table, so
// any recognized state can be written over any other.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCanceled   = "CANCELED"
)

// IsValidOrderStatus reports whether s is one of the four recognized
// order states.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// Order is the model for the 'orders' table.
// Money invariant at creation: TotalAmount == PaidAmount + DueAmount,
// with PaidAmount starting at 0.
type Order struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	Status string `json:"status" db:"status"`

	// Customer / shipping info captured at checkout
	Name    string `json:"name" db:"name"`
	Address string `json:"address" db:"address"`
	City    string `json:"city" db:"city"`
	Zip     string `json:"zip" db:"zip"`
	Email   string `json:"email" db:"email"`
	Phone   string `json:"phone" db:"phone"`

	TotalAmount   float64 `json:"totalAmount" db:"total_amount"`
	PaidAmount    float64 `json:"paidAmount" db:"paid_amount"`
	DueAmount     float64 `json:"dueAmount" db:"due_amount"`
	PaymentStatus string  `json:"paymentStatus" db:"payment_status"` // UNPAID / PAID

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItem is the model for the 'order_items' table
type OrderItem struct {
	ID        int64     `json:"id" db:"id"`
	OrderID   int64     `json:"orderId" db:"order_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
