package models

import "time"

// Payment is the model for the 'payments' table.
// Payments link to an order but are independent records: nothing
// forces their amounts to sum up against the order totals.
type Payment struct {
	ID            string    `json:"id" db:"id"` // UUID
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	Method        string    `json:"method" db:"method"`
	Amount        float64   `json:"amount" db:"amount"`
	OrderID       int64     `json:"orderId" db:"order_id"`
	TransactionID *string   `json:"transactionId,omitempty" db:"transaction_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
