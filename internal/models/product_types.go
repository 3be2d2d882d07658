package models

import "time"

// Product defines the struct for the 'products' table
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Discount    float64   `json:"discount" db:"discount"`
	Image       *string   `json:"image,omitempty" db:"image"`
	Stock       int       `json:"stock" db:"stock"`
	CategoryID  int64     `json:"categoryId" db:"category_id"`
	UserID      int64     `json:"userId" db:"user_id"` // The admin who listed it
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
