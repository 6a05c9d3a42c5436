package model

import (
	"time"
)

// Product is one row of the price list. InPrice, Category and Description are
// nullable in the schema, hence the pointers.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	InPrice     *float64  `json:"in_price"`
	Price       float64   `json:"price"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	InStock     int       `json:"in_stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
