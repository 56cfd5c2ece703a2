package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products on the menu. IDs are assigned by the database
// and never change after creation.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"category_name" db:"category_name"`
}

// Product is a single menu item. CategoryName is a read-time projection
// resolved by joining against the category table; it is never stored.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	UUID         uuid.UUID `json:"uuid" db:"uuid"`
	Name         string    `json:"name" db:"name"`
	Info         string    `json:"info" db:"info"`
	Price        float64   `json:"price" db:"price"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	CategoryID   int64     `json:"category_id" db:"category_id"`
	CategoryName string    `json:"category_name,omitempty" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
