package domain

import (
	"time"
)

// Product represents a product in the catalog.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	CategoryID  string    `json:"category_id"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Images      []string  `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"max=5000"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Currency    string   `json:"currency" validate:"omitempty,len=3"`
	CategoryID  string   `json:"category_id" validate:"required,uuid"`
	CoverImage  string   `json:"cover_image" validate:"omitempty,url"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

// UpdateProductInput holds the parameters for updating a product.
type UpdateProductInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Price       *int64   `json:"price" validate:"omitempty,gt=0"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
	CoverImage  *string  `json:"cover_image" validate:"omitempty"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

// ProductFilter holds the filtering options for product listings.
type ProductFilter struct {
	Keyword    string
	CategoryID string
}
