// Package product provides the catalog model, its PostgreSQL repository
// and the inventory ledger used by order placement.
package product

import (
	"fmt"
	"time"

	"github.com/jkwan/gomall/internal/storage"
)

// Category is the product category enum as stored in the category column.
type Category string

const (
	CategoryFood  Category = "FOOD"
	CategoryCar   Category = "CAR"
	CategoryEBook Category = "E_BOOK"
)

// ParseCategory maps a stored or caller-supplied value onto the enum.
// Unknown values are an explicit error, never a silent default.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryFood, CategoryCar, CategoryEBook:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown product category %q", s)
}

type Product struct {
	ProductID        int64     `json:"productId"`
	ProductName      string    `json:"productName"`
	Category         Category  `json:"category"`
	ImageURL         string    `json:"imageUrl"`
	Price            int64     `json:"price"` // smallest currency unit
	Stock            int       `json:"stock"`
	Description      string    `json:"description,omitempty"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
}

// CreateProductRequest payload for catalog creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	ProductName string `json:"productName" binding:"required" example:"Mechanical Keyboard"`
	Category    string `json:"category"    binding:"required" example:"E_BOOK"`
	ImageURL    string `json:"imageUrl"    example:"https://cdn.example.com/kb.png"`
	Price       int64  `json:"price"       binding:"required,min=1" example:"19990"`
	Stock       int    `json:"stock"       binding:"min=0" example:"10"`
	Description string `json:"description" example:"RGB 60%"`
}

// QueryParams describes one catalog listing request.
type QueryParams struct {
	Category *Category
	Search   *string
	OrderBy  string
	Sort     string
	Limit    int
	Offset   int
}

// decodeProduct maps one result row onto a Product. Column order must be
// productColumns.
func decodeProduct(row storage.RowScanner) (*Product, error) {
	var p Product
	var category string
	if err := row.Scan(&p.ProductID, &p.ProductName, &category, &p.ImageURL,
		&p.Price, &p.Stock, &p.Description, &p.CreatedDate, &p.LastModifiedDate); err != nil {
		return nil, err
	}
	c, err := ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", p.ProductID, err)
	}
	p.Category = c
	return &p, nil
}
