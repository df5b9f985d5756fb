// Package cart keeps per-user cart lines. Adding a product already in
// the cart merges into the existing line instead of creating a second
// one.
package cart

import (
	"time"

	"github.com/jkwan/gomall/internal/storage"
)

// CartItem is one cart line joined with the catalog for display.
// TotalPrice is computed from the current unit price; unlike an order
// item it is not a snapshot.
type CartItem struct {
	CartItemID       int64     `json:"cartItemId"`
	UserID           int64     `json:"userId"`
	ProductID        int64     `json:"productId"`
	Quantity         int       `json:"quantity"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
	ProductName      string    `json:"productName"`
	ImageURL         string    `json:"imageUrl"`
	UnitPrice        int64     `json:"unitPrice"`
	TotalPrice       int64     `json:"totalPrice"`
}

// CreateCartItemRequest payload of POST /users/{userId}/cart.
// swagger:model CreateCartItemRequest
type CreateCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"  binding:"required,min=1"`
}

// UpdateCartItemRequest payload of PUT /users/{userId}/cart/{cartItemId}.
// swagger:model UpdateCartItemRequest
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func decodeCartItem(row storage.RowScanner) (*CartItem, error) {
	var ci CartItem
	if err := row.Scan(&ci.CartItemID, &ci.UserID, &ci.ProductID, &ci.Quantity,
		&ci.CreatedDate, &ci.LastModifiedDate, &ci.ProductName, &ci.ImageURL, &ci.UnitPrice); err != nil {
		return nil, err
	}
	ci.TotalPrice = int64(ci.Quantity) * ci.UnitPrice
	return &ci, nil
}
