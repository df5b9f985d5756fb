// Package order implements order persistence and the checkout
// transaction that converts a list of buy items into a committed order.
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/jkwan/gomall/internal/storage"
)

var (
	// ErrNotFound: no such order.
	ErrNotFound = errors.New("order not found")
	// ErrUserNotFound: checkout rejected before any lock is taken.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound: a buy item referenced a product that does not
	// exist; the whole checkout is rolled back.
	ErrProductNotFound = errors.New("product not found")
)

// InsufficientStockError aborts a checkout when the locked stock read
// cannot cover the requested quantity.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

type Order struct {
	OrderID          int64     `json:"orderId"`
	UserID           int64     `json:"userId"`
	TotalAmount      int64     `json:"totalAmount"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
	OrderItemList    []Item    `json:"orderItemList"`
}

// Item is one line of a committed order. Amount is the price snapshot
// taken at order time; later catalog price changes never alter it.
// ProductName and ImageURL are joined in from the catalog for display.
type Item struct {
	OrderItemID int64  `json:"orderItemId"`
	OrderID     int64  `json:"orderId"`
	ProductID   int64  `json:"productId"`
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"amount"`
	ProductName string `json:"productName"`
	ImageURL    string `json:"imageUrl"`
}

// BuyItem is untrusted caller input. It carries no price; the unit price
// is always re-read from the catalog inside the checkout transaction.
type BuyItem struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"  binding:"required,min=1"`
}

// CreateOrderRequest payload of POST /users/{userId}/orders.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	BuyItemList []BuyItem `json:"buyItemList" binding:"dive"`
}

// QueryParams describes one order listing request. Results are always
// newest-first; the caller only controls the filter and the page.
type QueryParams struct {
	UserID *int64
	Limit  int
	Offset int
}

func decodeOrder(row storage.RowScanner) (*Order, error) {
	var o Order
	if err := row.Scan(&o.OrderID, &o.UserID, &o.TotalAmount, &o.CreatedDate, &o.LastModifiedDate); err != nil {
		return nil, err
	}
	return &o, nil
}

func decodeItem(row storage.RowScanner) (*Item, error) {
	var it Item
	if err := row.Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.Quantity,
		&it.Amount, &it.ProductName, &it.ImageURL); err != nil {
		return nil, err
	}
	return &it, nil
}
