package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/jkwan/gomall/internal/product"
	"github.com/jkwan/gomall/internal/storage"
	"github.com/jkwan/gomall/internal/user"
)

// InventoryLedger is the stock read-modify-write contract. LockForUpdate
// must hold an exclusive row lock until the transaction ends; the stock
// it returns is the only value valid for the sufficiency check.
type InventoryLedger interface {
	LockForUpdate(ctx context.Context, tx pgx.Tx, productID int64) (*product.Product, error)
	UpdateStock(ctx context.Context, tx pgx.Tx, productID int64, newStock int) error
}

// UserDirectory resolves buyers. Absence is reported as user.ErrNotFound.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// Service orchestrates checkout: validate the buyer, price every line
// against locked stock reads, persist header and items, commit — one
// transaction, no partial effects.
type Service struct {
	db     storage.TxBeginner
	users  UserDirectory
	ledger InventoryLedger
	repo   Repository
}

func NewService(db storage.TxBeginner, users UserDirectory, ledger InventoryLedger, repo Repository) *Service {
	return &Service{db: db, users: users, ledger: ledger, repo: repo}
}

// PlaceOrder runs the checkout transaction and returns the generated
// order id. Buy items are locked in ascending product id order so that
// concurrent checkouts over overlapping product sets acquire locks in a
// total order and cannot deadlock. An empty buy list produces an empty
// order with total 0.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, buyItems []BuyItem) (int64, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			log.Printf("[order] checkout rejected: user %d does not exist", userID)
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	sorted := append([]BuyItem(nil), buyItems...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var totalAmount int64
	items := make([]Item, 0, len(sorted))
	for _, buy := range sorted {
		p, err := s.ledger.LockForUpdate(ctx, tx, buy.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				log.Printf("[order] checkout rejected: product %d does not exist", buy.ProductID)
				return 0, fmt.Errorf("%w: product %d", ErrProductNotFound, buy.ProductID)
			}
			return 0, err
		}
		if p.Stock < buy.Quantity {
			log.Printf("[order] checkout rejected: product %d stock %d < requested %d",
				p.ProductID, p.Stock, buy.Quantity)
			return 0, &InsufficientStockError{
				ProductID: p.ProductID,
				Requested: buy.Quantity,
				Available: p.Stock,
			}
		}

		// decrement while still holding the lock so no other
		// transaction can observe the stale stock value
		if err := s.ledger.UpdateStock(ctx, tx, p.ProductID, p.Stock-buy.Quantity); err != nil {
			return 0, err
		}

		amount := int64(buy.Quantity) * p.Price
		totalAmount += amount
		items = append(items, Item{
			ProductID: p.ProductID,
			Quantity:  buy.Quantity,
			Amount:    amount,
		})
	}

	orderID, err := s.repo.CreateOrder(ctx, tx, userID, totalAmount)
	if err != nil {
		return 0, err
	}
	if err := s.repo.CreateOrderItems(ctx, tx, orderID, items); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	log.Printf("[order] order %d placed: user=%d items=%d total=%d", orderID, userID, len(items), totalAmount)
	return orderID, nil
}

// GetOrderByID hydrates a header with its full ordered item list.
func (s *Service) GetOrderByID(ctx context.Context, orderID int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.OrderItemList = items
	return o, nil
}

// ListOrders returns one page of hydrated orders plus the total count of
// the filtered set. Items are fetched per order; fine at this scale.
func (s *Service) ListOrders(ctx context.Context, qp QueryParams) ([]Order, int, error) {
	orders, err := s.repo.List(ctx, qp)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, qp)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		items, err := s.repo.GetItemsByOrderID(ctx, orders[i].OrderID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].OrderItemList = items
	}
	return orders, total, nil
}
