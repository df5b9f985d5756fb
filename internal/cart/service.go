package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jkwan/gomall/internal/product"
)

// Service validates products before they enter a cart and answers with
// the joined cart line for responses.
type Service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) *Service {
	return &Service{repo: repo, products: products}
}

var ErrProductNotFound = errors.New("product not found")

func (s *Service) AddCartItem(ctx context.Context, userID int64, req CreateCartItemRequest) (*CartItem, error) {
	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, req.ProductID)
		}
		return nil, err
	}
	id, err := s.repo.Upsert(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetCartItems(ctx context.Context, userID int64) ([]CartItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) UpdateCartItem(ctx context.Context, userID, cartItemID int64, quantity int) (*CartItem, error) {
	if err := s.repo.UpdateQuantity(ctx, userID, cartItemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cartItemID)
}

func (s *Service) DeleteCartItem(ctx context.Context, userID, cartItemID int64) error {
	return s.repo.Delete(ctx, userID, cartItemID)
}

func (s *Service) ClearCart(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}
