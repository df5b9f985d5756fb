package cart

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jkwan/gomall/internal/storage"
)

var ErrNotFound = errors.New("cart item not found")

const cartItemColumns = `ci.cart_item_id, ci.user_id, ci.product_id, ci.quantity,
	ci.created_date, ci.last_modified_date, p.product_name, p.image_url, p.price`

const cartItemJoin = ` FROM cart_item ci JOIN product p ON ci.product_id = p.product_id`

type Repository interface {
	Upsert(ctx context.Context, userID, productID int64, quantity int) (int64, error)
	GetByID(ctx context.Context, cartItemID int64) (*CartItem, error)
	ListByUser(ctx context.Context, userID int64) ([]CartItem, error)
	UpdateQuantity(ctx context.Context, userID, cartItemID int64, quantity int) error
	Delete(ctx context.Context, userID, cartItemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type PGRepo struct{ db storage.Querier }

func NewPGRepo(db storage.Querier) *PGRepo { return &PGRepo{db: db} }

// Upsert inserts a cart line or, when the user already has one for the
// product, adds the quantity onto it.
func (r *PGRepo) Upsert(ctx context.Context, userID, productID int64, quantity int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO cart_item (user_id, product_id, quantity, created_date, last_modified_date)
		VALUES ($1,$2,$3,NOW(),NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_item.quantity + EXCLUDED.quantity, last_modified_date = NOW()
		RETURNING cart_item_id
	`, userID, productID, quantity).Scan(&id)
	return id, err
}

func (r *PGRepo) GetByID(ctx context.Context, cartItemID int64) (*CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+cartItemColumns+cartItemJoin+` WHERE ci.cart_item_id=$1`, cartItemID)
	ci, err := decodeCartItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ci, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID int64) ([]CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+cartItemColumns+cartItemJoin+` WHERE ci.user_id=$1 ORDER BY ci.cart_item_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CartItem{}
	for rows.Next() {
		ci, err := decodeCartItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ci)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateQuantity(ctx context.Context, userID, cartItemID int64, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE cart_item SET quantity=$3, last_modified_date=NOW()
		WHERE cart_item_id=$2 AND user_id=$1
	`, userID, cartItemID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, cartItemID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM cart_item WHERE cart_item_id=$2 AND user_id=$1`, userID, cartItemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Clear(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM cart_item WHERE user_id=$1`, userID)
	return err
}
