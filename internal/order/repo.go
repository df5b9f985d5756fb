package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jkwan/gomall/internal/listing"
	"github.com/jkwan/gomall/internal/storage"
)

const orderColumns = `order_id, user_id, total_amount, created_date, last_modified_date`

type Repository interface {
	// CreateOrder and CreateOrderItems run inside the checkout
	// transaction; everything else reads with the pool.
	CreateOrder(ctx context.Context, tx pgx.Tx, userID, totalAmount int64) (int64, error)
	CreateOrderItems(ctx context.Context, tx pgx.Tx, orderID int64, items []Item) error
	GetByID(ctx context.Context, orderID int64) (*Order, error)
	GetItemsByOrderID(ctx context.Context, orderID int64) ([]Item, error)
	List(ctx context.Context, qp QueryParams) ([]Order, error)
	Count(ctx context.Context, qp QueryParams) (int, error)
}

type PGRepo struct{ db storage.Querier }

func NewPGRepo(db storage.Querier) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) CreateOrder(ctx context.Context, tx pgx.Tx, userID, totalAmount int64) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_amount, created_date, last_modified_date)
		VALUES ($1,$2,NOW(),NOW())
		RETURNING order_id
	`, userID, totalAmount).Scan(&id)
	return id, err
}

func (r *PGRepo) CreateOrderItems(ctx context.Context, tx pgx.Tx, orderID int64, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, it := range items {
		b.Queue(`
			INSERT INTO order_item (order_id, product_id, quantity, amount)
			VALUES ($1,$2,$3,$4)
		`, orderID, it.ProductID, it.Quantity, it.Amount)
	}
	return tx.SendBatch(ctx, b).Close()
}

func (r *PGRepo) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id=$1`, orderID)
	o, err := decodeOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

// GetItemsByOrderID returns the order's lines joined with the catalog for
// the current display name and image. The join is read convenience only;
// quantity and amount come from the order_item snapshot.
func (r *PGRepo) GetItemsByOrderID(ctx context.Context, orderID int64) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT oi.order_item_id, oi.order_id, oi.product_id, oi.quantity, oi.amount,
		       p.product_name, p.image_url
		FROM order_item oi
		JOIN product p ON oi.product_id = p.product_id
		WHERE oi.order_id=$1
		ORDER BY oi.order_item_id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		it, err := decodeItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *PGRepo) buildQuery(qp QueryParams) (*listing.Query, error) {
	q := listing.NewQuery(
		`SELECT `+orderColumns+` FROM orders`,
		`SELECT count(*) FROM orders`,
		"order_id",
	)
	if qp.UserID != nil {
		q.Filter("user_id = ?", *qp.UserID)
	}
	// newest first, order_id tie-break keeps pages stable
	if err := q.SortBy("created_date", "desc", map[string]string{"created_date": "created_date"}); err != nil {
		return nil, err
	}
	if err := q.Paginate(qp.Limit, qp.Offset); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *PGRepo) List(ctx context.Context, qp QueryParams) ([]Order, error) {
	q, err := r.buildQuery(qp)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sql, args := q.SelectSQL()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := decodeOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context, qp QueryParams) (int, error) {
	q, err := r.buildQuery(qp)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sql, args := q.CountSQL()
	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
