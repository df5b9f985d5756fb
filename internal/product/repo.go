package product

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jkwan/gomall/internal/listing"
	"github.com/jkwan/gomall/internal/storage"
)

var ErrNotFound = errors.New("product not found")

const productColumns = `product_id, product_name, category, image_url, price, stock, description, created_date, last_modified_date`

// Sortable is the allow-list of orderBy values accepted on GET /products.
var Sortable = map[string]string{
	"product_id":         "product_id",
	"product_name":       "product_name",
	"price":              "price",
	"stock":              "stock",
	"created_date":       "created_date",
	"last_modified_date": "last_modified_date",
}

type Repository interface {
	Create(ctx context.Context, p *Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, qp QueryParams) ([]Product, error)
	Count(ctx context.Context, qp QueryParams) (int, error)
}

type PGRepo struct{ db storage.Querier }

func NewPGRepo(db storage.Querier) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, p *Product) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO product (product_name, category, image_url, price, stock, description, created_date, last_modified_date)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
		RETURNING product_id
	`, p.ProductName, p.Category, p.ImageURL, p.Price, p.Stock, p.Description).Scan(&id)
	return id, err
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM product WHERE product_id=$1`, id)
	p, err := decodeProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE product
		SET product_name=$2, category=$3, image_url=$4, price=$5, stock=$6,
		    description=$7, last_modified_date=NOW()
		WHERE product_id=$1
	`, p.ProductID, p.ProductName, p.Category, p.ImageURL, p.Price, p.Stock, p.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM product WHERE product_id=$1`, id)
	return err
}

func (r *PGRepo) buildQuery(qp QueryParams) (*listing.Query, error) {
	q := listing.NewQuery(
		`SELECT `+productColumns+` FROM product`,
		`SELECT count(*) FROM product`,
		"product_id",
	)
	if qp.Category != nil {
		q.Filter("category = ?", string(*qp.Category))
	}
	if qp.Search != nil {
		q.Filter("product_name ILIKE ?", "%"+*qp.Search+"%")
	}
	if err := q.SortBy(qp.OrderBy, qp.Sort, Sortable); err != nil {
		return nil, err
	}
	if err := q.Paginate(qp.Limit, qp.Offset); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *PGRepo) List(ctx context.Context, qp QueryParams) ([]Product, error) {
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

	out := []Product{}
	for rows.Next() {
		p, err := decodeProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
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
