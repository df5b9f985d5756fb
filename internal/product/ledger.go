package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// PGLedger is the stock read-modify-write path used by order placement.
// Both methods run inside the caller's transaction; LockForUpdate takes a
// row lock that the storage layer holds until that transaction ends.
type PGLedger struct{}

func NewPGLedger() PGLedger { return PGLedger{} }

// LockForUpdate reads the product row with SELECT ... FOR UPDATE. The
// returned stock is the only value a caller may use to validate
// sufficiency: a read outside the lock is subject to a lost-update race
// between concurrent buyers.
func (PGLedger) LockForUpdate(ctx context.Context, tx pgx.Tx, productID int64) (*Product, error) {
	row := tx.QueryRow(ctx, `SELECT `+productColumns+` FROM product WHERE product_id=$1 FOR UPDATE`, productID)
	p, err := decodeProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// UpdateStock writes the new stock value unconditionally. The caller must
// have computed newStock from the locked read in the same transaction.
func (PGLedger) UpdateStock(ctx context.Context, tx pgx.Tx, productID int64, newStock int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE product SET stock=$2, last_modified_date=NOW() WHERE product_id=$1
	`, productID, newStock)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
