package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jkwan/gomall/internal/storage"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyExist = errors.New("user already exists")
)

const userColumns = `user_id, email, password_hash, created_date, last_modified_date`

type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (int64, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type PGRepo struct{ db storage.Querier }

func NewPGRepo(db storage.Querier) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, created_date, last_modified_date)
		VALUES ($1,$2,NOW(),NOW())
		RETURNING user_id
	`, email, passwordHash).Scan(&id)
	if err != nil {
		// UNIQUE(email)
		return 0, ErrAlreadyExist
	}
	return id, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id=$1`, id)
	return r.decode(row)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return r.decode(row)
}

func (r *PGRepo) decode(row storage.RowScanner) (*User, error) {
	var u User
	err := row.Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.CreatedDate, &u.LastModifiedDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
