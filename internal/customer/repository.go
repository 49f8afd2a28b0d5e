package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
)

type Repository interface {
	Create(ctx context.Context, c Input) (int64, error)
	Get(ctx context.Context, id int64) (*Customer, error)
	Update(ctx context.Context, id int64, c Input) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// Create inserts a customer and returns its id. Constraint failures come
// back as *db.ConstraintError.
func (r *repo) Create(ctx context.Context, c Input) (int64, error) {
	const q = `
INSERT INTO customers (email, first_name, last_name, phone, address)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, q,
		nullable(c.Email), nullable(c.FirstName), nullable(c.LastName),
		nullable(c.Phone), nullable(c.Address),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", db.Classify(err))
	}
	return id, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*Customer, error) {
	const q = `SELECT id, email, first_name, last_name, phone, address FROM customers WHERE id = $1`

	var (
		c              Customer
		phone, address sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &phone, &address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	c.Phone = phone.String
	c.Address = address.String
	return &c, nil
}

// Update overwrites every mutable field. It reports false when no customer
// has the given id.
func (r *repo) Update(ctx context.Context, id int64, c Input) (bool, error) {
	const q = `
UPDATE customers
SET email = $2, first_name = $3, last_name = $4, phone = $5, address = $6, updated_at = NOW()
WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, id,
		nullable(c.Email), nullable(c.FirstName), nullable(c.LastName),
		nullable(c.Phone), nullable(c.Address),
	)
	if err != nil {
		return false, fmt.Errorf("update customer %d: %w", id, db.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update customer %d: %w", id, err)
	}
	return n > 0, nil
}

// Delete removes a customer. Unknown ids are not an error.
func (r *repo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, db.Classify(err))
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
