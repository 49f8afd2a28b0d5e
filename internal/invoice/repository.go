package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
)

type Repository interface {
	CreateWithTx(ctx context.Context, tx *sql.Tx, inv *Invoice) error
	GetByOrder(ctx context.Context, orderID int64) (*Invoice, error)
	UpdateStatus(ctx context.Context, orderID int64, from, to Status) (bool, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// CreateWithTx inserts inv using the provided transaction and sets its ID.
func (r *repo) CreateWithTx(ctx context.Context, tx *sql.Tx, inv *Invoice) error {
	const q = `
INSERT INTO invoices (order_id, invoice_number, status, amount, tax_amount, total_amount, due_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	err := tx.QueryRowContext(ctx, q,
		inv.OrderID, inv.Number, string(inv.Status), inv.Amount, inv.Tax, inv.Total, inv.DueDate, inv.CreatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", db.Classify(err))
	}
	return nil
}

func (r *repo) GetByOrder(ctx context.Context, orderID int64) (*Invoice, error) {
	const q = `
SELECT id, order_id, invoice_number, status, amount, tax_amount, total_amount, due_date, created_at
FROM invoices
WHERE order_id = $1`

	var (
		inv    Invoice
		status string
	)
	err := r.db.QueryRowContext(ctx, q, orderID).Scan(
		&inv.ID, &inv.OrderID, &inv.Number, &status, &inv.Amount, &inv.Tax, &inv.Total, &inv.DueDate, &inv.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice for order %d: %w", orderID, err)
	}
	inv.Status = Status(status)
	return &inv, nil
}

// UpdateStatus moves the order's invoice from one status to another and
// reports false when no invoice is in status from.
func (r *repo) UpdateStatus(ctx context.Context, orderID int64, from, to Status) (bool, error) {
	const q = `UPDATE invoices SET status = $3 WHERE order_id = $1 AND status = $2`

	res, err := r.db.ExecContext(ctx, q, orderID, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("update invoice status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update invoice status: %w", err)
	}
	return n > 0, nil
}
