package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
)

type Repository interface {
	CreateWithTx(ctx context.Context, tx *sql.Tx, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Order, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// CreateWithTx inserts the order header and its items using the provided
// transaction and sets o.ID.
func (r *repo) CreateWithTx(ctx context.Context, tx *sql.Tx, o *Order) error {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO orders (customer_id, cart_id, order_number, status, subtotal, tax_amount, shipping_amount, total_amount, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id`,
		o.CustomerID, o.CartID, o.Number, string(o.Status), o.Subtotal, o.Tax, o.Shipping, o.Total, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", db.Classify(err))
	}

	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
             VALUES ($1, $2, $3, $4, $5)`,
			o.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Total,
		); err != nil {
			return fmt.Errorf("insert order item: %w", db.Classify(err))
		}
	}

	return nil
}

const selectOrderSQL = `SELECT id, customer_id, cart_id, order_number, status, subtotal, tax_amount, shipping_amount, total_amount, created_at FROM orders`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o          Order
		status     string
		customerID sql.NullInt64
		cartID     sql.NullInt64
	)
	err := row.Scan(&o.ID, &customerID, &cartID, &o.Number, &status,
		&o.Subtotal, &o.Tax, &o.Shipping, &o.Total, &o.CreatedAt)
	// Both are NULL once the customer is deleted.
	o.CustomerID = customerID.Int64
	o.CartID = cartID.Int64
	o.Status = Status(status)
	return o, err
}

// GetByID loads an order with its items, or nil, nil when absent.
func (r *repo) GetByID(ctx context.Context, id int64) (*Order, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Close()

	o, err := scanOrder(conn.QueryRowContext(ctx, selectOrderSQL+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	rows, err := conn.QueryContext(ctx, `
SELECT oi.product_id, p.name, oi.quantity, oi.unit_price, oi.total_price
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.id`, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	o.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return &o, nil
}

// ListByCustomer returns order headers, newest first.
func (r *repo) ListByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrderSQL+` WHERE customer_id = $1 ORDER BY created_at DESC, id DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}
